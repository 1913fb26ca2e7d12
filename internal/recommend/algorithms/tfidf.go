// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package algorithms

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/marketlens/internal/recommend"
	"github.com/tomtom215/marketlens/internal/recommend/storage"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text, treats '|' as a separator and returns its
// tokens without English stop words.
func Tokenize(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, "|", " "))

	var tokens []string
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TFIDF is a content-based model over product category text.
//
// Each product is a document; weights are raw term counts times the smoothed
// inverse document frequency idf(t) = ln((1+n)/(1+df(t))) + 1, and every row
// is L2-normalized so cosine similarity is a dot product.
type TFIDF struct {
	BaseAlgorithm

	productIDs []string
	categories []string
	index      map[string]int

	vocabulary []string
	idf        []float64
	vectors    [][]storage.SparseEntry
}

// NewTFIDF creates an untrained content-based model.
func NewTFIDF() *TFIDF {
	return &TFIDF{
		BaseAlgorithm: NewBaseAlgorithm(recommend.ModelContent),
	}
}

// Train builds the vocabulary and product vectors from the catalog.
func (m *TFIDF) Train(ctx context.Context, products []recommend.Product) error {
	m.acquireTrainLock()
	defer m.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}
	if len(products) == 0 {
		return recommend.ErrNoProducts
	}

	docs := make([][]string, len(products))
	df := make(map[string]int)
	for i, p := range products {
		docs[i] = Tokenize(p.Category)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, tok := range docs[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	slices.Sort(vocabulary)

	termIndex := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(len(products))
	for i, term := range vocabulary {
		termIndex[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	vectors := make([][]storage.SparseEntry, len(products))
	for i, doc := range docs {
		vectors[i] = weigh(doc, termIndex, idf)
	}

	m.productIDs = make([]string, len(products))
	m.categories = make([]string, len(products))
	for i, p := range products {
		m.productIDs[i] = p.ID
		m.categories[i] = p.Category
	}
	m.index = buildIndex(m.productIDs)
	m.vocabulary = vocabulary
	m.idf = idf
	m.vectors = vectors

	m.markTrained()
	return nil
}

// weigh returns the L2-normalized TF-IDF row of a tokenized document, sorted by term.
func weigh(doc []string, termIndex map[string]int, idf []float64) []storage.SparseEntry {
	counts := make(map[int]float64)
	for _, tok := range doc {
		counts[termIndex[tok]]++
	}

	row := make([]storage.SparseEntry, 0, len(counts))
	var norm float64
	for term, tf := range counts {
		w := tf * idf[term]
		row = append(row, storage.SparseEntry{Term: term, Weight: w})
		norm += w * w
	}
	slices.SortFunc(row, func(a, b storage.SparseEntry) int { return a.Term - b.Term })

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range row {
			row[i].Weight /= norm
		}
	}
	return row
}

func buildIndex(ids []string) map[string]int {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		// first occurrence wins for duplicate IDs
		if _, ok := index[id]; !ok {
			index[id] = i
		}
	}
	return index
}

// sparseDot computes the dot product of two term-sorted sparse rows.
func sparseDot(a, b []storage.SparseEntry) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Term == b[j].Term:
			sum += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Term < b[j].Term:
			i++
		default:
			j++
		}
	}
	return sum
}

// Similar returns the topN products most similar to productID, excluding the
// product itself. Scores are cosine similarities in [0, 1]; ties keep catalog order.
func (m *TFIDF) Similar(productID string, topN int) ([]recommend.Recommendation, error) {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	if !m.trained {
		return nil, recommend.ErrNotTrained
	}
	q, ok := m.index[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", recommend.ErrUnknownItem, productID)
	}
	if topN <= 0 {
		return []recommend.Recommendation{}, nil
	}

	type scored struct {
		idx   int
		score float64
	}
	candidates := make([]scored, 0, len(m.productIDs)-1)
	for i := range m.productIDs {
		if i == q {
			continue
		}
		candidates = append(candidates, scored{idx: i, score: sparseDot(m.vectors[q], m.vectors[i])})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	out := make([]recommend.Recommendation, len(candidates))
	for k, c := range candidates {
		out[k] = recommend.Recommendation{
			ProductID: m.productIDs[c.idx],
			Category:  m.categories[c.idx],
			Score:     c.score,
		}
	}
	return out, nil
}

// Products returns the catalog in training order.
func (m *TFIDF) Products() []recommend.Product {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	out := make([]recommend.Product, len(m.productIDs))
	for i, id := range m.productIDs {
		out[i] = recommend.Product{ID: id, Category: m.categories[i]}
	}
	return out
}

// Vocabulary returns the sorted vocabulary.
func (m *TFIDF) Vocabulary() []string {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return slices.Clone(m.vocabulary)
}

// Snapshot returns the persistable model state.
func (m *TFIDF) Snapshot() any {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	return storage.TFIDFModelState{
		ProductIDs: m.productIDs,
		Categories: m.categories,
		Vocabulary: m.vocabulary,
		IDF:        m.idf,
		Vectors:    m.vectors,
	}
}

// Restore replaces the model with a saved state.
//
//nolint:gocritic // state is decoded by value from the store
func (m *TFIDF) Restore(state storage.TFIDFModelState, meta *storage.ModelMetadata) error {
	if len(state.ProductIDs) != len(state.Categories) || len(state.ProductIDs) != len(state.Vectors) {
		return fmt.Errorf("tfidf state: %d products, %d categories, %d vectors",
			len(state.ProductIDs), len(state.Categories), len(state.Vectors))
	}
	if len(state.Vocabulary) != len(state.IDF) {
		return fmt.Errorf("tfidf state: %d terms, %d idf weights", len(state.Vocabulary), len(state.IDF))
	}

	m.acquireTrainLock()
	defer m.releaseTrainLock()

	m.productIDs = state.ProductIDs
	m.categories = state.Categories
	m.vocabulary = state.Vocabulary
	m.idf = state.IDF
	m.vectors = state.Vectors
	m.index = buildIndex(m.productIDs)

	var version int
	var trainedAt time.Time
	if meta != nil {
		version = meta.Version
		trainedAt = meta.TrainedAt
	}
	m.markRestored(version, trainedAt)
	return nil
}

// LoadTFIDF loads a saved content model. Version 0 loads the latest.
func LoadTFIDF(ctx context.Context, store *storage.Store, version int) (*TFIDF, error) {
	var state storage.TFIDFModelState
	meta, err := store.Load(ctx, recommend.ModelContent, version, &state)
	if err != nil {
		return nil, err
	}

	m := NewTFIDF()
	if err := m.Restore(state, meta); err != nil {
		return nil, err
	}
	return m, nil
}

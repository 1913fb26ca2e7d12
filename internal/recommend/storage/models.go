// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const (
	modelExt    = ".gob.gz"
	metadataExt = ".json"
)

// ErrModelNotFound is returned when no saved version of a model exists.
var ErrModelNotFound = errors.New("model not found")

// ModelMetadata contains information about a stored model.
type ModelMetadata struct {
	// Name is the model name (e.g., "cf_svd", "content_tfidf").
	Name string `json:"name"`

	// Version is the model version (monotonically increasing).
	Version int `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the model was saved.
	SavedAt time.Time `json:"saved_at"`

	// InteractionCount is the number of ratings used for training.
	InteractionCount int `json:"interaction_count"`

	// ItemCount is the number of unique items.
	ItemCount int `json:"item_count"`

	// UserCount is the number of unique users.
	UserCount int `json:"user_count"`

	// Checksum is the SHA-256 checksum of the model data.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed model size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`

	// Metrics holds evaluation results such as rmse.
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// Store manages model persistence in one directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per model name
	versions map[string]int
}

// NewStore creates a model store at the given directory and indexes the
// models already saved there.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}

	if err := s.scanModels(); err != nil {
		return nil, fmt.Errorf("scan existing models: %w", err)
	}

	return s, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// scanModels records the latest version of every model file in the directory.
func (s *Store) scanModels() error {
	all, err := s.listVersions()
	if err != nil {
		return err
	}
	for name, versions := range all {
		s.versions[name] = slices.Max(versions)
	}
	return nil
}

// listVersions returns every saved version per model name.
func (s *Store) listVersions() (map[string][]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(entry.Name(), modelExt)
		if !ok {
			continue
		}
		name, version := parseModelFilename(stem)
		if name == "" {
			continue
		}
		out[name] = append(out[name], version)
	}
	return out, nil
}

// parseModelFilename extracts model name and version from a stem like "cf_svd_v3".
func parseModelFilename(stem string) (name string, version int) {
	idx := strings.LastIndex(stem, "_v")
	if idx <= 0 {
		return "", 0
	}

	if _, err := fmt.Sscanf(stem[idx+2:], "%d", &version); err != nil || version <= 0 {
		return "", 0
	}
	if fmt.Sprint(version) != stem[idx+2:] {
		return "", 0
	}
	return stem[:idx], version
}

// storedFile is the on-disk format for model files.
type storedFile struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// Save stores data as version of the named model and writes a JSON
// metadata sidecar next to it.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data any, meta ModelMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()
	meta.Name = name
	meta.Version = version

	var file bytes.Buffer
	if err := gob.NewEncoder(&file).Encode(storedFile{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return fmt.Errorf("encode model file: %w", err)
	}
	if err := writeFileAtomic(s.modelPath(name, version), file.Bytes()); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}

	sidecar, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := writeFileAtomic(s.metadataPath(name, version), append(sidecar, '\n')); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	if current, ok := s.versions[name]; !ok || version > current {
		s.versions[name] = version
	}

	return nil
}

// writeFileAtomic writes data to a temp file in the same directory and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o640); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// Load loads a model by name and version into target.
// If version is 0, loads the latest version.
func (s *Store) Load(ctx context.Context, name string, version int, target any) (*ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
		}
	}

	f, err := os.Open(s.modelPath(name, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s v%d", ErrModelNotFound, name, version)
		}
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }()

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	checksum := hex.EncodeToString(hash[:])
	if checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	return &sf.Metadata, nil
}

// LoadMetadata reads the JSON sidecar of a model version without decoding
// the model. If version is 0, reads the latest version.
func (s *Store) LoadMetadata(name string, version int) (*ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
		}
	}

	data, err := os.ReadFile(s.metadataPath(name, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s v%d", ErrModelNotFound, name, version)
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var meta ModelMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}

// GetLatestVersion returns the latest version number for a model.
func (s *Store) GetLatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[name]
	return version, ok
}

// ListModels returns metadata for the latest version of every stored model,
// ordered by name.
func (s *Store) ListModels(ctx context.Context) ([]ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	names := make([]string, 0, len(s.versions))
	for name := range s.versions {
		names = append(names, name)
	}
	s.mu.RUnlock()
	slices.Sort(names)

	var out []ModelMetadata
	for _, name := range names {
		meta, err := s.LoadMetadata(name, 0)
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}
	return out, nil
}

// Prune removes old versions of a model, keeping only the latest keepVersions.
func (s *Store) Prune(ctx context.Context, name string, keepVersions int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if keepVersions < 1 {
		keepVersions = 1
	}

	all, err := s.listVersions()
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	versions := all[name]
	slices.Sort(versions)
	slices.Reverse(versions)

	var removed []int
	for i := keepVersions; i < len(versions); i++ {
		if err := os.Remove(s.modelPath(name, versions[i])); err != nil {
			return removed, fmt.Errorf("prune %s v%d: %w", name, versions[i], err)
		}
		_ = os.Remove(s.metadataPath(name, versions[i]))
		removed = append(removed, versions[i])
	}
	return removed, nil
}

func (s *Store) modelPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, modelExt))
}

func (s *Store) metadataPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, metadataExt))
}

// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marketlens/internal/recommend/storage"
)

// Prediction is the output of a CF rating lookup.
type Prediction struct {
	UserID     string  `json:"user_id"`
	ProductID  string  `json:"product_id"`
	Rating     float64 `json:"predicted_rating"`
	GlobalMean float64 `json:"global_mean"`
	KnownUser  bool    `json:"known_user"`
	KnownItem  bool    `json:"known_item"`
}

// WriteRecommendations prints recommendations for productID as an aligned table.
func WriteRecommendations(w io.Writer, productID string, recs []Recommendation) error {
	if _, err := fmt.Fprintf(w, "Products similar to %s:\n", productID); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "RANK\tPRODUCT_ID\tCATEGORY\tSCORE"); err != nil {
		return err
	}
	for i, r := range recs {
		category := r.Category
		if category == "" {
			category = "-"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\n", i+1, r.ProductID, category, r.Score); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WritePrediction prints a rating prediction on one line.
func WritePrediction(w io.Writer, p Prediction) error {
	note := ""
	switch {
	case !p.KnownUser && !p.KnownItem:
		note = fmt.Sprintf(" (unknown user and product: global mean %.3f)", p.GlobalMean)
	case !p.KnownUser:
		note = " (unknown user)"
	case !p.KnownItem:
		note = " (unknown product)"
	}
	_, err := fmt.Fprintf(w, "Predicted rating for %s on %s: %.3f%s\n", p.UserID, p.ProductID, p.Rating, note)
	return err
}

// WriteModels prints saved model metadata as an aligned table. RMSE is
// shown for models whose sidecar records it.
func WriteModels(w io.Writer, metas []storage.ModelMetadata) error {
	if len(metas) == 0 {
		_, err := fmt.Fprintln(w, "No saved models.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "MODEL\tVERSION\tTRAINED_AT\tRATINGS\tITEMS\tUSERS\tRMSE\tBYTES"); err != nil {
		return err
	}
	for _, m := range metas {
		rmse := "-"
		if v, ok := m.Metrics["rmse"]; ok {
			rmse = strconv.FormatFloat(v, 'f', 4, 64)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%d\t%s\t%d\n",
			m.Name, m.Version, m.TrainedAt.UTC().Format(time.RFC3339),
			m.InteractionCount, m.ItemCount, m.UserCount, rmse, m.SizeBytes); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteJSON prints v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

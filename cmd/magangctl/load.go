package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"magang-intel/internal/dataset"
	"magang-intel/internal/vacancies"
)

const loadTimeout = 2 * time.Minute

// loadService fetches the dataset once and returns a service over it.
func loadService(ctx context.Context, location string) (*vacancies.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	store := dataset.NewStore()
	r := &dataset.Reloader{Source: dataset.ParseSource(location), Store: store}
	if err := r.LoadOnce(ctx); err != nil {
		return nil, err
	}
	return vacancies.NewService(store), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func formatRatio(r *float64) string {
	if r == nil {
		return vacancies.UndefinedRatioText
	}
	return fmt.Sprintf("%.2f", *r)
}

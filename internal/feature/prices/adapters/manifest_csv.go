package adapters

import (
	"context"

	"stock_fetcher/internal/feature/prices/usecase"
)

// CSVManifestWriter writes the list of configured symbols to a one-column CSV file.
type CSVManifestWriter struct {
	path string
}

var _ usecase.ManifestWriter = (*CSVManifestWriter)(nil)

// NewCSVManifestWriter creates a CSVManifestWriter for path.
func NewCSVManifestWriter(path string) *CSVManifestWriter {
	return &CSVManifestWriter{path: path}
}

// WriteManifest overwrites the manifest with symbols.
func (w *CSVManifestWriter) WriteManifest(ctx context.Context, symbols []string) error {
	rows := make([][]string, 0, len(symbols)+1)
	rows = append(rows, []string{"symbol"})
	for _, s := range symbols {
		rows = append(rows, []string{s})
	}
	return writeCSVAtomic(w.path, rows)
}

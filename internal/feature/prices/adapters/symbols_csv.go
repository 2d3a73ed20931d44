package adapters

import (
	"context"
	"fmt"
	"strings"
)

// CSVSymbolRepository reads the configured symbol universe from a CSV file with a "symbol" column.
type CSVSymbolRepository struct {
	path string
}

// NewCSVSymbolRepository creates a CSVSymbolRepository for path.
func NewCSVSymbolRepository(path string) *CSVSymbolRepository {
	return &CSVSymbolRepository{path: path}
}

// ListSymbols returns the symbols in file order. Blank cells are skipped.
func (r *CSVSymbolRepository) ListSymbols(ctx context.Context) ([]string, error) {
	records, ok, err := readCSV(r.path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("symbols file %s does not exist", r.path)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("symbols file %s is empty", r.path)
	}

	col := -1
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), "symbol") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("symbols file %s: missing column %q", r.path, "symbol")
	}

	symbols := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if col >= len(rec) {
			continue
		}
		s := strings.TrimSpace(rec[col])
		if s == "" {
			continue
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

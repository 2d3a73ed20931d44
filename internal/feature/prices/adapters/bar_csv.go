package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v5"
	"github.com/shopspring/decimal"

	"stock_fetcher/internal/feature/prices/domain/entity"
	"stock_fetcher/internal/feature/prices/usecase"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// barColumns is the header of every per-symbol table, in order.
var barColumns = []string{
	"symbol", "Date", "Open", "High", "Low", "Close", "Volume",
	"TOTAL_TRADES", "QTY_PER_TRADE", "DLV_QTY",
}

// CSVBarRepository stores each symbol's bars in {dir}/{symbol}.csv.
type CSVBarRepository struct {
	dir string
}

var _ usecase.BarRepository = (*CSVBarRepository)(nil)

// NewCSVBarRepository creates a CSVBarRepository rooted at dir.
func NewCSVBarRepository(dir string) *CSVBarRepository {
	return &CSVBarRepository{dir: dir}
}

// Path returns the file holding symbol's table.
func (r *CSVBarRepository) Path(symbol string) (string, error) {
	if symbol == "" || strings.ContainsAny(symbol, `/\`) || symbol == "." || symbol == ".." {
		return "", fmt.Errorf("invalid symbol for file name: %q", symbol)
	}
	return filepath.Join(r.dir, symbol+".csv"), nil
}

// Load reads symbol's table. A missing file is an empty table.
func (r *CSVBarRepository) Load(ctx context.Context, symbol string) ([]entity.PriceBar, error) {
	path, err := r.Path(symbol)
	if err != nil {
		return nil, err
	}

	records, ok, err := readCSV(path)
	if err != nil || !ok || len(records) == 0 {
		return nil, err
	}

	idx := columnIndex(records[0])
	for _, col := range barColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	bars := make([]entity.PriceBar, 0, len(records)-1)
	for n, rec := range records[1:] {
		b, err := parseBar(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n+2, err)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

// Save overwrites symbol's table with bars.
func (r *CSVBarRepository) Save(ctx context.Context, symbol string, bars []entity.PriceBar) error {
	path, err := r.Path(symbol)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(bars)+1)
	rows = append(rows, barColumns)
	for _, b := range bars {
		rows = append(rows, formatBar(b))
	}
	return writeCSVAtomic(path, rows)
}

func formatBar(b entity.PriceBar) []string {
	return []string{
		b.Symbol,
		formatDate(b.Date),
		formatPrice(b.Open),
		formatPrice(b.High),
		formatPrice(b.Low),
		formatPrice(b.Close),
		strconv.FormatInt(b.Volume, 10),
		formatNullInt(b.TotalTrades),
		formatNullFloat(b.QtyPerTrade),
		formatNullInt(b.DeliveryQty),
	}
}

// formatPrice keeps the scale a price was read with, so "1820.50" is written
// back as "1820.50" rather than trimmed to "1820.5".
func formatPrice(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func parseBar(rec []string, idx map[string]int) (entity.PriceBar, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		b   entity.PriceBar
		err error
	)
	b.Symbol = field("symbol")
	if b.Date, err = parseDate(field("Date")); err != nil {
		return b, err
	}
	if b.Open, err = decimal.NewFromString(field("Open")); err != nil {
		return b, fmt.Errorf("parse Open %q: %w", field("Open"), err)
	}
	if b.High, err = decimal.NewFromString(field("High")); err != nil {
		return b, fmt.Errorf("parse High %q: %w", field("High"), err)
	}
	if b.Low, err = decimal.NewFromString(field("Low")); err != nil {
		return b, fmt.Errorf("parse Low %q: %w", field("Low"), err)
	}
	if b.Close, err = decimal.NewFromString(field("Close")); err != nil {
		return b, fmt.Errorf("parse Close %q: %w", field("Close"), err)
	}
	if b.Volume, err = strconv.ParseInt(field("Volume"), 10, 64); err != nil {
		return b, fmt.Errorf("parse Volume %q: %w", field("Volume"), err)
	}
	if b.TotalTrades, err = parseNullInt(field("TOTAL_TRADES")); err != nil {
		return b, fmt.Errorf("parse TOTAL_TRADES: %w", err)
	}
	if b.QtyPerTrade, err = parseNullFloat(field("QTY_PER_TRADE")); err != nil {
		return b, fmt.Errorf("parse QTY_PER_TRADE: %w", err)
	}
	if b.DeliveryQty, err = parseNullInt(field("DLV_QTY")); err != nil {
		return b, fmt.Errorf("parse DLV_QTY: %w", err)
	}
	return b, nil
}

// formatDate writes daily bars as a bare date and intraday bars with their time.
func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse Date %q: %w", s, err)
	}
	return t, nil
}

func formatNullInt(v null.Int) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.ValueOrZero(), 10)
}

func formatNullFloat(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.ValueOrZero(), 'f', -1, 64)
}

func parseNullInt(s string) (null.Int, error) {
	if s == "" {
		return null.Int{}, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return null.Int{}, err
	}
	return null.IntFrom(n), nil
}

func parseNullFloat(s string) (null.Float, error) {
	if s == "" {
		return null.Float{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Float{}, err
	}
	return null.FloatFrom(f), nil
}

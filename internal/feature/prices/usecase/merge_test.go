package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stock_fetcher/internal/feature/prices/domain/entity"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func bar(symbol, date, closePrice string) entity.PriceBar {
	c := decimal.RequireFromString(closePrice)
	return entity.PriceBar{
		Symbol: symbol,
		Date:   day(date),
		Open:   c,
		High:   c,
		Low:    c,
		Close:  c,
		Volume: 100,
	}
}

func dates(bars []entity.PriceBar) []string {
	out := make([]string, 0, len(bars))
	for _, b := range bars {
		out = append(out, b.Date.Format(DateLayout))
	}
	return out
}

func assertStrictlyAscending(t *testing.T, bars []entity.PriceBar) {
	t.Helper()
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			t.Fatalf("bars not strictly ascending at %d: %v", i, dates(bars))
		}
	}
}

func TestMerge_OverlappingWindow(t *testing.T) {
	existing := []entity.PriceBar{
		bar("AAA", "2024-01-01", "10"),
		bar("AAA", "2024-01-02", "11"),
		bar("AAA", "2024-01-03", "12"),
	}
	fresh := []entity.PriceBar{
		bar("AAA", "2024-01-03", "12.5"),
		bar("AAA", "2024-01-04", "13"),
		bar("AAA", "2024-01-05", "14"),
	}

	merged := Merge(existing, fresh)

	want := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	got := dates(merged)
	if len(got) != len(want) {
		t.Fatalf("dates mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("date[%d] mismatch: got %s, want %s", i, got[i], want[i])
		}
	}
	if !merged[2].Close.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("2024-01-03 should come from the fresh fetch: got close %s", merged[2].Close)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	existing := []entity.PriceBar{
		bar("AAA", "2024-01-01", "10"),
		bar("AAA", "2024-01-02", "11"),
	}
	fresh := []entity.PriceBar{
		bar("AAA", "2024-01-02", "11.1"),
		bar("AAA", "2024-01-03", "12"),
	}

	once := Merge(existing, fresh)
	twice := Merge(once, fresh)

	if len(once) != len(twice) {
		t.Fatalf("merging twice changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if !once[i].Date.Equal(twice[i].Date) || !once[i].Close.Equal(twice[i].Close) {
			t.Errorf("row %d differs: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestMerge_PreservesAllDates(t *testing.T) {
	testCases := []struct {
		name     string
		existing []entity.PriceBar
		fresh    []entity.PriceBar
		want     int
	}{
		{
			name:     "no existing table",
			existing: nil,
			fresh:    []entity.PriceBar{bar("AAA", "2024-02-02", "1"), bar("AAA", "2024-02-01", "1")},
			want:     2,
		},
		{
			name:     "no fresh bars",
			existing: []entity.PriceBar{bar("AAA", "2024-02-01", "1")},
			fresh:    nil,
			want:     1,
		},
		{
			name:     "disjoint ranges",
			existing: []entity.PriceBar{bar("AAA", "2024-02-05", "1"), bar("AAA", "2024-02-06", "1")},
			fresh:    []entity.PriceBar{bar("AAA", "2024-02-01", "1"), bar("AAA", "2024-02-09", "1")},
			want:     4,
		},
		{
			name:     "duplicate inside the fresh batch",
			existing: nil,
			fresh:    []entity.PriceBar{bar("AAA", "2024-02-01", "1"), bar("AAA", "2024-02-01", "2")},
			want:     1,
		},
		{
			name:     "both empty",
			existing: nil,
			fresh:    nil,
			want:     0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			merged := Merge(tc.existing, tc.fresh)
			if len(merged) != tc.want {
				t.Fatalf("row count mismatch: got %d (%v), want %d", len(merged), dates(merged), tc.want)
			}
			assertStrictlyAscending(t, merged)
		})
	}
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	existing := []entity.PriceBar{bar("AAA", "2024-01-02", "11"), bar("AAA", "2024-01-01", "10")}
	fresh := []entity.PriceBar{bar("AAA", "2024-01-02", "99")}

	_ = Merge(existing, fresh)

	if existing[0].Date.Format(DateLayout) != "2024-01-02" || !existing[0].Close.Equal(decimal.NewFromInt(11)) {
		t.Errorf("existing slice was modified: %+v", existing)
	}
}

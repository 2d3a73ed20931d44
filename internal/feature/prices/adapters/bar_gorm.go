package adapters

import (
	"context"
	"time"

	"github.com/guregu/null/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_fetcher/internal/feature/prices/domain/entity"
	"stock_fetcher/internal/feature/prices/usecase"
)

const upsertBatchSize = 500

type barGorm struct {
	db *gorm.DB
}

var _ usecase.BarRepository = (*barGorm)(nil)

// NewBarRepository returns a gorm-backed BarRepository over the price_bars table.
func NewBarRepository(db *gorm.DB) *barGorm {
	return &barGorm{db: db}
}

type PriceBarModel struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:32;not null;uniqueIndex:price_bar_sym_date,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:price_bar_sym_date,priority:2"`

	Open   decimal.Decimal `gorm:"type:numeric;not null"`
	High   decimal.Decimal `gorm:"type:numeric;not null"`
	Low    decimal.Decimal `gorm:"type:numeric;not null"`
	Close  decimal.Decimal `gorm:"type:numeric;not null"`
	Volume int64           `gorm:"not null;default:0"`

	TotalTrades null.Int   `gorm:"column:total_trades"`
	QtyPerTrade null.Float `gorm:"column:qty_per_trade"`
	DeliveryQty null.Int   `gorm:"column:dlv_qty"`
}

func (PriceBarModel) TableName() string {
	return "price_bars"
}

func toModel(e entity.PriceBar) PriceBarModel {
	return PriceBarModel{
		Symbol:      e.Symbol,
		Date:        e.Date,
		Open:        e.Open,
		High:        e.High,
		Low:         e.Low,
		Close:       e.Close,
		Volume:      e.Volume,
		TotalTrades: e.TotalTrades,
		QtyPerTrade: e.QtyPerTrade,
		DeliveryQty: e.DeliveryQty,
	}
}

func toEntity(m PriceBarModel) entity.PriceBar {
	return entity.PriceBar{
		Symbol:      m.Symbol,
		Date:        m.Date.UTC(),
		Open:        m.Open,
		High:        m.High,
		Low:         m.Low,
		Close:       m.Close,
		Volume:      m.Volume,
		TotalTrades: m.TotalTrades,
		QtyPerTrade: m.QtyPerTrade,
		DeliveryQty: m.DeliveryQty,
	}
}

// Save upserts bars on (symbol, date). Rows already stored for other dates are kept.
func (r *barGorm) Save(ctx context.Context, symbol string, bars []entity.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]PriceBarModel, 0, len(bars))
	for _, e := range bars {
		e.Symbol = symbol
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"open", "high", "low", "close", "volume", "total_trades", "qty_per_trade", "dlv_qty",
		}),
	}).CreateInBatches(&ms, upsertBatchSize).Error
}

// Load returns symbol's bars ascending by date.
func (r *barGorm) Load(ctx context.Context, symbol string) ([]entity.PriceBar, error) {
	var rows []PriceBarModel
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PriceBar, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

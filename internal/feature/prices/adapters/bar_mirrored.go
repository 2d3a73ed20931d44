package adapters

import (
	"context"
	"fmt"

	"stock_fetcher/internal/feature/prices/domain/entity"
	"stock_fetcher/internal/feature/prices/usecase"
)

// MirroredBarRepository decorates a primary BarRepository by copying every
// saved table into a secondary one. Reads only ever hit the primary.
type MirroredBarRepository struct {
	primary usecase.BarRepository
	mirror  usecase.BarRepository
}

var _ usecase.BarRepository = (*MirroredBarRepository)(nil)

// NewMirroredBarRepository creates a MirroredBarRepository. A nil mirror makes it a pass-through.
func NewMirroredBarRepository(primary, mirror usecase.BarRepository) *MirroredBarRepository {
	return &MirroredBarRepository{primary: primary, mirror: mirror}
}

// Load reads from the primary repository.
func (m *MirroredBarRepository) Load(ctx context.Context, symbol string) ([]entity.PriceBar, error) {
	return m.primary.Load(ctx, symbol)
}

// Save writes to the primary, then the mirror. The primary write stands even
// when the mirror fails.
func (m *MirroredBarRepository) Save(ctx context.Context, symbol string, bars []entity.PriceBar) error {
	if err := m.primary.Save(ctx, symbol, bars); err != nil {
		return err
	}
	if m.mirror == nil {
		return nil
	}
	if err := m.mirror.Save(ctx, symbol, bars); err != nil {
		return fmt.Errorf("mirror: %w", err)
	}
	return nil
}

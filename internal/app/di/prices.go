package di

import (
	"path/filepath"

	"gorm.io/gorm"

	"stock_fetcher/internal/feature/prices/adapters"
	"stock_fetcher/internal/feature/prices/usecase"
)

// ManifestFile is the name of the symbol list written next to the price tables.
const ManifestFile = "manifest.csv"

// NewBarRepository returns the per-symbol CSV store under outputDir, mirrored
// into gdb when a database is configured.
func NewBarRepository(outputDir string, gdb *gorm.DB) usecase.BarRepository {
	primary := adapters.NewCSVBarRepository(outputDir)
	if gdb == nil {
		return primary
	}
	return adapters.NewMirroredBarRepository(primary, adapters.NewBarRepository(gdb))
}

// NewFetchUsecase wires the fetch engine.
func NewFetchUsecase(market usecase.MarketRepository, bars usecase.BarRepository, outputDir string) *usecase.FetchUsecase {
	manifest := adapters.NewCSVManifestWriter(filepath.Join(outputDir, ManifestFile))
	return usecase.NewFetchUsecase(market, bars, manifest)
}

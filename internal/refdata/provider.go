package refdata

import (
	"context"
	"fmt"
	"strings"

	"packlist/internal/config"
)

// Table names one of the three reference tables.
type Table string

const (
	TablePrices    Table = "prices"
	TableProducts  Table = "products"
	TableMaterials Table = "materials"
)

// Provider fetches one reference table as a raw grid of cells. The core
// pipeline never talks to a provider directly; it consumes parsed snapshots.
type Provider interface {
	FetchTable(ctx context.Context, table Table) ([][]string, error)
}

// NewProvider builds the configured provider: published CSV over HTTP (the
// default), the Sheets API, a local workbook, or the published-HTML table.
func NewProvider(cfg config.Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.RefDataProvider)) {
	case "", "csvweb":
		return NewCSVWebProvider(cfg), nil
	case "sheets":
		return NewSheetsProvider(cfg)
	case "workbook":
		return NewWorkbookProvider(cfg)
	case "pubhtml":
		return NewPubHTMLProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported refdata provider: %s", cfg.RefDataProvider)
	}
}

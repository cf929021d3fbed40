package refdata

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"packlist/internal/config"
)

// SheetsProvider reads the reference tables straight from the Sheets API.
// The spreadsheet must be readable with an API key.
type SheetsProvider struct {
	cfg config.Config
}

func NewSheetsProvider(cfg config.Config) (*SheetsProvider, error) {
	if err := cfg.Require("SHEETS_API_KEY", cfg.SheetsAPIKey); err != nil {
		return nil, err
	}
	if err := cfg.Require("SHEETS_SPREADSHEET_ID", cfg.SheetsID); err != nil {
		return nil, err
	}
	return &SheetsProvider{cfg: cfg}, nil
}

func (p *SheetsProvider) FetchTable(ctx context.Context, table Table) ([][]string, error) {
	readRange, err := p.tableRange(table)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, option.WithAPIKey(p.cfg.SheetsAPIKey))
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(p.cfg.SheetsID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets api: %w", err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func (p *SheetsProvider) tableRange(table Table) (string, error) {
	switch table {
	case TablePrices:
		return p.cfg.SheetsPriceRange, nil
	case TableProducts:
		return p.cfg.SheetsProductRange, nil
	case TableMaterials:
		return p.cfg.SheetsMaterialRange, nil
	default:
		return "", fmt.Errorf("unknown table: %s", table)
	}
}

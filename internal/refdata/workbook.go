package refdata

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"packlist/internal/config"
)

// WorkbookProvider reads the three tables from a local .xlsx workbook, one
// sheet per table, for offline runs.
type WorkbookProvider struct {
	path string
}

var workbookSheets = map[Table]string{
	TablePrices:    "Prices",
	TableProducts:  "Products",
	TableMaterials: "Materials",
}

func NewWorkbookProvider(cfg config.Config) (*WorkbookProvider, error) {
	if err := cfg.Require("REFDATA_WORKBOOK", cfg.RefDataWorkbook); err != nil {
		return nil, err
	}
	return &WorkbookProvider{path: cfg.RefDataWorkbook}, nil
}

func (p *WorkbookProvider) FetchTable(_ context.Context, table Table) ([][]string, error) {
	sheet, ok := workbookSheets[table]
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", table)
	}

	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("workbook sheet %s: %w", sheet, err)
	}
	return rows, nil
}

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"packlist/internal"
)

// ErrMissingPrices means a record set still lacks its currency ladder. The
// CSV export is the outbound format and never leaves without full prices;
// mail pre-parsing stores such half-filled records under the "parsed" status.
var ErrMissingPrices = errors.New("records missing currency prices")

// ExportColumns is the fixed CSV header, in export order.
var ExportColumns = []string{
	"Order_ID", "Style", "Colour", "Supplier_product_code",
	"Item_classification", "Supplier_name", "today_date", "Collection",
	"Colour_SKU", "Style_Merch_Season", "Batch", "barcode", "washing_code",
	"EUR", "BGN", "BAM", "PLN", "RON", "CZK", "MKD", "RSD", "HUF",
	"product_name", "Dept", "Cotton",
}

func exportValues(r internal.Record) []string {
	return []string{
		r.OrderID, r.Style, r.Colour, r.SupplierProductCode,
		r.ItemClassification, r.SupplierName, r.TodayDate, r.Collection,
		r.ColourSKU, r.StyleMerchSeason, r.Batch, r.Barcode, r.WashingCode,
		r.EUR, r.BGN, r.BAM, r.PLN, r.RON, r.CZK, r.MKD, r.RSD, r.HUF,
		r.ProductName, r.Dept, r.Cotton,
	}
}

// EnsureEnriched verifies every record carries the full currency ladder.
// The PLN column is the sentinel: enrichment fills all nine currencies or
// none at all.
func EnsureEnriched(records []internal.Record) error {
	for i, r := range records {
		if r.PLN == "" {
			return fmt.Errorf("%w: record %d has no PLN price", ErrMissingPrices, i+1)
		}
	}
	return nil
}

// WriteCSV renders records as the export CSV: UTF-8 with byte-order mark,
// semicolon-delimited, every field quoted. encoding/csv cannot force quoting
// of all fields, so the quoting is done by hand. Unenriched records are
// refused.
func WriteCSV(w io.Writer, records []internal.Record) error {
	if err := EnsureEnriched(records); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return err
	}
	if err := writeCSVRow(w, ExportColumns); err != nil {
		return err
	}
	for _, r := range records {
		if err := writeCSVRow(w, exportValues(r)); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVRow(w io.Writer, fields []string) error {
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	_, err := io.WriteString(w, strings.Join(quoted, ";")+"\r\n")
	return err
}

// ExportCSVFile writes the export CSV to a path, creating parent
// directories as needed.
func ExportCSVFile(records []internal.Record, outputPath string) error {
	if err := EnsureEnriched(records); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ExportXLSXFile writes the same record set as a spreadsheet, for operators
// who want to review before the CSV goes out.
func ExportXLSXFile(records []internal.Record, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range records {
		for j, value := range exportValues(r) {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

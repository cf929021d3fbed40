package refdata

import (
	"fmt"
	"strings"
)

// Snapshot is one immutable view of the three reference tables. The core
// pipeline consumes snapshots only and never fetches anything itself.
type Snapshot struct {
	Prices       PriceTable
	Translations TranslationTable
	Materials    MaterialTable
}

// PriceTable is the price ladder: one column per currency code, equal-length
// columns, each row one synchronized price point.
type PriceTable struct {
	Currencies []string
	Columns    map[string][]string
}

// TranslationRow is one product-name row keyed by department and product,
// with one text per language code.
type TranslationRow struct {
	Department  string
	ProductName string
	Texts       map[string]string
}

type TranslationTable struct {
	Languages []string
	Rows      []TranslationRow
}

// MaterialRow is one (material, language, translation) entry, the collapsed
// form of the wide material sheet.
type MaterialRow struct {
	Material    string
	Language    string
	Translation string
}

type MaterialTable struct {
	Rows []MaterialRow
}

// MaterialLanguages are the label languages that carry material composition.
var MaterialLanguages = []string{"AL", "BG", "MK", "RS"}

// ParsePriceTable builds the price ladder from a raw grid whose first row
// holds the currency codes. Short rows pad with ""; the ladder requires a
// PLN column.
func ParsePriceTable(grid [][]string) (PriceTable, error) {
	if len(grid) < 2 {
		return PriceTable{}, fmt.Errorf("price table: empty sheet")
	}

	currencies := make([]string, 0, len(grid[0]))
	for _, h := range grid[0] {
		currencies = append(currencies, strings.TrimSpace(h))
	}

	columns := map[string][]string{}
	for _, row := range grid[1:] {
		for i, cur := range currencies {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			if value == "" {
				continue
			}
			columns[cur] = append(columns[cur], value)
		}
	}

	if len(columns["PLN"]) == 0 {
		return PriceTable{}, fmt.Errorf("price table: missing PLN column")
	}
	return PriceTable{Currencies: currencies, Columns: columns}, nil
}

// ParseTranslationTable builds the product-name table from a raw grid. The
// header row names DEPARTMENT, PRODUCT_NAME and the language columns.
func ParseTranslationTable(grid [][]string) (TranslationTable, error) {
	if len(grid) < 2 {
		return TranslationTable{}, fmt.Errorf("translation table: empty sheet")
	}

	header := grid[0]
	deptIdx, nameIdx := -1, -1
	languages := make([]string, 0, len(header))
	langIdx := map[string]int{}
	for i, h := range header {
		col := strings.TrimSpace(h)
		switch col {
		case "DEPARTMENT":
			deptIdx = i
		case "PRODUCT_NAME":
			nameIdx = i
		case "":
		default:
			languages = append(languages, col)
			langIdx[col] = i
		}
	}
	if deptIdx < 0 || nameIdx < 0 {
		return TranslationTable{}, fmt.Errorf("translation table: missing DEPARTMENT or PRODUCT_NAME column")
	}

	rows := make([]TranslationRow, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		row := TranslationRow{
			Department:  cell(raw, deptIdx),
			ProductName: cell(raw, nameIdx),
			Texts:       map[string]string{},
		}
		if row.ProductName == "" {
			continue
		}
		for lang, idx := range langIdx {
			if v := cell(raw, idx); v != "" {
				row.Texts[lang] = v
			}
		}
		rows = append(rows, row)
	}

	return TranslationTable{Languages: languages, Rows: rows}, nil
}

// ParseMaterialTable collapses the wide material sheet (Name plus one column
// per material language) into (material, language, translation) rows.
func ParseMaterialTable(grid [][]string) (MaterialTable, error) {
	if len(grid) < 2 {
		return MaterialTable{}, fmt.Errorf("material table: empty sheet")
	}

	header := grid[0]
	nameIdx := -1
	langIdx := map[string]int{}
	for i, h := range header {
		col := strings.TrimSpace(h)
		if col == "Name" {
			nameIdx = i
			continue
		}
		for _, lang := range MaterialLanguages {
			if col == lang {
				langIdx[lang] = i
			}
		}
	}
	if nameIdx < 0 {
		return MaterialTable{}, fmt.Errorf("material table: missing Name column")
	}

	out := MaterialTable{}
	for _, raw := range grid[1:] {
		material := cell(raw, nameIdx)
		if material == "" {
			continue
		}
		for _, lang := range MaterialLanguages {
			idx, ok := langIdx[lang]
			if !ok {
				continue
			}
			out.Rows = append(out.Rows, MaterialRow{
				Material:    material,
				Language:    lang,
				Translation: cell(raw, idx),
			})
		}
	}
	return out, nil
}

func (t TranslationTable) Departments() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, row := range t.Rows {
		if row.Department == "" {
			continue
		}
		if _, ok := seen[row.Department]; ok {
			continue
		}
		seen[row.Department] = struct{}{}
		out = append(out, row.Department)
	}
	return out
}

func (t TranslationTable) Products(department string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, row := range t.Rows {
		if row.Department != department {
			continue
		}
		if _, ok := seen[row.ProductName]; ok {
			continue
		}
		seen[row.ProductName] = struct{}{}
		out = append(out, row.ProductName)
	}
	return out
}

// Find returns the translation row for a department/product pair.
func (t TranslationTable) Find(department, product string) (TranslationRow, bool) {
	for _, row := range t.Rows {
		if row.Department == department && row.ProductName == product {
			return row, true
		}
	}
	return TranslationRow{}, false
}

func (t MaterialTable) Materials() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, row := range t.Rows {
		if _, ok := seen[row.Material]; ok {
			continue
		}
		seen[row.Material] = struct{}{}
		out = append(out, row.Material)
	}
	return out
}

// Translation returns the material's name in the given language.
func (t MaterialTable) Translation(material, language string) (string, bool) {
	for _, row := range t.Rows {
		if row.Material == material && row.Language == language && row.Translation != "" {
			return row.Translation, true
		}
	}
	return "", false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

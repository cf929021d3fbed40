package refdata

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"packlist/internal/config"
)

// PubHTMLProvider scrapes the first <table> of a sheet published as HTML.
// Useful when a sheet is only shared via its pubhtml link.
type PubHTMLProvider struct {
	web *CSVWebProvider
}

func NewPubHTMLProvider(cfg config.Config) *PubHTMLProvider {
	return &PubHTMLProvider{web: NewCSVWebProvider(cfg)}
}

func (p *PubHTMLProvider) FetchTable(ctx context.Context, table Table) ([][]string, error) {
	url, err := p.web.tableURL(table)
	if err != nil {
		return nil, err
	}
	body, err := p.web.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseHTMLGrid(body)
}

func parseHTMLGrid(body []byte) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	grid := [][]string{}
	doc.Find("table").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		// Published sheets prepend a row-number column.
		if cells[0] != "" && isRowNumber(cells[0]) && len(cells) > 1 {
			cells = cells[1:]
		}
		grid = append(grid, cells)
	})
	return grid, nil
}

func isRowNumber(cell string) bool {
	for _, r := range cell {
		if r < '0' || r > '9' {
			return false
		}
	}
	return cell != ""
}

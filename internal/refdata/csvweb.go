package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"packlist/internal/config"
)

// CSVWebProvider fetches the sheets published as CSV. Requests are rate
// limited and retried with jittered backoff on transient statuses.
type CSVWebProvider struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewCSVWebProvider(cfg config.Config) *CSVWebProvider {
	return &CSVWebProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.RefDataTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.RefDataRateRPS),
	}
}

func (p *CSVWebProvider) FetchTable(ctx context.Context, table Table) ([][]string, error) {
	url, err := p.tableURL(table)
	if err != nil {
		return nil, err
	}
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseCSVGrid(body)
}

func (p *CSVWebProvider) tableURL(table Table) (string, error) {
	var url string
	switch table {
	case TablePrices:
		url = p.cfg.PriceSheetURL
	case TableProducts:
		url = p.cfg.ProductSheetURL
	case TableMaterials:
		url = p.cfg.MaterialSheetURL
	default:
		return "", fmt.Errorf("unknown table: %s", table)
	}
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("no published-CSV url configured for table %s", table)
	}
	return url, nil
}

func (p *CSVWebProvider) fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		p.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("sheet status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("sheet fetch error: status=%d url=%s", resp.StatusCode, url)
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("sheet fetch failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func parseCSVGrid(body []byte) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(body), "\uFEFF")))
	r.FieldsPerRecord = -1
	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sheet csv: %w", err)
	}
	return grid, nil
}

package refdata

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"packlist/internal/config"
	"packlist/internal/storage"
)

// SyncService keeps the three reference tables cached in SQLite and refreshes
// them from the configured provider when the TTL lapses.
type SyncService struct {
	db       *storage.DB
	provider Provider
	cfg      config.Config
}

func NewSyncService(db *storage.DB, cfg config.Config) (*SyncService, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &SyncService{db: db, provider: provider, cfg: cfg}, nil
}

// Load returns a parsed snapshot of all three tables, hitting the provider
// only for tables whose cached copy has expired.
func (s *SyncService) Load(ctx context.Context) (Snapshot, error) {
	priceGrid, err := s.tableGrid(ctx, TablePrices, false)
	if err != nil {
		return Snapshot{}, err
	}
	productGrid, err := s.tableGrid(ctx, TableProducts, false)
	if err != nil {
		return Snapshot{}, err
	}
	materialGrid, err := s.tableGrid(ctx, TableMaterials, false)
	if err != nil {
		return Snapshot{}, err
	}

	prices, err := ParsePriceTable(priceGrid)
	if err != nil {
		return Snapshot{}, err
	}
	translations, err := ParseTranslationTable(productGrid)
	if err != nil {
		return Snapshot{}, err
	}
	materials, err := ParseMaterialTable(materialGrid)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Prices: prices, Translations: translations, Materials: materials}, nil
}

// ForceSync refetches every table regardless of cache age.
func (s *SyncService) ForceSync(ctx context.Context) error {
	for _, table := range []Table{TablePrices, TableProducts, TableMaterials} {
		if _, err := s.tableGrid(ctx, table, true); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncService) tableGrid(ctx context.Context, table Table, force bool) ([][]string, error) {
	syncedKey := "refdata.synced_at." + string(table)
	cacheKey := "refdata.table." + string(table)

	if !force {
		last, err := s.db.GetMetadata(syncedKey)
		if err != nil {
			return nil, err
		}
		if last != nil {
			if parsed, err := time.Parse(time.RFC3339, *last); err == nil {
				if time.Since(parsed) < time.Duration(s.cfg.RefDataTTLSec)*time.Second {
					blob, err := s.db.GetCachedTable(cacheKey)
					if err != nil {
						return nil, err
					}
					if blob != nil {
						return decodeGrid(blob)
					}
				}
			}
		}
	}

	grid, err := s.provider.FetchTable(ctx, table)
	if err != nil {
		// A stale cached copy beats failing the whole run.
		if !force {
			if blob, cacheErr := s.db.GetCachedTable(cacheKey); cacheErr == nil && blob != nil {
				return decodeGrid(blob)
			}
		}
		return nil, fmt.Errorf("refdata sync %s: %w", table, err)
	}

	blob, err := encodeGrid(grid)
	if err != nil {
		return nil, err
	}
	if err := s.db.SetCachedTable(cacheKey, blob); err != nil {
		return nil, err
	}
	if err := s.db.SetMetadata(syncedKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return grid, nil
}

func encodeGrid(grid [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(grid); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGrid(blob []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(blob))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

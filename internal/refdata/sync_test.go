package refdata

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"packlist/internal/config"
	"packlist/internal/storage"
)

type stubProvider struct {
	calls int
	fail  bool
}

func (p *stubProvider) FetchTable(_ context.Context, table Table) ([][]string, error) {
	p.calls++
	if p.fail {
		return nil, errors.New("provider down")
	}
	switch table {
	case TablePrices:
		return [][]string{{"PLN", "EUR"}, {"17,5", "4"}}, nil
	case TableProducts:
		return [][]string{{"DEPARTMENT", "PRODUCT_NAME", "EN"}, {"BABY", "T-SHIRT", "T-shirt"}}, nil
	case TableMaterials:
		return [][]string{{"Name", "AL"}, {"cotton", "pambuk"}}, nil
	}
	return nil, errors.New("unknown table")
}

func newSyncFixture(t *testing.T) (*SyncService, *stubProvider) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	stub := &stubProvider{}
	svc := &SyncService{db: db, provider: stub, cfg: config.Config{RefDataTTLSec: 600}}
	return svc, stub
}

func TestSyncServiceLoadCaches(t *testing.T) {
	svc, stub := newSyncFixture(t)

	snap, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if stub.calls != 3 {
		t.Fatalf("calls=%d", stub.calls)
	}
	if len(snap.Prices.Columns["PLN"]) != 1 {
		t.Fatalf("prices=%v", snap.Prices.Columns)
	}
	if _, ok := snap.Translations.Find("BABY", "T-SHIRT"); !ok {
		t.Fatalf("translation missing")
	}
	if _, ok := snap.Materials.Translation("cotton", "AL"); !ok {
		t.Fatalf("material missing")
	}

	// Second load within the TTL comes from the cache.
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if stub.calls != 3 {
		t.Fatalf("calls=%d", stub.calls)
	}
}

func TestSyncServiceForceSync(t *testing.T) {
	svc, stub := newSyncFixture(t)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if err := svc.ForceSync(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if stub.calls != 6 {
		t.Fatalf("calls=%d", stub.calls)
	}
}

func TestSyncServiceStaleCacheFallback(t *testing.T) {
	svc, stub := newSyncFixture(t)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}

	// Expire the TTL and kill the provider: the stale cache still serves.
	svc.cfg.RefDataTTLSec = 0
	stub.fail = true
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
}

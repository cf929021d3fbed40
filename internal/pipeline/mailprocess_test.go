package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"packlist/internal/config"
	"packlist/internal/storage"
)

func TestProcessMailSkipsUnrelatedMail(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "app.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	raw := buildMailWithPDF(t, "lunch on friday?", "see you there", "menu.txt", []byte("soup"))
	rawPath := filepath.Join(dir, "m1.eml")
	if err := os.WriteFile(rawPath, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	mail, err := db.UpsertMail("imap", "<m1@test>", "lunch on friday?", "someone@test", "2026-09-01T00:00:00Z", "h", rawPath, "fetched")
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	svc := NewProcessingService(db, config.Config{})
	res, err := svc.ProcessMail(mail)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Documents != 0 {
		t.Fatalf("documents=%d", res.Documents)
	}

	got, err := db.MustMailByProviderMessageID("imap", "<m1@test>")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got.Status != "skipped" {
		t.Fatalf("status=%q", got.Status)
	}
}

func TestProcessPendingMailsFiltersProvider(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "app.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	raw := buildMailWithPDF(t, "hello", "nothing here", "a.txt", []byte("x"))
	rawPath := filepath.Join(dir, "m2.eml")
	if err := os.WriteFile(rawPath, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := db.UpsertMail("gmail", "<m2@test>", "hello", "s@test", "2026-09-01T00:00:00Z", "h", rawPath, "fetched"); err != nil {
		t.Fatalf("err=%v", err)
	}

	svc := NewProcessingService(db, config.Config{})
	mails, docs, err := svc.ProcessPendingMails(10, "imap")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if mails != 0 || docs != 0 {
		t.Fatalf("mails=%d docs=%d", mails, docs)
	}
}

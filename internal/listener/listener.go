package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"packlist/internal/config"
	"packlist/internal/connectors"
	gmailconnector "packlist/internal/connectors/gmail"
	imapconnector "packlist/internal/connectors/imap"
	"packlist/internal/pipeline"
	"packlist/internal/storage"
)

// Service runs the mail loop: fetch supplier messages, pull packing lists out
// of them, and optionally drop a preview spreadsheet per parsed document.
type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("listener cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.MailListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.MailListenerProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetchService := connectors.NewFetchService(s.db, s.cfg.RawMailDir, mailConnector)
	fetchResult, err := fetchService.FetchAndStore(s.cfg.MailListenerLabel, s.cfg.MailListenerFetchMax)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessingService(s.db, s.cfg)
	processedMails, documents, err := processor.ProcessPendingMails(s.cfg.MailListenerBatch, provider)
	if err != nil {
		return err
	}

	if s.cfg.MailListenerAutoExport {
		if err := s.exportParsed(provider); err != nil {
			return err
		}
	}

	fmt.Printf("listener cycle done provider=%s fetched=%d stored=%d mails=%d documents=%d\n",
		provider, fetchResult.Fetched, fetchResult.Stored, processedMails, documents)
	_ = ctx
	return nil
}

// exportParsed writes a preview spreadsheet for every freshly parsed
// document. These previews carry only the fields read off the PDF itself;
// the full export still needs the operator's pass.
func (s *Service) exportParsed(provider string) error {
	docs, err := s.db.ListDocumentsByStatus("parsed", 200)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if doc.Provider != provider {
			continue
		}
		records, err := s.db.ListRecords(doc.ID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}
		filename := fmt.Sprintf("%d_%s.xlsx", doc.ID, sanitizeSourceID(doc.SourceID))
		outputPath := filepath.Join(s.cfg.OutputDir, "listener", filename)
		if err := pipeline.ExportXLSXFile(records, outputPath); err != nil {
			return err
		}
		_ = s.db.UpdateDocumentStatus(doc.ID, "exported")
	}
	return nil
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}

func sanitizeSourceID(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}

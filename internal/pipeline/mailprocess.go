package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"packlist/internal"
)

// MailResult summarizes one processed supplier mail.
type MailResult struct {
	MailID    int
	Documents int
	Records   int
}

// ProcessMail pulls the PDF attachments out of one fetched mail, registers
// each as a document and pre-parses its base records. Enrichment and export
// still need the operator's choices; mail processing only gets documents to
// the "parsed" state (or "needs_colour" when the colour sheet demands a
// manual value).
func (s *ProcessingService) ProcessMail(mail internal.MailRow) (MailResult, error) {
	start := time.Now()
	raw, err := os.ReadFile(mail.RawRef)
	if err != nil {
		return MailResult{}, err
	}

	pdfs, subject, text, names, err := ExtractPDFsFromMailRaw(raw)
	if err != nil {
		return MailResult{}, err
	}

	detect := DetectPackingList(firstNonEmpty(subject, mail.Subject), text, names)
	if !detect.IsPackingList {
		_ = s.db.UpdateMailStatus(mail.ID, "skipped")
		return MailResult{MailID: mail.ID}, nil
	}

	docCount, recordCount := 0, 0
	for _, att := range pdfs {
		hash := sha256.Sum256(att.Content)
		hashHex := hex.EncodeToString(hash[:])

		docDir := filepath.Join(filepath.Dir(mail.RawRef), "docs")
		if err := os.MkdirAll(docDir, 0o755); err != nil {
			return MailResult{}, err
		}
		docPath := filepath.Join(docDir, hashHex+".pdf")
		if _, err := os.Stat(docPath); os.IsNotExist(err) {
			if err := os.WriteFile(docPath, att.Content, 0o644); err != nil {
				return MailResult{}, err
			}
		}

		sourceID := fmt.Sprintf("%s/%s", mail.MessageID, att.Filename)
		status := "parsed"
		records, parseErr := ParseRecords(att.Content, "", time.Time{})
		switch {
		case errors.Is(parseErr, ErrColourManual):
			status = "needs_colour"
		case parseErr != nil:
			status = "failed"
		}

		doc, err := s.db.UpsertDocument(mail.Provider, sourceID, att.Filename, hashHex, docPath, status)
		if err != nil {
			return MailResult{}, err
		}
		if len(records) > 0 {
			if err := s.db.ReplaceRecords(doc.ID, records); err != nil {
				return MailResult{}, err
			}
			recordCount += len(records)
		}
		docCount++
	}

	if err := s.db.UpdateMailStatus(mail.ID, "processed"); err != nil {
		return MailResult{}, err
	}
	_ = s.db.InsertRun(traceID(), 0,
		map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
		map[string]int{"documents": docCount, "records": recordCount})

	return MailResult{MailID: mail.ID, Documents: docCount, Records: recordCount}, nil
}

// ProcessPendingMails walks fetched mails for one provider, oldest first.
func (s *ProcessingService) ProcessPendingMails(limit int, provider string) (int, int, error) {
	pending, err := s.db.ListMailsByStatus("fetched", limit)
	if err != nil {
		return 0, 0, err
	}
	mails, docs := 0, 0
	for _, mail := range pending {
		if provider != "" && mail.Provider != provider {
			continue
		}
		res, err := s.ProcessMail(mail)
		if err != nil {
			return mails, docs, err
		}
		mails++
		docs += res.Documents
	}
	return mails, docs, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package pipeline

import (
	"encoding/base64"
	"strings"
	"testing"
)

func buildMailWithPDF(t *testing.T, subject, body, attachmentName string, attachment []byte) []byte {
	t.Helper()
	encoded := base64.StdEncoding.EncodeToString(attachment)
	raw := strings.Join([]string{
		"From: supplier@test",
		"To: intake@test",
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="BOUNDARY"`,
		"",
		"--BOUNDARY",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
		"--BOUNDARY",
		"Content-Type: application/pdf",
		"Content-Transfer-Encoding: base64",
		`Content-Disposition: attachment; filename="` + attachmentName + `"`,
		"",
		encoded,
		"--BOUNDARY--",
		"",
	}, "\r\n")
	return []byte(raw)
}

func TestExtractPDFsFromMailRaw(t *testing.T) {
	content := []byte("%PDF-1.4 fake")
	raw := buildMailWithPDF(t, "PEPCO packing list", "handover attached", "list.pdf", content)

	pdfs, subject, text, names, err := ExtractPDFsFromMailRaw(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if subject != "PEPCO packing list" {
		t.Fatalf("subject=%q", subject)
	}
	if !strings.Contains(text, "handover attached") {
		t.Fatalf("text=%q", text)
	}
	if len(names) != 1 || names[0] != "list.pdf" {
		t.Fatalf("names=%v", names)
	}
	if len(pdfs) != 1 || pdfs[0].Filename != "list.pdf" || string(pdfs[0].Content) != string(content) {
		t.Fatalf("pdfs=%v", pdfs)
	}
}

func TestExtractPDFsFromMailRawSkipsNonPDF(t *testing.T) {
	raw := buildMailWithPDF(t, "invoice", "see attached", "notes.txt", []byte("plain"))
	pdfs, _, _, names, err := ExtractPDFsFromMailRaw(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(pdfs) != 0 {
		t.Fatalf("pdfs=%v", pdfs)
	}
	if len(names) != 1 || names[0] != "notes.txt" {
		t.Fatalf("names=%v", names)
	}
}

package pipeline

import (
	"bytes"
	"strings"

	"github.com/jhillyerd/enmime"
)

// PDFAttachment is one packing-list candidate pulled out of a supplier mail.
type PDFAttachment struct {
	Filename string
	Content  []byte
}

// ExtractPDFsFromMailRaw parses a raw MIME message and returns its PDF
// attachments plus the subject, body text and all attachment names (the
// latter feed detection).
func ExtractPDFsFromMailRaw(raw []byte) ([]PDFAttachment, string, string, []string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, "", "", nil, err
	}

	pdfs := make([]PDFAttachment, 0, len(env.Attachments))
	names := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		names = append(names, filename)
		if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			pdfs = append(pdfs, PDFAttachment{Filename: filename, Content: att.Content})
		}
	}

	return pdfs, env.GetHeader("Subject"), env.Text, names, nil
}

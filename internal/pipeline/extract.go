package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	pdf "github.com/ledongthuc/pdf"
)

var (
	// ErrUnreadablePDF means the byte stream cannot be parsed as a PDF at
	// all. Fatal to the whole pass.
	ErrUnreadablePDF = errors.New("unreadable pdf")

	// ErrInsufficientPages means the document has fewer than the three pages
	// record construction needs. Fatal to record construction only.
	ErrInsufficientPages = errors.New("document has fewer than 3 pages")
)

// MinPages is the page count a packing list needs for full extraction:
// order header, colour sheet, SKU/barcode sheet.
const MinPages = 3

// ExtractPages reads a whole PDF into per-page plain text. The reader is
// rewound to the start before reading and restored to its original position
// afterwards, so several stages can consume the same upload. Pages whose
// content cannot be decoded come back as empty strings; the page count is
// always the document's real page count.
func ExtractPages(r io.ReadSeeker) ([]string, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	blob, readErr := io.ReadAll(r)
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}
	return ExtractPagesFromBytes(blob)
}

func ExtractPagesFromBytes(blob []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

package pipeline

import (
	"bytes"
	"errors"
	"testing"
)

func TestExtractPagesFromBytesUnreadable(t *testing.T) {
	_, err := ExtractPagesFromBytes([]byte("this is not a pdf at all"))
	if !errors.Is(err, ErrUnreadablePDF) {
		t.Fatalf("err=%v", err)
	}
}

func TestExtractPagesRestoresPosition(t *testing.T) {
	r := bytes.NewReader([]byte("garbage bytes"))
	if _, err := r.Seek(3, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}
	_, _ = ExtractPages(r)
	pos, err := r.Seek(0, 1)
	if err != nil {
		t.Fatalf("seek: %v", err)
	}
	if pos != 3 {
		t.Fatalf("pos=%d", pos)
	}
}

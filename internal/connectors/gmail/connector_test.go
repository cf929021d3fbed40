package gmail

import (
	"testing"

	"google.golang.org/api/gmail/v1"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		from    string
		subject string
		want    string
	}{
		{"", "", "has:attachment filename:pdf"},
		{"orders@supplier.example", "", "has:attachment filename:pdf from:orders@supplier.example"},
		{"", "packing list", `has:attachment filename:pdf subject:"packing list"`},
		{"  orders@supplier.example  ", "PO", "has:attachment filename:pdf from:orders@supplier.example subject:PO"},
	}
	for _, tt := range tests {
		if got := buildSearchQuery(tt.from, tt.subject); got != tt.want {
			t.Fatalf("buildSearchQuery(%q, %q) = %q, want %q", tt.from, tt.subject, got, tt.want)
		}
	}
}

func TestHeaderMap(t *testing.T) {
	msg := &gmail.Message{Payload: &gmail.MessagePart{Headers: []*gmail.MessagePartHeader{
		{Name: "Subject", Value: "PO 4512789634"},
		{Name: "Message-ID", Value: "<abc@mail>"},
	}}}
	headers := headerMap(msg)
	if headers["subject"] != "PO 4512789634" || headers["message-id"] != "<abc@mail>" {
		t.Fatalf("headers=%v", headers)
	}
	if got := headerMap(nil); len(got) != 0 {
		t.Fatalf("nil message should yield empty map, got %v", got)
	}
}

func TestParseMailDate(t *testing.T) {
	parsed, err := parseMailDate("Mon, 02 Jan 2006 15:04:05 -0700")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if parsed.Year() != 2006 {
		t.Fatalf("year=%d", parsed.Year())
	}
	if _, err := parseMailDate("not a date"); err == nil {
		t.Fatalf("expected error")
	}
}

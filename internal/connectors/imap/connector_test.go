package imap

import (
	"testing"

	"github.com/emersion/go-imap"
)

func TestSearchCriteria(t *testing.T) {
	criteria := searchCriteria("orders@supplier.example", "packing list")
	if len(criteria.WithoutFlags) != 1 || criteria.WithoutFlags[0] != imap.SeenFlag {
		t.Fatalf("WithoutFlags=%v", criteria.WithoutFlags)
	}
	if got := criteria.Header.Get("From"); got != "orders@supplier.example" {
		t.Fatalf("From=%q", got)
	}
	if got := criteria.Header.Get("Subject"); got != "packing list" {
		t.Fatalf("Subject=%q", got)
	}
}

func TestSearchCriteriaNoFilters(t *testing.T) {
	criteria := searchCriteria("", "  ")
	if len(criteria.Header) != 0 {
		t.Fatalf("Header=%v", criteria.Header)
	}
	if len(criteria.WithoutFlags) != 1 || criteria.WithoutFlags[0] != imap.SeenFlag {
		t.Fatalf("WithoutFlags=%v", criteria.WithoutFlags)
	}
}

func TestFormatAddresses(t *testing.T) {
	addrs := []*imap.Address{
		{PersonalName: "Textile Partner", MailboxName: "orders", HostName: "supplier.example"},
		{MailboxName: "noreply", HostName: "supplier.example"},
	}
	got := formatAddresses(addrs)
	want := "Textile Partner <orders@supplier.example>, noreply@supplier.example"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if formatAddresses(nil) != "" {
		t.Fatalf("empty list should format empty")
	}
}

package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"packlist/internal"
)

// Full pass over a real three-page document: header fields, colour sheet,
// SKU/barcode pairing with an exclusion, then enrichment.
func TestParseAndEnrichPackingList(t *testing.T) {
	blob, err := os.ReadFile(filepath.Join("testdata", "packing_list.pdf"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	today := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	records, err := ParseRecords(blob, "", today)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	// Three SKUs but one barcode excluded by its annotation, so pairing
	// truncates to two records.
	if len(records) != 2 {
		t.Fatalf("records=%d", len(records))
	}

	r := records[0]
	if r.OrderID != "4512789634" {
		t.Fatalf("orderId=%q", r.OrderID)
	}
	if r.Style != "574123" {
		t.Fatalf("style=%q", r.Style)
	}
	if r.Colour != "NAVY BLUE" {
		t.Fatalf("colour=%q", r.Colour)
	}
	if r.Collection != "CROCO CLUB" {
		t.Fatalf("collection=%q", r.Collection)
	}
	if r.ItemClassification != "Baby Boys Outerwear" {
		t.Fatalf("itemClass=%q", r.ItemClassification)
	}
	if r.SupplierProductCode != "SUP-889-X" {
		t.Fatalf("supplierCode=%q", r.SupplierProductCode)
	}
	if r.SupplierName != "Textile Partner Ltd." {
		t.Fatalf("supplierName=%q", r.SupplierName)
	}
	if r.TodayDate != "01-09-2026" {
		t.Fatalf("todayDate=%q", r.TodayDate)
	}
	if r.ColourSKU != "NAVY BLUE • SKU 11112222" {
		t.Fatalf("colourSku=%q", r.ColourSKU)
	}
	if r.StyleMerchSeason != "STYLE 574123 • T1/2226 • Batch No./" {
		t.Fatalf("styleMerchSeason=%q", r.StyleMerchSeason)
	}
	if r.Batch != "Data e prodhimit: 052026" {
		t.Fatalf("batch=%q", r.Batch)
	}
	if r.SKU != "11112222" || r.Barcode != "5901234567890" {
		t.Fatalf("pair=%q/%q", r.SKU, r.Barcode)
	}
	if records[1].SKU != "33334444" || records[1].Barcode != "5909876543210" {
		t.Fatalf("pair=%q/%q", records[1].SKU, records[1].Barcode)
	}

	opts := Options{
		Department:  "BABY",
		ProductName: "T-SHIRT",
		Materials:   []internal.MaterialInput{{Name: "cotton", Composition: "100"}},
		WashingKey:  "3",
		PLNPrice:    "17,5",
	}
	if err := Enrich(records, nil, testSnapshot(), opts); err != nil {
		t.Fatalf("err=%v", err)
	}

	r = records[0]
	if r.Collection != "MODERN 1" {
		t.Fatalf("collection=%q", r.Collection)
	}
	if r.Dept != "BABY" {
		t.Fatalf("dept=%q", r.Dept)
	}
	if r.Cotton != "Y" {
		t.Fatalf("cotton=%q", r.Cotton)
	}
	if r.WashingCode != "djnst" {
		t.Fatalf("washing=%q", r.WashingCode)
	}
	if r.PLN != "17,50" || r.EUR != "4,00" {
		t.Fatalf("prices pln=%q eur=%q", r.PLN, r.EUR)
	}

	if err := EnsureEnriched(records); err != nil {
		t.Fatalf("err=%v", err)
	}
}

package pipeline

import (
	"testing"
	"time"

	"packlist/internal"
	"packlist/internal/util"
)

func TestBuildRecords(t *testing.T) {
	handover := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	fields := internal.ExtractedFields{
		OrderID:             util.StringPtr("4512789634"),
		MerchCode:           util.StringPtr("T1/22"),
		SeasonDigits:        util.StringPtr("26"),
		StyleCode:           util.StringPtr("574123"),
		CollectionRaw:       util.StringPtr("CROCO CLUB"),
		HandoverDate:        &handover,
		ItemClassification:  util.StringPtr("Baby Boys Outerwear"),
		SupplierProductCode: util.StringPtr("SUP-889-X"),
		SupplierName:        util.StringPtr("Textile Partner Ltd."),
	}
	items := internal.PageItems{
		SKUs:     []string{"11112222", "33334444", "55556666"},
		Barcodes: []string{"5901234567890", "5909876543210"},
	}
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	records := BuildRecords(fields, "NAVY BLUE", items, today)
	if len(records) != 2 {
		t.Fatalf("len=%d", len(records))
	}

	r := records[0]
	if r.OrderID != "4512789634" {
		t.Fatalf("orderId=%q", r.OrderID)
	}
	if r.TodayDate != "01-09-2026" {
		t.Fatalf("today=%q", r.TodayDate)
	}
	if r.ColourSKU != "NAVY BLUE • SKU 11112222" {
		t.Fatalf("colourSku=%q", r.ColourSKU)
	}
	if r.StyleMerchSeason != "STYLE 574123 • T1/2226 • Batch No./" {
		t.Fatalf("styleMerchSeason=%q", r.StyleMerchSeason)
	}
	// Handover minus 20 days is 2026-05-26 -> batch 052026.
	if r.Batch != "Data e prodhimit: 052026" {
		t.Fatalf("batch=%q", r.Batch)
	}
	if records[1].Barcode != "5909876543210" || records[1].SKU != "33334444" {
		t.Fatalf("record2=%+v", records[1])
	}
}

func TestBuildRecordsDegradesToUnknown(t *testing.T) {
	items := internal.PageItems{SKUs: []string{"11112222"}, Barcodes: []string{"5901234567890"}}
	records := BuildRecords(internal.ExtractedFields{}, "UNKNOWN", items, time.Now())
	if len(records) != 1 {
		t.Fatalf("len=%d", len(records))
	}
	r := records[0]
	if r.OrderID != "UNKNOWN" || r.Style != "UNKNOWN" || r.Collection != "UNKNOWN" {
		t.Fatalf("record=%+v", r)
	}
	if r.StyleMerchSeason != "STYLE UNKNOWN" {
		t.Fatalf("styleMerchSeason=%q", r.StyleMerchSeason)
	}
	if r.Batch != "Data e prodhimit: UNKNOWN" {
		t.Fatalf("batch=%q", r.Batch)
	}
}

func TestBuildRecordsMerchCodeWithoutSeason(t *testing.T) {
	fields := internal.ExtractedFields{
		StyleCode: util.StringPtr("574123"),
		MerchCode: util.StringPtr("T1/22"),
	}
	items := internal.PageItems{SKUs: []string{"11112222"}, Barcodes: []string{"5901234567890"}}
	records := BuildRecords(fields, "RED", items, time.Now())
	if records[0].StyleMerchSeason != "STYLE 574123 • T1/22 • Batch No./" {
		t.Fatalf("styleMerchSeason=%q", records[0].StyleMerchSeason)
	}
}

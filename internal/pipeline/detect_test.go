package pipeline

import "testing"

func TestDetectPackingList(t *testing.T) {
	res := DetectPackingList("PEPCO packing list week 23", "handover attached", []string{"list.pdf"})
	if !res.IsPackingList {
		t.Fatalf("score=%f", res.Score)
	}
	if res.Reason != "rules_positive" {
		t.Fatalf("reason=%q", res.Reason)
	}
}

func TestDetectPackingListNegative(t *testing.T) {
	res := DetectPackingList("lunch on friday?", "see you there", nil)
	if res.IsPackingList {
		t.Fatalf("score=%f", res.Score)
	}
	if res.Reason != "rules_negative" {
		t.Fatalf("reason=%q", res.Reason)
	}
}

func TestDetectPackingListAttachmentAlone(t *testing.T) {
	// A lone PDF attachment is not enough without any keyword hits.
	res := DetectPackingList("hello", "regards", []string{"scan.pdf"})
	if res.IsPackingList {
		t.Fatalf("score=%f", res.Score)
	}
}

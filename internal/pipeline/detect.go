package pipeline

import "strings"

type DetectResult struct {
	IsPackingList bool
	Score         float64
	Reason        string
}

var detectKeywords = []string{"packing list", "packing-list", "pepco", "order", "handover", "shipment", "barcode"}

// DetectPackingList scores a fetched mail on whether it carries a supplier
// packing list worth parsing. Purely rule-based: subject/body keywords plus
// the presence of a PDF attachment.
func DetectPackingList(subject, text string, attachmentNames []string) DetectResult {
	subject = strings.ToLower(subject)
	text = strings.ToLower(text)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(subject, kw) {
			score += 0.2
		}
		if strings.Contains(text, kw) {
			score += 0.1
		}
	}

	for _, name := range attachmentNames {
		if strings.HasSuffix(strings.ToLower(name), ".pdf") {
			score += 0.4
			break
		}
	}

	if score > 1 {
		score = 1
	}

	isPackingList := score >= 0.45
	reason := "rules_negative"
	if isPackingList {
		reason = "rules_positive"
	}

	return DetectResult{IsPackingList: isPackingList, Score: score, Reason: reason}
}

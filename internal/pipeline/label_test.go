package pipeline

import (
	"strings"
	"testing"

	"packlist/internal"
	"packlist/internal/refdata"
)

func testMaterialTable() refdata.MaterialTable {
	return refdata.MaterialTable{Rows: []refdata.MaterialRow{
		{Material: "cotton", Language: "AL", Translation: "pambuk"},
		{Material: "cotton", Language: "BG", Translation: "памук"},
		{Material: "cotton", Language: "MK", Translation: "памук"},
		{Material: "cotton", Language: "RS", Translation: "pamuk"},
	}}
}

func TestAssembleLabel(t *testing.T) {
	row := refdata.TranslationRow{
		Department:  "BABY",
		ProductName: "T-SHIRT",
		Texts: map[string]string{
			"EN":    "T-shirt",
			"AL":    "Bluzë",
			"ES":    "Camiseta",
			"ES_CA": "Samarreta",
			"RS":    "Majica",
		},
	}
	materials := []internal.MaterialInput{{Name: "cotton", Composition: "100"}}

	label := AssembleLabel("T-SHIRT", row, materials, testMaterialTable())

	segments := strings.Split(label, "|")
	// "|EN| x |AL| y ..." splits into a leading empty chunk plus
	// lang/text pairs: 21 segments -> 43 chunks.
	if len(segments) != 43 {
		t.Fatalf("chunks=%d label=%q", len(segments), label)
	}
	if !strings.HasPrefix(label, "|EN| T-shirt ") {
		t.Fatalf("label=%q", label)
	}
	if !strings.Contains(label, "|AL| Bluzë: 100% pambuk") {
		t.Fatalf("label=%q", label)
	}
	if !strings.Contains(label, "|ES| Camiseta / Samarreta") {
		t.Fatalf("label=%q", label)
	}
	// Missing translation falls back to the raw product name.
	if !strings.Contains(label, "|CZ| T-SHIRT") {
		t.Fatalf("label=%q", label)
	}
	// Sewn-in label suffixes end with the fixed sentences.
	if !strings.Contains(label, "|RS| Majica: 100% pamuk. Sastav materijala nalazi se na ušivenoj etiketi.") {
		t.Fatalf("label=%q", label)
	}
	if !strings.Contains(label, "|BiH| T-SHIRT. Sastav materijala na ušivenoj etiketi.") {
		t.Fatalf("label=%q", label)
	}
}

func TestAssembleLabelPlainNamesWithoutComposition(t *testing.T) {
	row := refdata.TranslationRow{Texts: map[string]string{"AL": "Bluzë"}}
	materials := []internal.MaterialInput{{Name: "cotton"}}
	label := AssembleLabel("T-SHIRT", row, materials, testMaterialTable())
	if !strings.Contains(label, "|AL| Bluzë: pambuk") {
		t.Fatalf("label=%q", label)
	}
}

func TestCompositionTexts(t *testing.T) {
	materials := []internal.MaterialInput{
		{Name: "cotton", Composition: "90%"},
		{Name: "elastane", Composition: "10"},
	}
	table := testMaterialTable()
	table.Rows = append(table.Rows, refdata.MaterialRow{Material: "elastane", Language: "AL", Translation: "elastan"})

	texts := CompositionTexts(materials, table)
	if texts["AL"] != "90% pambuk, 10% elastan" {
		t.Fatalf("al=%q", texts["AL"])
	}
	// BG has no elastane translation; only cotton appears.
	if texts["BG"] != "90% памук" {
		t.Fatalf("bg=%q", texts["BG"])
	}
}

func TestValidateCompositions(t *testing.T) {
	ok := []internal.MaterialInput{{Name: "cotton", Composition: "90"}, {Name: "elastane", Composition: "10"}}
	if err := ValidateCompositions(ok); err != nil {
		t.Fatalf("err=%v", err)
	}
	over := []internal.MaterialInput{{Name: "cotton", Composition: "90"}, {Name: "elastane", Composition: "20"}}
	if err := ValidateCompositions(over); err == nil {
		t.Fatalf("expected error")
	}
	freeText := []internal.MaterialInput{{Name: "cotton", Composition: "mostly"}}
	if err := ValidateCompositions(freeText); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestCottonFlag(t *testing.T) {
	if got := CottonFlag([]internal.MaterialInput{{Name: "Cotton"}}); got != "Y" {
		t.Fatalf("got %q", got)
	}
	if got := CottonFlag([]internal.MaterialInput{{Name: "cotton"}, {Name: "elastane"}}); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := CottonFlag(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

package util

import "testing"

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "dot", input: "12.50", want: 12.5},
		{name: "comma", input: "12,50", want: 12.5},
		{name: "integer", input: "19", want: 19},
		{name: "padded", input: " 9,99 ", want: 9.99},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDecimal(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}

	if _, err := ParseDecimal("abc"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestLeadingNumber(t *testing.T) {
	if v, ok := LeadingNumber("90 cotton 10 elastane"); !ok || v != 90 {
		t.Fatalf("got %v %v", v, ok)
	}
	if v, ok := LeadingNumber("100"); !ok || v != 100 {
		t.Fatalf("got %v %v", v, ok)
	}
	if _, ok := LeadingNumber("cotton"); ok {
		t.Fatal("expected no number")
	}
}

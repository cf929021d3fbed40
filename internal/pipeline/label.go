package pipeline

import (
	"fmt"
	"strings"

	"packlist/internal"
	"packlist/internal/refdata"
	"packlist/internal/util"
)

// labelLanguages is the fixed segment order after the leading EN segment.
var labelLanguages = []string{
	"AL", "BG", "BiH", "CZ", "DE", "EE", "ES",
	"GR", "HR", "HU", "IT", "LT", "LV", "MK",
	"PL", "PT", "RO", "RS", "SI", "SK",
}

// countrySuffixes are fixed sentences appended for the sewn-in label
// countries, after making sure the text ends with a period.
var countrySuffixes = map[string]string{
	"BiH": " Sastav materijala na ušivenoj etiketi.",
	"RS":  " Sastav materijala nalazi se na ušivenoj etiketi.",
}

// AssembleLabel builds the pipe-delimited multilingual product-name string:
// an |EN| segment followed by the twenty label languages in fixed order,
// joined with single spaces. Languages without a translation fall back to
// the raw product name. For the material languages the composition text (or
// the plain translated material names) is appended after a colon.
func AssembleLabel(productName string, row refdata.TranslationRow, materials []internal.MaterialInput, matTable refdata.MaterialTable) string {
	names := materialNamesByLanguage(materials, matTable)
	compositions := CompositionTexts(materials, matTable)

	segments := make([]string, 0, len(labelLanguages)+1)
	enText := row.Texts["EN"]
	if enText == "" {
		enText = productName
	}
	segments = append(segments, "|EN| "+enText)

	for _, lang := range labelLanguages {
		text := ""
		switch {
		case lang == "ES":
			text = row.Texts["ES"]
			if ca := row.Texts["ES_CA"]; ca != "" {
				text = fmt.Sprintf("%s / %s", row.Texts["ES"], ca)
			}
		default:
			text = row.Texts[lang]
		}
		if text == "" {
			text = productName
		}

		if len(materials) > 0 && isMaterialLanguage(lang) {
			if comp := compositions[lang]; comp != "" {
				text = text + ": " + comp
			} else if plain := names[lang]; plain != "" {
				text = text + ": " + plain
			}
		}

		if suffix, ok := countrySuffixes[lang]; ok {
			if !strings.HasSuffix(text, ".") {
				text += "."
			}
			text += suffix
		}

		segments = append(segments, fmt.Sprintf("|%s| %s", lang, text))
	}

	return strings.Join(segments, " ")
}

// CompositionTexts builds, per material language, the composition string
// "{percentage} {translated name}" for every material that has a
// composition, joined with ", ". Percentage comes first; a "%" is appended
// when the operator left it off.
func CompositionTexts(materials []internal.MaterialInput, matTable refdata.MaterialTable) map[string]string {
	out := map[string]string{}
	for _, lang := range refdata.MaterialLanguages {
		parts := []string{}
		for _, mat := range materials {
			composition := strings.TrimSpace(mat.Composition)
			if composition == "" {
				continue
			}
			if !strings.Contains(composition, "%") {
				composition += "%"
			}
			name, ok := matTable.Translation(mat.Name, lang)
			if !ok {
				continue
			}
			parts = append(parts, composition+" "+name)
		}
		if len(parts) > 0 {
			out[lang] = strings.Join(parts, ", ")
		}
	}
	return out
}

// ValidateCompositions rejects material sets whose numeric compositions sum
// above 100 percent. Free-text compositions without a leading number are
// left to the operator.
func ValidateCompositions(materials []internal.MaterialInput) error {
	total := 0.0
	counted := 0
	for _, mat := range materials {
		if strings.TrimSpace(mat.Composition) == "" {
			continue
		}
		if v, ok := util.LeadingNumber(mat.Composition); ok {
			total += v
			counted++
		}
	}
	if counted > 0 && total > 100 {
		return fmt.Errorf("material composition sums to %.0f%%, must be at most 100%%", total)
	}
	return nil
}

// CottonFlag is "Y" when exactly one material is selected and it is cotton.
func CottonFlag(materials []internal.MaterialInput) string {
	if len(materials) != 1 {
		return ""
	}
	if strings.EqualFold(strings.TrimSpace(materials[0].Name), "cotton") {
		return "Y"
	}
	return ""
}

func materialNamesByLanguage(materials []internal.MaterialInput, matTable refdata.MaterialTable) map[string]string {
	out := map[string]string{}
	for _, lang := range refdata.MaterialLanguages {
		names := []string{}
		for _, mat := range materials {
			if name, ok := matTable.Translation(mat.Name, lang); ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			out[lang] = strings.Join(names, ", ")
		}
	}
	return out
}

func isMaterialLanguage(lang string) bool {
	for _, l := range refdata.MaterialLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

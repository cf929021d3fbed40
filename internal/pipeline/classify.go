package pipeline

import (
	"strings"

	"packlist/internal"
)

// Classification rules are ordered and first-match-wins: a string matching
// several substrings takes the earliest rule. Keep them as slices, not maps.
var categoryRules = []struct {
	substr   string
	category internal.CategoryCode
}{
	{"younger girls outerwear", internal.CategoryYoungerGirls},
	{"baby boys outerwear", internal.CategoryBabyBoys},
	{"baby girls outerwear", internal.CategoryBabyGirls},
	{"baby boys essentials", internal.CategoryEssentials},
	{"baby girls essentials", internal.CategoryEssentialsG},
	{"younger boys outerwear", internal.CategoryYoungerGirls},
	{"older girls outerwear", internal.CategoryYoungerGirls},
	{"older boys outerwear", internal.CategoryYoungerGirls},
	{"ladies outerwear", internal.CategoryBabyGirls},
	{"mens outerwear", internal.CategoryBabyBoys},
}

var departmentGroups = []struct {
	substrs []string
	dept    string
}{
	{[]string{"baby boys outerwear", "baby girls outerwear", "baby boys essentials", "baby girls essentials"}, "BABY"},
	{[]string{"younger boys outerwear", "younger girls outerwear"}, "KIDS"},
	{[]string{"older girls outerwear", "older boys outerwear"}, "TEENS"},
	{[]string{"ladies outerwear"}, "WOMEN"},
	{[]string{"mens outerwear"}, "MEN"},
}

// collectionRecode maps, per category, original collection names to their
// replacement. Scanned in declared order; the first original whose
// upper-cased form is contained in the upper-cased collection wins.
var collectionRecode = map[internal.CategoryCode][]struct {
	original string
	replaced string
}{
	internal.CategoryBabyBoys: {
		{"CROCO CLUB", "MODERN 1"},
		{"LITTLE SAILOR", "MODERN 2"},
		{"EXPLORE THE WORLD", "MODERN 3"},
		{"JURASIC ADVENTURE", "MODERN 4"},
		{"WESTERN SPIRIT", "CLASSIC 1"},
		{"SUMMER FUN", "CLASSIC 2"},
	},
	internal.CategoryBabyGirls: {
		{"Rainbow Girl", "MODERN 1"},
		{"NEONS PICNIC", "MODERN 2"},
		{"COUNTRY SIDE", "ROMANTIC 2"},
		{"ESTER GARDENG", "ROMANTIC 3"},
	},
	internal.CategoryEssentials: {
		{"LITTLE TREASURE", "MODERN 1"},
		{"DINO FRIENDS", "CLASSIC 1"},
		{"EXOTIC ANIMALS", "CLASSIC 2"},
	},
	internal.CategoryEssentialsG: {
		{"SWEEET PASTELS", "MODERN 1"},
		{"PORCELAIN", "ROMANTIC 2"},
		{"SUMMER VIBE", "ROMANTIC 3"},
	},
	internal.CategoryYoungerGirls: {
		{"CUTE_JUMP", "COLLECTION_1"},
		{"SWEET_HEART", "COLLECTION_2"},
		{"DAISY", "COLLECTION_3"},
		{"SPECIAL OCC", "COLLECTION_4"},
		{"LILALOV", "COLLECTION_5"},
		{"COOL GIRL", "COLLECTION_6"},
		{"DEL MAR", "COLLECTION_7"},
	},
}

// WashingCodes maps the operator-selected key to the glyph string written to
// every record.
var WashingCodes = map[string]string{
	"1":  "১২৩৪৫",
	"2":  "১৪৭৮৫",
	"3":  "djnst",
	"4":  "djnpt",
	"5":  "djnqt",
	"6":  "djnqt",
	"7":  "gjnpt",
	"8":  "gjnpu",
	"9":  "gjnqt",
	"10": "gjnqu",
	"11": "ijnst",
	"12": "ijnsu",
	"13": "ijnpu",
	"14": "ijnsv",
	"15": "djnsw",
}

// Classify maps an item-classification string to its category code, or ""
// when no rule matches.
func Classify(itemClass string) internal.CategoryCode {
	if itemClass == "" {
		return ""
	}
	lower := strings.ToLower(itemClass)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.substr) {
			return rule.category
		}
	}
	return ""
}

// Department maps an item-classification string to its store department, or
// "" when no group matches.
func Department(itemClass string) string {
	if itemClass == "" {
		return ""
	}
	lower := strings.ToLower(itemClass)
	for _, group := range departmentGroups {
		for _, s := range group.substrs {
			if strings.Contains(lower, s) {
				return group.dept
			}
		}
	}
	return ""
}

// RecodeCollection rewrites the raw collection name through the category's
// recode table. No category or no matching original leaves it unchanged.
func RecodeCollection(collection string, category internal.CategoryCode) string {
	pairs, ok := collectionRecode[category]
	if !ok {
		return collection
	}
	upper := strings.ToUpper(collection)
	for _, pair := range pairs {
		if strings.Contains(upper, strings.ToUpper(pair.original)) {
			return pair.replaced
		}
	}
	return collection
}

// CollectionSuffix appends the boys/girls marker for the kids and teens
// classifications. Applied after RecodeCollection.
func CollectionSuffix(collection, itemClass string) string {
	if itemClass == "" {
		return collection
	}
	lower := strings.ToLower(itemClass)
	if strings.Contains(lower, "younger boys outerwear") || strings.Contains(lower, "older boys outerwear") {
		return collection + " B"
	}
	if strings.Contains(lower, "older girls outerwear") || strings.Contains(lower, "younger girls outerwear") {
		return collection + " G"
	}
	return collection
}

package service

import "strings"

// keywordTable maps each work category to the substrings that suggest it.
// Matching is case-insensitive substring search, which is knowingly crude:
// "repaint the unpainted wall" still matches painting, and there is no
// negation handling ("no plumbing needed" matches plumbing). Callers that
// know the categories should pass them explicitly instead.
var keywordTable = []struct {
	category string
	keywords []string
}{
	{"painting", []string{"paint", "wall color", "wallpaper", "ceiling", "primer", "decorat"}},
	{"plumbing", []string{"plumb", "pipe", "leak", "faucet", "tap", "drain", "radiator", "boiler", "water heater"}},
	{"electrical", []string{"electric", "wiring", "outlet", "socket", "light fixture", "fuse", "breaker", "switch"}},
	{"flooring", []string{"floor", "laminate", "parquet", "carpet", "underlay", "skirting"}},
	{"tiling", []string{"tile", "grout", "mosaic", "backsplash"}},
	{"carpentry", []string{"carpent", "wood", "cabinet", "shelv", "door frame", "window frame", "built-in"}},
	{"demolition", []string{"demoli", "remove wall", "tear down", "knock down", "strip out", "gut "}},
	{"insulation", []string{"insulat", "draft", "draught", "soundproof", "thermal"}},
	{"kitchen", []string{"kitchen", "countertop", "worktop", "sink unit", "stove", "hob"}},
	{"bathroom", []string{"bathroom", "shower", "bathtub", "bath tub", "toilet", "vanity", "wet room"}},
}

// DetectWorkTypes classifies a free-text description into work categories.
//
// A non-empty explicit list always wins over inference and is returned
// as-is, deduplicated with order preserved. Otherwise the description is
// scanned against the keyword table; a category is included when any of
// its keywords occurs as a substring. An empty result is valid and never
// an error.
func DetectWorkTypes(description string, explicit []string) []string {
	if len(explicit) > 0 {
		return dedupe(explicit)
	}

	lowered := strings.ToLower(description)
	var detected []string
	for _, entry := range keywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				detected = append(detected, entry.category)
				break
			}
		}
	}
	return detected
}

// dedupe removes duplicates keeping first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

package textnorm

import (
	"regexp"
	"strings"
)

// locationMappings expands common abbreviations and aliases to the canonical
// place name. Applied as case-insensitive substring replacement.
var locationMappings = []struct{ abbrev, full string }{
	{"QC", "Quezon City"},
	{"Makati CBD", "Makati"},
	{"BGC", "Taguig"},
	{"Ortigas", "Pasig"},
	{"Mandaluyong City", "Mandaluyong"},
	{"Pasay City", "Pasay"},
	{"Manila City", "Manila"},
}

var locationSuffixRe = regexp.MustCompile(`(?i)\s+(City|Municipality|Town)$`)

// NormalizeLocation trims, title-cases, expands known abbreviations, and
// strips trailing City/Municipality/Town tokens.
func NormalizeLocation(location string) string {
	location = titleCase(strings.TrimSpace(location))

	for _, m := range locationMappings {
		if idx := indexFold(location, m.abbrev); idx >= 0 {
			location = location[:idx] + m.full + location[idx+len(m.abbrev):]
		}
	}

	location = locationSuffixRe.ReplaceAllString(location, "")
	return strings.TrimSpace(location)
}

// indexFold returns the index of the first case-insensitive occurrence of
// substr in s, or -1.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

// cityPatterns are tried in order against a full address; the first capture
// wins.
var cityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Za-z\s]+)\s+City`),
	regexp.MustCompile(`([A-Za-z\s]+),\s*Metro Manila`),
	regexp.MustCompile(`([A-Za-z\s]+),\s*Philippines`),
	regexp.MustCompile(`([A-Za-z\s]+),\s*\d{4}`), // city followed by zip
}

// addressFillers are tokens skipped by the fallback last-significant-word
// scan in ExtractCity.
var addressFillers = map[string]bool{
	"philippines": true, "manila": true, "metro": true,
	"st": true, "street": true, "ave": true, "avenue": true,
}

// ExtractCity pulls a city name out of a full address. When no pattern
// matches it falls back to the last address token that is not a known
// filler word.
func ExtractCity(address string) string {
	if address == "" {
		return ""
	}

	for _, pattern := range cityPatterns {
		if m := pattern.FindStringSubmatch(address); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	words := strings.Fields(address)
	for i := len(words) - 1; i >= 0; i-- {
		if !addressFillers[strings.ToLower(words[i])] {
			return words[i]
		}
	}
	return ""
}

// titleCase uppercases the first letter of each space-separated word,
// lowercasing the rest, the way the historical records were keyed in.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

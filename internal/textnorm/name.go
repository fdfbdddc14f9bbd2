// Package textnorm provides deterministic normalization and extraction over
// the raw free-text fields found in historical member records: names, batch
// codes, locations, phone numbers, and professional keywords.
package textnorm

import "strings"

// namePrefixes and nameSuffixes are honorifics stripped token-wise during
// name normalization. The cleaned form is used only for matching, never for
// display.
var namePrefixes = map[string]bool{
	"dr": true, "dr.": true,
	"atty": true, "atty.": true,
	"eng": true, "eng.": true,
	"prof": true, "prof.": true,
}

var nameSuffixes = map[string]bool{
	"jr": true, "jr.": true,
	"sr": true, "sr.": true,
	"ii": true, "iii": true, "iv": true,
	"md": true, "pe": true, "esq": true,
}

// NormalizeName collapses whitespace, lowercases, and strips honorific
// prefixes and suffixes token-wise, preserving the remaining tokens in
// their original order.
func NormalizeName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		if namePrefixes[w] || nameSuffixes[w] {
			continue
		}
		cleaned = append(cleaned, w)
	}
	return strings.Join(cleaned, " ")
}

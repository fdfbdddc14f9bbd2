package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// professionalTerms is the fixed vocabulary scanned by
// ExtractProfessionalKeywords, grouped roughly by sector.
var professionalTerms = []string{
	// Legal
	"lawyer", "attorney", "counsel", "legal", "law", "litigation",
	"corporate law", "family law", "criminal law", "real estate law",

	// Medical
	"doctor", "physician", "surgeon", "medical", "clinic", "hospital",
	"cardiologist", "pediatrician", "neurologist", "dentist",

	// Business
	"manager", "executive", "consultant", "analyst", "director",
	"ceo", "cfo", "coo", "president", "vice president",

	// Engineering
	"engineer", "engineering", "architect", "construction",
	"civil engineer", "electrical engineer", "mechanical engineer",

	// IT
	"programmer", "developer", "software", "systems", "network",
	"database", "web developer", "system administrator",

	// Education
	"teacher", "professor", "educator", "principal", "dean",
	"instructor", "lecturer", "researcher",

	// Others
	"accountant", "banker", "broker", "agent", "specialist",
}

// ExtractProfessionalKeywords returns every vocabulary term found in the
// text, in vocabulary order.
func ExtractProfessionalKeywords(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var found []string
	for _, term := range professionalTerms {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

var specialCharsRe = regexp.MustCompile(`[^\w\s@.-]`)

// CleanText collapses whitespace, drops special characters outside basic
// punctuation, and applies NFKD unicode normalization so legacy encodings
// compare consistently.
func CleanText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = specialCharsRe.ReplaceAllString(text, " ")
	text = norm.NFKD.String(text)
	return strings.TrimSpace(text)
}

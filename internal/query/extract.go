package query

import (
	"regexp"
	"strings"

	"github.com/sj-alumni/directory-cli/internal/infer"
	"github.com/sj-alumni/directory-cli/internal/textnorm"
)

// professionSynonyms widen profession extraction beyond the category
// vocabulary, keyed by the category they resolve to.
var professionSynonyms = []struct {
	category string
	terms    []string
}{
	{"Legal", []string{"lawyer", "attorney", "legal advice", "legal help", "counsel"}},
	{"Medical", []string{"doctor", "physician", "medical help", "healthcare", "health"}},
	{"Engineering", []string{"engineer", "engineering services", "technical"}},
	{"Business", []string{"business consultant", "financial advisor", "accountant"}},
	{"IT/Technology", []string{"programmer", "developer", "it support", "tech help"}},
}

// professionSearchTerms map a category back to the substring most likely
// to appear in stored profession text.
var professionSearchTerms = map[string]string{
	"Legal":         "lawyer",
	"Medical":       "doctor",
	"Engineering":   "engineer",
	"Business":      "manager",
	"IT/Technology": "programmer",
	"Education":     "teacher",
	"Government":    "government",
}

// extractProfession finds a profession category mentioned in the query.
func extractProfession(lower string) string {
	if cat := infer.MatchProfessionKeyword(lower); cat != "" {
		return cat
	}
	for _, syn := range professionSynonyms {
		for _, term := range syn.terms {
			if strings.Contains(lower, term) {
				return syn.category
			}
		}
	}
	return ""
}

// professionSearchTerm converts a category to its searchable substring.
func professionSearchTerm(category string) string {
	if term, ok := professionSearchTerms[category]; ok {
		return term
	}
	return strings.ToLower(category)
}

// extractProfessionQuery finds the literal profession word a query used,
// plus the category it resolves to. The literal word filters better than
// the category's canonical term ("accountant" stays "accountant" instead of
// widening to "manager").
func extractProfessionQuery(lower string) (string, string) {
	for _, syn := range professionSynonyms {
		for _, term := range syn.terms {
			if strings.Contains(lower, term) {
				return term, syn.category
			}
		}
	}
	if cat := infer.MatchProfessionKeyword(lower); cat != "" {
		return professionSearchTerm(cat), cat
	}
	return "", ""
}

// knownLocations are the places a query can name, including province-level
// ones that never appear as extracted cities but do appear in addresses.
var knownLocations = []string{
	"makati", "manila", "quezon city", "qc", "pasig", "taguig", "bgc",
	"mandaluyong", "pasay", "paranaque", "las pinas", "muntinlupa",
	"marikina", "ortigas", "alabang", "eastwood", "rockwell",
	"cebu", "davao", "iloilo", "bacolod", "cagayan de oro",
	"bulacan", "cavite", "laguna", "rizal", "batangas",
}

var locationCuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`in\s+([a-z\s]+?)(?:\s|$)`),
	regexp.MustCompile(`at\s+([a-z\s]+?)(?:\s|$)`),
	regexp.MustCompile(`near\s+([a-z\s]+?)(?:\s|$)`),
	regexp.MustCompile(`from\s+([a-z\s]+?)(?:\s|$)`),
	regexp.MustCompile(`based in\s+([a-z\s]+?)(?:\s|$)`),
}

// extractLocation finds a known location mentioned in the query, preferring
// ones introduced by a location cue word.
func extractLocation(lower string) string {
	for _, p := range locationCuePatterns {
		for _, m := range p.FindAllStringSubmatch(lower, -1) {
			candidate := strings.TrimSpace(m[1])
			for _, loc := range knownLocations {
				if strings.Contains(candidate, loc) || textnorm.Ratio(loc, candidate) > 0.8 {
					return titleCase(loc)
				}
			}
		}
	}
	for _, loc := range knownLocations {
		if strings.Contains(lower, loc) {
			return titleCase(loc)
		}
	}
	return ""
}

// specializationCues map spoken phrasings ("heart doctor") to the
// specialization vocabulary, per profession.
var specializationCues = map[string][]struct {
	specialization string
	cues           []string
}{
	"Legal": {
		{"family law", []string{"family", "divorce", "custody", "marriage"}},
		{"corporate law", []string{"corporate", "business law", "company"}},
		{"criminal law", []string{"criminal", "defense"}},
		{"real estate law", []string{"real estate", "property"}},
		{"labor law", []string{"labor", "employment"}},
	},
	"Medical": {
		{"cardiology", []string{"heart", "cardiac", "cardio"}},
		{"pediatrics", []string{"children", "kids", "pediatric"}},
		{"neurology", []string{"brain", "neurological", "neuro"}},
		{"dermatology", []string{"skin", "dermat"}},
		{"psychiatry", []string{"mental health", "psychiatric", "therapy"}},
	},
	"Engineering": {
		{"civil engineering", []string{"civil", "construction", "building"}},
		{"electrical engineering", []string{"electrical", "power", "electronics"}},
		{"mechanical engineering", []string{"mechanical", "machinery"}},
		{"software engineering", []string{"software", "programming"}},
	},
}

func extractSpecialization(lower, profession string) string {
	for _, entry := range specializationCues[profession] {
		for _, cue := range entry.cues {
			if strings.Contains(lower, cue) {
				return entry.specialization
			}
		}
	}
	return ""
}

var batchQueryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)batch\s+(\d{2,4}[-\s]*[A-Z]*\d*)`),
	regexp.MustCompile(`(?i)(\d{2,4}[-\s]*[A-Z]{1,2}\d*)\b`),
	regexp.MustCompile(`(?i)(\d{4})\s+batch`),
}

func extractBatch(query string) string {
	for _, p := range batchQueryPatterns {
		if m := p.FindStringSubmatch(query); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var knownChapters = []string{
	"up diliman", "upd", "diliman",
	"up los banos", "uplb", "los banos",
	"up cebu", "upc",
	"up iloilo", "upi",
	"ust", "santo tomas",
	"feu", "far eastern",
	"ue", "university of the east",
	"lyceum",
}

// extractChapter matches chapter names on word boundaries; short entries
// like "ue" would otherwise fire inside unrelated words ("quezon").
func extractChapter(lower string) string {
	padded := " " + lower + " "
	for _, chapter := range knownChapters {
		if strings.Contains(padded, " "+chapter+" ") {
			return titleCase(chapter)
		}
	}
	return ""
}

var quotedNameRe = regexp.MustCompile(`["'](.*?)["']`)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:named?|called)\s+([a-zA-Z\s]+)`),
	regexp.MustCompile(`find\s+((?:[A-Z][a-z]+\s*)+)`),
	regexp.MustCompile(`looking for\s+((?:[A-Z][a-z]+\s*)+)`),
	regexp.MustCompile(`contact\s+((?:[A-Z][a-z]+\s*)+)`),
}

// extractName pulls a person name out of the query: quoted strings first,
// then cue phrases. Works on the original casing since capitalization is
// the name signal.
func extractName(query string) string {
	if m := quotedNameRe.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(query); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

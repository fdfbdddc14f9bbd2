// Package query turns one free-text question into one classified intent,
// a structured member filter, and a ranked, explained result set.
package query

import (
	"regexp"
	"strings"
)

// IntentType classifies what a query is asking for.
type IntentType string

const (
	IntentLocation     IntentType = "location_based"
	IntentBatch        IntentType = "batch_based"
	IntentProfessional IntentType = "professional_service"
	IntentInterest     IntentType = "interest_based"
	IntentDemographic  IntentType = "demographic"
	IntentGeneral      IntentType = "general_directory"
)

// Intent is the parsed form of a query. Capture fields are set only for
// the intent types that extract them.
type Intent struct {
	Type     IntentType `json:"type"`
	Original string     `json:"original_query"`

	Location string `json:"location,omitempty"`
	Batch    string `json:"batch,omitempty"`
	Interest string `json:"interest,omitempty"`
	// Specialization is advisory, derived from cue words in professional
	// queries ("heart doctor" -> cardiology).
	Specialization string `json:"specialization,omitempty"`
	Urgent         bool   `json:"urgent,omitempty"`
}

// The pattern families below are tried in a fixed priority order:
// location, batch, professional, interest, demographic, then the general
// fallback. "lawyer from Makati" must classify as location, not
// professional, so the order is load-bearing.

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`who (?:lives?|resides?|is) (?:in|at|from|near) (.+)`),
	regexp.MustCompile(`(?:show|find|list|get) (?:me |all )?(?:people|members|everyone) (?:in|at|from|near) (.+)`),
	regexp.MustCompile(`(?:anyone|somebody|someone) (?:in|at|from|near) (.+)`),
	regexp.MustCompile(`members? (?:in|at|from|near) (.+)`),
	regexp.MustCompile(`from (\S+)`),
}

var batchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`batch (\w+[-\s]?\w*)`),
	regexp.MustCompile(`from (?:batch |the batch )?(\w+[-\s]?\w*)`),
	regexp.MustCompile(`(?:show|find|list) (?:me )?(?:batch|the batch) (\w+[-\s]?\w*)`),
}

var professionIndicators = []string{
	"lawyer", "doctor", "engineer", "need", "looking for", "find me a",
}

var interestPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:who|anyone) (?:likes?|enjoys?|plays?) (.+)`),
	regexp.MustCompile(`(?:find|show) (?:me )?(?:people|members) (?:who )?(?:like|enjoy|play) (.+)`),
	regexp.MustCompile(`(?:interested in|into) (.+)`),
	regexp.MustCompile(`hobbies? (?:include|are) (.+)`),
	regexp.MustCompile(`sports? (.+)`),
}

var demographicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`how many (?:people|members)`),
	regexp.MustCompile(`(?:count|total) (?:of )?(?:people|members)`),
	regexp.MustCompile(`list (?:all|everyone)`),
	regexp.MustCompile(`(?:show|get) (?:me )?(?:all|everyone|everybody)`),
}

var urgencyIndicators = []string{"urgent", "asap", "emergency", "immediately", "need now"}

// DetectIntent classifies a query. It never fails: anything unrecognized
// becomes a general directory search.
func DetectIntent(query string) Intent {
	lower := strings.ToLower(strings.TrimSpace(query))
	intent := Intent{Type: IntentGeneral, Original: query}

	for _, p := range locationPatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		capture := trimCapture(m[1])
		// A bare "from 95-S" names a batch, not a place; leave those for
		// the batch patterns.
		if looksLikeBatchToken(capture) {
			break
		}
		intent.Type = IntentLocation
		intent.Location = capture
		return intent
	}

	for _, p := range batchPatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			intent.Type = IntentBatch
			intent.Batch = trimCapture(m[1])
			return intent
		}
	}

	for _, ind := range professionIndicators {
		if strings.Contains(lower, ind) {
			intent.Type = IntentProfessional
			intent.Urgent = detectUrgency(lower)
			return intent
		}
	}

	for _, p := range interestPatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			intent.Type = IntentInterest
			intent.Interest = trimCapture(m[1])
			return intent
		}
	}

	for _, p := range demographicPatterns {
		if p.MatchString(lower) {
			intent.Type = IntentDemographic
			return intent
		}
	}

	return intent
}

func trimCapture(s string) string {
	return strings.Trim(strings.TrimSpace(s), "?.!,")
}

var batchTokenRe = regexp.MustCompile(`^(?:batch\b|the batch\b|\d)`)

func looksLikeBatchToken(s string) bool {
	return batchTokenRe.MatchString(s)
}

func detectUrgency(lower string) bool {
	for _, ind := range urgencyIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

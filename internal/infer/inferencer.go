// Package infer derives profession, specialization, and work location from
// the free-text fields of a member record. It is keyword driven: every
// signal source (job title, company name, email domain, office address)
// contributes a weighted score per profession category, and only aggregate
// scores above the acceptance threshold produce an inference.
package infer

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sj-alumni/directory-cli/internal/model"
)

// SourceWeights order the reliability of each text source. The relative
// ordering (job title > company > email > address) is the load-bearing
// invariant; the magnitudes are tunable.
type SourceWeights struct {
	JobTitle      float64 `mapstructure:"job_title"`
	CompanyName   float64 `mapstructure:"company_name"`
	EmailDomain   float64 `mapstructure:"email_domain"`
	OfficeAddress float64 `mapstructure:"office_address"`
}

// Config holds every numeric knob of the inference engine.
type Config struct {
	Enabled bool          `mapstructure:"enabled"`
	Weights SourceWeights `mapstructure:"weights"`

	// KeywordBoost multiplies the source weight when a high-confidence
	// keyword (doctor, lawyer, engineer, ...) matches.
	KeywordBoost float64 `mapstructure:"keyword_boost"`

	// AcceptThreshold is the minimum aggregate confidence. Below it no
	// profession is inferred at all.
	AcceptThreshold float64 `mapstructure:"accept_threshold"`

	SpecializationConfidence float64 `mapstructure:"specialization_confidence"`
	WorkLocationConfidence   float64 `mapstructure:"work_location_confidence"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Weights: SourceWeights{
			JobTitle:      1.0,
			CompanyName:   0.8,
			EmailDomain:   0.6,
			OfficeAddress: 0.4,
		},
		KeywordBoost:             1.5,
		AcceptThreshold:          0.5,
		SpecializationConfidence: 0.7,
		WorkLocationConfidence:   0.8,
	}
}

// Inference is the output of a single analysis pass. Zero-valued fields mean
// "no inference", never "low-confidence guess".
type Inference struct {
	Profession               string
	ProfessionConfidence     float64
	Specialization           string
	SpecializationConfidence float64
	WorkLocation             string
	WorkLocationConfidence   float64
}

// Empty reports whether the pass produced no inference at all.
func (in Inference) Empty() bool {
	return in.Profession == "" && in.Specialization == "" && in.WorkLocation == ""
}

type Inferencer struct {
	cfg Config
}

func New(cfg Config) *Inferencer {
	return &Inferencer{cfg: cfg}
}

type textSource struct {
	kind string
	text string
}

// Infer analyzes every available text source on the record and returns the
// derived profession, specialization, and work location.
func (inf *Inferencer) Infer(m *model.MemberRecord) Inference {
	if !inf.cfg.Enabled {
		return Inference{}
	}

	var sources []textSource
	if hint := analyzeEmailDomain(m.PrimaryEmail); hint != "" {
		sources = append(sources, textSource{"email_domain", hint})
	}
	if m.CurrentCompany != "" {
		sources = append(sources, textSource{"company_name", m.CurrentCompany})
	}
	if title := firstNonEmpty(m.JobTitle, m.CurrentProfession); title != "" {
		sources = append(sources, textSource{"job_title", title})
	}
	if m.OfficeAddressFull != "" {
		sources = append(sources, textSource{"office_address", m.OfficeAddressFull})
	}
	if len(sources) == 0 {
		return Inference{}
	}

	scores := map[string][]scoredSource{}
	var specHints, locHints []string
	for _, src := range sources {
		lower := strings.ToLower(src.text)
		for _, cat := range professionCategories {
			if s := inf.scoreCategory(lower, cat.keywords, src.kind); s > 0 {
				scores[cat.name] = append(scores[cat.name], scoredSource{s, src.kind})
			}
		}
		specHints = appendNew(specHints, extractSpecializations(lower))
		locHints = appendNew(locHints, extractLocationHints(lower))
	}

	var out Inference
	profession, confidence := inf.bestProfession(scores)
	if profession != "" && confidence >= inf.cfg.AcceptThreshold {
		out.Profession = profession
		out.ProfessionConfidence = confidence
	} else if profession != "" {
		zap.L().Debug("profession inference below threshold",
			zap.String("candidate", profession),
			zap.Float64("confidence", confidence))
	}

	if spec := determineSpecialization(specHints, out.Profession); spec != "" {
		out.Specialization = spec
		out.SpecializationConfidence = inf.cfg.SpecializationConfidence
	}
	if loc := determineWorkLocation(locHints, m.OfficeAddressFull); loc != "" {
		out.WorkLocation = loc
		out.WorkLocationConfidence = inf.cfg.WorkLocationConfidence
	}
	return out
}

type scoredSource struct {
	score float64
	kind  string
}

// scoreCategory sums the weighted keyword hits in text and normalizes by the
// maximum possible score for the source, so a source saturated with a
// category's vocabulary approaches 1.0.
func (inf *Inferencer) scoreCategory(lower string, keywords []string, kind string) float64 {
	base := inf.sourceWeight(kind)
	var score float64
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			w := base
			if highConfidenceKeywords[kw] {
				w *= inf.cfg.KeywordBoost
			}
			score += w
		}
	}
	if score == 0 {
		return 0
	}
	max := float64(len(keywords)) * base
	if score > max {
		return 1.0
	}
	return score / max
}

func (inf *Inferencer) sourceWeight(kind string) float64 {
	switch kind {
	case "job_title":
		return inf.cfg.Weights.JobTitle
	case "company_name":
		return inf.cfg.Weights.CompanyName
	case "email_domain":
		return inf.cfg.Weights.EmailDomain
	case "office_address":
		return inf.cfg.Weights.OfficeAddress
	}
	return 0.5
}

// bestProfession takes the weighted average of each category's per-source
// scores and picks the highest. Ties break on category table order.
func (inf *Inferencer) bestProfession(scores map[string][]scoredSource) (string, float64) {
	best, bestScore := "", 0.0
	for _, cat := range professionCategories {
		sources := scores[cat.name]
		if len(sources) == 0 {
			continue
		}
		var weighted, total float64
		for _, s := range sources {
			w := inf.sourceWeight(s.kind)
			weighted += s.score * w
			total += w
		}
		if total == 0 {
			continue
		}
		if avg := weighted / total; avg > bestScore {
			best, bestScore = cat.name, avg
		}
	}
	return best, bestScore
}

// analyzeEmailDomain turns an email domain into a short text hint that the
// keyword scorer can consume: a known employer name or an institution
// descriptor. Generic mail providers yield nothing.
func analyzeEmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	domain := strings.ToLower(email[at+1:])
	if genericMailDomains[domain] {
		return ""
	}
	if company, ok := companyDomains[domain]; ok {
		return company
	}
	parts := strings.Split(domain, ".")
	for _, p := range parts {
		if p == "edu" {
			return "educational institution"
		}
		if p == "gov" {
			return "government agency"
		}
	}
	for _, ind := range []string{"hospital", "medical", "clinic", "health"} {
		if strings.Contains(domain, ind) {
			return "medical institution"
		}
	}
	for _, ind := range []string{"law", "legal", "attorney"} {
		if strings.Contains(domain, ind) {
			return "law firm"
		}
	}
	for _, ind := range []string{"corp", "inc", "company", "consulting", "group"} {
		if strings.Contains(domain, ind) {
			return "business corporation"
		}
	}
	return ""
}

func extractSpecializations(lower string) []string {
	var found []string
	for _, spec := range allSpecializations() {
		if strings.Contains(lower, spec) {
			found = append(found, spec)
		}
	}
	return found
}

func extractLocationHints(lower string) []string {
	var found []string
	for _, city := range cityGazetteer {
		if strings.Contains(lower, city) {
			found = append(found, titleCase(city))
		}
	}
	return found
}

// determineSpecialization prefers the longest specialization belonging to
// the inferred profession's family, then falls back to the first hint seen.
func determineSpecialization(hints []string, profession string) string {
	if len(hints) == 0 {
		return ""
	}
	family := specializationFamilies[profession]
	var relevant []string
	for _, hint := range hints {
		lower := strings.ToLower(hint)
		for _, kw := range family {
			if strings.Contains(lower, kw) {
				relevant = append(relevant, hint)
				break
			}
		}
	}
	if len(relevant) > 0 {
		sort.SliceStable(relevant, func(i, j int) bool {
			return len(relevant[i]) > len(relevant[j])
		})
		return relevant[0]
	}
	return hints[0]
}

// determineWorkLocation prefers a hint that actually appears in the office
// address, then falls back to the first hint seen.
func determineWorkLocation(hints []string, officeAddress string) string {
	if len(hints) == 0 {
		return ""
	}
	lower := strings.ToLower(officeAddress)
	for _, hint := range hints {
		if strings.Contains(lower, strings.ToLower(hint)) {
			return hint
		}
	}
	return hints[0]
}

func appendNew(dst []string, add []string) []string {
	for _, s := range add {
		seen := false
		for _, existing := range dst {
			if existing == s {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, s)
		}
	}
	return dst
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
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

package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sj-alumni/directory-cli/internal/model"
	"github.com/sj-alumni/directory-cli/internal/textnorm"
)

// MemberStore is the search surface the engine needs.
type MemberStore interface {
	SearchMembers(ctx context.Context, filter model.SearchFilter) ([]model.MemberRecord, error)
}

const (
	// searchLimit bounds how many rows a query pulls from the store.
	searchLimit = 100
	// directoryLimit bounds how many results a directory-style answer carries.
	directoryLimit = 50
	// professionalLimit bounds service-referral answers, which are read
	// top to bottom.
	professionalLimit = 20
)

// Result is one ranked member with the reasons it matched.
type Result struct {
	Member       model.MemberRecord `json:"member"`
	Relevance    float64            `json:"relevance"`
	MatchReasons []string           `json:"match_reasons,omitempty"`
}

// BreakdownEntry is one bucket of a demographic summary.
type BreakdownEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DemographicSummary aggregates the matched set.
type DemographicSummary struct {
	Total       int              `json:"total"`
	Locations   []BreakdownEntry `json:"locations,omitempty"`
	Professions []BreakdownEntry `json:"professions,omitempty"`
	Batches     []BreakdownEntry `json:"batches,omitempty"`
}

// Response is the full answer to one query.
type Response struct {
	Query   string              `json:"query"`
	Intent  Intent              `json:"intent"`
	Results []Result            `json:"results"`
	Summary *DemographicSummary `json:"summary,omitempty"`
}

// Engine answers free-text directory queries.
type Engine struct {
	store MemberStore
	now   func() time.Time
}

func NewEngine(store MemberStore) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Options adjust one search. The zero value is the default behavior.
type Options struct {
	// IncludeInactive lifts the active-members-only filter. Duplicates
	// stay hidden regardless.
	IncludeInactive bool `json:"include_inactive"`
}

// Search classifies the query, runs the matching store search, and returns
// ranked, explained results.
func (e *Engine) Search(ctx context.Context, query string) (*Response, error) {
	return e.SearchWithOptions(ctx, query, Options{})
}

// SearchWithOptions is Search with explicit options.
func (e *Engine) SearchWithOptions(ctx context.Context, query string, opts Options) (*Response, error) {
	intent := DetectIntent(query)
	lower := strings.ToLower(strings.TrimSpace(query))

	zap.L().Info("query received",
		zap.String("query", query),
		zap.String("intent", string(intent.Type)))

	var (
		resp *Response
		err  error
	)
	switch intent.Type {
	case IntentLocation:
		resp, err = e.searchLocation(ctx, intent, lower, opts)
	case IntentBatch:
		resp, err = e.searchBatch(ctx, intent, lower, opts)
	case IntentProfessional:
		resp, err = e.searchProfessional(ctx, intent, lower, opts)
	case IntentInterest:
		resp, err = e.searchInterest(ctx, intent, opts)
	case IntentDemographic:
		resp, err = e.searchDemographic(ctx, intent, opts)
	default:
		resp, err = e.searchGeneral(ctx, intent, lower, opts)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Debug("query answered",
		zap.String("intent", string(resp.Intent.Type)),
		zap.Int("results", len(resp.Results)))
	return resp, nil
}

func (e *Engine) searchLocation(ctx context.Context, intent Intent, lower string, opts Options) (*Response, error) {
	location := extractLocation(lower)
	if location == "" {
		location = titleCase(intent.Location)
	}
	c := criteria{location: location}
	if cat := extractProfession(lower); cat != "" {
		c.professionCategory = cat
		c.professionTerm = professionSearchTerm(cat)
	}

	members, err := e.store.SearchMembers(ctx, model.SearchFilter{
		Location:        location,
		IncludeInactive: opts.IncludeInactive,
		Limit:           searchLimit,
	})
	if err != nil {
		return nil, eris.Wrap(err, "query: location search")
	}
	return e.respond(intent, members, c, directoryLimit, false), nil
}

func (e *Engine) searchBatch(ctx context.Context, intent Intent, lower string, opts Options) (*Response, error) {
	raw := intent.Batch
	if b := extractBatch(lower); b != "" {
		raw = b
	}
	filter := model.SearchFilter{Batch: raw, IncludeInactive: opts.IncludeInactive, Limit: searchLimit}
	if info := textnorm.NormalizeBatch(raw); info.Matched() {
		filter.Batch = info.Normalized
	}

	members, err := e.store.SearchMembers(ctx, filter)
	if err != nil {
		return nil, eris.Wrap(err, "query: batch search")
	}
	return e.respond(intent, members, criteria{}, directoryLimit, false), nil
}

func (e *Engine) searchProfessional(ctx context.Context, intent Intent, lower string, opts Options) (*Response, error) {
	c := criteria{location: extractLocation(lower)}
	if cat := extractProfession(lower); cat != "" {
		c.professionCategory = cat
		c.professionTerm = professionSearchTerm(cat)
		intent.Specialization = extractSpecialization(lower, cat)
	}

	members, err := e.store.SearchMembers(ctx, model.SearchFilter{
		Profession:      c.professionTerm,
		IncludeInactive: opts.IncludeInactive,
		Limit:           searchLimit,
	})
	if err != nil {
		return nil, eris.Wrap(err, "query: professional search")
	}

	// Location is a ranking signal here, not a filter: an out-of-town
	// specialist still beats no answer.
	return e.respond(intent, members, c, professionalLimit, false), nil
}

func (e *Engine) searchInterest(ctx context.Context, intent Intent, opts Options) (*Response, error) {
	c := criteria{interest: intent.Interest}
	members, err := e.store.SearchMembers(ctx, model.SearchFilter{
		Interests:       intent.Interest,
		IncludeInactive: opts.IncludeInactive,
		Limit:           searchLimit,
	})
	if err != nil {
		return nil, eris.Wrap(err, "query: interest search")
	}
	return e.respond(intent, members, c, directoryLimit, false), nil
}

func (e *Engine) searchDemographic(ctx context.Context, intent Intent, opts Options) (*Response, error) {
	members, err := e.store.SearchMembers(ctx, model.SearchFilter{IncludeInactive: opts.IncludeInactive, Limit: searchLimit})
	if err != nil {
		return nil, eris.Wrap(err, "query: demographic search")
	}
	return e.respond(intent, members, criteria{}, directoryLimit, true), nil
}

// searchGeneral is the fallback: it pulls whatever structured fragments the
// query carries (name, profession, location, chapter) and only degrades to a
// whole-query name search when nothing was extractable.
func (e *Engine) searchGeneral(ctx context.Context, intent Intent, lower string, opts Options) (*Response, error) {
	filter := model.SearchFilter{IncludeInactive: opts.IncludeInactive, Limit: searchLimit}
	var c criteria

	filter.Name = extractName(intent.Original)
	if term, cat := extractProfessionQuery(lower); term != "" {
		c.professionTerm = term
		c.professionCategory = cat
		filter.Profession = term
	}
	if loc := extractLocation(lower); loc != "" {
		c.location = loc
		filter.Location = loc
	}
	if chapter := extractChapter(lower); chapter != "" {
		filter.Chapter = chapter
	}
	if filter.Name == "" && filter.Profession == "" && filter.Location == "" && filter.Chapter == "" {
		filter.Name = strings.TrimSpace(lower)
	}

	members, err := e.store.SearchMembers(ctx, filter)
	if err != nil {
		return nil, eris.Wrap(err, "query: general search")
	}
	return e.respond(intent, members, c, directoryLimit, false), nil
}

// respond ranks, truncates, explains, and optionally summarizes.
func (e *Engine) respond(intent Intent, members []model.MemberRecord, c criteria, limit int, summarize bool) *Response {
	results := make([]Result, 0, len(members))
	for _, m := range members {
		results = append(results, Result{Member: m})
	}
	results = rankResults(results, c, e.now())

	var summary *DemographicSummary
	if summarize {
		summary = summarizeMembers(members)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].MatchReasons = matchReasons(&results[i].Member, c)
	}

	return &Response{
		Query:   intent.Original,
		Intent:  intent,
		Results: results,
		Summary: summary,
	}
}

// matchReasons explains a result using only signals the ranker actually
// credited, capped at three.
func matchReasons(m *model.MemberRecord, c criteria) []string {
	var reasons []string

	if c.professionTerm != "" {
		term := strings.ToLower(c.professionTerm)
		stated := strings.ToLower(m.CurrentProfession + " " + m.CurrentProfessionNormalized + " " + m.JobTitle)
		if strings.Contains(stated, term) {
			reasons = append(reasons, fmt.Sprintf("profession matches %q", c.professionTerm))
		} else if c.professionCategory != "" && m.InferredProfession == c.professionCategory {
			reasons = append(reasons, fmt.Sprintf("inferred profession %s (%.0f%% confidence)",
				m.InferredProfession, m.InferredProfessionConfidence*100))
		}
	}

	if c.location != "" {
		loc := strings.ToLower(c.location)
		work := strings.ToLower(m.OfficeAddressCityNormalized + " " + m.OfficeAddressFull + " " + m.InferredWorkLocation)
		home := strings.ToLower(m.HomeAddressCityNormalized + " " + m.HomeAddressFull)
		if strings.Contains(work, loc) {
			reasons = append(reasons, fmt.Sprintf("works in %s", c.location))
		} else if strings.Contains(home, loc) {
			reasons = append(reasons, fmt.Sprintf("lives in %s", c.location))
		}
	}

	if c.interest != "" {
		interests := strings.ToLower(m.InterestsHobbies + " " + m.SportsActivities)
		if strings.Contains(interests, strings.ToLower(c.interest)) ||
			textnorm.PartialRatio(strings.ToLower(c.interest), interests) > 0.7 {
			reasons = append(reasons, fmt.Sprintf("shares interest in %s", c.interest))
		}
	}

	if len(reasons) < 3 && m.BatchNormalized != "" {
		reasons = append(reasons, fmt.Sprintf("batch %s", m.BatchNormalized))
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

// summarizeMembers builds the top-5 breakdowns attached to demographic
// answers.
func summarizeMembers(members []model.MemberRecord) *DemographicSummary {
	locations := map[string]int{}
	professions := map[string]int{}
	batches := map[string]int{}
	for _, m := range members {
		if m.HomeAddressCityNormalized != "" {
			locations[m.HomeAddressCityNormalized]++
		}
		switch {
		case m.CurrentProfessionNormalized != "":
			professions[m.CurrentProfessionNormalized]++
		case m.InferredProfession != "":
			professions[m.InferredProfession]++
		}
		if m.BatchNormalized != "" {
			batches[m.BatchNormalized]++
		}
	}
	return &DemographicSummary{
		Total:       len(members),
		Locations:   topEntries(locations, 5),
		Professions: topEntries(professions, 5),
		Batches:     topEntries(batches, 5),
	}
}

// topEntries returns the n largest buckets, count descending, key ascending
// on ties.
func topEntries(counts map[string]int, n int) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, BreakdownEntry{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

package query

import (
	"sort"
	"strings"
	"time"

	"github.com/sj-alumni/directory-cli/internal/model"
	"github.com/sj-alumni/directory-cli/internal/textnorm"
)

// criteria is what the ranker scores against, extracted once per query.
// professionTerm is the searchable substring ("lawyer"), professionCategory
// the inference category it belongs to ("Legal").
type criteria struct {
	professionTerm     string
	professionCategory string
	location           string
	interest           string
}

// relevance scores one member against the query criteria. Base is the
// record's own confidence; profession and location matches dominate the
// rest, freshness and reachability nudge ties.
func relevance(m *model.MemberRecord, c criteria, now time.Time) float64 {
	score := 0.3 * m.ConfidenceScore

	if c.professionTerm != "" {
		term := strings.ToLower(c.professionTerm)
		stated := strings.ToLower(m.CurrentProfession + " " + m.CurrentProfessionNormalized + " " + m.JobTitle)
		switch {
		case strings.Contains(stated, term):
			score += 0.4
		case c.professionCategory != "" && m.InferredProfession == c.professionCategory:
			score += 0.3
		default:
			score += 0.2 * textnorm.PartialRatio(term, stated)
		}
	}

	if c.location != "" {
		loc := strings.ToLower(c.location)
		work := strings.ToLower(m.OfficeAddressCityNormalized + " " + m.OfficeAddressFull + " " + m.InferredWorkLocation)
		home := strings.ToLower(m.HomeAddressCityNormalized + " " + m.HomeAddressFull)
		switch {
		case strings.Contains(work, loc):
			score += 0.25
		case strings.Contains(home, loc):
			score += 0.15
		default:
			best := textnorm.Ratio(loc, strings.ToLower(m.HomeAddressCityNormalized))
			if r := textnorm.Ratio(loc, strings.ToLower(m.OfficeAddressCityNormalized)); r > best {
				best = r
			}
			score += 0.1 * best
		}
	}

	if c.interest != "" {
		interests := strings.ToLower(m.InterestsHobbies + " " + m.SportsActivities)
		if strings.Contains(interests, strings.ToLower(c.interest)) {
			score += 0.2
		}
	}

	if m.EstimatedDataVintage != nil {
		age := now.Sub(*m.EstimatedDataVintage)
		switch {
		case age < 365*24*time.Hour:
			score += 0.05
		case age < 5*365*24*time.Hour:
			score += 0.02
		}
	}

	if m.PrimaryEmail != "" {
		score += 0.05
	}
	if m.MobilePhone != "" {
		score += 0.05
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// rankResults scores and stable-sorts results by relevance, highest first.
// Stability keeps the store's ordering for equal scores.
func rankResults(results []Result, c criteria, now time.Time) []Result {
	for i := range results {
		results[i].Relevance = relevance(&results[i].Member, c, now)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results
}

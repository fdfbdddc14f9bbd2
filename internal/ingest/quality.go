package ingest

import (
	"strings"

	"github.com/sj-alumni/directory-cli/internal/model"
)

// completenessFields is the fixed set a record is scored against.
var completenessFields = []func(*model.MemberRecord) string{
	func(m *model.MemberRecord) string { return m.FullName },
	func(m *model.MemberRecord) string { return m.PrimaryEmail },
	func(m *model.MemberRecord) string { return m.MobilePhone },
	func(m *model.MemberRecord) string { return m.CurrentProfession },
	func(m *model.MemberRecord) string { return m.SchoolChapter },
	func(m *model.MemberRecord) string { return m.BatchNormalized },
}

// CompletenessScore is the filled fraction of the required field set.
func CompletenessScore(m *model.MemberRecord) float64 {
	filled := 0
	for _, get := range completenessFields {
		if get(m) != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(completenessFields))
}

// ConfidenceScore combines completeness with the strongest trust signals:
// a plausible email, a stated profession, a recognized batch, and the
// inferred-profession confidence. Capped at 1.0.
func ConfidenceScore(m *model.MemberRecord) float64 {
	score := m.DataCompletenessScore * 0.4
	if strings.Contains(m.PrimaryEmail, "@") {
		score += 0.2
	}
	if m.CurrentProfession != "" {
		score += 0.2
	}
	if m.BatchNormalized != "" {
		score += 0.1
	}
	score += m.InferredProfessionConfidence * 0.1
	if score > 1.0 {
		return 1.0
	}
	return score
}

package match

import (
	"time"

	"github.com/sj-alumni/directory-cli/internal/model"
)

// TextMergeStrategy decides between two non-empty text values. It returns
// the winning value and whether that differs from the existing one.
type TextMergeStrategy func(existing, incoming string) (string, bool)

// PreferLonger keeps the strictly longer value, on the theory that the
// longer form of a name, address, or note carries more information.
// Equal-length values keep the existing one.
func PreferLonger(existing, incoming string) (string, bool) {
	if len(incoming) > len(existing) {
		return incoming, true
	}
	return existing, false
}

type fieldKind int

const (
	// kindText adopts into empty fields, otherwise defers to the engine's
	// TextMergeStrategy.
	kindText fieldKind = iota
	// kindIntOnce adopts only into zero-valued fields.
	kindIntOnce
	// kindConfidence keeps the strictly higher score.
	kindConfidence
	// kindTimeNewer keeps the more recent timestamp.
	kindTimeNewer
	// kindTimeOnce adopts only into unset fields.
	kindTimeOnce
)

type fieldSpec struct {
	name string
	kind fieldKind
	get  func(*model.MemberRecord) any
}

// mergeFields is the registry of mergeable columns. Identity and lifecycle
// columns (id, created_at, updated_at, is_active, is_duplicate,
// primary_record_id) are deliberately absent: a field merge can never touch
// them.
var mergeFields = []fieldSpec{
	{"full_name", kindText, func(m *model.MemberRecord) any { return m.FullName }},
	{"full_name_normalized", kindText, func(m *model.MemberRecord) any { return m.FullNameNormalized }},
	{"nickname", kindText, func(m *model.MemberRecord) any { return m.Nickname }},

	{"primary_email", kindText, func(m *model.MemberRecord) any { return m.PrimaryEmail }},
	{"secondary_email", kindText, func(m *model.MemberRecord) any { return m.SecondaryEmail }},
	{"mobile_phone", kindText, func(m *model.MemberRecord) any { return m.MobilePhone }},
	{"home_phone", kindText, func(m *model.MemberRecord) any { return m.HomePhone }},
	{"office_phone", kindText, func(m *model.MemberRecord) any { return m.OfficePhone }},

	{"current_profession", kindText, func(m *model.MemberRecord) any { return m.CurrentProfession }},
	{"current_profession_normalized", kindText, func(m *model.MemberRecord) any { return m.CurrentProfessionNormalized }},
	{"current_company", kindText, func(m *model.MemberRecord) any { return m.CurrentCompany }},
	{"job_title", kindText, func(m *model.MemberRecord) any { return m.JobTitle }},
	{"services_offered", kindText, func(m *model.MemberRecord) any { return m.ServicesOffered }},
	{"practice_areas", kindText, func(m *model.MemberRecord) any { return m.PracticeAreas }},

	{"inferred_profession", kindText, func(m *model.MemberRecord) any { return m.InferredProfession }},
	{"inferred_profession_confidence", kindConfidence, func(m *model.MemberRecord) any { return m.InferredProfessionConfidence }},
	{"inferred_specialization", kindText, func(m *model.MemberRecord) any { return m.InferredSpecialization }},
	{"inferred_specialization_confidence", kindConfidence, func(m *model.MemberRecord) any { return m.InferredSpecializationConfidence }},
	{"inferred_work_location", kindText, func(m *model.MemberRecord) any { return m.InferredWorkLocation }},
	{"inferred_work_location_confidence", kindConfidence, func(m *model.MemberRecord) any { return m.InferredWorkLocationConfidence }},

	{"batch_original", kindText, func(m *model.MemberRecord) any { return m.BatchOriginal }},
	{"batch_normalized", kindText, func(m *model.MemberRecord) any { return m.BatchNormalized }},
	{"batch_year", kindIntOnce, func(m *model.MemberRecord) any { return m.BatchYear }},
	{"batch_semester", kindText, func(m *model.MemberRecord) any { return m.BatchSemester }},
	{"batch_sub_number", kindIntOnce, func(m *model.MemberRecord) any { return m.BatchSubNumber }},
	{"batch_decade", kindIntOnce, func(m *model.MemberRecord) any { return m.BatchDecade }},
	{"batch_era", kindText, func(m *model.MemberRecord) any { return m.BatchEra }},

	{"school_chapter", kindText, func(m *model.MemberRecord) any { return m.SchoolChapter }},
	{"school_chapter_normalized", kindText, func(m *model.MemberRecord) any { return m.SchoolChapterNormalized }},
	{"course", kindText, func(m *model.MemberRecord) any { return m.Course }},

	{"home_address_full", kindText, func(m *model.MemberRecord) any { return m.HomeAddressFull }},
	{"home_address_city", kindText, func(m *model.MemberRecord) any { return m.HomeAddressCity }},
	{"home_address_city_normalized", kindText, func(m *model.MemberRecord) any { return m.HomeAddressCityNormalized }},
	{"office_address_full", kindText, func(m *model.MemberRecord) any { return m.OfficeAddressFull }},
	{"office_address_city", kindText, func(m *model.MemberRecord) any { return m.OfficeAddressCity }},
	{"office_address_city_normalized", kindText, func(m *model.MemberRecord) any { return m.OfficeAddressCityNormalized }},

	{"interests_hobbies", kindText, func(m *model.MemberRecord) any { return m.InterestsHobbies }},
	{"sports_activities", kindText, func(m *model.MemberRecord) any { return m.SportsActivities }},
	{"volunteer_work", kindText, func(m *model.MemberRecord) any { return m.VolunteerWork }},
	{"social_clubs", kindText, func(m *model.MemberRecord) any { return m.SocialClubs }},
	{"birth_date", kindTimeOnce, func(m *model.MemberRecord) any { return m.BirthDate }},

	{"data_completeness_score", kindConfidence, func(m *model.MemberRecord) any { return m.DataCompletenessScore }},
	{"confidence_score", kindConfidence, func(m *model.MemberRecord) any { return m.ConfidenceScore }},

	{"source_file_name", kindText, func(m *model.MemberRecord) any { return m.SourceFileName }},
	{"imported_from_source", kindText, func(m *model.MemberRecord) any { return m.ImportedFromSource }},
	{"estimated_data_vintage", kindTimeNewer, func(m *model.MemberRecord) any { return m.EstimatedDataVintage }},
}

// MergeFields computes the column updates that folding incoming into
// existing requires. Empty incoming fields never overwrite anything;
// scores only ever go up; timestamps only move forward. An empty result
// means the incoming record adds nothing.
func (e *Engine) MergeFields(existing, incoming *model.MemberRecord) model.FieldUpdates {
	updates := model.FieldUpdates{}
	for _, f := range mergeFields {
		switch f.kind {
		case kindText:
			oldV, newV := f.get(existing).(string), f.get(incoming).(string)
			if newV == "" {
				continue
			}
			if oldV == "" {
				updates[f.name] = newV
				continue
			}
			if merged, changed := e.cfg.TextMerge(oldV, newV); changed {
				updates[f.name] = merged
			}
		case kindIntOnce:
			oldV, newV := f.get(existing).(int), f.get(incoming).(int)
			if newV != 0 && oldV == 0 {
				updates[f.name] = newV
			}
		case kindConfidence:
			oldV, newV := f.get(existing).(float64), f.get(incoming).(float64)
			if newV > oldV {
				updates[f.name] = newV
			}
		case kindTimeNewer:
			oldV, newV := f.get(existing).(*time.Time), f.get(incoming).(*time.Time)
			if newV == nil {
				continue
			}
			if oldV == nil || newV.After(*oldV) {
				updates[f.name] = *newV
			}
		case kindTimeOnce:
			oldV, newV := f.get(existing).(*time.Time), f.get(incoming).(*time.Time)
			if newV != nil && oldV == nil {
				updates[f.name] = *newV
			}
		}
	}
	return updates
}

package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sj-alumni/directory-cli/internal/model"
)

// memberCols lists every members column except id, in the order both
// backends insert and scan them.
var memberCols = []string{
	"full_name", "full_name_normalized", "nickname",
	"primary_email", "secondary_email", "mobile_phone", "home_phone", "office_phone",
	"current_profession", "current_profession_normalized", "current_company",
	"job_title", "services_offered", "practice_areas",
	"inferred_profession", "inferred_profession_confidence",
	"inferred_specialization", "inferred_specialization_confidence",
	"inferred_work_location", "inferred_work_location_confidence",
	"batch_original", "batch_normalized", "batch_year", "batch_semester",
	"batch_sub_number", "batch_decade", "batch_era",
	"school_chapter", "school_chapter_normalized", "course",
	"home_address_full", "home_address_city", "home_address_city_normalized",
	"office_address_full", "office_address_city", "office_address_city_normalized",
	"interests_hobbies", "sports_activities", "volunteer_work", "social_clubs",
	"birth_date",
	"data_completeness_score", "confidence_score",
	"is_active", "is_duplicate", "primary_record_id",
	"source_file_name", "imported_from_source", "estimated_data_vintage",
	"created_by", "updated_by", "created_at", "updated_at",
}

// updatableCols is the set of columns UpdateMember accepts. created_at is
// immutable after insert.
var updatableCols = func() map[string]bool {
	set := make(map[string]bool, len(memberCols))
	for _, c := range memberCols {
		set[c] = true
	}
	delete(set, "created_at")
	return set
}()

func memberColumnList() string {
	return "id, " + strings.Join(memberCols, ", ")
}

// memberValues returns the column values in memberCols order.
func memberValues(m *model.MemberRecord) []any {
	return []any{
		m.FullName, m.FullNameNormalized, m.Nickname,
		m.PrimaryEmail, m.SecondaryEmail, m.MobilePhone, m.HomePhone, m.OfficePhone,
		m.CurrentProfession, m.CurrentProfessionNormalized, m.CurrentCompany,
		m.JobTitle, m.ServicesOffered, m.PracticeAreas,
		m.InferredProfession, m.InferredProfessionConfidence,
		m.InferredSpecialization, m.InferredSpecializationConfidence,
		m.InferredWorkLocation, m.InferredWorkLocationConfidence,
		m.BatchOriginal, m.BatchNormalized, m.BatchYear, m.BatchSemester,
		m.BatchSubNumber, m.BatchDecade, m.BatchEra,
		m.SchoolChapter, m.SchoolChapterNormalized, m.Course,
		m.HomeAddressFull, m.HomeAddressCity, m.HomeAddressCityNormalized,
		m.OfficeAddressFull, m.OfficeAddressCity, m.OfficeAddressCityNormalized,
		m.InterestsHobbies, m.SportsActivities, m.VolunteerWork, m.SocialClubs,
		m.BirthDate,
		m.DataCompletenessScore, m.ConfidenceScore,
		m.IsActive, m.IsDuplicate, m.PrimaryRecordID,
		m.SourceFileName, m.ImportedFromSource, m.EstimatedDataVintage,
		m.CreatedBy, m.UpdatedBy, m.CreatedAt, m.UpdatedAt,
	}
}

// snapshotValues renders a member's current field values keyed by column
// name, used for old-value capture in the audit trail. JSON tags on
// MemberRecord match column names.
func snapshotValues(m *model.MemberRecord) map[string]string {
	raw, err := json.Marshal(m)
	if err != nil {
		return map[string]string{}
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = fmt.Sprint(v)
	}
	return out
}

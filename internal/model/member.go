// Package model defines the core record types shared across the directory
// pipeline: member records, import batches, and the change audit log.
package model

import "time"

// MemberRecord is one person in the directory. Normalized and inferred
// fields are always derived by the pipeline, never hand-entered.
type MemberRecord struct {
	ID int64 `json:"id"`

	// Identity
	FullName           string `json:"full_name,omitempty"`
	FullNameNormalized string `json:"full_name_normalized,omitempty"`
	Nickname           string `json:"nickname,omitempty"`

	// Contact
	PrimaryEmail   string `json:"primary_email,omitempty"`
	SecondaryEmail string `json:"secondary_email,omitempty"`
	MobilePhone    string `json:"mobile_phone,omitempty"`
	HomePhone      string `json:"home_phone,omitempty"`
	OfficePhone    string `json:"office_phone,omitempty"`

	// Professional
	CurrentProfession           string `json:"current_profession,omitempty"`
	CurrentProfessionNormalized string `json:"current_profession_normalized,omitempty"`
	CurrentCompany              string `json:"current_company,omitempty"`
	JobTitle                    string `json:"job_title,omitempty"`
	ServicesOffered             string `json:"services_offered,omitempty"`
	PracticeAreas               string `json:"practice_areas,omitempty"`

	// Inferred (produced only by the inferencer)
	InferredProfession               string  `json:"inferred_profession,omitempty"`
	InferredProfessionConfidence     float64 `json:"inferred_profession_confidence,omitempty"`
	InferredSpecialization           string  `json:"inferred_specialization,omitempty"`
	InferredSpecializationConfidence float64 `json:"inferred_specialization_confidence,omitempty"`
	InferredWorkLocation             string  `json:"inferred_work_location,omitempty"`
	InferredWorkLocationConfidence   float64 `json:"inferred_work_location_confidence,omitempty"`

	// Academic
	BatchOriginal   string `json:"batch_original,omitempty"`
	BatchNormalized string `json:"batch_normalized,omitempty"`
	BatchYear       int    `json:"batch_year,omitempty"`
	BatchSemester   string `json:"batch_semester,omitempty"`
	BatchSubNumber  int    `json:"batch_sub_number,omitempty"`
	BatchDecade     int    `json:"batch_decade,omitempty"`
	BatchEra        string `json:"batch_era,omitempty"`

	SchoolChapter           string `json:"school_chapter,omitempty"`
	SchoolChapterNormalized string `json:"school_chapter_normalized,omitempty"`
	Course                  string `json:"course,omitempty"`

	// Location
	HomeAddressFull             string `json:"home_address_full,omitempty"`
	HomeAddressCity             string `json:"home_address_city,omitempty"`
	HomeAddressCityNormalized   string `json:"home_address_city_normalized,omitempty"`
	OfficeAddressFull           string `json:"office_address_full,omitempty"`
	OfficeAddressCity           string `json:"office_address_city,omitempty"`
	OfficeAddressCityNormalized string `json:"office_address_city_normalized,omitempty"`

	// Personal
	InterestsHobbies string     `json:"interests_hobbies,omitempty"`
	SportsActivities string     `json:"sports_activities,omitempty"`
	VolunteerWork    string     `json:"volunteer_work,omitempty"`
	SocialClubs      string     `json:"social_clubs,omitempty"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`

	// Quality (always recomputed, never persisted stale)
	DataCompletenessScore float64 `json:"data_completeness_score"`
	ConfidenceScore       float64 `json:"confidence_score"`

	// Lifecycle
	IsActive        bool   `json:"is_active"`
	IsDuplicate     bool   `json:"is_duplicate"`
	PrimaryRecordID *int64 `json:"primary_record_id,omitempty"`

	// Provenance
	SourceFileName       string     `json:"source_file_name,omitempty"`
	ImportedFromSource   string     `json:"imported_from_source,omitempty"`
	EstimatedDataVintage *time.Time `json:"estimated_data_vintage,omitempty"`
	CreatedBy            string     `json:"created_by,omitempty"`
	UpdatedBy            string     `json:"updated_by,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// HasContact reports whether the record carries at least one contact channel.
func (m *MemberRecord) HasContact() bool {
	return m.PrimaryEmail != "" || m.SecondaryEmail != "" ||
		m.MobilePhone != "" || m.HomePhone != "" || m.OfficePhone != ""
}

// FieldUpdates is a set of column-level changes to apply to a member record.
// Keys are canonical field names (snake_case, matching storage columns).
type FieldUpdates map[string]any

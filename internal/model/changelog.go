package model

import "time"

// ChangeType classifies a change log entry.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeMerge  ChangeType = "MERGE"
)

// ChangeLogEntry is an immutable audit record for one field mutation on a
// member record. Entries are appended once and never updated or deleted.
type ChangeLogEntry struct {
	ID              int64      `json:"id"`
	MemberID        int64      `json:"member_id"`
	FieldName       string     `json:"field_name"`
	OldValue        string     `json:"old_value,omitempty"`
	NewValue        string     `json:"new_value,omitempty"`
	ChangeType      ChangeType `json:"change_type"`
	ChangeReason    string     `json:"change_reason,omitempty"`
	SourceFile      string     `json:"source_file,omitempty"`
	ConfidenceScore *float64   `json:"confidence_score,omitempty"`
	ChangedAt       time.Time  `json:"changed_at"`
	ChangedBy       string     `json:"changed_by,omitempty"`
}

// DuplicatePair is a candidate duplicate flagged for human review.
type DuplicatePair struct {
	ID1       int64  `json:"id1"`
	Name1     string `json:"name1"`
	Email1    string `json:"email1,omitempty"`
	ID2       int64  `json:"id2"`
	Name2     string `json:"name2"`
	Email2    string `json:"email2,omitempty"`
	MatchType string `json:"match_type"`
}

// SystemStats summarizes directory size and data quality.
type SystemStats struct {
	TotalMembers          int     `json:"total_members"`
	ActiveMembers         int     `json:"active_members"`
	Duplicates            int     `json:"duplicates"`
	MembersWithEmail      int     `json:"members_with_email"`
	MembersWithProfession int     `json:"members_with_profession"`
	AvgConfidence         float64 `json:"avg_confidence"`
	AvgCompleteness       float64 `json:"avg_completeness"`
	ChangesLastWeek       int     `json:"changes_last_week"`
}

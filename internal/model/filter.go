package model

// SearchFilter selects member records. Zero-valued fields are ignored; the
// populated ones combine with AND. Text fields match as case-insensitive
// substrings except Email, which is exact against either email column.
type SearchFilter struct {
	Name       string `json:"name,omitempty"`
	Profession string `json:"profession,omitempty"`
	Location   string `json:"location,omitempty"`
	Batch      string `json:"batch,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
	Interests  string `json:"interests,omitempty"`
	Company    string `json:"company,omitempty"`
	Email      string `json:"email,omitempty"`

	// NameContains matches records whose normalized name contains, or is
	// contained by, the given normalized name. Used for duplicate
	// candidate lookups, where either side may carry the longer form.
	NameContains string `json:"name_contains,omitempty"`

	// IncludeInactive lifts the default is_active filter. Records marked
	// as duplicates are always excluded.
	IncludeInactive bool `json:"include_inactive,omitempty"`

	Limit int `json:"limit,omitempty"`
}

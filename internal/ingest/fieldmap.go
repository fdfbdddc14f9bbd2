package ingest

import (
	"strings"

	"github.com/sj-alumni/directory-cli/internal/fetcher"
)

// mappingRule maps source column names to canonical member fields by
// case-insensitive substring match. Rules are tried in order and the first
// hit wins, so specific fragments (nickname, company) sit above the generic
// ones (name) that would otherwise shadow them.
type mappingRule struct {
	fragments []string
	target    func(colLower string) string
}

func fixed(field string) func(string) string {
	return func(string) string { return field }
}

var mappingRules = []mappingRule{
	{[]string{"nickname", "nick"}, fixed("nickname")},
	{[]string{"email", "e-mail"}, fixed("primary_email")},
	{[]string{"phone", "mobile", "cell", "tel"}, func(col string) string {
		switch {
		case strings.Contains(col, "home"):
			return "home_phone"
		case strings.Contains(col, "office"), strings.Contains(col, "work"):
			return "office_phone"
		default:
			return "mobile_phone"
		}
	}},
	{[]string{"address"}, func(col string) string {
		if strings.Contains(col, "office") || strings.Contains(col, "work") {
			return "office_address_full"
		}
		return "home_address_full"
	}},
	{[]string{"company", "employer"}, fixed("current_company")},
	{[]string{"name", "nome", "apellido"}, fixed("full_name")},
	{[]string{"profession", "job", "occupation", "work"}, fixed("current_profession")},
	{[]string{"batch"}, fixed("batch_original")},
	{[]string{"chapter", "school"}, fixed("school_chapter")},
	{[]string{"course"}, fixed("course")},
	{[]string{"interest", "hobb"}, fixed("interests_hobbies")},
	{[]string{"sport"}, fixed("sports_activities")},
	{[]string{"birth"}, fixed("birth_date")},
}

// MapRecord maps a raw source row onto canonical field names. Columns no
// rule recognizes are dropped; a value that looks like an email address is
// kept as primary_email even under an unrecognized column name. The second
// return is false when the row lacks both a name and an email, which means
// it cannot be matched or deduplicated and is discarded.
func MapRecord(record fetcher.RawRecord) (map[string]string, bool) {
	fields := map[string]string{}
	for _, col := range record.Columns {
		value := strings.TrimSpace(col.Value)
		if value == "" {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(col.Name))
		if field := mapColumn(name, value); field != "" {
			fields[field] = value
		}
	}
	return fields, fields["full_name"] != "" || fields["primary_email"] != ""
}

func mapColumn(colLower, value string) string {
	for _, rule := range mappingRules {
		for _, frag := range rule.fragments {
			if strings.Contains(colLower, frag) {
				return rule.target(colLower)
			}
		}
	}
	if strings.Contains(value, "@") {
		return "primary_email"
	}
	return ""
}

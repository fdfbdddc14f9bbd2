package textnorm

import (
	"regexp"
	"strings"
)

// structuredFieldPatterns match "LABEL: value" lines in text dumps exported
// from legacy documents. Keys are canonical raw-field names consumed by the
// ingest field mapper.
var structuredFieldPatterns = []struct {
	field   string
	pattern *regexp.Regexp
}{
	{"name", regexp.MustCompile(`(?im)(?:NAME|Full Name|NOMBRE)[:\s]+([^\n]+)`)},
	{"nickname", regexp.MustCompile(`(?im)(?:NICKNAME|Nick)[:\s]+([^\n]+)`)},
	{"email", regexp.MustCompile(`(?im)(?:EMAIL|E-MAIL)[:\s]+([^\n]+)`)},
	{"phone", regexp.MustCompile(`(?im)(?:PHONE|TEL|MOBILE|CELL)[:\s]+([^\n]+)`)},
	{"address", regexp.MustCompile(`(?im)(?:ADDRESS|Home Address)[:\s]+([^\n]+)`)},
	{"profession", regexp.MustCompile(`(?im)(?:PROFESSION|JOB|WORK|OCCUPATION)[:\s]+([^\n]+)`)},
	{"company", regexp.MustCompile(`(?im)(?:COMPANY|EMPLOYER|OFFICE)[:\s]+([^\n]+)`)},
	{"batch", regexp.MustCompile(`(?im)(?:BATCH|Batch No)[:\s]+([^\n]+)`)},
	{"chapter", regexp.MustCompile(`(?im)(?:CHAPTER|School)[:\s]+([^\n]+)`)},
}

// ParseStructuredText extracts labeled fields from text with "LABEL: value"
// lines. Missing labels are simply absent from the result.
func ParseStructuredText(text string) map[string]string {
	if text == "" {
		return nil
	}
	fields := map[string]string{}
	for _, fp := range structuredFieldPatterns {
		if m := fp.pattern.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				fields[fp.field] = v
			}
		}
	}
	return fields
}

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ExtractEmails returns every email-shaped substring, deduplicated in
// first-seen order.
func ExtractEmails(text string) []string {
	seen := map[string]bool{}
	var emails []string
	for _, match := range emailRe.FindAllString(text, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		emails = append(emails, match)
	}
	return emails
}

package textnorm

import "regexp"

// phonePatterns cover the phone number shapes seen across decades of
// Philippine records.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+63\s?\d{2}\s?\d{3}\s?\d{4}`), // +63 format
	regexp.MustCompile(`09\d{2}-\d{3}-\d{4}`),          // mobile
	regexp.MustCompile(`0\d{2}-\d{3}-\d{4}`),           // 0XX-XXX-XXXX
	regexp.MustCompile(`0\d{3}-\d{3}-\d{3}`),           // 0XXX-XXX-XXX
	regexp.MustCompile(`\(\d{2,3}\)\s?\d{3}-?\d{4}`),   // (XX) XXX-XXXX
	regexp.MustCompile(`\d{3}-\d{4}`),                  // landline
}

// ExtractPhoneNumbers returns every phone-number-shaped substring in the
// text, deduplicated in first-seen order.
func ExtractPhoneNumbers(text string) []string {
	seen := map[string]bool{}
	var numbers []string
	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if seen[match] {
				continue
			}
			seen[match] = true
			numbers = append(numbers, match)
		}
	}
	return numbers
}

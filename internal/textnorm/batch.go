package textnorm

import (
	"fmt"
	"regexp"
	"strconv"
)

// BatchInfo is the structured form of a raw batch string like "Batch 95-S".
// Zero-valued when no pattern matched (Year == 0).
type BatchInfo struct {
	Original   string
	Normalized string
	Year       int
	Semester   string
	SubNumber  int
	Decade     int
	Era        string
}

// Matched reports whether any batch pattern recognized the input.
func (b BatchInfo) Matched() bool { return b.Year != 0 }

// batchPatterns are tried most-specific-first; the first match wins and no
// later pattern is consulted.
var batchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{2,4})-([A-Z]+\d*)`),                  // 95-S, 2001-B1
	regexp.MustCompile(`(?i)Batch\s+(\d{2,4})-([A-Z]+\d*)`),          // Batch 95-S
	regexp.MustCompile(`(?i)Batch\s+No[:.]?\s*(\d{2,4})-([A-Z]+\d*)`), // Batch No: 95-S
	regexp.MustCompile(`(?i)Batch\s+(\d{2,4})`),                      // Batch 99
	regexp.MustCompile(`(\d{2,4})`),                                  // bare digits
}

var semesterRe = regexp.MustCompile(`(?i)^([A-Z]+)(\d*)`)

// NormalizeBatch parses a raw batch string into its year, semester code,
// and sub-number components. Two-digit years map 00-49 to the 2000s and
// 50-99 to the 1900s.
func NormalizeBatch(raw string) BatchInfo {
	info := BatchInfo{Original: raw}
	if raw == "" {
		return info
	}

	for _, pattern := range batchPatterns {
		groups := pattern.FindStringSubmatch(raw)
		if groups == nil {
			continue
		}

		year, err := strconv.Atoi(groups[1])
		if err != nil {
			return info
		}
		if year < 50 {
			year += 2000
		} else if year < 100 {
			year += 1900
		}
		info.Year = year
		info.Decade = (year / 10) * 10
		info.Era = eraFor(year)

		if len(groups) >= 3 && groups[2] != "" {
			if sm := semesterRe.FindStringSubmatch(groups[2]); sm != nil {
				info.Semester = upper(sm[1])
				if sm[2] != "" {
					info.SubNumber, _ = strconv.Atoi(sm[2])
				}
			}
		}

		switch {
		case info.Semester != "" && info.SubNumber != 0:
			info.Normalized = fmt.Sprintf("%d-%s%d", info.Year, info.Semester, info.SubNumber)
		case info.Semester != "":
			info.Normalized = fmt.Sprintf("%d-%s", info.Year, info.Semester)
		default:
			info.Normalized = strconv.Itoa(info.Year)
		}
		break
	}

	return info
}

func eraFor(year int) string {
	switch {
	case year >= 1990 && year < 2000:
		return "90s"
	case year >= 2000 && year < 2010:
		return "2000s"
	case year >= 2010 && year < 2020:
		return "2010s"
	default:
		return fmt.Sprintf("%ds", year)
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

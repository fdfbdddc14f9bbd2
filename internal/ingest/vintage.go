package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var filenameYearRe = regexp.MustCompile(`(19|20)\d{2}`)

// EstimateVintage guesses when a source file's data was originally
// collected: a 4-digit year in the filename, then decade markers, then the
// file's modification time.
func EstimateVintage(fileName string, modTime time.Time) time.Time {
	lower := strings.ToLower(fileName)

	if m := filenameYearRe.FindString(lower); m != "" {
		year, _ := strconv.Atoi(m)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	if strings.Contains(lower, "90s") || strings.Contains(lower, "dekada90") {
		return time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	return modTime
}

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBatch_Empty(t *testing.T) {
	assert.False(t, NormalizeBatch("").Matched())
	assert.False(t, NormalizeBatch("unknown").Matched())
}

func TestNormalizeBatch_YearWithSemester(t *testing.T) {
	info := NormalizeBatch("Batch 95-S")
	assert.True(t, info.Matched())
	assert.Equal(t, 1995, info.Year)
	assert.Equal(t, "S", info.Semester)
	assert.Equal(t, "1995-S", info.Normalized)
	assert.Equal(t, 1990, info.Decade)
	assert.Equal(t, "90s", info.Era)
}

func TestNormalizeBatch_SubNumber(t *testing.T) {
	info := NormalizeBatch("2001-B1")
	assert.Equal(t, 2001, info.Year)
	assert.Equal(t, "B", info.Semester)
	assert.Equal(t, 1, info.SubNumber)
	assert.Equal(t, "2001-B1", info.Normalized)
	assert.Equal(t, "2000s", info.Era)
}

func TestNormalizeBatch_BatchNoPrefix(t *testing.T) {
	info := NormalizeBatch("Batch No: 98-A")
	assert.Equal(t, 1998, info.Year)
	assert.Equal(t, "A", info.Semester)
	assert.Equal(t, "1998-A", info.Normalized)
}

func TestNormalizeBatch_YearOnly(t *testing.T) {
	info := NormalizeBatch("Batch 99")
	assert.Equal(t, 1999, info.Year)
	assert.Equal(t, "", info.Semester)
	assert.Equal(t, "1999", info.Normalized)
}

func TestNormalizeBatch_BareDigits(t *testing.T) {
	info := NormalizeBatch("2005")
	assert.Equal(t, 2005, info.Year)
	assert.Equal(t, "2005", info.Normalized)
}

func TestNormalizeBatch_TwoDigitYearWindow(t *testing.T) {
	// 00-49 map to the 2000s, 50-99 to the 1900s.
	assert.Equal(t, 2003, NormalizeBatch("03-B").Year)
	assert.Equal(t, 1950, NormalizeBatch("50-A").Year)
	assert.Equal(t, 1999, NormalizeBatch("99-S").Year)
}

func TestNormalizeBatch_LowercaseSemester(t *testing.T) {
	info := NormalizeBatch("95-s")
	assert.Equal(t, "S", info.Semester)
	assert.Equal(t, "1995-S", info.Normalized)
}

func TestNormalizeBatch_EraOutsideKnownRanges(t *testing.T) {
	assert.Equal(t, "1987s", NormalizeBatch("Batch 87").Era)
}

func TestNormalizeBatch_FirstPatternWins(t *testing.T) {
	// The dash form matches the most specific pattern even when embedded in
	// a longer string; later patterns are never consulted.
	info := NormalizeBatch("member since Batch 95-S2 roughly")
	assert.Equal(t, 1995, info.Year)
	assert.Equal(t, "S", info.Semester)
	assert.Equal(t, 2, info.SubNumber)
	assert.Equal(t, "1995-S2", info.Normalized)
}

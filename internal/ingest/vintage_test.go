package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateVintage_YearInFilename(t *testing.T) {
	mod := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got := EstimateVintage("UP_Directory_2003.xlsx", mod)
	assert.Equal(t, time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestEstimateVintage_DecadeMarker(t *testing.T) {
	mod := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, EstimateVintage("dekada90_roster.csv", mod))
	assert.Equal(t, want, EstimateVintage("batch 90s list.txt", mod))
}

func TestEstimateVintage_FallsBackToModTime(t *testing.T) {
	mod := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mod, EstimateVintage("members.csv", mod))
}

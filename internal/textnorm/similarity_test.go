package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("Juan Dela Cruz", "Juan Dela Cruz"))
}

func TestNameSimilarity_Empty(t *testing.T) {
	assert.Equal(t, 0.0, NameSimilarity("", "Juan"))
	assert.Equal(t, 0.0, NameSimilarity("Juan", ""))
}

func TestNameSimilarity_PrefixSuffixInsensitive(t *testing.T) {
	// Honorifics are stripped before comparison, so these are identical.
	sim := NameSimilarity("Juan Dela Cruz", "juan dela cruz jr.")
	assert.GreaterOrEqual(t, sim, 0.8)
	assert.Equal(t, 1.0, NameSimilarity("Dr. Juan Dela Cruz", "Juan Dela Cruz MD"))
}

func TestNameSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Juan Dela Cruz", "Juan Dela Cruz Jr."},
		{"Maria Santos", "Mario Santos"},
		{"Dela Cruz Juan", "Juan Dela Cruz"},
		{"", "x"},
	}
	for _, p := range pairs {
		assert.Equal(t, NameSimilarity(p[0], p[1]), NameSimilarity(p[1], p[0]),
			"similarity must be symmetric for %q / %q", p[0], p[1])
	}
}

func TestNameSimilarity_TransposedWordOrder(t *testing.T) {
	// Token-sort ratio rescues transposed names.
	assert.Equal(t, 1.0, NameSimilarity("Dela Cruz Juan", "Juan Dela Cruz"))
}

func TestNameSimilarity_DifferentNames(t *testing.T) {
	assert.Less(t, NameSimilarity("Juan Dela Cruz", "Pedro Reyes"), 0.5)
}

func TestRatio_Bounds(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("abc", ""))
	assert.InDelta(t, 0.75, Ratio("abcd", "abcx"), 1e-9)
}

func TestPartialRatio_SubstringScoresHigh(t *testing.T) {
	assert.Equal(t, 1.0, PartialRatio("golf", "golf, tennis, chess"))
}

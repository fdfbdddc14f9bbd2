package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName_Empty(t *testing.T) {
	assert.Equal(t, "", NormalizeName(""))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeName_Lowercases(t *testing.T) {
	assert.Equal(t, "juan dela cruz", NormalizeName("Juan Dela Cruz"))
}

func TestNormalizeName_StripsPrefixes(t *testing.T) {
	assert.Equal(t, "juan dela cruz", NormalizeName("Dr. Juan Dela Cruz"))
	assert.Equal(t, "juan dela cruz", NormalizeName("Atty Juan Dela Cruz"))
	assert.Equal(t, "maria santos", NormalizeName("Eng. Maria Santos"))
	assert.Equal(t, "maria santos", NormalizeName("Prof Maria Santos"))
}

func TestNormalizeName_StripsSuffixes(t *testing.T) {
	assert.Equal(t, "juan dela cruz", NormalizeName("Juan Dela Cruz Jr."))
	assert.Equal(t, "juan dela cruz", NormalizeName("Juan Dela Cruz Sr"))
	assert.Equal(t, "juan dela cruz", NormalizeName("Juan Dela Cruz III"))
	assert.Equal(t, "maria santos", NormalizeName("Maria Santos MD"))
}

func TestNormalizeName_PrefixAndSuffix(t *testing.T) {
	assert.Equal(t, "juan dela cruz", NormalizeName("Dr. Juan Dela Cruz Jr."))
}

func TestNormalizeName_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "juan dela cruz", NormalizeName("  Juan   Dela   Cruz  "))
}

func TestNormalizeName_PreservesTokenOrder(t *testing.T) {
	assert.Equal(t, "dela cruz juan", NormalizeName("Dela Cruz Juan"))
}

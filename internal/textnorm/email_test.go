package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmailDomainInfo_NotAnEmail(t *testing.T) {
	assert.Equal(t, DomainInfo{}, ExtractEmailDomainInfo("not-an-email"))
	assert.Equal(t, DomainInfo{}, ExtractEmailDomainInfo(""))
}

func TestExtractEmailDomainInfo_Educational(t *testing.T) {
	info := ExtractEmailDomainInfo("juan@up.edu.ph")
	assert.Equal(t, DomainEducational, info.Type)
	assert.Equal(t, "Education", info.InferredSector)
}

func TestExtractEmailDomainInfo_Government(t *testing.T) {
	assert.Equal(t, DomainGovernment, ExtractEmailDomainInfo("x@doh.gov.ph").Type)
	assert.Equal(t, DomainGovernment, ExtractEmailDomainInfo("x@state.gov").Type)
}

func TestExtractEmailDomainInfo_Medical(t *testing.T) {
	assert.Equal(t, DomainMedical, ExtractEmailDomainInfo("x@stlukes-hospital.com.ph").Type)
	assert.Equal(t, DomainMedical, ExtractEmailDomainInfo("x@heartclinic.ph").Type)
}

func TestExtractEmailDomainInfo_Corporate(t *testing.T) {
	assert.Equal(t, DomainCorporate, ExtractEmailDomainInfo("x@petroncorp.com").Type)
}

func TestExtractEmailDomainInfo_Personal(t *testing.T) {
	info := ExtractEmailDomainInfo("x@gmail.com")
	assert.Equal(t, DomainPersonal, info.Type)
	assert.Equal(t, "", info.InferredSector)
}

func TestExtractEmailDomainInfo_Unknown(t *testing.T) {
	assert.Equal(t, DomainUnknown, ExtractEmailDomainInfo("x@example.ph").Type)
}

func TestExtractPhoneNumbers_Formats(t *testing.T) {
	text := "call +63 91 234 5678 or 0917-123-4567, office (02) 812-3456"
	numbers := ExtractPhoneNumbers(text)
	assert.Contains(t, numbers, "+63 91 234 5678")
	assert.Contains(t, numbers, "0917-123-4567")
	assert.Contains(t, numbers, "(02) 812-3456")
}

func TestExtractPhoneNumbers_Deduplicates(t *testing.T) {
	numbers := ExtractPhoneNumbers("call 812-3456 or 812-3456")
	assert.Equal(t, []string{"812-3456"}, numbers)
}

func TestExtractProfessionalKeywords_VocabularyOrder(t *testing.T) {
	found := ExtractProfessionalKeywords("Senior Engineer and part-time lawyer")
	// Vocabulary order puts legal terms before engineering terms.
	assert.Equal(t, []string{"lawyer", "law", "engineer"}, found)
}

func TestExtractProfessionalKeywords_Empty(t *testing.T) {
	assert.Nil(t, ExtractProfessionalKeywords(""))
	assert.Nil(t, ExtractProfessionalKeywords("no relevant terms here"))
}

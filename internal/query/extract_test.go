package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProfession_Keyword(t *testing.T) {
	assert.Equal(t, "Legal", extractProfession("i need a lawyer"))
	assert.Equal(t, "Medical", extractProfession("any doctor around"))
}

func TestExtractProfession_Synonym(t *testing.T) {
	assert.Equal(t, "Business", extractProfession("any accountant around"))
}

func TestExtractProfession_None(t *testing.T) {
	assert.Equal(t, "", extractProfession("who can help me move house"))
}

func TestProfessionSearchTerm(t *testing.T) {
	assert.Equal(t, "lawyer", professionSearchTerm("Legal"))
	assert.Equal(t, "doctor", professionSearchTerm("Medical"))
	assert.Equal(t, "real estate", professionSearchTerm("Real Estate"))
}

func TestExtractProfessionQuery_LiteralTerm(t *testing.T) {
	term, cat := extractProfessionQuery("find juan the accountant")
	assert.Equal(t, "accountant", term)
	assert.Equal(t, "Business", cat)
}

func TestExtractProfessionQuery_CategoryFallback(t *testing.T) {
	term, cat := extractProfessionQuery("anyone working in accounting")
	assert.Equal(t, "manager", term)
	assert.Equal(t, "Business", cat)
}

func TestExtractProfessionQuery_None(t *testing.T) {
	term, cat := extractProfessionQuery("who can help me move house")
	assert.Equal(t, "", term)
	assert.Equal(t, "", cat)
}

func TestExtractLocation_CueWord(t *testing.T) {
	assert.Equal(t, "Ortigas", extractLocation("anyone near ortigas center"))
	assert.Equal(t, "Makati", extractLocation("i need a lawyer in makati"))
}

func TestExtractLocation_DirectMention(t *testing.T) {
	assert.Equal(t, "Quezon City", extractLocation("i need help in quezon city"))
}

func TestExtractLocation_None(t *testing.T) {
	assert.Equal(t, "", extractLocation("i need a lawyer"))
}

func TestExtractSpecialization(t *testing.T) {
	assert.Equal(t, "cardiology", extractSpecialization("i need a heart doctor", "Medical"))
	assert.Equal(t, "family law", extractSpecialization("divorce lawyer", "Legal"))
	assert.Equal(t, "", extractSpecialization("i need a doctor", "Medical"))
}

func TestExtractBatch(t *testing.T) {
	assert.Equal(t, "95-S", extractBatch("batch 95-S"))
	assert.Equal(t, "1995", extractBatch("the 1995 batch"))
	assert.Equal(t, "95-B2", extractBatch("members of 95-B2"))
	assert.Equal(t, "", extractBatch("no cohort here"))
}

func TestExtractChapter(t *testing.T) {
	assert.Equal(t, "Up Diliman", extractChapter("anyone from up diliman"))
	assert.Equal(t, "", extractChapter("anyone from harvard"))
}

func TestExtractChapter_WholeWordsOnly(t *testing.T) {
	// "quezon" contains "ue"; a substring match would return Ue.
	assert.Equal(t, "", extractChapter("anyone in quezon city"))
	assert.Equal(t, "Ue", extractChapter("members from the ue chapter"))
}

func TestExtractName_Quoted(t *testing.T) {
	assert.Equal(t, "Juan Dela Cruz", extractName(`find "Juan Dela Cruz"`))
}

func TestExtractName_CuePhrase(t *testing.T) {
	assert.Equal(t, "Juan Dela Cruz", extractName("find Juan Dela Cruz"))
	assert.Equal(t, "Pedro Santos", extractName("looking for Pedro Santos"))
}

func TestExtractName_None(t *testing.T) {
	assert.Equal(t, "", extractName("who lives in makati"))
}

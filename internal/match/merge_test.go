package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sj-alumni/directory-cli/internal/model"
)

func newTestEngine() *Engine {
	return NewEngine(&fakeStore{}, DefaultConfig())
}

func TestMergeFields_AdoptsIntoEmpty(t *testing.T) {
	existing := &model.MemberRecord{FullName: "Juan Dela Cruz"}
	incoming := &model.MemberRecord{
		FullName:    "Juan Dela Cruz",
		MobilePhone: "0917-123-4567",
		BatchYear:   1995,
	}
	updates := newTestEngine().MergeFields(existing, incoming)
	assert.Equal(t, "0917-123-4567", updates["mobile_phone"])
	assert.Equal(t, 1995, updates["batch_year"])
	assert.NotContains(t, updates, "full_name")
}

func TestMergeFields_EmptyIncomingNeverOverwrites(t *testing.T) {
	existing := &model.MemberRecord{
		FullName:     "Juan Dela Cruz",
		PrimaryEmail: "juan@example.ph",
		BatchYear:    1995,
	}
	updates := newTestEngine().MergeFields(existing, &model.MemberRecord{})
	assert.Empty(t, updates)
}

func TestMergeFields_PreferLonger(t *testing.T) {
	existing := &model.MemberRecord{HomeAddressFull: "Quezon City"}
	incoming := &model.MemberRecord{HomeAddressFull: "123 Maginhawa St, Quezon City"}
	updates := newTestEngine().MergeFields(existing, incoming)
	assert.Equal(t, "123 Maginhawa St, Quezon City", updates["home_address_full"])
}

func TestMergeFields_EqualLengthKeepsExisting(t *testing.T) {
	existing := &model.MemberRecord{Nickname: "Jun"}
	incoming := &model.MemberRecord{Nickname: "Jay"}
	updates := newTestEngine().MergeFields(existing, incoming)
	assert.NotContains(t, updates, "nickname")
}

func TestMergeFields_ConfidenceOnlyGoesUp(t *testing.T) {
	existing := &model.MemberRecord{InferredProfessionConfidence: 0.7}
	lower := &model.MemberRecord{InferredProfessionConfidence: 0.6}
	higher := &model.MemberRecord{InferredProfessionConfidence: 0.9}

	engine := newTestEngine()
	assert.NotContains(t, engine.MergeFields(existing, lower), "inferred_profession_confidence")
	assert.Equal(t, 0.9, engine.MergeFields(existing, higher)["inferred_profession_confidence"])
}

func TestMergeFields_VintageMovesForwardOnly(t *testing.T) {
	older := time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)

	engine := newTestEngine()
	existing := &model.MemberRecord{EstimatedDataVintage: &older}

	updates := engine.MergeFields(existing, &model.MemberRecord{EstimatedDataVintage: &newer})
	assert.Equal(t, newer, updates["estimated_data_vintage"])

	existing = &model.MemberRecord{EstimatedDataVintage: &newer}
	updates = engine.MergeFields(existing, &model.MemberRecord{EstimatedDataVintage: &older})
	assert.NotContains(t, updates, "estimated_data_vintage")
}

func TestMergeFields_BirthDateSetOnce(t *testing.T) {
	first := time.Date(1972, 6, 15, 0, 0, 0, 0, time.UTC)
	second := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

	engine := newTestEngine()
	updates := engine.MergeFields(&model.MemberRecord{}, &model.MemberRecord{BirthDate: &first})
	assert.Equal(t, first, updates["birth_date"])

	updates = engine.MergeFields(&model.MemberRecord{BirthDate: &first}, &model.MemberRecord{BirthDate: &second})
	assert.NotContains(t, updates, "birth_date")
}

func TestMergeFields_SelfMergeIsNoop(t *testing.T) {
	vintage := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &model.MemberRecord{
		FullName:                     "Juan Dela Cruz",
		FullNameNormalized:           "juan dela cruz",
		PrimaryEmail:                 "juan@example.ph",
		BatchYear:                    2001,
		InferredProfession:           "Legal",
		InferredProfessionConfidence: 0.8,
		EstimatedDataVintage:         &vintage,
	}
	assert.Empty(t, newTestEngine().MergeFields(m, m))
}

func TestMergeFields_NeverTouchesIdentity(t *testing.T) {
	primary := int64(5)
	incoming := &model.MemberRecord{
		ID:              42,
		FullName:        "Juan Dela Cruz",
		IsDuplicate:     true,
		PrimaryRecordID: &primary,
		CreatedAt:       time.Now(),
	}
	updates := newTestEngine().MergeFields(&model.MemberRecord{}, incoming)
	for _, key := range []string{"id", "is_duplicate", "primary_record_id", "is_active", "created_at", "updated_at"} {
		assert.NotContains(t, updates, key)
	}
}

package query

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sj-alumni/directory-cli/internal/model"
)

type fakeStore struct {
	members []model.MemberRecord
}

func (s *fakeStore) SearchMembers(_ context.Context, f model.SearchFilter) ([]model.MemberRecord, error) {
	var out []model.MemberRecord
	for _, m := range s.members {
		if m.IsDuplicate {
			continue
		}
		if !f.IncludeInactive && !m.IsActive {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(m.FullName), strings.ToLower(f.Name)) {
			continue
		}
		if f.Profession != "" {
			stated := strings.ToLower(m.CurrentProfession + " " + m.CurrentProfessionNormalized)
			if !strings.Contains(stated, strings.ToLower(f.Profession)) {
				continue
			}
		}
		if f.Location != "" {
			cities := strings.ToLower(m.HomeAddressCityNormalized + " " + m.OfficeAddressCityNormalized)
			if !strings.Contains(cities, strings.ToLower(f.Location)) {
				continue
			}
		}
		if f.Batch != "" && m.BatchNormalized != f.Batch {
			continue
		}
		if f.Chapter != "" {
			chapters := strings.ToLower(m.SchoolChapter + " " + m.SchoolChapterNormalized)
			if !strings.Contains(chapters, strings.ToLower(f.Chapter)) {
				continue
			}
		}
		if f.Interests != "" && !strings.Contains(strings.ToLower(m.InterestsHobbies), strings.ToLower(f.Interests)) {
			continue
		}
		out = append(out, m)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func TestSearch_LocationIntent(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Juan Dela Cruz", HomeAddressCityNormalized: "Makati", IsActive: true},
		{ID: 2, FullName: "Pedro Santos", HomeAddressCityNormalized: "Cebu", IsActive: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "who lives in Makati?")
	require.NoError(t, err)
	assert.Equal(t, IntentLocation, resp.Intent.Type)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Member.ID)
	assert.Contains(t, resp.Results[0].MatchReasons, "lives in Makati")
}

func TestSearch_ProfessionalRanksLocationFirst(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{
			ID:                          1,
			FullName:                    "Pedro Santos",
			CurrentProfessionNormalized: "lawyer",
			HomeAddressCityNormalized:   "Cebu",
			ConfidenceScore:             0.8,
			IsActive:                    true,
		},
		{
			ID:                          2,
			FullName:                    "Maria Reyes",
			CurrentProfessionNormalized: "lawyer",
			OfficeAddressCityNormalized: "Makati",
			ConfidenceScore:             0.8,
			IsActive:                    true,
		},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "I need a lawyer in Makati")
	require.NoError(t, err)
	assert.Equal(t, IntentProfessional, resp.Intent.Type)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, int64(2), resp.Results[0].Member.ID)
	assert.Greater(t, resp.Results[0].Relevance, resp.Results[1].Relevance)
	assert.Contains(t, resp.Results[0].MatchReasons, `profession matches "lawyer"`)
	assert.Contains(t, resp.Results[0].MatchReasons, "works in Makati")
}

func TestSearch_ProfessionalCapsResults(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 30; i++ {
		store.members = append(store.members, model.MemberRecord{
			ID:                          int64(i + 1),
			FullName:                    fmt.Sprintf("Lawyer %d", i+1),
			CurrentProfessionNormalized: "lawyer",
			IsActive:                    true,
		})
	}

	resp, err := NewEngine(store).Search(context.Background(), "I need a lawyer")
	require.NoError(t, err)
	assert.Len(t, resp.Results, professionalLimit)
}

func TestSearch_ProfessionalSpecialization(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Maria Reyes", CurrentProfessionNormalized: "doctor", IsActive: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "i need a heart doctor")
	require.NoError(t, err)
	assert.Equal(t, IntentProfessional, resp.Intent.Type)
	assert.Equal(t, "cardiology", resp.Intent.Specialization)
	require.Len(t, resp.Results, 1)
}

func TestSearch_BatchIntentNormalizesBatch(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Juan Dela Cruz", BatchNormalized: "1995-S", IsActive: true},
		{ID: 2, FullName: "Pedro Santos", BatchNormalized: "2001-B", IsActive: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "batch 95-S")
	require.NoError(t, err)
	assert.Equal(t, IntentBatch, resp.Intent.Type)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Member.ID)
}

func TestSearch_InterestIntent(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Juan Dela Cruz", InterestsHobbies: "basketball, chess", IsActive: true},
		{ID: 2, FullName: "Pedro Santos", InterestsHobbies: "photography", IsActive: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "who likes basketball")
	require.NoError(t, err)
	assert.Equal(t, IntentInterest, resp.Intent.Type)
	require.Len(t, resp.Results, 1)
	assert.Contains(t, resp.Results[0].MatchReasons, "shares interest in basketball")
}

func TestSearch_DemographicSummary(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, HomeAddressCityNormalized: "Makati", CurrentProfessionNormalized: "lawyer", BatchNormalized: "1995-S", IsActive: true},
		{ID: 2, HomeAddressCityNormalized: "Makati", InferredProfession: "Medical", BatchNormalized: "1995-S", IsActive: true},
		{ID: 3, HomeAddressCityNormalized: "Cebu", CurrentProfessionNormalized: "lawyer", IsActive: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "how many members do we have")
	require.NoError(t, err)
	assert.Equal(t, IntentDemographic, resp.Intent.Type)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 3, resp.Summary.Total)
	require.NotEmpty(t, resp.Summary.Locations)
	assert.Equal(t, BreakdownEntry{Key: "Makati", Count: 2}, resp.Summary.Locations[0])
	assert.Equal(t, BreakdownEntry{Key: "lawyer", Count: 2}, resp.Summary.Professions[0])
	assert.Equal(t, BreakdownEntry{Key: "1995-S", Count: 2}, resp.Summary.Batches[0])
}

func TestSearch_GeneralNameLookup(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Juan Dela Cruz", IsActive: true},
		{ID: 2, FullName: "Pedro Santos", IsActive: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "find Juan Dela Cruz")
	require.NoError(t, err)
	assert.Equal(t, IntentGeneral, resp.Intent.Type)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Member.ID)
}

func TestSearch_GeneralStructuredExtraction(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{
			ID:                          1,
			FullName:                    "Juan Dela Cruz",
			CurrentProfessionNormalized: "accountant",
			HomeAddressCityNormalized:   "makati",
			IsActive:                    true,
		},
		{ID: 2, FullName: "Juan Dela Cruz", IsActive: true},
		{
			ID:                          3,
			FullName:                    "Pedro Santos",
			CurrentProfessionNormalized: "accountant",
			HomeAddressCityNormalized:   "makati",
			IsActive:                    true,
		},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "find Juan Dela Cruz the accountant in Makati")
	require.NoError(t, err)
	assert.Equal(t, IntentGeneral, resp.Intent.Type)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Member.ID)
	assert.Contains(t, resp.Results[0].MatchReasons, `profession matches "accountant"`)
	assert.Contains(t, resp.Results[0].MatchReasons, "lives in Makati")
}

func TestSearch_GeneralChapterFilter(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Juan Dela Cruz", SchoolChapterNormalized: "up diliman", IsActive: true},
		{ID: 2, FullName: "Pedro Santos", SchoolChapterNormalized: "ust", IsActive: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "members of the up diliman chapter")
	require.NoError(t, err)
	assert.Equal(t, IntentGeneral, resp.Intent.Type)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Member.ID)
}

func TestSearch_ExcludesDuplicates(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Juan Dela Cruz", HomeAddressCityNormalized: "Makati", IsActive: true},
		{ID: 2, FullName: "Juan Dela Cruz", HomeAddressCityNormalized: "Makati", IsActive: true, IsDuplicate: true},
	}}

	resp, err := NewEngine(store).Search(context.Background(), "who lives in Makati?")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Member.ID)
}

func TestSearchWithOptions_IncludeInactive(t *testing.T) {
	store := &fakeStore{members: []model.MemberRecord{
		{ID: 1, FullName: "Juan Dela Cruz", HomeAddressCityNormalized: "Makati"},
	}}
	engine := NewEngine(store)

	resp, err := engine.Search(context.Background(), "who lives in Makati?")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)

	resp, err = engine.SearchWithOptions(context.Background(), "who lives in Makati?", Options{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Member.ID)
}

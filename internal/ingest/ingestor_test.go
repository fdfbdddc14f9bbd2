package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sj-alumni/directory-cli/internal/match"
	"github.com/sj-alumni/directory-cli/internal/model"
)

// memStore backs ingestor tests, implementing both the ingest store and the
// match engine's store.
type memStore struct {
	members []model.MemberRecord
	nextID  int64

	batches   map[string]*model.ImportBatch
	finalized map[string]*model.ImportResult

	updates map[int64][]model.FieldUpdates
}

func newMemStore() *memStore {
	return &memStore{
		batches:   map[string]*model.ImportBatch{},
		finalized: map[string]*model.ImportResult{},
		updates:   map[int64][]model.FieldUpdates{},
	}
}

func (s *memStore) InsertMember(_ context.Context, m *model.MemberRecord) (int64, error) {
	s.nextID++
	m.ID = s.nextID
	s.members = append(s.members, *m)
	return m.ID, nil
}

func (s *memStore) UpdateMember(_ context.Context, id int64, updates model.FieldUpdates) error {
	s.updates[id] = append(s.updates[id], updates)
	for i := range s.members {
		if s.members[i].ID != id {
			continue
		}
		if v, ok := updates["mobile_phone"].(string); ok {
			s.members[i].MobilePhone = v
		}
		if v, ok := updates["current_profession"].(string); ok {
			s.members[i].CurrentProfession = v
		}
	}
	return nil
}

func (s *memStore) CreateImportBatch(_ context.Context, b *model.ImportBatch) error {
	s.batches[b.ID] = b
	return nil
}

func (s *memStore) FinalizeImportBatch(_ context.Context, id string, result *model.ImportResult) error {
	s.finalized[id] = result
	return nil
}

func (s *memStore) GetMember(_ context.Context, id int64) (*model.MemberRecord, error) {
	for i := range s.members {
		if s.members[i].ID == id {
			m := s.members[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (s *memStore) SearchMembers(_ context.Context, filter model.SearchFilter) ([]model.MemberRecord, error) {
	var out []model.MemberRecord
	for _, m := range s.members {
		if m.IsDuplicate {
			continue
		}
		if filter.Email != "" && m.PrimaryEmail != filter.Email && m.SecondaryEmail != filter.Email {
			continue
		}
		if filter.NameContains != "" &&
			!strings.Contains(m.FullNameNormalized, filter.NameContains) &&
			!strings.Contains(filter.NameContains, m.FullNameNormalized) {
			continue
		}
		out = append(out, m)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *memStore) MarkMerged(_ context.Context, _ int64, _ []int64) error { return nil }

func (s *memStore) FindDuplicateCandidates(_ context.Context, _ int) ([]model.DuplicatePair, error) {
	return nil, nil
}

func newTestIngestor(store *memStore) *Ingestor {
	matcher := match.NewEngine(store, match.DefaultConfig())
	return New(store, matcher, nil)
}

func writeSourceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const rosterCSV = "Name,Email,Batch,Profession,Home Address\n" +
	"\"Dr. Juan Dela Cruz Jr.\",juan@example.ph,Batch 95-S,Lawyer,\"123 Ayala Ave, Makati City\"\n"

func TestRun_CreatesNormalizedRecord(t *testing.T) {
	store := newMemStore()
	path := writeSourceFile(t, t.TempDir(), "roster_1995.csv", rosterCSV)

	batch, err := newTestIngestor(store).Run(context.Background(), "test import", []string{path})
	require.NoError(t, err)
	assert.Equal(t, model.ImportStatusSuccess, batch.Status)
	assert.Equal(t, 1, batch.RecordsCreated)
	require.Len(t, store.members, 1)

	m := store.members[0]
	assert.Equal(t, "Dr. Juan Dela Cruz Jr.", m.FullName)
	assert.Equal(t, "juan dela cruz", m.FullNameNormalized)
	assert.Equal(t, "1995-S", m.BatchNormalized)
	assert.Equal(t, 1995, m.BatchYear)
	assert.Equal(t, "90s", m.BatchEra)
	assert.Equal(t, "Makati", m.HomeAddressCityNormalized)
	assert.Equal(t, "lawyer", m.CurrentProfessionNormalized)
	assert.True(t, m.IsActive)
	require.NotNil(t, m.EstimatedDataVintage)
	assert.Equal(t, 1995, m.EstimatedDataVintage.Year())
	assert.Greater(t, m.ConfidenceScore, 0.0)
}

func TestRun_ReingestIsIdempotent(t *testing.T) {
	store := newMemStore()
	path := writeSourceFile(t, t.TempDir(), "roster_1995.csv", rosterCSV)
	ing := newTestIngestor(store)

	_, err := ing.Run(context.Background(), "first", []string{path})
	require.NoError(t, err)

	batch, err := ing.Run(context.Background(), "second", []string{path})
	require.NoError(t, err)
	assert.Equal(t, 0, batch.RecordsCreated)
	assert.Equal(t, 0, batch.RecordsUpdated)
	assert.Equal(t, 1, batch.RecordsSkipped)
	assert.Len(t, store.members, 1)
}

func TestRun_MergesNewInformation(t *testing.T) {
	store := newMemStore()
	dir := t.TempDir()
	first := writeSourceFile(t, dir, "roster_1995.csv", rosterCSV)
	second := writeSourceFile(t, dir, "update_2003.csv",
		"Name,Email,Mobile\n"+
			"Juan Dela Cruz,juan@example.ph,0917-123-4567\n")
	ing := newTestIngestor(store)

	_, err := ing.Run(context.Background(), "first", []string{first})
	require.NoError(t, err)

	batch, err := ing.Run(context.Background(), "second", []string{second})
	require.NoError(t, err)
	assert.Equal(t, 0, batch.RecordsCreated)
	assert.Equal(t, 1, batch.RecordsUpdated)

	require.Len(t, store.members, 1)
	assert.Equal(t, "0917-123-4567", store.members[0].MobilePhone)
}

func TestRun_EmailListFile(t *testing.T) {
	store := newMemStore()
	path := writeSourceFile(t, t.TempDir(), "names.txt",
		"juan@example.ph\npedro@example.ph\n")

	batch, err := newTestIngestor(store).Run(context.Background(), "emails", []string{path})
	require.NoError(t, err)
	assert.Equal(t, 2, batch.RecordsCreated)
	assert.Len(t, store.members, 2)
}

func TestRun_SkipsAnonymousRows(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	store := newMemStore()
	path := writeSourceFile(t, t.TempDir(), "partial.csv",
		"Name,Batch\n"+
			"Juan Dela Cruz,95-S\n"+
			",2001-B\n")

	batch, err := newTestIngestor(store).Run(context.Background(), "partial", []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, batch.RecordsCreated)
	assert.Equal(t, 1, batch.RecordsSkipped)

	skipped := logs.FilterMessage("ingest: row skipped, no usable name or email").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "partial.csv", skipped[0].ContextMap()["source_file"])
	assert.Equal(t, int64(2), skipped[0].ContextMap()["row"])
}

func TestRun_UnreadableFileMarksPartial(t *testing.T) {
	store := newMemStore()
	dir := t.TempDir()
	good := writeSourceFile(t, dir, "roster_1995.csv", rosterCSV)
	missing := filepath.Join(dir, "missing.csv")

	batch, err := newTestIngestor(store).Run(context.Background(), "mixed", []string{good, missing})
	require.NoError(t, err)
	assert.Equal(t, model.ImportStatusPartial, batch.Status)
	assert.Equal(t, 1, batch.RecordsCreated)
	assert.Equal(t, 1, batch.ErrorsEncountered)
	require.Contains(t, store.finalized, batch.ID)
	assert.Equal(t, model.ImportStatusPartial, store.finalized[batch.ID].Status)
}

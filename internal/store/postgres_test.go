package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sj-alumni/directory-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgres_InsertMember(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO members`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCopyFrom(pgx.Identifier{"member_changes"}, changeCols).WillReturnResult(1)

	m := sampleMember()
	id, err := s.InsertMember(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_AppendChangeLog_UsesCopy(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"member_changes"}, changeCols).WillReturnResult(2)

	entries := []model.ChangeLogEntry{
		{MemberID: 1, FieldName: "mobile_phone", ChangeType: model.ChangeUpdate, ChangedAt: time.Now()},
		{MemberID: 1, FieldName: "home_phone", ChangeType: model.ChangeUpdate, ChangedAt: time.Now()},
	}
	require.NoError(t, s.AppendChangeLog(context.Background(), entries))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_MarkMerged(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE members SET is_duplicate = true`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO member_changes`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, s.MarkMerged(context.Background(), 1, []int64{2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_MarkMerged_MissingDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE members SET is_duplicate = true`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := s.MarkMerged(context.Background(), 1, []int64{999})
	assert.Error(t, err)
}

func TestPostgres_FinalizeImportBatch_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE import_batches`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.FinalizeImportBatch(context.Background(), "missing", &model.ImportResult{
		Status: model.ImportStatusSuccess,
	})
	assert.Error(t, err)
}

func TestPostgres_Stats(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\),`).WillReturnRows(
		pgxmock.NewRows([]string{
			"count", "active", "duplicates", "with_email", "with_profession", "avg_conf", "avg_comp",
		}).AddRow(10, 8, 2, 6, 5, 0.71, 0.55))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM member_changes`).WillReturnRows(
		pgxmock.NewRows([]string{"count"}).AddRow(4))

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, st.TotalMembers)
	assert.Equal(t, 8, st.ActiveMembers)
	assert.Equal(t, 2, st.Duplicates)
	assert.InDelta(t, 0.71, st.AvgConfidence, 1e-9)
	assert.Equal(t, 4, st.ChangesLastWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetMember_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM members WHERE id`).WillReturnError(pgx.ErrNoRows)

	m, err := s.GetMember(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, m)
}

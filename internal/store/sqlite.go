package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sj-alumni/directory-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS members (
	id                                 INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name                          TEXT NOT NULL DEFAULT '',
	full_name_normalized               TEXT NOT NULL DEFAULT '',
	nickname                           TEXT NOT NULL DEFAULT '',
	primary_email                      TEXT NOT NULL DEFAULT '',
	secondary_email                    TEXT NOT NULL DEFAULT '',
	mobile_phone                       TEXT NOT NULL DEFAULT '',
	home_phone                         TEXT NOT NULL DEFAULT '',
	office_phone                       TEXT NOT NULL DEFAULT '',
	current_profession                 TEXT NOT NULL DEFAULT '',
	current_profession_normalized      TEXT NOT NULL DEFAULT '',
	current_company                    TEXT NOT NULL DEFAULT '',
	job_title                          TEXT NOT NULL DEFAULT '',
	services_offered                   TEXT NOT NULL DEFAULT '',
	practice_areas                     TEXT NOT NULL DEFAULT '',
	inferred_profession                TEXT NOT NULL DEFAULT '',
	inferred_profession_confidence     REAL NOT NULL DEFAULT 0,
	inferred_specialization            TEXT NOT NULL DEFAULT '',
	inferred_specialization_confidence REAL NOT NULL DEFAULT 0,
	inferred_work_location             TEXT NOT NULL DEFAULT '',
	inferred_work_location_confidence  REAL NOT NULL DEFAULT 0,
	batch_original                     TEXT NOT NULL DEFAULT '',
	batch_normalized                   TEXT NOT NULL DEFAULT '',
	batch_year                         INTEGER NOT NULL DEFAULT 0,
	batch_semester                     TEXT NOT NULL DEFAULT '',
	batch_sub_number                   INTEGER NOT NULL DEFAULT 0,
	batch_decade                       INTEGER NOT NULL DEFAULT 0,
	batch_era                          TEXT NOT NULL DEFAULT '',
	school_chapter                     TEXT NOT NULL DEFAULT '',
	school_chapter_normalized          TEXT NOT NULL DEFAULT '',
	course                             TEXT NOT NULL DEFAULT '',
	home_address_full                  TEXT NOT NULL DEFAULT '',
	home_address_city                  TEXT NOT NULL DEFAULT '',
	home_address_city_normalized       TEXT NOT NULL DEFAULT '',
	office_address_full                TEXT NOT NULL DEFAULT '',
	office_address_city                TEXT NOT NULL DEFAULT '',
	office_address_city_normalized     TEXT NOT NULL DEFAULT '',
	interests_hobbies                  TEXT NOT NULL DEFAULT '',
	sports_activities                  TEXT NOT NULL DEFAULT '',
	volunteer_work                     TEXT NOT NULL DEFAULT '',
	social_clubs                       TEXT NOT NULL DEFAULT '',
	birth_date                         DATETIME,
	data_completeness_score            REAL NOT NULL DEFAULT 0,
	confidence_score                   REAL NOT NULL DEFAULT 0,
	is_active                          INTEGER NOT NULL DEFAULT 1,
	is_duplicate                       INTEGER NOT NULL DEFAULT 0,
	primary_record_id                  INTEGER REFERENCES members(id),
	source_file_name                   TEXT NOT NULL DEFAULT '',
	imported_from_source               TEXT NOT NULL DEFAULT '',
	estimated_data_vintage             DATETIME,
	created_by                         TEXT NOT NULL DEFAULT '',
	updated_by                         TEXT NOT NULL DEFAULT '',
	created_at                         DATETIME NOT NULL,
	updated_at                         DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS member_changes (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	member_id        INTEGER NOT NULL REFERENCES members(id),
	field_name       TEXT NOT NULL,
	old_value        TEXT NOT NULL DEFAULT '',
	new_value        TEXT NOT NULL DEFAULT '',
	change_type      TEXT NOT NULL,
	change_reason    TEXT NOT NULL DEFAULT '',
	source_file      TEXT NOT NULL DEFAULT '',
	confidence_score REAL,
	changed_at       DATETIME NOT NULL,
	changed_by       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS import_batches (
	id                      TEXT PRIMARY KEY,
	batch_name              TEXT NOT NULL DEFAULT '',
	source_files            TEXT NOT NULL DEFAULT '[]',
	status                  TEXT NOT NULL DEFAULT 'running',
	total_files_processed   INTEGER NOT NULL DEFAULT 0,
	total_records_processed INTEGER NOT NULL DEFAULT 0,
	records_created         INTEGER NOT NULL DEFAULT 0,
	records_updated         INTEGER NOT NULL DEFAULT 0,
	records_skipped         INTEGER NOT NULL DEFAULT 0,
	errors_encountered      INTEGER NOT NULL DEFAULT 0,
	error_log               TEXT NOT NULL DEFAULT '[]',
	started_at              DATETIME NOT NULL,
	completed_at            DATETIME
);

CREATE INDEX IF NOT EXISTS idx_members_name_normalized ON members(full_name_normalized);
CREATE INDEX IF NOT EXISTS idx_members_primary_email ON members(primary_email);
CREATE INDEX IF NOT EXISTS idx_members_batch_normalized ON members(batch_normalized);
CREATE INDEX IF NOT EXISTS idx_members_is_duplicate ON members(is_duplicate);
CREATE INDEX IF NOT EXISTS idx_member_changes_member_id ON member_changes(member_id);
CREATE INDEX IF NOT EXISTS idx_member_changes_changed_at ON member_changes(changed_at);
CREATE INDEX IF NOT EXISTS idx_import_batches_started_at ON import_batches(started_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertMember(ctx context.Context, m *model.MemberRecord) (int64, error) {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(memberCols)), ", ")
	query := fmt.Sprintf(`INSERT INTO members (%s) VALUES (%s)`,
		strings.Join(memberCols, ", "), placeholders)

	res, err := s.db.ExecContext(ctx, query, memberValues(m)...)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: insert member")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: insert member id")
	}
	m.ID = id

	entry := model.ChangeLogEntry{
		MemberID:   id,
		FieldName:  "record",
		NewValue:   m.FullName,
		ChangeType: model.ChangeInsert,
		SourceFile: m.SourceFileName,
		ChangedAt:  now,
		ChangedBy:  m.CreatedBy,
	}
	if err := s.insertChangeEntries(ctx, s.db, []model.ChangeLogEntry{entry}); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLiteStore) GetMember(ctx context.Context, id int64) (*model.MemberRecord, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM members WHERE id = ?`, memberColumnList()), id)
	m, err := scanSQLiteMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get member %d", id)
	}
	return m, nil
}

func (s *SQLiteStore) UpdateMember(ctx context.Context, id int64, updates model.FieldUpdates) error {
	if len(updates) == 0 {
		return nil
	}
	keys := make([]string, 0, len(updates))
	for k := range updates {
		if !updatableCols[k] {
			return eris.Errorf("sqlite: unknown member field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin update")
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM members WHERE id = ?`, memberColumnList()), id)
	existing, err := scanSQLiteMember(row)
	if err == sql.ErrNoRows {
		return eris.Errorf("member not found: %d", id)
	}
	if err != nil {
		return eris.Wrapf(err, "sqlite: load member %d", id)
	}
	old := snapshotValues(existing)

	now := time.Now().UTC()
	var setParts []string
	var args []any
	var entries []model.ChangeLogEntry
	for _, k := range keys {
		v := updates[k]
		setParts = append(setParts, k+" = ?")
		args = append(args, v)
		newValue := fmt.Sprint(v)
		if newValue == old[k] {
			continue
		}
		entries = append(entries, model.ChangeLogEntry{
			MemberID:   id,
			FieldName:  k,
			OldValue:   old[k],
			NewValue:   newValue,
			ChangeType: model.ChangeUpdate,
			ChangedAt:  now,
		})
	}
	setParts = append(setParts, "updated_at = ?")
	args = append(args, now, id)

	query := `UPDATE members SET ` + strings.Join(setParts, ", ") + ` WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return eris.Wrapf(err, "sqlite: update member %d", id)
	}
	if err := s.insertChangeEntries(ctx, tx, entries); err != nil {
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit update")
}

func (s *SQLiteStore) SearchMembers(ctx context.Context, filter model.SearchFilter) ([]model.MemberRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE is_duplicate = 0`, memberColumnList())
	var args []any

	if !filter.IncludeInactive {
		query += ` AND is_active = 1`
	}
	if filter.Name != "" {
		query += ` AND (full_name LIKE ? OR full_name_normalized LIKE ? OR nickname LIKE ?)`
		like := "%" + filter.Name + "%"
		args = append(args, like, like, like)
	}
	if filter.NameContains != "" {
		query += ` AND full_name_normalized != ''
			AND (instr(full_name_normalized, ?) > 0 OR instr(?, full_name_normalized) > 0)`
		args = append(args, filter.NameContains, filter.NameContains)
	}
	if filter.Email != "" {
		query += ` AND (primary_email = ? OR secondary_email = ?)`
		args = append(args, filter.Email, filter.Email)
	}
	if filter.Profession != "" {
		query += ` AND (current_profession LIKE ? OR current_profession_normalized LIKE ? OR inferred_profession LIKE ?)`
		like := "%" + filter.Profession + "%"
		args = append(args, like, like, like)
	}
	if filter.Location != "" {
		query += ` AND (home_address_city_normalized LIKE ? OR office_address_city_normalized LIKE ?
			OR inferred_work_location LIKE ? OR home_address_full LIKE ? OR office_address_full LIKE ?)`
		like := "%" + filter.Location + "%"
		args = append(args, like, like, like, like, like)
	}
	if filter.Batch != "" {
		query += ` AND (batch_normalized = ? OR batch_original LIKE ?)`
		args = append(args, filter.Batch, "%"+filter.Batch+"%")
	}
	if filter.Chapter != "" {
		query += ` AND (school_chapter LIKE ? OR school_chapter_normalized LIKE ?)`
		like := "%" + filter.Chapter + "%"
		args = append(args, like, like)
	}
	if filter.Interests != "" {
		query += ` AND (interests_hobbies LIKE ? OR sports_activities LIKE ?)`
		like := "%" + filter.Interests + "%"
		args = append(args, like, like)
	}
	if filter.Company != "" {
		query += ` AND current_company LIKE ?`
		args = append(args, "%"+filter.Company+"%")
	}

	query += ` ORDER BY confidence_score DESC, full_name_normalized ASC`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: search members")
	}
	defer rows.Close()

	var members []model.MemberRecord
	for rows.Next() {
		m, err := scanSQLiteMember(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan member")
		}
		members = append(members, *m)
	}
	return members, eris.Wrap(rows.Err(), "sqlite: search members iterate")
}

func (s *SQLiteStore) ListMembers(ctx context.Context, limit, offset int) ([]model.MemberRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM members WHERE is_duplicate = 0
			ORDER BY full_name_normalized ASC, id ASC LIMIT ? OFFSET ?`, memberColumnList()),
		limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list members")
	}
	defer rows.Close()

	var members []model.MemberRecord
	for rows.Next() {
		m, err := scanSQLiteMember(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan member")
		}
		members = append(members, *m)
	}
	return members, eris.Wrap(rows.Err(), "sqlite: list members iterate")
}

func (s *SQLiteStore) DeactivateMember(ctx context.Context, id int64, reason string) error {
	return s.setActive(ctx, id, false, reason)
}

func (s *SQLiteStore) RestoreMember(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, true, "restored")
}

func (s *SQLiteStore) setActive(ctx context.Context, id int64, active bool, reason string) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin set active")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE members SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, now, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set active %d", id)
	}
	if err := checkRowsAffected(res, "member", id); err != nil {
		return err
	}

	entry := model.ChangeLogEntry{
		MemberID:     id,
		FieldName:    "is_active",
		OldValue:     strconv.FormatBool(!active),
		NewValue:     strconv.FormatBool(active),
		ChangeType:   model.ChangeUpdate,
		ChangeReason: reason,
		ChangedAt:    now,
	}
	if err := s.insertChangeEntries(ctx, tx, []model.ChangeLogEntry{entry}); err != nil {
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit set active")
}

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) insertChangeEntries(ctx context.Context, ex sqlExecer, entries []model.ChangeLogEntry) error {
	for _, e := range entries {
		_, err := ex.ExecContext(ctx,
			`INSERT INTO member_changes
			 (member_id, field_name, old_value, new_value, change_type, change_reason, source_file, confidence_score, changed_at, changed_by)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.MemberID, e.FieldName, e.OldValue, e.NewValue, string(e.ChangeType),
			e.ChangeReason, e.SourceFile, e.ConfidenceScore, e.ChangedAt, e.ChangedBy)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert change for member %d", e.MemberID)
		}
	}
	return nil
}

func (s *SQLiteStore) AppendChangeLog(ctx context.Context, entries []model.ChangeLogEntry) error {
	return s.insertChangeEntries(ctx, s.db, entries)
}

func (s *SQLiteStore) GetChangeLog(ctx context.Context, memberID int64, limit int) ([]model.ChangeLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, field_name, old_value, new_value, change_type, change_reason, source_file, confidence_score, changed_at, changed_by
		 FROM member_changes WHERE member_id = ?
		 ORDER BY changed_at DESC, id DESC LIMIT ?`,
		memberID, limit)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get change log %d", memberID)
	}
	defer rows.Close()

	var entries []model.ChangeLogEntry
	for rows.Next() {
		var e model.ChangeLogEntry
		var confidence sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.MemberID, &e.FieldName, &e.OldValue, &e.NewValue,
			&e.ChangeType, &e.ChangeReason, &e.SourceFile, &confidence, &e.ChangedAt, &e.ChangedBy); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan change entry")
		}
		if confidence.Valid {
			e.ConfidenceScore = &confidence.Float64
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: get change log iterate")
}

func (s *SQLiteStore) FindDuplicateCandidates(ctx context.Context, limit int) ([]model.DuplicatePair, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.full_name, a.primary_email, b.id, b.full_name, b.primary_email,
			CASE WHEN a.primary_email != '' AND a.primary_email = b.primary_email
				THEN 'email_match' ELSE 'name_similarity' END AS match_type
		 FROM members a
		 JOIN members b ON a.id < b.id
		 WHERE a.is_duplicate = 0 AND b.is_duplicate = 0
		   AND ((a.primary_email != '' AND a.primary_email = b.primary_email)
			OR (a.full_name_normalized != '' AND b.full_name_normalized != ''
				AND (instr(a.full_name_normalized, b.full_name_normalized) > 0
					OR instr(b.full_name_normalized, a.full_name_normalized) > 0)))
		 ORDER BY a.id, b.id LIMIT ?`,
		limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: find duplicate candidates")
	}
	defer rows.Close()

	var pairs []model.DuplicatePair
	for rows.Next() {
		var p model.DuplicatePair
		if err := rows.Scan(&p.ID1, &p.Name1, &p.Email1, &p.ID2, &p.Name2, &p.Email2, &p.MatchType); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan duplicate pair")
		}
		pairs = append(pairs, p)
	}
	return pairs, eris.Wrap(rows.Err(), "sqlite: find duplicate candidates iterate")
}

func (s *SQLiteStore) MarkMerged(ctx context.Context, primaryID int64, duplicateIDs []int64) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin merge")
	}
	defer tx.Rollback()

	for _, dupID := range duplicateIDs {
		res, err := tx.ExecContext(ctx,
			`UPDATE members SET is_duplicate = 1, primary_record_id = ?, updated_at = ? WHERE id = ?`,
			primaryID, now, dupID)
		if err != nil {
			return eris.Wrapf(err, "sqlite: mark merged %d", dupID)
		}
		if err := checkRowsAffected(res, "member", dupID); err != nil {
			return err
		}

		entry := model.ChangeLogEntry{
			MemberID:     dupID,
			FieldName:    "primary_record_id",
			NewValue:     strconv.FormatInt(primaryID, 10),
			ChangeType:   model.ChangeMerge,
			ChangeReason: "merged into primary record",
			ChangedAt:    now,
		}
		if err := s.insertChangeEntries(ctx, tx, []model.ChangeLogEntry{entry}); err != nil {
			return err
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit merge")
}

func (s *SQLiteStore) CreateImportBatch(ctx context.Context, b *model.ImportBatch) error {
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now().UTC()
	}
	if b.Status == "" {
		b.Status = model.ImportStatusRunning
	}
	filesJSON, err := json.Marshal(b.SourceFiles)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal source files")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO import_batches (id, batch_name, source_files, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.BatchName, string(filesJSON), string(b.Status), b.StartedAt)
	return eris.Wrap(err, "sqlite: create import batch")
}

func (s *SQLiteStore) FinalizeImportBatch(ctx context.Context, id string, result *model.ImportResult) error {
	errorsJSON, err := json.Marshal(result.ErrorLog)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal error log")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE import_batches SET status = ?, total_files_processed = ?, total_records_processed = ?,
			records_created = ?, records_updated = ?, records_skipped = ?, errors_encountered = ?,
			error_log = ?, completed_at = ?
		 WHERE id = ?`,
		string(result.Status), result.TotalFilesProcessed, result.TotalRecordsProcessed,
		result.RecordsCreated, result.RecordsUpdated, result.RecordsSkipped, len(result.ErrorLog),
		string(errorsJSON), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finalize import batch %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("import batch not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) ListImportBatches(ctx context.Context, limit int) ([]model.ImportBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, batch_name, source_files, status, total_files_processed, total_records_processed,
			records_created, records_updated, records_skipped, errors_encountered, error_log,
			started_at, completed_at
		 FROM import_batches ORDER BY started_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list import batches")
	}
	defer rows.Close()

	var batches []model.ImportBatch
	for rows.Next() {
		var b model.ImportBatch
		var filesJSON, errorsJSON string
		var completedAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.BatchName, &filesJSON, &b.Status,
			&b.TotalFilesProcessed, &b.TotalRecordsProcessed, &b.RecordsCreated,
			&b.RecordsUpdated, &b.RecordsSkipped, &b.ErrorsEncountered,
			&errorsJSON, &b.StartedAt, &completedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan import batch")
		}
		if err := json.Unmarshal([]byte(filesJSON), &b.SourceFiles); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal source files")
		}
		if err := json.Unmarshal([]byte(errorsJSON), &b.ErrorLog); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal error log")
		}
		if completedAt.Valid {
			b.CompletedAt = &completedAt.Time
		}
		batches = append(batches, b)
	}
	return batches, eris.Wrap(rows.Err(), "sqlite: list import batches iterate")
}

func (s *SQLiteStore) Stats(ctx context.Context) (*model.SystemStats, error) {
	var st model.SystemStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN is_active = 1 AND is_duplicate = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(is_duplicate), 0),
			COALESCE(SUM(CASE WHEN primary_email != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN current_profession != '' OR inferred_profession != '' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(confidence_score), 0),
			COALESCE(AVG(data_completeness_score), 0)
		 FROM members`).Scan(
		&st.TotalMembers, &st.ActiveMembers, &st.Duplicates,
		&st.MembersWithEmail, &st.MembersWithProfession,
		&st.AvgConfidence, &st.AvgCompleteness)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: stats")
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM member_changes WHERE changed_at >= datetime('now', '-7 days')`).
		Scan(&st.ChangesLastWeek)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: stats changes")
	}
	return &st, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %d", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSQLiteMember(row scannable) (*model.MemberRecord, error) {
	var m model.MemberRecord
	var birthDate, vintage sql.NullTime
	var primaryRecordID sql.NullInt64

	err := row.Scan(
		&m.ID,
		&m.FullName, &m.FullNameNormalized, &m.Nickname,
		&m.PrimaryEmail, &m.SecondaryEmail, &m.MobilePhone, &m.HomePhone, &m.OfficePhone,
		&m.CurrentProfession, &m.CurrentProfessionNormalized, &m.CurrentCompany,
		&m.JobTitle, &m.ServicesOffered, &m.PracticeAreas,
		&m.InferredProfession, &m.InferredProfessionConfidence,
		&m.InferredSpecialization, &m.InferredSpecializationConfidence,
		&m.InferredWorkLocation, &m.InferredWorkLocationConfidence,
		&m.BatchOriginal, &m.BatchNormalized, &m.BatchYear, &m.BatchSemester,
		&m.BatchSubNumber, &m.BatchDecade, &m.BatchEra,
		&m.SchoolChapter, &m.SchoolChapterNormalized, &m.Course,
		&m.HomeAddressFull, &m.HomeAddressCity, &m.HomeAddressCityNormalized,
		&m.OfficeAddressFull, &m.OfficeAddressCity, &m.OfficeAddressCityNormalized,
		&m.InterestsHobbies, &m.SportsActivities, &m.VolunteerWork, &m.SocialClubs,
		&birthDate,
		&m.DataCompletenessScore, &m.ConfidenceScore,
		&m.IsActive, &m.IsDuplicate, &primaryRecordID,
		&m.SourceFileName, &m.ImportedFromSource, &vintage,
		&m.CreatedBy, &m.UpdatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthDate.Valid {
		m.BirthDate = &birthDate.Time
	}
	if vintage.Valid {
		m.EstimatedDataVintage = &vintage.Time
	}
	if primaryRecordID.Valid {
		m.PrimaryRecordID = &primaryRecordID.Int64
	}
	return &m, nil
}

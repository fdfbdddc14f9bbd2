package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sj-alumni/directory-cli/internal/db"
	"github.com/sj-alumni/directory-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS members (
	id                                 BIGSERIAL PRIMARY KEY,
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
	inferred_profession_confidence     DOUBLE PRECISION NOT NULL DEFAULT 0,
	inferred_specialization            TEXT NOT NULL DEFAULT '',
	inferred_specialization_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	inferred_work_location             TEXT NOT NULL DEFAULT '',
	inferred_work_location_confidence  DOUBLE PRECISION NOT NULL DEFAULT 0,
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
	birth_date                         TIMESTAMPTZ,
	data_completeness_score            DOUBLE PRECISION NOT NULL DEFAULT 0,
	confidence_score                   DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_active                          BOOLEAN NOT NULL DEFAULT true,
	is_duplicate                       BOOLEAN NOT NULL DEFAULT false,
	primary_record_id                  BIGINT REFERENCES members(id),
	source_file_name                   TEXT NOT NULL DEFAULT '',
	imported_from_source               TEXT NOT NULL DEFAULT '',
	estimated_data_vintage             TIMESTAMPTZ,
	created_by                         TEXT NOT NULL DEFAULT '',
	updated_by                         TEXT NOT NULL DEFAULT '',
	created_at                         TIMESTAMPTZ NOT NULL,
	updated_at                         TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS member_changes (
	id               BIGSERIAL PRIMARY KEY,
	member_id        BIGINT NOT NULL REFERENCES members(id),
	field_name       TEXT NOT NULL,
	old_value        TEXT NOT NULL DEFAULT '',
	new_value        TEXT NOT NULL DEFAULT '',
	change_type      TEXT NOT NULL,
	change_reason    TEXT NOT NULL DEFAULT '',
	source_file      TEXT NOT NULL DEFAULT '',
	confidence_score DOUBLE PRECISION,
	changed_at       TIMESTAMPTZ NOT NULL,
	changed_by       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS import_batches (
	id                      TEXT PRIMARY KEY,
	batch_name              TEXT NOT NULL DEFAULT '',
	source_files            JSONB NOT NULL DEFAULT '[]',
	status                  TEXT NOT NULL DEFAULT 'running',
	total_files_processed   INTEGER NOT NULL DEFAULT 0,
	total_records_processed INTEGER NOT NULL DEFAULT 0,
	records_created         INTEGER NOT NULL DEFAULT 0,
	records_updated         INTEGER NOT NULL DEFAULT 0,
	records_skipped         INTEGER NOT NULL DEFAULT 0,
	errors_encountered      INTEGER NOT NULL DEFAULT 0,
	error_log               JSONB NOT NULL DEFAULT '[]',
	started_at              TIMESTAMPTZ NOT NULL,
	completed_at            TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_members_name_normalized ON members(full_name_normalized);
CREATE INDEX IF NOT EXISTS idx_members_primary_email ON members(primary_email);
CREATE INDEX IF NOT EXISTS idx_members_batch_normalized ON members(batch_normalized);
CREATE INDEX IF NOT EXISTS idx_members_is_duplicate ON members(is_duplicate);
CREATE INDEX IF NOT EXISTS idx_member_changes_member_id ON member_changes(member_id);
CREATE INDEX IF NOT EXISTS idx_member_changes_changed_at ON member_changes(changed_at);
CREATE INDEX IF NOT EXISTS idx_import_batches_started_at ON import_batches(started_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func pgPlaceholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(i+1)
	}
	return strings.Join(parts, ", ")
}

func (s *PostgresStore) InsertMember(ctx context.Context, m *model.MemberRecord) (int64, error) {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO members (%s) VALUES (%s) RETURNING id`,
		strings.Join(memberCols, ", "), pgPlaceholders(len(memberCols)))

	var id int64
	if err := s.pool.QueryRow(ctx, query, memberValues(m)...).Scan(&id); err != nil {
		return 0, eris.Wrap(err, "postgres: insert member")
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
	if err := s.AppendChangeLog(ctx, []model.ChangeLogEntry{entry}); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PostgresStore) GetMember(ctx context.Context, id int64) (*model.MemberRecord, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM members WHERE id = $1`, memberColumnList()), id)
	m, err := scanPostgresMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get member %d", id)
	}
	return m, nil
}

func (s *PostgresStore) UpdateMember(ctx context.Context, id int64, updates model.FieldUpdates) error {
	if len(updates) == 0 {
		return nil
	}
	keys := make([]string, 0, len(updates))
	for k := range updates {
		if !updatableCols[k] {
			return eris.Errorf("postgres: unknown member field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin update")
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM members WHERE id = $1`, memberColumnList()), id)
	existing, err := scanPostgresMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return eris.Errorf("member not found: %d", id)
	}
	if err != nil {
		return eris.Wrapf(err, "postgres: load member %d", id)
	}
	old := snapshotValues(existing)

	now := time.Now().UTC()
	var setParts []string
	var args []any
	var entries []model.ChangeLogEntry
	for _, k := range keys {
		v := updates[k]
		args = append(args, v)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", k, len(args)))
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
	args = append(args, now)
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE members SET %s WHERE id = $%d`,
		strings.Join(setParts, ", "), len(args))
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return eris.Wrapf(err, "postgres: update member %d", id)
	}

	for _, e := range entries {
		if err := insertChangeEntryTx(ctx, tx, e); err != nil {
			return err
		}
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit update")
}

func (s *PostgresStore) SearchMembers(ctx context.Context, filter model.SearchFilter) ([]model.MemberRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE is_duplicate = false`, memberColumnList())
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !filter.IncludeInactive {
		query += ` AND is_active = true`
	}
	if filter.Name != "" {
		like := next("%" + filter.Name + "%")
		query += fmt.Sprintf(` AND (full_name ILIKE %s OR full_name_normalized ILIKE %s OR nickname ILIKE %s)`,
			like, like, like)
	}
	if filter.NameContains != "" {
		p := next(filter.NameContains)
		query += fmt.Sprintf(` AND full_name_normalized != ''
			AND (strpos(full_name_normalized, %s) > 0 OR strpos(%s, full_name_normalized) > 0)`, p, p)
	}
	if filter.Email != "" {
		p := next(filter.Email)
		query += fmt.Sprintf(` AND (primary_email = %s OR secondary_email = %s)`, p, p)
	}
	if filter.Profession != "" {
		like := next("%" + filter.Profession + "%")
		query += fmt.Sprintf(` AND (current_profession ILIKE %s OR current_profession_normalized ILIKE %s OR inferred_profession ILIKE %s)`,
			like, like, like)
	}
	if filter.Location != "" {
		like := next("%" + filter.Location + "%")
		query += fmt.Sprintf(` AND (home_address_city_normalized ILIKE %s OR office_address_city_normalized ILIKE %s
			OR inferred_work_location ILIKE %s OR home_address_full ILIKE %s OR office_address_full ILIKE %s)`,
			like, like, like, like, like)
	}
	if filter.Batch != "" {
		eq := next(filter.Batch)
		like := next("%" + filter.Batch + "%")
		query += fmt.Sprintf(` AND (batch_normalized = %s OR batch_original ILIKE %s)`, eq, like)
	}
	if filter.Chapter != "" {
		like := next("%" + filter.Chapter + "%")
		query += fmt.Sprintf(` AND (school_chapter ILIKE %s OR school_chapter_normalized ILIKE %s)`, like, like)
	}
	if filter.Interests != "" {
		like := next("%" + filter.Interests + "%")
		query += fmt.Sprintf(` AND (interests_hobbies ILIKE %s OR sports_activities ILIKE %s)`, like, like)
	}
	if filter.Company != "" {
		like := next("%" + filter.Company + "%")
		query += fmt.Sprintf(` AND current_company ILIKE %s`, like)
	}

	query += ` ORDER BY confidence_score DESC, full_name_normalized ASC`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT %s`, next(limit))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: search members")
	}
	defer rows.Close()

	var members []model.MemberRecord
	for rows.Next() {
		m, err := scanPostgresMember(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan member")
		}
		members = append(members, *m)
	}
	return members, eris.Wrap(rows.Err(), "postgres: search members iterate")
}

func (s *PostgresStore) ListMembers(ctx context.Context, limit, offset int) ([]model.MemberRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM members WHERE is_duplicate = false
			ORDER BY full_name_normalized ASC, id ASC LIMIT $1 OFFSET $2`, memberColumnList()),
		limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list members")
	}
	defer rows.Close()

	var members []model.MemberRecord
	for rows.Next() {
		m, err := scanPostgresMember(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan member")
		}
		members = append(members, *m)
	}
	return members, eris.Wrap(rows.Err(), "postgres: list members iterate")
}

func (s *PostgresStore) DeactivateMember(ctx context.Context, id int64, reason string) error {
	return s.setActive(ctx, id, false, reason)
}

func (s *PostgresStore) RestoreMember(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, true, "restored")
}

func (s *PostgresStore) setActive(ctx context.Context, id int64, active bool, reason string) error {
	now := time.Now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin set active")
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE members SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, now, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: set active %d", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("member not found: %d", id)
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
	if err := insertChangeEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit set active")
}

var changeCols = []string{
	"member_id", "field_name", "old_value", "new_value", "change_type",
	"change_reason", "source_file", "confidence_score", "changed_at", "changed_by",
}

func insertChangeEntryTx(ctx context.Context, tx pgx.Tx, e model.ChangeLogEntry) error {
	_, err := tx.Exec(ctx,
		fmt.Sprintf(`INSERT INTO member_changes (%s) VALUES (%s)`,
			strings.Join(changeCols, ", "), pgPlaceholders(len(changeCols))),
		e.MemberID, e.FieldName, e.OldValue, e.NewValue, string(e.ChangeType),
		e.ChangeReason, e.SourceFile, e.ConfidenceScore, e.ChangedAt, e.ChangedBy)
	return eris.Wrapf(err, "postgres: insert change for member %d", e.MemberID)
}

// AppendChangeLog bulk-inserts audit entries with COPY.
func (s *PostgresStore) AppendChangeLog(ctx context.Context, entries []model.ChangeLogEntry) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.MemberID, e.FieldName, e.OldValue, e.NewValue, string(e.ChangeType),
			e.ChangeReason, e.SourceFile, e.ConfidenceScore, e.ChangedAt, e.ChangedBy,
		})
	}
	_, err := db.CopyFrom(ctx, s.pool, "member_changes", changeCols, rows)
	return err
}

func (s *PostgresStore) GetChangeLog(ctx context.Context, memberID int64, limit int) ([]model.ChangeLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, member_id, field_name, old_value, new_value, change_type, change_reason, source_file, confidence_score, changed_at, changed_by
		 FROM member_changes WHERE member_id = $1
		 ORDER BY changed_at DESC, id DESC LIMIT $2`,
		memberID, limit)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get change log %d", memberID)
	}
	defer rows.Close()

	var entries []model.ChangeLogEntry
	for rows.Next() {
		var e model.ChangeLogEntry
		if err := rows.Scan(&e.ID, &e.MemberID, &e.FieldName, &e.OldValue, &e.NewValue,
			&e.ChangeType, &e.ChangeReason, &e.SourceFile, &e.ConfidenceScore, &e.ChangedAt, &e.ChangedBy); err != nil {
			return nil, eris.Wrap(err, "postgres: scan change entry")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: get change log iterate")
}

func (s *PostgresStore) FindDuplicateCandidates(ctx context.Context, limit int) ([]model.DuplicatePair, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.full_name, a.primary_email, b.id, b.full_name, b.primary_email,
			CASE WHEN a.primary_email != '' AND a.primary_email = b.primary_email
				THEN 'email_match' ELSE 'name_similarity' END AS match_type
		 FROM members a
		 JOIN members b ON a.id < b.id
		 WHERE a.is_duplicate = false AND b.is_duplicate = false
		   AND ((a.primary_email != '' AND a.primary_email = b.primary_email)
			OR (a.full_name_normalized != '' AND b.full_name_normalized != ''
				AND (strpos(a.full_name_normalized, b.full_name_normalized) > 0
					OR strpos(b.full_name_normalized, a.full_name_normalized) > 0)))
		 ORDER BY a.id, b.id LIMIT $1`,
		limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: find duplicate candidates")
	}
	defer rows.Close()

	var pairs []model.DuplicatePair
	for rows.Next() {
		var p model.DuplicatePair
		if err := rows.Scan(&p.ID1, &p.Name1, &p.Email1, &p.ID2, &p.Name2, &p.Email2, &p.MatchType); err != nil {
			return nil, eris.Wrap(err, "postgres: scan duplicate pair")
		}
		pairs = append(pairs, p)
	}
	return pairs, eris.Wrap(rows.Err(), "postgres: find duplicate candidates iterate")
}

func (s *PostgresStore) MarkMerged(ctx context.Context, primaryID int64, duplicateIDs []int64) error {
	now := time.Now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin merge")
	}
	defer tx.Rollback(ctx)

	for _, dupID := range duplicateIDs {
		tag, err := tx.Exec(ctx,
			`UPDATE members SET is_duplicate = true, primary_record_id = $1, updated_at = $2 WHERE id = $3`,
			primaryID, now, dupID)
		if err != nil {
			return eris.Wrapf(err, "postgres: mark merged %d", dupID)
		}
		if tag.RowsAffected() == 0 {
			return eris.Errorf("member not found: %d", dupID)
		}

		entry := model.ChangeLogEntry{
			MemberID:     dupID,
			FieldName:    "primary_record_id",
			NewValue:     strconv.FormatInt(primaryID, 10),
			ChangeType:   model.ChangeMerge,
			ChangeReason: "merged into primary record",
			ChangedAt:    now,
		}
		if err := insertChangeEntryTx(ctx, tx, entry); err != nil {
			return err
		}
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit merge")
}

func (s *PostgresStore) CreateImportBatch(ctx context.Context, b *model.ImportBatch) error {
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now().UTC()
	}
	if b.Status == "" {
		b.Status = model.ImportStatusRunning
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO import_batches (id, batch_name, source_files, status, started_at) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.BatchName, b.SourceFiles, string(b.Status), b.StartedAt)
	return eris.Wrap(err, "postgres: create import batch")
}

func (s *PostgresStore) FinalizeImportBatch(ctx context.Context, id string, result *model.ImportResult) error {
	errorLog := result.ErrorLog
	if errorLog == nil {
		errorLog = []string{}
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE import_batches SET status = $1, total_files_processed = $2, total_records_processed = $3,
			records_created = $4, records_updated = $5, records_skipped = $6, errors_encountered = $7,
			error_log = $8, completed_at = $9
		 WHERE id = $10`,
		string(result.Status), result.TotalFilesProcessed, result.TotalRecordsProcessed,
		result.RecordsCreated, result.RecordsUpdated, result.RecordsSkipped, len(errorLog),
		errorLog, time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "postgres: finalize import batch %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("import batch not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) ListImportBatches(ctx context.Context, limit int) ([]model.ImportBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, batch_name, source_files, status, total_files_processed, total_records_processed,
			records_created, records_updated, records_skipped, errors_encountered, error_log,
			started_at, completed_at
		 FROM import_batches ORDER BY started_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list import batches")
	}
	defer rows.Close()

	var batches []model.ImportBatch
	for rows.Next() {
		var b model.ImportBatch
		if err := rows.Scan(&b.ID, &b.BatchName, &b.SourceFiles, &b.Status,
			&b.TotalFilesProcessed, &b.TotalRecordsProcessed, &b.RecordsCreated,
			&b.RecordsUpdated, &b.RecordsSkipped, &b.ErrorsEncountered,
			&b.ErrorLog, &b.StartedAt, &b.CompletedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan import batch")
		}
		batches = append(batches, b)
	}
	return batches, eris.Wrap(rows.Err(), "postgres: list import batches iterate")
}

func (s *PostgresStore) Stats(ctx context.Context) (*model.SystemStats, error) {
	var st model.SystemStats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN is_active AND NOT is_duplicate THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_duplicate THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN primary_email != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN current_profession != '' OR inferred_profession != '' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(confidence_score), 0),
			COALESCE(AVG(data_completeness_score), 0)
		 FROM members`).Scan(
		&st.TotalMembers, &st.ActiveMembers, &st.Duplicates,
		&st.MembersWithEmail, &st.MembersWithProfession,
		&st.AvgConfidence, &st.AvgCompleteness)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: stats")
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM member_changes WHERE changed_at >= now() - interval '7 days'`).
		Scan(&st.ChangesLastWeek)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: stats changes")
	}
	return &st, nil
}

func scanPostgresMember(row pgx.Row) (*model.MemberRecord, error) {
	var m model.MemberRecord
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
		&m.BirthDate,
		&m.DataCompletenessScore, &m.ConfidenceScore,
		&m.IsActive, &m.IsDuplicate, &m.PrimaryRecordID,
		&m.SourceFileName, &m.ImportedFromSource, &m.EstimatedDataVintage,
		&m.CreatedBy, &m.UpdatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Package ingest turns raw source rows into normalized, deduplicated
// member records: field mapping, normalization, inference, quality scoring,
// and match-or-create against the store, all under an ImportBatch audit
// record.
package ingest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sj-alumni/directory-cli/internal/fetcher"
	"github.com/sj-alumni/directory-cli/internal/infer"
	"github.com/sj-alumni/directory-cli/internal/match"
	"github.com/sj-alumni/directory-cli/internal/model"
	"github.com/sj-alumni/directory-cli/internal/textnorm"
)

// Store defines the persistence operations the ingestor needs.
type Store interface {
	InsertMember(ctx context.Context, m *model.MemberRecord) (int64, error)
	UpdateMember(ctx context.Context, id int64, updates model.FieldUpdates) error
	CreateImportBatch(ctx context.Context, b *model.ImportBatch) error
	FinalizeImportBatch(ctx context.Context, id string, result *model.ImportResult) error
}

// readConcurrency bounds parallel source file reads.
const readConcurrency = 4

// Ingestor drives one import run end to end.
type Ingestor struct {
	store      Store
	matcher    *match.Engine
	inferencer *infer.Inferencer
}

// New creates an ingestor. A nil inferencer disables attribute inference.
func New(store Store, matcher *match.Engine, inferencer *infer.Inferencer) *Ingestor {
	return &Ingestor{store: store, matcher: matcher, inferencer: inferencer}
}

// Run imports the given source files under a fresh batch. File read and
// per-row problems are logged on the batch and do not abort it; a store
// failure marks the batch failed and propagates.
func (ing *Ingestor) Run(ctx context.Context, batchName string, paths []string) (*model.ImportBatch, error) {
	batch := &model.ImportBatch{
		ID:          uuid.NewString(),
		BatchName:   batchName,
		SourceFiles: paths,
		Status:      model.ImportStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if err := ing.store.CreateImportBatch(ctx, batch); err != nil {
		return nil, eris.Wrap(err, "ingest: create import batch")
	}

	zap.L().Info("ingest: starting import",
		zap.String("batch_id", batch.ID),
		zap.Int("files", len(paths)),
	)

	// Files are read concurrently; record ingestion stays sequential so
	// duplicate resolution sees every previously ingested row.
	files := make([]*fetcher.FileData, len(paths))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			data, err := fetcher.ReadFile(gctx, path)
			if err != nil {
				mu.Lock()
				batch.ErrorLog = append(batch.ErrorLog, eris.ToString(err, false))
				mu.Unlock()
				zap.L().Warn("ingest: file read failed", zap.String("path", path), zap.Error(err))
				return nil
			}
			files[i] = data
			return nil
		})
	}
	_ = g.Wait()

	for _, data := range files {
		if data == nil {
			continue
		}
		if err := ing.ingestFile(ctx, batch, data); err != nil {
			return ing.fail(ctx, batch, err)
		}
		batch.TotalFilesProcessed++
	}

	batch.Status = model.ImportStatusSuccess
	if len(batch.ErrorLog) > 0 {
		batch.Status = model.ImportStatusPartial
	}
	batch.ErrorsEncountered = len(batch.ErrorLog)
	now := time.Now().UTC()
	batch.CompletedAt = &now

	if err := ing.store.FinalizeImportBatch(ctx, batch.ID, batchResult(batch)); err != nil {
		return nil, eris.Wrap(err, "ingest: finalize import batch")
	}

	zap.L().Info("ingest: import completed",
		zap.String("batch_id", batch.ID),
		zap.String("status", string(batch.Status)),
		zap.Int("created", batch.RecordsCreated),
		zap.Int("updated", batch.RecordsUpdated),
		zap.Int("skipped", batch.RecordsSkipped),
		zap.Int("errors", batch.ErrorsEncountered),
	)
	return batch, nil
}

func (ing *Ingestor) fail(ctx context.Context, batch *model.ImportBatch, cause error) (*model.ImportBatch, error) {
	batch.Status = model.ImportStatusFailed
	batch.ErrorLog = append(batch.ErrorLog, eris.ToString(cause, false))
	batch.ErrorsEncountered = len(batch.ErrorLog)
	now := time.Now().UTC()
	batch.CompletedAt = &now
	if err := ing.store.FinalizeImportBatch(ctx, batch.ID, batchResult(batch)); err != nil {
		zap.L().Error("ingest: finalize failed batch", zap.Error(err))
	}
	return batch, cause
}

func batchResult(b *model.ImportBatch) *model.ImportResult {
	return &model.ImportResult{
		Status:                b.Status,
		TotalFilesProcessed:   b.TotalFilesProcessed,
		TotalRecordsProcessed: b.TotalRecordsProcessed,
		RecordsCreated:        b.RecordsCreated,
		RecordsUpdated:        b.RecordsUpdated,
		RecordsSkipped:        b.RecordsSkipped,
		ErrorLog:              b.ErrorLog,
	}
}

func (ing *Ingestor) ingestFile(ctx context.Context, batch *model.ImportBatch, data *fetcher.FileData) error {
	for i, record := range data.Records {
		fields, ok := MapRecord(record)
		if !ok {
			batch.RecordsSkipped++
			zap.L().Warn("ingest: row skipped, no usable name or email",
				zap.String("source_file", data.Meta.FileName),
				zap.Int("row", i+1),
			)
			continue
		}
		if err := ing.ingestRecord(ctx, batch, fields, data.Meta); err != nil {
			return err
		}
	}
	for _, email := range data.Emails {
		fields := map[string]string{"primary_email": email}
		if err := ing.ingestRecord(ctx, batch, fields, data.Meta); err != nil {
			return err
		}
	}
	return nil
}

func (ing *Ingestor) ingestRecord(ctx context.Context, batch *model.ImportBatch, fields map[string]string, meta fetcher.SourceMeta) error {
	batch.TotalRecordsProcessed++

	m := BuildRecord(fields, meta)
	ing.normalize(m)

	existing, err := ing.matcher.FindExisting(ctx, m)
	if err != nil {
		return eris.Wrap(err, "ingest: resolve record")
	}

	if existing == nil {
		id, err := ing.store.InsertMember(ctx, m)
		if err != nil {
			return eris.Wrap(err, "ingest: insert member")
		}
		batch.RecordsCreated++
		zap.L().Debug("ingest: created member",
			zap.Int64("member_id", id),
			zap.String("source_file", meta.FileName),
		)
		return nil
	}

	updates := ing.matcher.MergeFields(existing, m)
	if len(updates) == 0 {
		batch.RecordsSkipped++
		return nil
	}
	if err := ing.store.UpdateMember(ctx, existing.ID, updates); err != nil {
		return eris.Wrap(err, "ingest: update member")
	}
	batch.RecordsUpdated++
	zap.L().Debug("ingest: updated member",
		zap.Int64("member_id", existing.ID),
		zap.Int("fields", len(updates)),
		zap.String("source_file", meta.FileName),
	)
	return nil
}

// BuildRecord assembles a member record from mapped fields and file
// provenance. Normalization and scoring happen separately.
func BuildRecord(fields map[string]string, meta fetcher.SourceMeta) *model.MemberRecord {
	m := &model.MemberRecord{
		FullName:          fields["full_name"],
		Nickname:          fields["nickname"],
		PrimaryEmail:      fields["primary_email"],
		MobilePhone:       fields["mobile_phone"],
		HomePhone:         fields["home_phone"],
		OfficePhone:       fields["office_phone"],
		CurrentProfession: fields["current_profession"],
		CurrentCompany:    fields["current_company"],
		BatchOriginal:     fields["batch_original"],
		SchoolChapter:     fields["school_chapter"],
		Course:            fields["course"],
		HomeAddressFull:   fields["home_address_full"],
		OfficeAddressFull: fields["office_address_full"],
		InterestsHobbies:  fields["interests_hobbies"],
		SportsActivities:  fields["sports_activities"],
		IsActive:          true,

		SourceFileName:     meta.FileName,
		ImportedFromSource: meta.FilePath,
	}
	if bd := parseDate(fields["birth_date"]); bd != nil {
		m.BirthDate = bd
	}
	vintage := EstimateVintage(meta.FileName, meta.ModTime)
	m.EstimatedDataVintage = &vintage
	return m
}

// normalize derives every computed field on the record: normalized text
// forms, extracted cities, inferred attributes, and quality scores.
func (ing *Ingestor) normalize(m *model.MemberRecord) {
	if m.FullName != "" {
		m.FullNameNormalized = textnorm.NormalizeName(m.FullName)
	}
	if m.CurrentProfession != "" {
		m.CurrentProfessionNormalized = strings.ToLower(strings.TrimSpace(m.CurrentProfession))
	}
	if m.SchoolChapter != "" {
		m.SchoolChapterNormalized = strings.ToLower(strings.TrimSpace(m.SchoolChapter))
	}

	if m.BatchOriginal != "" {
		info := textnorm.NormalizeBatch(m.BatchOriginal)
		if info.Matched() {
			m.BatchNormalized = info.Normalized
			m.BatchYear = info.Year
			m.BatchSemester = info.Semester
			m.BatchSubNumber = info.SubNumber
			m.BatchDecade = info.Decade
			m.BatchEra = info.Era
		}
	}

	if m.HomeAddressFull != "" {
		m.HomeAddressCity = textnorm.ExtractCity(m.HomeAddressFull)
		m.HomeAddressCityNormalized = textnorm.NormalizeLocation(m.HomeAddressCity)
	}
	if m.OfficeAddressFull != "" {
		m.OfficeAddressCity = textnorm.ExtractCity(m.OfficeAddressFull)
		m.OfficeAddressCityNormalized = textnorm.NormalizeLocation(m.OfficeAddressCity)
	}

	if ing.inferencer != nil {
		result := ing.inferencer.Infer(m)
		m.InferredProfession = result.Profession
		m.InferredProfessionConfidence = result.ProfessionConfidence
		m.InferredSpecialization = result.Specialization
		m.InferredSpecializationConfidence = result.SpecializationConfidence
		m.InferredWorkLocation = result.WorkLocation
		m.InferredWorkLocationConfidence = result.WorkLocationConfidence
	}

	m.DataCompletenessScore = CompletenessScore(m)
	m.ConfidenceScore = ConfidenceScore(m)
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "January 2, 2006"}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

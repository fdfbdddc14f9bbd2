// Package store persists the member directory. Two backends implement the
// same interface: SQLite for single-user CLI use and PostgreSQL for shared
// deployments.
package store

import (
	"context"

	"github.com/sj-alumni/directory-cli/internal/model"
)

// Store defines the persistence interface for the directory.
type Store interface {
	// Members
	InsertMember(ctx context.Context, m *model.MemberRecord) (int64, error)
	GetMember(ctx context.Context, id int64) (*model.MemberRecord, error)
	UpdateMember(ctx context.Context, id int64, updates model.FieldUpdates) error
	SearchMembers(ctx context.Context, filter model.SearchFilter) ([]model.MemberRecord, error)
	ListMembers(ctx context.Context, limit, offset int) ([]model.MemberRecord, error)
	DeactivateMember(ctx context.Context, id int64, reason string) error
	RestoreMember(ctx context.Context, id int64) error

	// Audit trail
	AppendChangeLog(ctx context.Context, entries []model.ChangeLogEntry) error
	GetChangeLog(ctx context.Context, memberID int64, limit int) ([]model.ChangeLogEntry, error)

	// Duplicates
	FindDuplicateCandidates(ctx context.Context, limit int) ([]model.DuplicatePair, error)
	MarkMerged(ctx context.Context, primaryID int64, duplicateIDs []int64) error

	// Import batches
	CreateImportBatch(ctx context.Context, b *model.ImportBatch) error
	FinalizeImportBatch(ctx context.Context, id string, result *model.ImportResult) error
	ListImportBatches(ctx context.Context, limit int) ([]model.ImportBatch, error)

	// Stats
	Stats(ctx context.Context) (*model.SystemStats, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

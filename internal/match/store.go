package match

import (
	"context"

	"github.com/sj-alumni/directory-cli/internal/model"
)

// MemberStore defines the persistence operations the match engine needs.
// The concrete store satisfies it; tests use an in-memory fake.
type MemberStore interface {
	GetMember(ctx context.Context, id int64) (*model.MemberRecord, error)
	SearchMembers(ctx context.Context, filter model.SearchFilter) ([]model.MemberRecord, error)

	// MarkMerged marks every duplicate as merged into primary and appends
	// the corresponding MERGE change log entries, all in one transaction.
	MarkMerged(ctx context.Context, primaryID int64, duplicateIDs []int64) error

	FindDuplicateCandidates(ctx context.Context, limit int) ([]model.DuplicatePair, error)
}

// Package match resolves candidate member records against the directory:
// finding the existing record a row belongs to, computing field-level merge
// updates, and marking confirmed duplicates.
package match

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sj-alumni/directory-cli/internal/model"
	"github.com/sj-alumni/directory-cli/internal/textnorm"
)

// Config holds the match engine tunables.
type Config struct {
	// NameSimilarityThreshold is the minimum similarity for a fuzzy name
	// match to count as the same person.
	NameSimilarityThreshold float64 `mapstructure:"name_similarity_threshold"`

	// CandidateLimit caps how many records a fuzzy lookup scans.
	CandidateLimit int `mapstructure:"candidate_limit"`

	// TextMerge decides between two non-empty text values during a field
	// merge. Not settable from config files.
	TextMerge TextMergeStrategy `mapstructure:"-"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		NameSimilarityThreshold: 0.8,
		CandidateLimit:          50,
		TextMerge:               PreferLonger,
	}
}

// Engine performs identity resolution and duplicate management over a
// member store.
type Engine struct {
	store MemberStore
	cfg   Config
}

// NewEngine creates a match engine. A nil TextMerge falls back to
// PreferLonger.
func NewEngine(store MemberStore, cfg Config) *Engine {
	if cfg.TextMerge == nil {
		cfg.TextMerge = PreferLonger
	}
	return &Engine{store: store, cfg: cfg}
}

// FindExisting locates the directory record a candidate belongs to.
// Two-pass cascade:
//  1. Exact primary email match.
//  2. Fuzzy normalized-name match: among records whose normalized name
//     contains or is contained by the candidate's, the highest-similarity
//     record above the threshold wins, ties broken by lowest id.
//
// Returns nil when no existing record qualifies.
func (e *Engine) FindExisting(ctx context.Context, candidate *model.MemberRecord) (*model.MemberRecord, error) {
	if candidate.PrimaryEmail != "" {
		results, err := e.store.SearchMembers(ctx, model.SearchFilter{
			Email:           candidate.PrimaryEmail,
			IncludeInactive: true,
			Limit:           1,
		})
		if err != nil {
			return nil, eris.Wrap(err, "match: resolve by email")
		}
		if len(results) > 0 {
			zap.L().Debug("match: resolved by email",
				zap.String("email", candidate.PrimaryEmail),
				zap.Int64("member_id", results[0].ID),
			)
			return &results[0], nil
		}
	}

	name := candidate.FullNameNormalized
	if name == "" {
		return nil, nil
	}
	results, err := e.store.SearchMembers(ctx, model.SearchFilter{
		NameContains:    name,
		IncludeInactive: true,
		Limit:           e.cfg.CandidateLimit,
	})
	if err != nil {
		return nil, eris.Wrap(err, "match: resolve by name")
	}

	var best *model.MemberRecord
	var bestSim float64
	for i := range results {
		r := &results[i]
		sim := textnorm.NameSimilarity(name, r.FullNameNormalized)
		if sim <= e.cfg.NameSimilarityThreshold {
			continue
		}
		if best == nil || sim > bestSim || (sim == bestSim && r.ID < best.ID) {
			best, bestSim = r, sim
		}
	}
	if best != nil {
		zap.L().Debug("match: resolved by name similarity",
			zap.String("name", name),
			zap.Int64("member_id", best.ID),
			zap.Float64("similarity", bestSim),
		)
	}
	return best, nil
}

// MergeResult reports a completed duplicate merge.
type MergeResult struct {
	PrimaryID   int64   `json:"primary_id"`
	MergedCount int     `json:"merged_count"`
	MergedIDs   []int64 `json:"merged_ids"`
}

// MergeDuplicates marks every duplicate as merged into the primary record.
// The primary must exist and be a live record; duplicates already merged
// into something else are rejected, so merge chains cannot form.
func (e *Engine) MergeDuplicates(ctx context.Context, primaryID int64, duplicateIDs []int64) (*MergeResult, error) {
	primary, err := e.store.GetMember(ctx, primaryID)
	if err != nil {
		return nil, eris.Wrap(err, "match: load primary")
	}
	if primary == nil {
		return nil, eris.Errorf("match: primary member %d not found", primaryID)
	}
	if primary.IsDuplicate {
		return nil, eris.Errorf("match: member %d is already merged and cannot be a primary", primaryID)
	}

	for _, id := range duplicateIDs {
		if id == primaryID {
			return nil, eris.Errorf("match: member %d cannot be merged into itself", id)
		}
		dup, err := e.store.GetMember(ctx, id)
		if err != nil {
			return nil, eris.Wrapf(err, "match: load duplicate %d", id)
		}
		if dup == nil {
			return nil, eris.Errorf("match: duplicate member %d not found", id)
		}
		if dup.IsDuplicate {
			return nil, eris.Errorf("match: member %d is already merged", id)
		}
	}

	if err := e.store.MarkMerged(ctx, primaryID, duplicateIDs); err != nil {
		return nil, eris.Wrap(err, "match: mark merged")
	}

	zap.L().Info("match: merged duplicates",
		zap.Int64("primary_id", primaryID),
		zap.Int("merged_count", len(duplicateIDs)),
	)
	return &MergeResult{
		PrimaryID:   primaryID,
		MergedCount: len(duplicateIDs),
		MergedIDs:   duplicateIDs,
	}, nil
}

// FindPotentialDuplicates lists candidate duplicate pairs for review:
// identical primary emails or two-way normalized-name containment.
func (e *Engine) FindPotentialDuplicates(ctx context.Context, limit int) ([]model.DuplicatePair, error) {
	pairs, err := e.store.FindDuplicateCandidates(ctx, limit)
	if err != nil {
		return nil, eris.Wrap(err, "match: find duplicate candidates")
	}
	zap.L().Debug("match: duplicate candidates", zap.Int("count", len(pairs)))
	return pairs, nil
}

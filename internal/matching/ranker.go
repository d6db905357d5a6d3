package matching

import (
	"fmt"
	"sort"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/models"
)

const (
	// DefaultLimit applies when MatchOptions.Limit is zero or negative.
	DefaultLimit = 50
	// MaxLimit is the largest page a caller may request.
	MaxLimit = 500
)

// ValidateOptions rejects page sizes above MaxLimit. Everything else is clamped by
// NormalizeOptions.
func ValidateOptions(opts models.MatchOptions) error {
	if opts.Limit > MaxLimit {
		return errors.NewInvalidMatchOptionsError(fmt.Sprintf("limit %d exceeds the maximum of %d", opts.Limit, MaxLimit))
	}
	return nil
}

// NormalizeOptions clamps minScore to [0,100], replaces a non-positive limit with
// defaultLimit and a negative offset with 0.
func NormalizeOptions(opts models.MatchOptions, defaultLimit int) models.MatchOptions {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if opts.MinScore < 0 {
		opts.MinScore = 0
	}
	if opts.MinScore > 100 {
		opts.MinScore = 100
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}

// Rank filters by minScore, sorts by score desc, postedDate desc (undated last) and
// jobId asc, then applies offset and limit. The input slice is not modified and the
// returned slice is never nil.
func Rank(results []models.MatchResult, opts models.MatchOptions) []models.MatchResult {
	opts = NormalizeOptions(opts, DefaultLimit)

	kept := make([]models.MatchResult, 0, len(results))
	for _, r := range results {
		if float64(r.MatchScore) >= opts.MinScore {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return rankedBefore(kept[i], kept[j])
	})

	if opts.Offset >= len(kept) {
		return []models.MatchResult{}
	}
	end := opts.Offset + opts.Limit
	if end > len(kept) {
		end = len(kept)
	}
	page := make([]models.MatchResult, end-opts.Offset)
	copy(page, kept[opts.Offset:end])
	return page
}

func rankedBefore(a, b models.MatchResult) bool {
	if a.MatchScore != b.MatchScore {
		return a.MatchScore > b.MatchScore
	}
	aDated, bDated := a.PostedDate.Known(), b.PostedDate.Known()
	switch {
	case aDated && bDated:
		if !a.PostedDate.Equal(b.PostedDate.Time) {
			return a.PostedDate.After(b.PostedDate.Time)
		}
	case aDated:
		return true
	case bDated:
		return false
	}
	return a.JobID < b.JobID
}

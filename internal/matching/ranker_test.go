package matching

import (
	"testing"
	"time"

	"jobmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobIDs(results []models.MatchResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.JobID
	}
	return ids
}

func TestRank_Ordering(t *testing.T) {
	older := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	input := []models.MatchResult{
		{JobID: "c", MatchScore: 70},
		{JobID: "b", MatchScore: 70, PostedDate: datePtr(older)},
		{JobID: "a", MatchScore: 70},
		{JobID: "d", MatchScore: 70, PostedDate: datePtr(newer)},
		{JobID: "e", MatchScore: 95},
		{JobID: "f", MatchScore: 10},
	}
	original := append([]models.MatchResult(nil), input...)

	got := Rank(input, models.MatchOptions{})

	assert.Equal(t, []string{"e", "d", "b", "a", "c", "f"}, jobIDs(got))
	assert.Equal(t, original, input, "input must not be reordered")
}

func TestRank_FilterAndPaginate(t *testing.T) {
	input := make([]models.MatchResult, 0, 10)
	for i, id := range []string{"j0", "j1", "j2", "j3", "j4", "j5", "j6", "j7", "j8", "j9"} {
		input = append(input, models.MatchResult{JobID: id, MatchScore: 100 - i*10})
	}

	tests := []struct {
		name     string
		opts     models.MatchOptions
		expected []string
	}{
		{"min score", models.MatchOptions{MinScore: 70}, []string{"j0", "j1", "j2", "j3"}},
		{"min score is inclusive", models.MatchOptions{MinScore: 100}, []string{"j0"}},
		{"limit", models.MatchOptions{Limit: 2}, []string{"j0", "j1"}},
		{"offset and limit", models.MatchOptions{Offset: 3, Limit: 2}, []string{"j3", "j4"}},
		{"offset past the end", models.MatchOptions{Offset: 10}, []string{}},
		{"negative offset treated as zero", models.MatchOptions{Offset: -4, Limit: 1}, []string{"j0"}},
		{"min score above 100 clamps", models.MatchOptions{MinScore: 250}, []string{"j0"}},
		{"limit larger than results", models.MatchOptions{Limit: 500, MinScore: 85}, []string{"j0", "j1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(input, tt.opts)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, jobIDs(got))
		})
	}
}

func TestRank_EmptyInput(t *testing.T) {
	got := Rank(nil, models.MatchOptions{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeOptions(t *testing.T) {
	got := NormalizeOptions(models.MatchOptions{MinScore: -3, Limit: 0, Offset: -1}, 25)
	assert.Equal(t, models.MatchOptions{MinScore: 0, Limit: 25, Offset: 0}, got)

	got = NormalizeOptions(models.MatchOptions{Limit: -1}, 0)
	assert.Equal(t, DefaultLimit, got.Limit)
}

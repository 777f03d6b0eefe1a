package matcher

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/desertthunder/ktv/internal/shared"
)

const (
	DefaultLimit  = 8
	DefaultCutoff = 50
)

// Scorer rates how well candidate matches query on a 0-100 scale.
type Scorer interface {
	Score(query, candidate string) int
}

// ScorerFunc adapts a plain function to [Scorer].
type ScorerFunc func(query, candidate string) int

func (f ScorerFunc) Score(query, candidate string) int { return f(query, candidate) }

// Result is one ranked candidate.
type Result struct {
	Candidate string `json:"candidate"`
	Score     int    `json:"score"`
	Index     int    `json:"index"` // position in the candidate slice
}

// Matcher binds a [Scorer] to a result limit and score cutoff.
type Matcher struct {
	scorer Scorer
	limit  int
	cutoff int
}

// New creates a [Matcher]. A nil scorer uses [WeightedRatio].
func New(scorer Scorer, limit, cutoff int) *Matcher {
	if scorer == nil {
		scorer = WeightedRatio{}
	}
	return &Matcher{scorer: scorer, limit: limit, cutoff: cutoff}
}

// Limit returns the maximum number of results.
func (m *Matcher) Limit() int { return m.limit }

// Cutoff returns the minimum score a result must reach.
func (m *Matcher) Cutoff() int { return m.cutoff }

// Match returns the candidates scoring at least the cutoff, best first.
//
// An empty query, an empty candidate list or a non-positive limit yields no results.
func (m *Matcher) Match(query string, candidates []string) []Result {
	if m.limit <= 0 || len(candidates) == 0 || Process(query) == "" {
		return nil
	}

	results := make([]Result, 0, len(candidates))
	for i, c := range candidates {
		score := m.scorer.Score(query, c)
		if score >= m.cutoff {
			results = append(results, Result{Candidate: c, Score: score, Index: i})
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(results) > m.limit {
		results = results[:m.limit]
	}
	return results
}

// Match ranks candidates with [WeightedRatio].
func Match(query string, candidates []string, limit, cutoff int) []Result {
	return New(WeightedRatio{}, limit, cutoff).Match(query, candidates)
}

// Strings projects results onto their candidate strings.
func Strings(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Candidate
	}
	return out
}

// ScorerByName resolves a configured scorer name. The empty name selects "ratio".
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", "ratio":
		return WeightedRatio{}, nil
	case "fzf":
		return FzfScorer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownScorer, name)
	}
}

package matcher

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/desertthunder/ktv/internal/shared"
)

var songs = []string{"Alpha [1].mp4", "Beta [2].mp4", "Gamma [3].mp4"}

func TestMatch(t *testing.T) {
	t.Run("prefix query finds one song", func(t *testing.T) {
		got := Strings(Match("alph", songs, DefaultLimit, DefaultCutoff))
		if want := []string{"Alpha [1].mp4"}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		for _, q := range []string{"", "   ", "[]!?"} {
			if got := Match(q, songs, DefaultLimit, DefaultCutoff); len(got) != 0 {
				t.Errorf("query %q: expected no results, got %v", q, got)
			}
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		if got := Match("alpha", nil, DefaultLimit, DefaultCutoff); len(got) != 0 {
			t.Errorf("expected no results, got %v", got)
		}
	})

	t.Run("non-positive limit", func(t *testing.T) {
		if got := Match("alpha", songs, 0, 0); len(got) != 0 {
			t.Errorf("expected no results, got %v", got)
		}
	})

	t.Run("limit and cutoff hold", func(t *testing.T) {
		candidates := make([]string, 0, 40)
		for i := range 40 {
			candidates = append(candidates, fmt.Sprintf("Love Song %d [%d].mp4", i, i))
		}
		candidates = append(candidates, "Unrelated [x].mp4")

		for _, cutoff := range []int{0, 50, 90} {
			for _, limit := range []int{1, 3, 8} {
				results := Match("love song", candidates, limit, cutoff)
				if len(results) > limit {
					t.Errorf("limit %d: got %d results", limit, len(results))
				}
				for _, r := range results {
					if r.Score < cutoff {
						t.Errorf("cutoff %d: %q scored %d", cutoff, r.Candidate, r.Score)
					}
				}
			}
		}
	})

	t.Run("descending order with stable ties", func(t *testing.T) {
		scores := map[string]int{"a": 60, "b": 90, "c": 60, "d": 10, "e": 90}
		m := New(ScorerFunc(func(_, c string) int { return scores[c] }), 8, 50)

		got := Strings(m.Match("query", []string{"a", "b", "c", "d", "e"}))
		if want := []string{"b", "e", "a", "c"}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		candidates := []string{"Hello [1].mp4", "Hello [2].mp4", "Yellow [3].mp4", "Jello [4].mp4", "Help [5].mp4"}
		first := Match("hello", candidates, DefaultLimit, 0)
		for range 10 {
			if again := Match("hello", candidates, DefaultLimit, 0); !reflect.DeepEqual(first, again) {
				t.Fatalf("results changed between runs: %v vs %v", first, again)
			}
		}
	})

	t.Run("index points into candidates", func(t *testing.T) {
		for _, r := range Match("gamma", songs, DefaultLimit, DefaultCutoff) {
			if songs[r.Index] != r.Candidate {
				t.Errorf("index %d does not point at %q", r.Index, r.Candidate)
			}
		}
	})
}

func TestWeightedRatio(t *testing.T) {
	var s WeightedRatio

	tc := []struct {
		name      string
		query     string
		candidate string
		min, max  int
	}{
		{name: "identical after processing", query: "Bohemian Rhapsody", candidate: "bohemian rhapsody", min: 100, max: 100},
		{name: "diacritics folded", query: "cafe", candidate: "Café", min: 100, max: 100},
		{name: "word order", query: "rhapsody bohemian", candidate: "Bohemian Rhapsody", min: 90, max: 100},
		{name: "substring", query: "alph", candidate: "Alpha [1].mp4", min: 85, max: 95},
		{name: "unrelated", query: "alph", candidate: "Beta [2].mp4", min: 0, max: 49},
		{name: "empty", query: "", candidate: "Beta [2].mp4", min: 0, max: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.query, tt.candidate)
			if got < tt.min || got > tt.max {
				t.Errorf("Score(%q, %q) = %d, want in [%d,%d]", tt.query, tt.candidate, got, tt.min, tt.max)
			}
		})
	}
}

func TestFzfScorer(t *testing.T) {
	var s FzfScorer

	if got := s.Score("alph", "Alpha [1].mp4"); got != 100 {
		t.Errorf("prefix match scored %d, want 100", got)
	}
	if got := s.Score("alph", "Beta [2].mp4"); got != 0 {
		t.Errorf("non-match scored %d, want 0", got)
	}
	if got := s.Score("", "Beta [2].mp4"); got != 0 {
		t.Errorf("empty query scored %d, want 0", got)
	}

	m := New(s, DefaultLimit, DefaultCutoff)
	if got := Strings(m.Match("alph", songs)); !reflect.DeepEqual(got, []string{"Alpha [1].mp4"}) {
		t.Errorf("got %v", got)
	}
}

func TestScorerByName(t *testing.T) {
	for _, name := range []string{"", "ratio", "fzf"} {
		if _, err := ScorerByName(name); err != nil {
			t.Errorf("ScorerByName(%q): %v", name, err)
		}
	}
	if _, err := ScorerByName("soundex"); !errors.Is(err, shared.ErrUnknownScorer) {
		t.Errorf("expected ErrUnknownScorer, got %v", err)
	}
}

func TestProcess(t *testing.T) {
	tc := map[string]string{
		"Alpha [1].mp4":       "alpha 1 mp4",
		"  Hello,   World!  ": "hello world",
		"Ça Plane Pour Moi":   "ca plane pour moi",
		"!!!":                 "",
	}
	for in, want := range tc {
		if got := Process(in); got != want {
			t.Errorf("Process(%q) = %q, want %q", in, got, want)
		}
	}
}

package matcher

import (
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initAlgo sync.Once

// FzfScorer scores with fzf's V2 fuzzy matcher.
//
// The raw score is divided by the score the processed query earns against itself, so an
// exact prefix match rates 100 and a non-match rates 0.
type FzfScorer struct{}

func (FzfScorer) Score(query, candidate string) int {
	pattern := []rune(Process(query))
	text := Process(candidate)
	if len(pattern) == 0 || text == "" {
		return 0
	}

	initAlgo.Do(func() { algo.Init("default") })

	slab := util.MakeSlab(16384, 1024)

	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(false, false, true, &chars, pattern, false, slab)
	if result.Start < 0 || result.Score <= 0 {
		return 0
	}

	self := util.ToChars([]byte(string(pattern)))
	best, _ := algo.FuzzyMatchV2(false, false, true, &self, pattern, false, slab)
	if best.Score <= 0 {
		return 0
	}

	return min(100, result.Score*100/best.Score)
}

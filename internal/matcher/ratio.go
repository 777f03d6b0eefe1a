package matcher

import (
	"math"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// WeightedRatio scores with the best of several Levenshtein-based ratios.
//
// When one string is at least 1.5 times longer than the other, partial (substring window)
// comparisons are used and scaled by 0.9, or by 0.6 beyond 8 times. Token based ratios are
// further scaled by 0.95.
type WeightedRatio struct{}

func (WeightedRatio) Score(query, candidate string) int {
	p1, p2 := Process(query), Process(candidate)
	if p1 == "" || p2 == "" {
		return 0
	}

	base := ratio(p1, p2)

	l1, l2 := float64(runeLen(p1)), float64(runeLen(p2))
	lenRatio := max(l1, l2) / min(l1, l2)

	const unbaseScale = 0.95
	if lenRatio < 1.5 {
		tsor := tokenSortRatio(p1, p2, ratio) * unbaseScale
		tser := tokenSetRatio(p1, p2, ratio) * unbaseScale
		return round(max(base, tsor, tser))
	}

	partialScale := 0.9
	if lenRatio > 8 {
		partialScale = 0.6
	}
	partial := partialRatio(p1, p2) * partialScale
	ptsor := tokenSortRatio(p1, p2, partialRatio) * unbaseScale * partialScale
	ptser := tokenSetRatio(p1, p2, partialRatio) * unbaseScale * partialScale
	return round(max(base, partial, ptsor, ptser))
}

// ratio is 100 * (1 - distance / longest length).
func ratio(a, b string) float64 {
	la, lb := runeLen(a), runeLen(b)
	if la == 0 || lb == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(max(la, lb)))
}

// partialRatio is the best ratio of the shorter string against every equally long window of the longer one.
func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func tokenSortRatio(a, b string, score func(string, string) float64) float64 {
	return score(sortedTokens(a), sortedTokens(b))
}

// tokenSetRatio compares the shared tokens against each side's shared+remaining tokens.
func tokenSetRatio(a, b string, score func(string, string) float64) float64 {
	ta, tb := tokenSet(a), tokenSet(b)

	var inter, diffA, diffB []string
	for t := range ta {
		if tb[t] {
			inter = append(inter, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			diffB = append(diffB, t)
		}
	}
	slices.Sort(inter)
	slices.Sort(diffA)
	slices.Sort(diffB)

	t0 := strings.Join(inter, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(diffA, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(diffB, " "))

	return max(score(t0, t1), score(t0, t2), score(t1, t2))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}

func runeLen(s string) int {
	return len([]rune(s))
}

func round(f float64) int {
	return int(math.Round(f))
}

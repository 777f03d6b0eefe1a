// Package matcher ranks catalog filenames against a free-text query.
//
// A [Scorer] maps a (query, candidate) pair onto a similarity in [0,100]. [Matcher.Match]
// keeps candidates scoring at least the cutoff, orders them by descending score with ties
// kept in candidate order, and truncates the result to the limit.
//
// Two scorers are available:
//   - [WeightedRatio] ("ratio"): the best of plain, partial, token-sort and token-set
//     Levenshtein ratios, with partial comparisons discounted when the lengths differ a lot
//   - [FzfScorer] ("fzf"): fzf's V2 subsequence score, normalised by the pattern's self match
//
// Both compare strings after [Process] has folded case, stripped diacritics and reduced
// punctuation to single spaces.
package matcher

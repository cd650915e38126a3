// Package fuzzy ranks registered option names by edit distance so the
// parser can attach "did you mean" suggestions to unknown-option errors.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher scores candidate option names against a mistyped input.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher that rejects candidates further than
// maxDistance edits away from the input.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // single-rune inputs match half the alphabet
	}
}

type match struct {
	name     string
	distance int
	prefix   int
}

// Suggest returns up to max option names within the matcher's edit
// distance of input, closest first. Ties prefer the longer shared
// prefix, then lexicographic order so output is deterministic.
func (m *Matcher) Suggest(input string, candidates []string, max int) []string {
	if len(input) < m.minLength || max <= 0 {
		return nil
	}

	lowered := strings.ToLower(input)
	var matches []match
	for _, candidate := range candidates {
		lc := strings.ToLower(candidate)
		if lc == lowered {
			continue
		}
		d := m.distance(lowered, lc)
		if d > m.maxDistance {
			continue
		}
		matches = append(matches, match{
			name:     candidate,
			distance: d,
			prefix:   commonPrefixLen(lowered, lc),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix > matches[j].prefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > max {
		matches = matches[:max]
	}
	names := make([]string, len(matches))
	for i, mt := range matches {
		names[i] = mt.name
	}
	return names
}

// Best returns the single closest candidate, or "" when nothing is
// within range.
func (m *Matcher) Best(input string, candidates []string) string {
	names := m.Suggest(input, candidates, 1)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// distance is a two-row Levenshtein with early exit once a whole row
// exceeds the ceiling.
func (m *Matcher) distance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			cur[j] = minOf(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if cur[j] < rowMin {
				rowMin = cur[j]
			}
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(a)]
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Suggestions is the package-level convenience used by the parser for
// unknown long options.
func Suggestions(input string, candidates []string, maxDistance, max int) []string {
	return NewMatcher(maxDistance).Suggest(input, candidates, max)
}

package registry

import (
	"cmp"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	maxSuggestions   = 3
	suggestionCutoff = 0.6
)

// closeMatches returns up to n candidates whose similarity ratio to word is
// at least cutoff, best match first. Ties go to the lexically greater name.
func closeMatches(word string, candidates []string, n int, cutoff float64) []string {
	type scored struct {
		name  string
		score float64
	}

	m := difflib.NewMatcher(nil, splitRunes(word))
	var hits []scored
	for _, c := range candidates {
		m.SetSeq1(splitRunes(c))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if r := m.Ratio(); r >= cutoff {
			hits = append(hits, scored{name: c, score: r})
		}
	}

	slices.SortFunc(hits, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(b.name, a.name)
	})

	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

// splitRunes turns a string into the element sequence the matcher compares.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// suggestionsFor returns catalog names that look like name.
func suggestionsFor(name string, catalog *Catalog) []string {
	return closeMatches(name, catalog.Names(), maxSuggestions, suggestionCutoff)
}

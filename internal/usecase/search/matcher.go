package search

import (
	"math"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/sahilm/fuzzy"
)

const (
	// perfectScore stands in for a zero field score so a perfect field still
	// lets the other matched fields order the product.
	perfectScore = 0.001
	// prefixWeight scales the unmatched remainder of a prefix hit.
	prefixWeight = 0.25
	// codeSubsequenceWeight scales the unmatched remainder of a code subsequence hit.
	codeSubsequenceWeight = 0.5
	// minFuzzyTokenLen is the shortest query token compared by edit distance.
	minFuzzyTokenLen = 3
	// minCodeSubsequenceLen is the shortest code query matched as a subsequence.
	minCodeSubsequenceLen = 3
)

// match is one ranked matcher hit. Lower score = better, 0 = perfect.
type match struct {
	entry *entry
	score float64
}

// matcher is an approximate multi-field matcher over an index.
// Two instances (strict, broad) differ only in threshold.
type matcher struct {
	threshold       float64
	coveragePenalty float64
	weights         [fieldCount]float64
}

func newMatcher(threshold, coveragePenalty float64, w FieldWeights) matcher {
	raw := [fieldCount]float64{
		fieldCode:            w.Code,
		fieldName:            w.Name,
		fieldKeywords:        w.Keywords,
		fieldDescription:     w.Description,
		fieldLongDescription: w.LongDescription,
	}
	var sum float64
	for _, v := range raw {
		sum += v
	}
	m := matcher{threshold: threshold, coveragePenalty: coveragePenalty}
	for i, v := range raw {
		if sum > 0 {
			m.weights[i] = v / sum
		} else {
			m.weights[i] = 1 / float64(fieldCount)
		}
	}
	return m
}

// search returns up to limit entries matching query, best first.
func (m matcher) search(idx *index, query string, limit int) []match {
	phrase := normalizeText(query)
	tokens := tokenize(query)
	if len(tokens) == 0 {
		tokens = strings.Fields(phrase)
	}
	if len(tokens) == 0 || limit <= 0 {
		return nil
	}

	codeHits := m.codeSubsequenceHits(idx, normalizeCode(query))

	var out []match
	for i := range idx.entries {
		e := &idx.entries[i]
		total := 1.0
		matched := false
		for f := fieldKind(0); f < fieldCount; f++ {
			s := m.fieldScore(&e.fields[f], tokens, phrase)
			if f == fieldCode {
				if cs, ok := codeHits[i]; ok && cs < s {
					s = cs
				}
			}
			if s > m.threshold {
				continue
			}
			matched = true
			total *= math.Pow(math.Max(s, perfectScore), m.weights[f])
		}
		if matched {
			out = append(out, match{entry: e, score: total})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].score < out[j].score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// fieldScore scores a field against the query tokens: the best token score plus a
// penalty for the share of tokens the field does not cover. A multi-token query
// found verbatim in the field scores 0.
func (m matcher) fieldScore(ft *fieldText, tokens []string, phrase string) float64 {
	if len(ft.tokens) == 0 {
		return 1
	}
	if len(tokens) > 1 && strings.Contains(ft.text, phrase) {
		return 0
	}

	best := 1.0
	covered := 0
	for _, q := range tokens {
		s := tokenScore(q, ft.tokens)
		if s < best {
			best = s
		}
		if s <= m.threshold {
			covered++
		}
	}
	uncovered := float64(len(tokens)-covered) / float64(len(tokens))
	return math.Min(1, best+m.coveragePenalty*uncovered)
}

// codeSubsequenceHits scores codes containing codeQuery as an in-order subsequence.
func (m matcher) codeSubsequenceHits(idx *index, codeQuery string) map[int]float64 {
	if len(codeQuery) < minCodeSubsequenceLen {
		return nil
	}
	hits := make(map[int]float64)
	for _, fm := range fuzzy.FindFrom(codeQuery, codeSource(idx.entries)) {
		code := idx.entries[fm.Index].normalizedCode
		if len(code) == 0 {
			continue
		}
		hits[fm.Index] = codeSubsequenceWeight * (1 - float64(len(codeQuery))/float64(len(code)))
	}
	return hits
}

// tokenScore returns the best score of q against any field token.
func tokenScore(q string, fieldTokens []string) float64 {
	best := 1.0
	for _, t := range fieldTokens {
		var s float64
		switch {
		case t == q:
			return 0
		case len(q) >= 2 && strings.HasPrefix(t, q):
			s = prefixWeight * (1 - float64(len(q))/float64(len(t)))
		case len(q) >= minFuzzyTokenLen && closeInLength(q, t):
			sim, err := edlib.StringsSimilarity(q, t, edlib.OSADamerauLevenshtein)
			if err != nil {
				continue
			}
			s = 1 - float64(sim)
		default:
			continue
		}
		if s < best {
			best = s
		}
	}
	return best
}

// closeInLength skips edit-distance comparisons that cannot reach a useful similarity.
func closeInLength(a, b string) bool {
	la, lb := len(a), len(b)
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return diff*2 <= longest
}

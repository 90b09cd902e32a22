package search

import (
	"math"
	"strings"
)

// noBaseScore marks a candidate whose collector supplied no base score.
const noBaseScore = -1.0

// queryInfo is the per-call analysis of a query.
type queryInfo struct {
	normalizedQuery     string
	normalizedCodeQuery string
	correctedTokens     []string
	expandedTokens      *tokenSet
}

// analyze normalizes, tokenizes, corrects and expands a raw query.
func analyze(raw string) *queryInfo {
	corrected, expanded := expand(tokenize(raw))
	return &queryInfo{
		normalizedQuery:     normalizeText(raw),
		normalizedCodeQuery: normalizeCode(raw),
		correctedTokens:     corrected,
		expandedTokens:      expanded,
	}
}

// expandedString renders the expanded token set for a matcher pass.
func (q *queryInfo) expandedString() string {
	return strings.Join(q.expandedTokens.order, " ")
}

// adjustScore layers code, name, token and synonym bonuses onto the matcher's base
// score. The result lies in [0, base].
func adjustScore(e *entry, base float64, q *queryInfo, d Deductions, defaultBase float64) float64 {
	if base < 0 {
		base = defaultBase
	}
	if q.normalizedQuery == "" {
		return base
	}

	score := base
	code := q.normalizedCodeQuery
	switch {
	case code != "" && e.normalizedCode == code:
		score -= d.ExactCode
	case len(code) >= 2 && strings.HasPrefix(e.normalizedCode, code):
		score -= d.CodePrefix
	case len(code) >= 3 && strings.Contains(e.normalizedCode, code):
		score -= d.CodeSubstring
	}

	name := e.fields[fieldName].text
	switch {
	case name == q.normalizedQuery:
		score -= d.ExactName
	case strings.HasPrefix(name, q.normalizedQuery):
		score -= d.NamePrefix
	case strings.Contains(name, q.normalizedQuery):
		score -= d.NameSubstring
	}

	var tokenBonus float64
	allPresent := len(q.correctedTokens) > 0
	corrected := make(map[string]struct{}, len(q.correctedTokens))
	for _, t := range q.correctedTokens {
		corrected[t] = struct{}{}
		if strings.Contains(e.searchableText, t) {
			tokenBonus += d.TokenHit
		} else {
			allPresent = false
		}
	}
	score -= math.Min(tokenBonus, d.TokenHitCap)

	var synonymBonus float64
	for _, t := range q.expandedTokens.order {
		if _, ok := corrected[t]; ok {
			continue
		}
		if strings.Contains(e.searchableText, t) {
			synonymBonus += d.SynonymHit
		}
	}
	score -= math.Min(synonymBonus, d.SynonymHitCap)

	if len(q.correctedTokens) >= 2 && allPresent {
		score -= d.FullCoverage
	}

	return math.Max(0, math.Min(score, base))
}

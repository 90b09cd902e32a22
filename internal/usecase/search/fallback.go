package search

import "strings"

// candidate is a form under consideration for one query, keyed by code.
type candidate struct {
	entry         *entry
	baseScore     float64
	rank          int
	adjustedScore float64
}

// candidateSet deduplicates candidates by code, keeping the lowest base score
// and the first-seen rank.
type candidateSet struct {
	byCode map[string]*candidate
	order  []*candidate
}

func newCandidateSet() *candidateSet {
	return &candidateSet{byCode: make(map[string]*candidate)}
}

func (s *candidateSet) add(e *entry, score float64) {
	if c, ok := s.byCode[e.code]; ok {
		if score < c.baseScore {
			c.baseScore = score
			c.entry = e
		}
		return
	}
	c := &candidate{entry: e, baseScore: score, rank: len(s.order)}
	s.byCode[e.code] = c
	s.order = append(s.order, c)
}

func (s *candidateSet) len() int { return len(s.order) }

// fallbackScan is the linear substring scan used when the matchers find nothing.
// Entries keep catalog order through an ascending synthetic base score.
func fallbackScan(idx *index, q *queryInfo, t Tunables) *candidateSet {
	set := newCandidateSet()
	for i := range idx.entries {
		e := &idx.entries[i]
		if !fallbackHit(e, q) {
			continue
		}
		set.add(e, t.FallbackBaseScore+float64(i)*t.FallbackStep)
	}
	return set
}

func fallbackHit(e *entry, q *queryInfo) bool {
	if q.normalizedCodeQuery != "" && strings.Contains(e.normalizedCode, q.normalizedCodeQuery) {
		return true
	}
	if q.normalizedQuery != "" && strings.Contains(e.searchableText, q.normalizedQuery) {
		return true
	}
	for _, t := range q.expandedTokens.order {
		if strings.Contains(e.searchableText, t) {
			return true
		}
	}
	return false
}

package search

import (
	"math"
	"testing"
)

func strictMatcher() matcher {
	t := DefaultTunables()
	return newMatcher(t.StrictThreshold, t.CoveragePenalty, t.Weights)
}

func broadMatcher() matcher {
	t := DefaultTunables()
	return newMatcher(t.BroadThreshold, t.CoveragePenalty, t.Weights)
}

func matchCodes(ms []match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.entry.code
	}
	return out
}

func TestNewMatcher_NormalizesWeights(t *testing.T) {
	m := strictMatcher()
	var sum float64
	for _, w := range m.weights {
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum = %f, want 1", sum)
	}
	if m.weights[fieldCode] <= m.weights[fieldName] || m.weights[fieldName] <= m.weights[fieldLongDescription] {
		t.Errorf("weights out of order: %v", m.weights)
	}
}

func TestNewMatcher_ZeroWeights(t *testing.T) {
	m := newMatcher(0.3, 0.3, FieldWeights{})
	for _, w := range m.weights {
		if w != 1/float64(fieldCount) {
			t.Errorf("zero weights must fall back to uniform, got %v", m.weights)
		}
	}
}

func TestTokenScore(t *testing.T) {
	tokens := []string{"transfer", "account"}
	if s := tokenScore("transfer", tokens); s != 0 {
		t.Errorf("exact = %f, want 0", s)
	}
	prefix := tokenScore("trans", tokens)
	if prefix <= 0 || prefix >= 0.2 {
		t.Errorf("prefix = %f, want small positive", prefix)
	}
	typo := tokenScore("trnfer", tokens)
	if typo <= 0 || typo > 0.34 {
		t.Errorf("typo = %f, want within strict threshold", typo)
	}
	if s := tokenScore("zz", tokens); s != 1 {
		t.Errorf("short unmatched = %f, want 1", s)
	}
	if s := tokenScore("transfer", nil); s != 1 {
		t.Errorf("no tokens = %f, want 1", s)
	}
}

func TestMatcher_ExactCodeFirst(t *testing.T) {
	idx := buildIndex(scenarioCatalog())
	hits := strictMatcher().search(idx, "ac tf", 10)
	if len(hits) == 0 || hits[0].entry.code != "AC-TF" {
		t.Fatalf("hits = %v, want AC-TF first", matchCodes(hits))
	}
	for _, h := range hits {
		if h.score <= 0 || h.score > 1 {
			t.Errorf("score %f out of (0,1]", h.score)
		}
	}
}

func TestMatcher_MoreMatchedFieldsScoreLower(t *testing.T) {
	idx := buildIndex(scenarioCatalog())
	hits := strictMatcher().search(idx, "transfer", 10)
	if len(hits) != 2 {
		t.Fatalf("hits = %v, want both forms", matchCodes(hits))
	}
	// AC-TF matches in name and keywords, AC-FT only in name.
	if hits[0].entry.code != "AC-TF" || hits[0].score >= hits[1].score {
		t.Errorf("hits = %v with scores %f, %f", matchCodes(hits), hits[0].score, hits[1].score)
	}
}

func TestMatcher_TypoTolerance(t *testing.T) {
	idx := buildIndex(scenarioCatalog())
	hits := strictMatcher().search(idx, "trnfer", 10)
	if len(hits) == 0 {
		t.Fatal("expected typo matches")
	}
}

func TestMatcher_BroadFindsMoreThanStrict(t *testing.T) {
	idx := buildIndex(brokerageCatalog())
	query := "acat transfer acats account move assets toa"
	strict := strictMatcher().search(idx, query, 50)
	broad := broadMatcher().search(idx, query, 50)
	if len(broad) < len(strict) {
		t.Errorf("broad (%d) must recall at least strict (%d)", len(broad), len(strict))
	}
}

func TestMatcher_Limit(t *testing.T) {
	idx := buildIndex(brokerageCatalog())
	if hits := broadMatcher().search(idx, "request", 1); len(hits) != 1 {
		t.Errorf("len(hits) = %d, want 1", len(hits))
	}
	if hits := broadMatcher().search(idx, "request", 0); hits != nil {
		t.Errorf("zero limit must return nil, got %v", matchCodes(hits))
	}
}

func TestMatcher_EmptyQuery(t *testing.T) {
	idx := buildIndex(brokerageCatalog())
	if hits := strictMatcher().search(idx, "  --  ", 10); hits != nil {
		t.Errorf("hits = %v, want nil", matchCodes(hits))
	}
}

func TestMatcher_CodeSubsequence(t *testing.T) {
	idx := buildIndex(brokerageCatalog())
	hits := broadMatcher().search(idx, "iradst", 10)
	if indexOf(t, matchCodes(hits), "IRA-DIST") < 0 {
		t.Errorf("hits = %v, want IRA-DIST via code subsequence", matchCodes(hits))
	}
}

func TestMatcher_PhraseInField(t *testing.T) {
	idx := buildIndex(brokerageCatalog())
	hits := strictMatcher().search(idx, "change of address", 10)
	if len(hits) == 0 || hits[0].entry.code != "ADDR-CHG" {
		t.Errorf("hits = %v, want ADDR-CHG first", matchCodes(hits))
	}
}

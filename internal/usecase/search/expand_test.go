package search

import (
	"reflect"
	"testing"
)

func TestCorrect(t *testing.T) {
	if got := correct("trnfer"); got != "transfer" {
		t.Errorf("correct(trnfer) = %q", got)
	}
	if got := correct("transfer"); got != "transfer" {
		t.Errorf("correct(transfer) = %q, want identity", got)
	}
}

func TestExpand_CorrectsTypos(t *testing.T) {
	corrected, expanded := expand([]string{"trnfer", "form"})
	if !reflect.DeepEqual(corrected, []string{"transfer", "form"}) {
		t.Errorf("corrected = %v", corrected)
	}
	if !expanded.has("transfer") || !expanded.has("form") {
		t.Errorf("expanded = %v, want corrected tokens included", expanded.order)
	}
	if expanded.has("trnfer") {
		t.Error("expanded set must not keep the misspelling")
	}
}

func TestExpand_RootAddsSynonyms(t *testing.T) {
	_, expanded := expand([]string{"transfer"})
	for _, want := range []string{"acat", "acats", "account", "assets"} {
		if !expanded.has(want) {
			t.Errorf("expected %q in %v", want, expanded.order)
		}
	}
}

func TestExpand_Symmetric(t *testing.T) {
	_, expanded := expand([]string{"acat"})
	if !expanded.has("transfer") {
		t.Fatalf("acat must expand to its root transfer, got %v", expanded.order)
	}
	if !expanded.has("acats") {
		t.Errorf("acat must pull in sibling synonyms, got %v", expanded.order)
	}
}

func TestExpand_MultiWordSynonymTokenized(t *testing.T) {
	_, expanded := expand([]string{"poa"})
	if !expanded.has("power") || !expanded.has("attorney") {
		t.Errorf("power of attorney must be tokenized, got %v", expanded.order)
	}
	if expanded.has("of") {
		t.Error("stop words must not enter the expansion")
	}
}

func TestExpand_Deduplicates(t *testing.T) {
	_, expanded := expand([]string{"transfer", "transfer", "acat"})
	seen := map[string]int{}
	for _, tok := range expanded.order {
		seen[tok]++
		if seen[tok] > 1 {
			t.Errorf("token %q appears twice", tok)
		}
	}
}

func TestExpand_Empty(t *testing.T) {
	corrected, expanded := expand(nil)
	if len(corrected) != 0 || len(expanded.order) != 0 {
		t.Errorf("expand(nil) = %v, %v", corrected, expanded.order)
	}
}

func TestRootsByTokenSorted(t *testing.T) {
	for tok, roots := range rootsByToken {
		for i := 1; i < len(roots); i++ {
			if roots[i-1] > roots[i] {
				t.Errorf("roots for %q not sorted: %v", tok, roots)
			}
		}
	}
}

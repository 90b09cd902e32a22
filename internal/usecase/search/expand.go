package search

import "sort"

// typoCorrections maps known misspellings to the intended token.
var typoCorrections = map[string]string{
	"trnfer":        "transfer",
	"tranfer":       "transfer",
	"transfr":       "transfer",
	"trasnfer":      "transfer",
	"tansfer":       "transfer",
	"acount":        "account",
	"accont":        "account",
	"accout":        "account",
	"benificiary":   "beneficiary",
	"beneficary":    "beneficiary",
	"benficiary":    "beneficiary",
	"beneficiery":   "beneficiary",
	"withdrawl":     "withdrawal",
	"withdrawel":    "withdrawal",
	"widthdrawal":   "withdrawal",
	"distrubution":  "distribution",
	"distribtion":   "distribution",
	"authorisation": "authorization",
	"authorizaton":  "authorization",
	"adress":        "address",
	"addres":        "address",
	"contibution":   "contribution",
	"contrubution":  "contribution",
	"rollvoer":      "rollover",
	"rolover":       "rollover",
	"signiture":     "signature",
	"sigature":      "signature",
	"retirment":     "retirement",
	"atorney":       "attorney",
	"attourney":     "attorney",
	"truste":        "trustee",
	"marign":        "margin",
}

// synonymPhrases maps a root term to related phrases. Phrases are tokenized at init.
var synonymPhrases = map[string][]string{
	"transfer":     {"acat", "acats", "account transfer", "move assets", "transfer of assets", "toa"},
	"wire":         {"eft", "electronic funds transfer", "bank transfer", "ach", "funds transfer"},
	"beneficiary":  {"designation", "tod", "payable on death", "pod", "heir"},
	"withdrawal":   {"distribution", "disbursement", "redemption"},
	"distribution": {"withdrawal", "rmd", "required minimum distribution"},
	"ira":          {"individual retirement account", "roth", "traditional", "sep", "retirement"},
	"rollover":     {"roll over", "401k", "direct rollover", "conversion"},
	"address":      {"change of address", "mailing", "residence"},
	"poa":          {"power of attorney", "attorney", "agent"},
	"signature":    {"esign", "docusign", "signer", "signatory"},
	"contribution": {"deposit", "funding"},
	"trust":        {"trustee", "certification of trust"},
	"margin":       {"options", "leverage"},
	"death":        {"deceased", "estate", "survivor", "death certificate"},
	"update":       {"change", "maintenance", "modify"},
}

// synonymTokens is the tokenized form of synonymPhrases.
var synonymTokens map[string][]string

// rootsByToken maps a synonym token back to every root listing it, sorted.
var rootsByToken map[string][]string

func init() {
	synonymTokens = make(map[string][]string, len(synonymPhrases))
	rootsByToken = make(map[string][]string)
	for root, phrases := range synonymPhrases {
		seen := make(map[string]struct{})
		var toks []string
		for _, p := range phrases {
			for _, t := range tokenize(p) {
				if _, ok := seen[t]; ok {
					continue
				}
				seen[t] = struct{}{}
				toks = append(toks, t)
			}
		}
		synonymTokens[root] = toks
		for _, t := range toks {
			rootsByToken[t] = append(rootsByToken[t], root)
		}
	}
	for t := range rootsByToken {
		sort.Strings(rootsByToken[t])
	}
}

// correct returns the typo correction for token, or token itself.
func correct(token string) string {
	if c, ok := typoCorrections[token]; ok {
		return c
	}
	return token
}

// tokenSet is an insertion-ordered set of tokens.
type tokenSet struct {
	order []string
	index map[string]struct{}
}

func newTokenSet() *tokenSet {
	return &tokenSet{index: make(map[string]struct{})}
}

func (s *tokenSet) add(tokens ...string) {
	for _, t := range tokens {
		if _, ok := s.index[t]; ok {
			continue
		}
		s.index[t] = struct{}{}
		s.order = append(s.order, t)
	}
}

func (s *tokenSet) has(t string) bool {
	_, ok := s.index[t]
	return ok
}

// expand corrects typos and adds the symmetric synonym closure of every corrected token.
// It returns the corrected sequence and the expanded set in insertion order.
func expand(tokens []string) ([]string, *tokenSet) {
	corrected := make([]string, 0, len(tokens))
	expanded := newTokenSet()
	for _, tok := range tokens {
		c := correct(tok)
		corrected = append(corrected, c)
		expanded.add(c)
		if syns, ok := synonymTokens[c]; ok {
			expanded.add(syns...)
		}
		for _, root := range rootsByToken[c] {
			if root == c {
				continue
			}
			expanded.add(root)
			expanded.add(synonymTokens[root]...)
		}
	}
	return corrected, expanded
}

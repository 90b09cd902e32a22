package search

import (
	"strings"

	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

// fieldKind enumerates the fields the matchers score.
type fieldKind int

const (
	fieldCode fieldKind = iota
	fieldName
	fieldKeywords
	fieldDescription
	fieldLongDescription
	fieldCount
)

// fieldText is a normalized field with its tokens.
type fieldText struct {
	text   string
	tokens []string
}

// entry is the precomputed search view of one form.
type entry struct {
	form            form.Form
	code            string
	name            string
	description     string
	longDescription string
	keywords        string
	normalizedCode  string
	searchableText  string
	fields          [fieldCount]fieldText
}

// index is an immutable snapshot built from one catalog.
type index struct {
	entries []entry
}

// codeSource exposes normalized codes to sahilm/fuzzy.
type codeSource []entry

func (c codeSource) String(i int) string { return c[i].normalizedCode }
func (c codeSource) Len() int            { return len(c) }

// buildIndex maps each form to its entry. It is a pure function of forms.
func buildIndex(forms []form.Form) *index {
	idx := &index{entries: make([]entry, len(forms))}
	for i := range forms {
		idx.entries[i] = newEntry(forms[i])
	}
	return idx
}

func newEntry(f form.Form) entry {
	keywords := strings.Join(f.Keywords(), " ")
	e := entry{
		form:            f,
		code:            f.Code(),
		name:            f.Name(),
		description:     f.Description(),
		longDescription: f.LongDescription(),
		keywords:        keywords,
		normalizedCode:  normalizeCode(f.Code()),
		searchableText: normalizeText(strings.Join([]string{
			f.Code(), f.Name(), f.Description(), f.LongDescription(), keywords,
		}, " ")),
	}

	codeText := normalizeText(f.Code())
	codeTokens := strings.Fields(codeText)
	if e.normalizedCode != "" && (len(codeTokens) != 1 || codeTokens[0] != e.normalizedCode) {
		codeTokens = append(codeTokens, e.normalizedCode)
	}
	e.fields[fieldCode] = fieldText{text: codeText, tokens: codeTokens}
	e.fields[fieldName] = newFieldText(e.name)
	e.fields[fieldKeywords] = newFieldText(keywords)
	e.fields[fieldDescription] = newFieldText(e.description)
	e.fields[fieldLongDescription] = newFieldText(e.longDescription)
	return e
}

func newFieldText(s string) fieldText {
	return fieldText{text: normalizeText(s), tokens: tokenize(s)}
}

// forms returns the indexed forms in catalog order.
func (idx *index) forms() []form.Form {
	out := make([]form.Form, len(idx.entries))
	for i := range idx.entries {
		out[i] = idx.entries[i].form
	}
	return out
}

package formsearch

import (
	"github.com/kailas-cloud/formsearch/internal/domain/form"
	"github.com/kailas-cloud/formsearch/internal/domain/search/result"
	"github.com/kailas-cloud/formsearch/internal/usecase/eligibility"
)

// Form is a catalog form record.
type Form struct {
	Code                 string
	Name                 string
	Description          string
	LongDescription      string
	Keywords             []string
	ESignEnabled         bool
	DocuSignEnabled      bool
	RequiresAllSigners   bool
	ValidAccountTypeKeys []string // empty means valid for every account type
	TemplateID           string
	PDFPath              string
}

// Item is one ranked form. Selectable is false when the form is not valid
// for the account type given to SearchFor.
type Item struct {
	Form
	Selectable bool
}

// Result is the outcome of a search, best match first.
type Result struct {
	Items        []Item
	TotalMatches int
	Limited      bool   // more forms matched than were returned
	Mode         string // "browse", "fuzzy" or "fallback"
}

// Codes returns the form codes in result order.
func (r Result) Codes() []string {
	codes := make([]string, len(r.Items))
	for i := range r.Items {
		codes[i] = r.Items[i].Code
	}
	return codes
}

func formFromDomain(f *form.Form) Form {
	a := f.Attrs()
	return Form{
		Code:                 a.Code,
		Name:                 a.Name,
		Description:          a.Description,
		LongDescription:      a.LongDescription,
		Keywords:             a.Keywords,
		ESignEnabled:         a.ESignEnabled,
		DocuSignEnabled:      a.DocuSignEnabled,
		RequiresAllSigners:   a.RequiresAllSigners,
		ValidAccountTypeKeys: a.ValidAccountTypeKeys,
		TemplateID:           a.TemplateID,
		PDFPath:              a.PDFPath,
	}
}

func (f Form) attrs() form.Attrs {
	return form.Attrs{
		Code:                 f.Code,
		Name:                 f.Name,
		Description:          f.Description,
		LongDescription:      f.LongDescription,
		Keywords:             f.Keywords,
		ESignEnabled:         f.ESignEnabled,
		DocuSignEnabled:      f.DocuSignEnabled,
		RequiresAllSigners:   f.RequiresAllSigners,
		ValidAccountTypeKeys: f.ValidAccountTypeKeys,
		TemplateID:           f.TemplateID,
		PDFPath:              f.PDFPath,
	}
}

func resultFromDomain(r result.Result, items []eligibility.Item) Result {
	out := Result{
		Items:        make([]Item, len(items)),
		TotalMatches: r.TotalMatches(),
		Limited:      r.Limited(),
		Mode:         string(r.Mode()),
	}
	for i := range items {
		out.Items[i] = Item{Form: formFromDomain(&items[i].Form), Selectable: items[i].Selectable}
	}
	return out
}

package catalog

import (
	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

// documentVersion is bumped on incompatible changes to the stored layout.
const documentVersion = 1

// document is the stored and seed-file layout of a catalog.
type document struct {
	Version int       `json:"version" yaml:"version"`
	Forms   []formRow `json:"forms" yaml:"forms"`
}

// formRow is the serializable representation of one form.
type formRow struct {
	Code                 string   `json:"code" yaml:"code"`
	Name                 string   `json:"name" yaml:"name"`
	Description          string   `json:"description,omitempty" yaml:"description,omitempty"`
	LongDescription      string   `json:"long_description,omitempty" yaml:"long_description,omitempty"`
	Keywords             []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	ESignEnabled         bool     `json:"esign_enabled,omitempty" yaml:"esign_enabled,omitempty"`
	DocuSignEnabled      bool     `json:"docusign_enabled,omitempty" yaml:"docusign_enabled,omitempty"`
	RequiresAllSigners   bool     `json:"requires_all_signers,omitempty" yaml:"requires_all_signers,omitempty"`
	ValidAccountTypeKeys []string `json:"valid_account_type_keys,omitempty" yaml:"valid_account_type_keys,omitempty"`
	TemplateID           string   `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	PDFPath              string   `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
}

func formToRow(f form.Form) formRow {
	a := f.Attrs()
	return formRow{
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

func (r formRow) attrs() form.Attrs {
	return form.Attrs{
		Code:                 r.Code,
		Name:                 r.Name,
		Description:          r.Description,
		LongDescription:      r.LongDescription,
		Keywords:             r.Keywords,
		ESignEnabled:         r.ESignEnabled,
		DocuSignEnabled:      r.DocuSignEnabled,
		RequiresAllSigners:   r.RequiresAllSigners,
		ValidAccountTypeKeys: r.ValidAccountTypeKeys,
		TemplateID:           r.TemplateID,
		PDFPath:              r.PDFPath,
	}
}

func toDocument(forms []form.Form) document {
	doc := document{Version: documentVersion, Forms: make([]formRow, len(forms))}
	for i, f := range forms {
		doc.Forms[i] = formToRow(f)
	}
	return doc
}

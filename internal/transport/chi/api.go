package chi

import (
	"github.com/kailas-cloud/formsearch/internal/domain/form"
	"github.com/kailas-cloud/formsearch/internal/usecase/eligibility"
)

// ErrorResponseCode is the machine-readable error code returned to clients.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodeFormNotFound       ErrorResponseCode = "form_not_found"
	ErrorResponseCodeDuplicateCode      ErrorResponseCode = "duplicate_code"
	ErrorResponseCodeCatalogUnavailable ErrorResponseCode = "catalog_unavailable"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// Form is the wire representation of a catalog form.
type Form struct {
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	LongDescription      string   `json:"long_description,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	ESignEnabled         bool     `json:"esign_enabled"`
	DocuSignEnabled      bool     `json:"docusign_enabled"`
	RequiresAllSigners   bool     `json:"requires_all_signers"`
	ValidAccountTypeKeys []string `json:"valid_account_type_keys,omitempty"`
	TemplateID           string   `json:"template_id,omitempty"`
	PDFPath              string   `json:"pdf_path,omitempty"`
}

// SearchItem is a ranked form with its selectability for the requested account type.
type SearchItem struct {
	Form
	Selectable bool `json:"selectable"`
}

// SearchFormsParams are the query parameters of GET /forms/search.
type SearchFormsParams struct {
	Q           *string
	Limit       *int
	AccountType *string
}

// SearchResponse is the body of GET /forms/search.
type SearchResponse struct {
	Items        []SearchItem `json:"items"`
	TotalMatches int          `json:"total_matches"`
	Limited      bool         `json:"limited"`
	Mode         string       `json:"mode"`
}

// FormListResponse is the body of GET /forms and PUT /forms.
type FormListResponse struct {
	Items []Form `json:"items"`
	Total int    `json:"total"`
}

// ReplaceFormsRequest is the body of PUT /forms.
type ReplaceFormsRequest struct {
	Forms []Form `json:"forms"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Forms  int               `json:"forms"`
}

func formToAPI(f form.Form) Form {
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

func formsToAPI(forms []form.Form) []Form {
	out := make([]Form, len(forms))
	for i, f := range forms {
		out[i] = formToAPI(f)
	}
	return out
}

func searchItemsToAPI(items []eligibility.Item) []SearchItem {
	out := make([]SearchItem, len(items))
	for i, it := range items {
		out[i] = SearchItem{Form: formToAPI(it.Form), Selectable: it.Selectable}
	}
	return out
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

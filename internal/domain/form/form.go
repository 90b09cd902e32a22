package form

import (
	"fmt"
	"regexp"
	"strings"
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]*$`)

// MaxCodeLength is the maximum allowed form code length.
const MaxCodeLength = 64

// Attrs is the plain attribute set of a form record, used to construct and export forms.
type Attrs struct {
	Code                 string
	Name                 string
	Description          string
	LongDescription      string
	Keywords             []string
	ESignEnabled         bool
	DocuSignEnabled      bool
	RequiresAllSigners   bool
	ValidAccountTypeKeys []string
	TemplateID           string
	PDFPath              string
}

// Form is a catalog form record (immutable value object).
type Form struct {
	code                 string
	name                 string
	description          string
	longDescription      string
	keywords             []string
	eSignEnabled         bool
	docuSignEnabled      bool
	requiresAllSigners   bool
	validAccountTypeKeys []string
	templateID           string
	pdfPath              string
}

// New validates and creates a Form.
// Code: upper-cased, ^[A-Z0-9][A-Z0-9-]*$, at most 64 chars. Name: non-empty.
func New(a Attrs) (Form, error) {
	code := strings.ToUpper(strings.TrimSpace(a.Code))
	if code == "" {
		return Form{}, fmt.Errorf("form code is required")
	}
	if len(code) > MaxCodeLength {
		return Form{}, fmt.Errorf("form code too long (max %d)", MaxCodeLength)
	}
	if !codeRegex.MatchString(code) {
		return Form{}, fmt.Errorf("form code %q must be alphanumeric with hyphens", code)
	}
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return Form{}, fmt.Errorf("form name is required")
	}

	a.Code = code
	a.Name = name
	return Reconstruct(a), nil
}

// Reconstruct creates a Form without validation (storage hydration, search input).
func Reconstruct(a Attrs) Form {
	return Form{
		code:                 a.Code,
		name:                 a.Name,
		description:          a.Description,
		longDescription:      a.LongDescription,
		keywords:             cloneStrings(a.Keywords),
		eSignEnabled:         a.ESignEnabled,
		docuSignEnabled:      a.DocuSignEnabled,
		requiresAllSigners:   a.RequiresAllSigners,
		validAccountTypeKeys: cloneStrings(a.ValidAccountTypeKeys),
		templateID:           a.TemplateID,
		pdfPath:              a.PDFPath,
	}
}

// Code returns the unique form code.
func (f *Form) Code() string { return f.code }

// Name returns the display name.
func (f *Form) Name() string { return f.name }

// Description returns the short description.
func (f *Form) Description() string { return f.description }

// LongDescription returns the optional long description.
func (f *Form) LongDescription() string { return f.longDescription }

// Keywords returns the ordered keyword list.
func (f *Form) Keywords() []string { return f.keywords }

// ESignEnabled reports whether the form can be signed electronically.
func (f *Form) ESignEnabled() bool { return f.eSignEnabled }

// DocuSignEnabled reports whether the form has a DocuSign template.
func (f *Form) DocuSignEnabled() bool { return f.docuSignEnabled }

// RequiresAllSigners reports whether every account holder must sign.
func (f *Form) RequiresAllSigners() bool { return f.requiresAllSigners }

// ValidAccountTypeKeys returns the account types the form applies to. Empty means all.
func (f *Form) ValidAccountTypeKeys() []string { return f.validAccountTypeKeys }

// TemplateID returns the e-signature template identifier.
func (f *Form) TemplateID() string { return f.templateID }

// PDFPath returns the blank PDF location.
func (f *Form) PDFPath() string { return f.pdfPath }

// Attrs returns a detached copy of the form attributes.
func (f *Form) Attrs() Attrs {
	return Attrs{
		Code:                 f.code,
		Name:                 f.name,
		Description:          f.description,
		LongDescription:      f.longDescription,
		Keywords:             cloneStrings(f.keywords),
		ESignEnabled:         f.eSignEnabled,
		DocuSignEnabled:      f.docuSignEnabled,
		RequiresAllSigners:   f.requiresAllSigners,
		ValidAccountTypeKeys: cloneStrings(f.validAccountTypeKeys),
		TemplateID:           f.templateID,
		PDFPath:              f.pdfPath,
	}
}

// WithName returns a copy with the display name replaced.
func (f *Form) WithName(name string) Form {
	a := f.Attrs()
	a.Name = name
	return Reconstruct(a)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}

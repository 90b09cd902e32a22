package form

import "github.com/kailas-cloud/formsearch/internal/domain"

// Catalog is an immutable, ordered snapshot of forms with unique codes.
type Catalog struct {
	forms  []Form
	byCode map[string]int
}

// NewCatalog builds a snapshot, rejecting duplicate codes.
func NewCatalog(forms []Form) (Catalog, error) {
	c := Catalog{
		forms:  make([]Form, len(forms)),
		byCode: make(map[string]int, len(forms)),
	}
	for i, f := range forms {
		if _, dup := c.byCode[f.code]; dup {
			return Catalog{}, domain.NewDuplicateCode(f.code)
		}
		c.byCode[f.code] = i
		c.forms[i] = f
	}
	return c, nil
}

// Forms returns a copy of the forms in catalog order.
func (c *Catalog) Forms() []Form {
	out := make([]Form, len(c.forms))
	copy(out, c.forms)
	return out
}

// Len returns the number of forms.
func (c *Catalog) Len() int { return len(c.forms) }

// Get returns the form with the given code.
func (c *Catalog) Get(code string) (Form, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Form{}, false
	}
	return c.forms[i], true
}

// With returns a new snapshot with f inserted or replacing the form with the same code.
// The second return value reports whether f was inserted.
func (c *Catalog) With(f Form) (Catalog, bool) {
	forms := c.Forms()
	i, exists := c.byCode[f.code]
	if exists {
		forms[i] = f
	} else {
		forms = append(forms, f)
	}
	next, _ := NewCatalog(forms) // codes stay unique by construction
	return next, !exists
}

// Without returns a new snapshot without the form with the given code.
func (c *Catalog) Without(code string) (Catalog, error) {
	i, ok := c.byCode[code]
	if !ok {
		return Catalog{}, domain.ErrNotFound
	}
	forms := make([]Form, 0, len(c.forms)-1)
	forms = append(forms, c.forms[:i]...)
	forms = append(forms, c.forms[i+1:]...)
	next, _ := NewCatalog(forms)
	return next, nil
}

// Package eligibility decides which forms an account type may select.
// It runs after search; ranking never consults it.
package eligibility

import (
	"strings"

	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

// Item pairs a form with its selectability for one account type.
type Item struct {
	Form       form.Form
	Selectable bool
}

// IsEligible reports whether f may be selected for accountType.
// Forms without account type restrictions and an empty account type are always eligible.
func IsEligible(f form.Form, accountType string) bool {
	accountType = strings.TrimSpace(accountType)
	if accountType == "" {
		return true
	}
	keys := f.ValidAccountTypeKeys()
	if len(keys) == 0 {
		return true
	}
	for _, k := range keys {
		if strings.EqualFold(strings.TrimSpace(k), accountType) {
			return true
		}
	}
	return false
}

// Annotate marks every form with its selectability, preserving order.
func Annotate(forms []form.Form, accountType string) []Item {
	out := make([]Item, len(forms))
	for i, f := range forms {
		out[i] = Item{Form: f, Selectable: IsEligible(f, accountType)}
	}
	return out
}

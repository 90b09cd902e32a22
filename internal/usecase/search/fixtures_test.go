package search

import (
	"testing"

	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

func makeForm(code, name string, keywords ...string) form.Form {
	return form.Reconstruct(form.Attrs{Code: code, Name: name, Keywords: keywords})
}

// scenarioCatalog is the two-form catalog used across ranking tests.
func scenarioCatalog() []form.Form {
	return []form.Form{
		makeForm("AC-TF", "ACATS Account Transfer Form", "acat", "transfer"),
		makeForm("AC-FT", "Electronic Funds Transfer (EFT) Authorization", "eft", "wire"),
	}
}

// brokerageCatalog is a broader catalog with overlapping vocabulary.
func brokerageCatalog() []form.Form {
	return []form.Form{
		makeForm("AC-TF", "ACATS Account Transfer Form", "acat", "transfer"),
		makeForm("AC-FT", "Electronic Funds Transfer (EFT) Authorization", "eft", "wire"),
		makeForm("TOA-1", "Transfer of Assets Request", "transfer", "assets"),
		makeForm("AC-9", "ACAT Request", "acat"),
		form.Reconstruct(form.Attrs{
			Code:        "BEN-1",
			Name:        "Beneficiary Designation",
			Description: "Name or change beneficiaries on an account",
			Keywords:    []string{"beneficiary", "tod"},
		}),
		form.Reconstruct(form.Attrs{
			Code:            "IRA-DIST",
			Name:            "IRA Distribution Request",
			Description:     "Request a withdrawal from a retirement account",
			LongDescription: "Covers required minimum distributions and one-time withdrawals",
			Keywords:        []string{"ira", "distribution", "rmd"},
		}),
		makeForm("ADDR-CHG", "Change of Address", "address", "mailing"),
		makeForm("POA-2", "Power of Attorney Authorization", "poa", "attorney"),
		form.Reconstruct(form.Attrs{Code: "MISC-0"}),
	}
}

func indexOf(t *testing.T, codes []string, code string) int {
	t.Helper()
	for i, c := range codes {
		if c == code {
			return i
		}
	}
	return -1
}

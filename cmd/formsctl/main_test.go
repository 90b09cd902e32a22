package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCatalog = `version: 1
forms:
  - code: AC-TF
    name: ACATS Account Transfer Form
    keywords: [acat, transfer]
    valid_account_type_keys: [individual]
  - code: AC-FT
    name: Electronic Funds Transfer (EFT) Authorization
    keywords: [eft, wire]
`

func writeCatalog(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearch_JSON(t *testing.T) {
	path := writeCatalog(t, "forms.yaml", testCatalog)

	out, _, err := run(t, "search", "AC-TF", "--catalog", path, "--json", "--account-type", "joint")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var got searchOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(got.Items) == 0 || got.Items[0].Code != "AC-TF" {
		t.Fatalf("expected AC-TF first, got %+v", got.Items)
	}
	if got.Items[0].Selectable {
		t.Error("AC-TF is individual-only and must not be selectable for joint")
	}
	if got.Mode != "fuzzy" {
		t.Errorf("expected fuzzy mode, got %q", got.Mode)
	}
}

func TestSearch_Table(t *testing.T) {
	path := writeCatalog(t, "forms.yaml", testCatalog)

	out, _, err := run(t, "search", "--catalog", path, "wire")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "AC-FT") {
		t.Errorf("expected AC-FT in output:\n%s", out)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	path := writeCatalog(t, "forms.yaml", testCatalog)

	if _, _, err := run(t, "search", "--catalog", path); err == nil {
		t.Fatal("expected error without a query")
	}
}

func TestBrowse_Limit(t *testing.T) {
	path := writeCatalog(t, "forms.yaml", testCatalog)

	out, _, err := run(t, "browse", "--catalog", path, "--limit", "1", "--json")
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	var got searchOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Code != "AC-TF" {
		t.Fatalf("expected [AC-TF], got %+v", got.Items)
	}
	if !got.Limited || got.TotalMatches != 2 {
		t.Errorf("expected limited with 2 total, got %+v", got)
	}
	if got.Mode != "browse" {
		t.Errorf("expected browse mode, got %q", got.Mode)
	}
}

func TestValidate(t *testing.T) {
	good := writeCatalog(t, "good.yaml", testCatalog)
	dup := writeCatalog(t, "dup.json",
		`{"version":1,"forms":[{"code":"A-1","name":"One"},{"code":"A-1","name":"Two"}]}`)

	out, _, err := run(t, "validate", good)
	if err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if !strings.Contains(out, "2 forms") {
		t.Errorf("unexpected output %q", out)
	}

	_, errOut, err := run(t, "validate", good, dup)
	if err == nil {
		t.Fatal("expected error for duplicate codes")
	}
	if !strings.Contains(errOut, "FAIL") || !strings.Contains(errOut, "dup.json") {
		t.Errorf("unexpected stderr %q", errOut)
	}
}

func TestMissingCatalog(t *testing.T) {
	if _, _, err := run(t, "browse", "--catalog", filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

package version

import "testing"

func TestString(t *testing.T) {
	Version, Commit, Date = "v1.0.0", "abc123", "2026-01-02"
	t.Cleanup(func() { Version, Commit, Date = "dev", "unknown", "unknown" })

	want := "v1.0.0 (commit abc123, built 2026-01-02)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

package result

import (
	"github.com/kailas-cloud/formsearch/internal/domain/form"
	"github.com/kailas-cloud/formsearch/internal/domain/search/mode"
)

// Result is the outcome of a catalog search.
type Result struct {
	items        []form.Form
	totalMatches int
	limit        int
	searchMode   mode.Mode
}

// New creates a search result. items must already be truncated to limit.
func New(items []form.Form, totalMatches, limit int, m mode.Mode) Result {
	return Result{items: items, totalMatches: totalMatches, limit: limit, searchMode: m}
}

// Items returns the matched forms, best first.
func (r Result) Items() []form.Form { return r.items }

// TotalMatches returns the number of surviving candidates before truncation.
func (r Result) TotalMatches() int { return r.totalMatches }

// Limited reports whether the result was truncated (TotalMatches > limit).
func (r Result) Limited() bool { return r.totalMatches > r.limit }

// Mode returns the collection path the search took.
func (r Result) Mode() mode.Mode { return r.searchMode }

// Codes returns the item codes in result order.
func (r Result) Codes() []string {
	codes := make([]string, len(r.items))
	for i := range r.items {
		codes[i] = r.items[i].Code()
	}
	return codes
}

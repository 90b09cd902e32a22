package request

import (
	"unicode/utf8"

	"github.com/kailas-cloud/formsearch/internal/domain"
)

// MaxQueryLength is the maximum query length in bytes kept for matching.
// Longer queries are cut at a rune boundary rather than rejected.
const MaxQueryLength = 4096

// MaxLimit caps the result size a caller may ask for.
const MaxLimit = 10000

// Request is a normalized catalog search query.
type Request struct {
	query       string
	limit       int
	accountType string
}

// New normalizes search parameters. It never fails: a non-positive limit selects
// domain.DefaultSearchLimit, a huge one is clamped to MaxLimit and an oversized
// query is truncated.
func New(query string, limit int) Request {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: truncate(query, MaxQueryLength), limit: limit}
}

// WithAccountType returns a copy carrying the caller's account type for eligibility marking.
func (r Request) WithAccountType(accountType string) Request {
	r.accountType = accountType
	return r
}

// Query returns the raw query text.
func (r Request) Query() string { return r.query }

// Limit returns the maximum number of items to return.
func (r Request) Limit() int { return r.limit }

// AccountType returns the account type used by callers for eligibility, if any.
func (r Request) AccountType() string { return r.accountType }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Step back over at most one split rune; invalid bytes earlier in s are kept.
	for i := 0; i < utf8.UTFMax-1 && n > 0 && !utf8.RuneStart(s[n]); i++ {
		n--
	}
	return s[:n]
}

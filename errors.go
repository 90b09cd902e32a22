package formsearch

import "github.com/kailas-cloud/formsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrInvalidForm        = domain.ErrInvalidForm
	ErrDuplicateCode      = domain.ErrDuplicateCode
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)

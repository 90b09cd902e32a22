package catalog

import (
	"context"

	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

// Repository persists the whole catalog.
type Repository interface {
	Load(ctx context.Context) ([]form.Form, error)
	Save(ctx context.Context, forms []form.Form) error
}

// Indexer receives every committed catalog snapshot.
type Indexer interface {
	Rebuild(forms []form.Form)
}

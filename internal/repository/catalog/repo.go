package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/formsearch/internal/db"
	"github.com/kailas-cloud/formsearch/internal/domain"
	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

// store is the consumer interface for the catalog (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/catalog.Repository. The whole catalog is one JSON
// document under a single key.
type Repo struct {
	store store
	key   string
}

// New creates a catalog repository. prefix namespaces the storage key.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, key: prefix + "catalog"}
}

// Key returns the storage key holding the catalog.
func (r *Repo) Key() string { return r.key }

// Load reads the stored catalog. Returns domain.ErrNotFound when nothing is stored.
func (r *Repo) Load(ctx context.Context) ([]form.Form, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get catalog %s: %w", r.key, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("catalog version %d is newer than supported %d", doc.Version, documentVersion)
	}

	forms := make([]form.Form, len(doc.Forms))
	for i, row := range doc.Forms {
		forms[i] = form.Reconstruct(row.attrs())
	}
	return forms, nil
}

// Save overwrites the stored catalog.
func (r *Repo) Save(ctx context.Context, forms []form.Form) error {
	data, err := json.Marshal(toDocument(forms))
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set catalog %s: %w", r.key, err)
	}
	return nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/formsearch/internal/domain"
	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

// Service owns the catalog snapshot. Mutations are serialized; each one is
// persisted and then pushed to the indexer.
type Service struct {
	mu      sync.RWMutex
	repo    Repository
	indexer Indexer
	seed    []form.Form
	current form.Catalog
	logger  *zap.Logger
}

// New creates a catalog service.
func New(repo Repository, indexer Indexer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	empty, _ := form.NewCatalog(nil)
	return &Service{repo: repo, indexer: indexer, current: empty, logger: logger}
}

// WithSeed sets the forms used when storage holds no catalog yet.
func (s *Service) WithSeed(forms []form.Form) *Service {
	s.seed = forms
	return s
}

// Load reads the catalog from storage, seeding it when storage is empty.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		forms = nil
	case err != nil:
		return fmt.Errorf("load catalog: %w: %w", domain.ErrCatalogUnavailable, err)
	}

	seeded := false
	if len(forms) == 0 && len(s.seed) > 0 {
		forms = s.seed
		seeded = true
	}

	cat, err := form.NewCatalog(forms)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if seeded {
		if err := s.repo.Save(ctx, cat.Forms()); err != nil {
			return fmt.Errorf("persist seed catalog: %w", err)
		}
	}

	s.commit(cat)
	s.logger.Info("catalog loaded", zap.Int("forms", cat.Len()), zap.Bool("seeded", seeded))
	return nil
}

// List returns all forms in catalog order.
func (s *Service) List() []form.Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Forms()
}

// Get returns the form with the given code.
func (s *Service) Get(code string) (form.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.current.Get(canonicalCode(code))
	if !ok {
		return form.Form{}, fmt.Errorf("get form %q: %w", code, domain.ErrNotFound)
	}
	return f, nil
}

// Replace validates attrs and swaps in a whole new catalog.
func (s *Service) Replace(ctx context.Context, attrs []form.Attrs) error {
	forms := make([]form.Form, 0, len(attrs))
	for i, a := range attrs {
		f, err := form.New(a)
		if err != nil {
			return fmt.Errorf("validate form %d: %w: %w", i, domain.ErrInvalidForm, err)
		}
		forms = append(forms, f)
	}
	cat, err := form.NewCatalog(forms)
	if err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Save(ctx, cat.Forms()); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	s.commit(cat)
	return nil
}

// Upsert validates a and inserts or replaces the form with its code.
// It reports whether the form was created.
func (s *Service) Upsert(ctx context.Context, a form.Attrs) (form.Form, bool, error) {
	f, err := form.New(a)
	if err != nil {
		return form.Form{}, false, fmt.Errorf("validate form: %w: %w", domain.ErrInvalidForm, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next, created := s.current.With(f)
	if err := s.repo.Save(ctx, next.Forms()); err != nil {
		return form.Form{}, false, fmt.Errorf("upsert form: %w", err)
	}
	s.commit(next)
	return f, created, nil
}

// Delete removes the form with the given code.
func (s *Service) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.current.Without(canonicalCode(code))
	if err != nil {
		return fmt.Errorf("delete form %q: %w", code, err)
	}
	if err := s.repo.Save(ctx, next.Forms()); err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	s.commit(next)
	return nil
}

// commit installs cat and rebuilds the index. Callers hold mu.
func (s *Service) commit(cat form.Catalog) {
	s.current = cat
	s.indexer.Rebuild(cat.Forms())
}

func canonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

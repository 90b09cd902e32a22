package formsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/formsearch/internal/db"
	"github.com/kailas-cloud/formsearch/internal/db/memory"
	dbRedis "github.com/kailas-cloud/formsearch/internal/db/redis"
	"github.com/kailas-cloud/formsearch/internal/domain/form"
	"github.com/kailas-cloud/formsearch/internal/domain/search/request"
	"github.com/kailas-cloud/formsearch/internal/metrics"
	catalogrepo "github.com/kailas-cloud/formsearch/internal/repository/catalog"
	cataloguc "github.com/kailas-cloud/formsearch/internal/usecase/catalog"
	"github.com/kailas-cloud/formsearch/internal/usecase/eligibility"
	searchuc "github.com/kailas-cloud/formsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

const (
	driverMemory = "memory"
	driverValkey = "valkey"
	driverRedis  = "redis"
)

// Client is the formsearch SDK entry point. It is safe for concurrent use:
// searches run against an immutable index snapshot that Rebuild swaps.
type Client struct {
	store     db.Store
	catalog   *cataloguc.Service
	searchSvc *searchuc.Service
}

// New creates a Client, loads the catalog and builds the search index.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{driver: driverMemory}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	seed, err := seedForms(cfg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("formsearch: database not ready: %w", err)
	}

	c := wireClient(store, cfg, seed)
	if err := c.catalog.Load(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("formsearch: %w", err)
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverValkey, driverRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, errors.New("formsearch: database address required")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("formsearch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("formsearch: unknown driver %q", cfg.driver)
	}
}

func seedForms(cfg *clientConfig) ([]form.Form, error) {
	var seed []form.Form
	if cfg.seedFile != "" {
		forms, err := catalogrepo.LoadFile(cfg.seedFile)
		if err != nil {
			return nil, fmt.Errorf("formsearch: %w", err)
		}
		seed = append(seed, forms...)
	}
	for i, f := range cfg.seed {
		df, err := form.New(f.attrs())
		if err != nil {
			return nil, fmt.Errorf("formsearch: seed form %d: %w: %w", i, ErrInvalidForm, err)
		}
		seed = append(seed, df)
	}
	return seed, nil
}

func wireClient(store db.Store, cfg *clientConfig, seed []form.Form) *Client {
	searchSvc := searchuc.New(searchuc.DefaultTunables(), cfg.logger.Named("search"))
	if cfg.metrics {
		metrics.RegisterSearchMetrics()
		searchSvc = searchSvc.WithObserver(metrics.NewSearchObserver())
	}

	repo := catalogrepo.New(store, cfg.keyPrefix)
	catalog := cataloguc.New(repo, searchSvc, cfg.logger.Named("catalog")).WithSeed(seed)

	return &Client{store: store, catalog: catalog, searchSvc: searchSvc}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search ranks catalog forms against query and returns at most limit of them.
// A non-positive limit selects the default of 24. Every item is selectable.
func (c *Client) Search(query string, limit int) Result {
	return c.SearchFor(context.Background(), query, limit, "")
}

// SearchFor is Search with a context for logging and an account type used to
// mark forms the account may not select. Ranking ignores accountType.
func (c *Client) SearchFor(ctx context.Context, query string, limit int, accountType string) Result {
	req := request.New(query, limit).WithAccountType(accountType)
	res := c.searchSvc.Search(ctx, req)
	return resultFromDomain(res, eligibility.Annotate(res.Items(), req.AccountType()))
}

// Rebuild validates forms, replaces the catalog with them and rebuilds the index.
// On error the previous catalog stays in place.
func (c *Client) Rebuild(ctx context.Context, forms []Form) error {
	attrs := make([]form.Attrs, len(forms))
	for i := range forms {
		attrs[i] = forms[i].attrs()
	}
	if err := c.catalog.Replace(ctx, attrs); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	return nil
}

// Forms returns the catalog in catalog order.
func (c *Client) Forms() []Form {
	forms := c.catalog.List()
	out := make([]Form, len(forms))
	for i := range forms {
		out[i] = formFromDomain(&forms[i])
	}
	return out
}

// Get returns the form with the given code (case-insensitive).
func (c *Client) Get(code string) (Form, error) {
	f, err := c.catalog.Get(code)
	if err != nil {
		return Form{}, err
	}
	return formFromDomain(&f), nil
}

// Size returns the number of indexed forms.
func (c *Client) Size() int {
	return c.searchSvc.Size()
}

package formsearch

import (
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "memory", "valkey" or "redis"
	addrs     []string
	password  string
	keyPrefix string

	seedFile string
	seed     []Form

	metrics bool
	logger  *zap.Logger
}

// WithValkey persists the catalog in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis persists the catalog in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the storage key namespace. Default: "formsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSeedFile loads a .yaml/.yml/.json catalog used when storage holds none.
func WithSeedFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedFile = path
	})
}

// WithForms seeds the catalog with forms when storage holds none.
func WithForms(forms []Form) Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = append([]Form(nil), forms...)
	})
}

// WithMetrics registers search metrics on the default Prometheus registry.
func WithMetrics() Option {
	return optionFunc(func(c *clientConfig) {
		c.metrics = true
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/formsearch/internal/domain"
	"github.com/kailas-cloud/formsearch/internal/usecase/search"
)

// Config holds the formsearch configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Search   SearchConfig   `yaml:"search"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Database drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CatalogConfig holds catalog seeding settings.
type CatalogConfig struct {
	SeedFile string `yaml:"seed_file"` // .yaml/.yml/.json, loaded when storage holds no catalog
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// WeightsConfig holds per-field matcher weights.
type WeightsConfig struct {
	Code            float64 `yaml:"code"`
	Name            float64 `yaml:"name"`
	Keywords        float64 `yaml:"keywords"`
	Description     float64 `yaml:"description"`
	LongDescription float64 `yaml:"long_description"`
}

// DeductionsConfig holds scorer deductions.
type DeductionsConfig struct {
	ExactCode     float64 `yaml:"exact_code"`
	CodePrefix    float64 `yaml:"code_prefix"`
	CodeSubstring float64 `yaml:"code_substring"`
	ExactName     float64 `yaml:"exact_name"`
	NamePrefix    float64 `yaml:"name_prefix"`
	NameSubstring float64 `yaml:"name_substring"`
	TokenHit      float64 `yaml:"token_hit"`
	TokenHitCap   float64 `yaml:"token_hit_cap"`
	SynonymHit    float64 `yaml:"synonym_hit"`
	SynonymHitCap float64 `yaml:"synonym_hit_cap"`
	FullCoverage  float64 `yaml:"full_coverage"`
}

// SearchConfig holds ranking tunables. Keys missing from the file keep the
// calibrated defaults; an explicit 0 is kept (e.g. to disable a deduction).
type SearchConfig struct {
	StrictThreshold     float64          `yaml:"strict_threshold"`
	BroadThreshold      float64          `yaml:"broad_threshold"`
	CoveragePenalty     float64          `yaml:"coverage_penalty"`
	CandidateMultiplier int              `yaml:"candidate_multiplier"`
	MinCandidatePool    int              `yaml:"min_candidate_pool"`
	TopUpFloor          int              `yaml:"top_up_floor"`
	ShortQueryLength    int              `yaml:"short_query_length"`
	ShortQueryGate      float64          `yaml:"short_query_gate"`
	Gate                float64          `yaml:"gate"`
	DefaultBaseScore    float64          `yaml:"default_base_score"`
	FallbackBaseScore   float64          `yaml:"fallback_base_score"`
	FallbackStep        float64          `yaml:"fallback_step"`
	Weights             WeightsConfig    `yaml:"weights"`
	Deductions          DeductionsConfig `yaml:"deductions"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands env variables in data, decodes it and applies defaults and validation.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	// Prefilled so the decoder only overwrites the search keys present in the file.
	cfg := Config{Search: DefaultSearchConfig()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMemory
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = domain.KeyPrefix
	}
	if c.Search == (SearchConfig{}) {
		c.Search = DefaultSearchConfig()
	}
}

// DefaultSearchConfig returns the search section matching search.DefaultTunables.
func DefaultSearchConfig() SearchConfig {
	d := search.DefaultTunables()
	return SearchConfig{
		StrictThreshold:     d.StrictThreshold,
		BroadThreshold:      d.BroadThreshold,
		CoveragePenalty:     d.CoveragePenalty,
		CandidateMultiplier: d.CandidateMultiplier,
		MinCandidatePool:    d.MinCandidatePool,
		TopUpFloor:          d.TopUpFloor,
		ShortQueryLength:    d.ShortQueryLength,
		ShortQueryGate:      d.ShortQueryGate,
		Gate:                d.Gate,
		DefaultBaseScore:    d.DefaultBaseScore,
		FallbackBaseScore:   d.FallbackBaseScore,
		FallbackStep:        d.FallbackStep,
		Weights: WeightsConfig{
			Code:            d.Weights.Code,
			Name:            d.Weights.Name,
			Keywords:        d.Weights.Keywords,
			Description:     d.Weights.Description,
			LongDescription: d.Weights.LongDescription,
		},
		Deductions: DeductionsConfig{
			ExactCode:     d.Deductions.ExactCode,
			CodePrefix:    d.Deductions.CodePrefix,
			CodeSubstring: d.Deductions.CodeSubstring,
			ExactName:     d.Deductions.ExactName,
			NamePrefix:    d.Deductions.NamePrefix,
			NameSubstring: d.Deductions.NameSubstring,
			TokenHit:      d.Deductions.TokenHit,
			TokenHitCap:   d.Deductions.TokenHitCap,
			SynonymHit:    d.Deductions.SynonymHit,
			SynonymHitCap: d.Deductions.SynonymHitCap,
			FullCoverage:  d.Deductions.FullCoverage,
		},
	}
}

// Tunables converts the search section into engine tunables.
func (s *SearchConfig) Tunables() search.Tunables {
	return search.Tunables{
		StrictThreshold: s.StrictThreshold,
		BroadThreshold:  s.BroadThreshold,
		CoveragePenalty: s.CoveragePenalty,
		Weights: search.FieldWeights{
			Code:            s.Weights.Code,
			Name:            s.Weights.Name,
			Keywords:        s.Weights.Keywords,
			Description:     s.Weights.Description,
			LongDescription: s.Weights.LongDescription,
		},
		CandidateMultiplier: s.CandidateMultiplier,
		MinCandidatePool:    s.MinCandidatePool,
		TopUpFloor:          s.TopUpFloor,
		ShortQueryLength:    s.ShortQueryLength,
		ShortQueryGate:      s.ShortQueryGate,
		Gate:                s.Gate,
		DefaultBaseScore:    s.DefaultBaseScore,
		FallbackBaseScore:   s.FallbackBaseScore,
		FallbackStep:        s.FallbackStep,
		Deductions: search.Deductions{
			ExactCode:     s.Deductions.ExactCode,
			CodePrefix:    s.Deductions.CodePrefix,
			CodeSubstring: s.Deductions.CodeSubstring,
			ExactName:     s.Deductions.ExactName,
			NamePrefix:    s.Deductions.NamePrefix,
			NameSubstring: s.Deductions.NameSubstring,
			TokenHit:      s.Deductions.TokenHit,
			TokenHitCap:   s.Deductions.TokenHitCap,
			SynonymHit:    s.Deductions.SynonymHit,
			SynonymHitCap: s.Deductions.SynonymHitCap,
			FullCoverage:  s.Deductions.FullCoverage,
		},
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverMemory:
	case DriverRedis, DriverValkey:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("database.driver must be one of memory, redis, valkey, got %q", c.Database.Driver)
	}
	if c.Search.StrictThreshold > c.Search.BroadThreshold {
		return fmt.Errorf("search.strict_threshold (%g) must not exceed search.broad_threshold (%g)",
			c.Search.StrictThreshold, c.Search.BroadThreshold)
	}
	if c.Search.ShortQueryGate > 1 || c.Search.Gate > 1 {
		return fmt.Errorf("search gates must be at most 1")
	}
	if err := c.Search.validate(); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(c.Catalog.SeedFile)) {
	case "", ".yaml", ".yml", ".json":
	default:
		return fmt.Errorf("catalog.seed_file must be .yaml, .yml or .json, got %q", c.Catalog.SeedFile)
	}
	return nil
}

func (s *SearchConfig) validate() error {
	if s.CandidateMultiplier <= 0 || s.MinCandidatePool <= 0 || s.TopUpFloor <= 0 {
		return fmt.Errorf("search candidate_multiplier, min_candidate_pool and top_up_floor must be positive")
	}
	if s.ShortQueryLength < 0 {
		return fmt.Errorf("search.short_query_length must not be negative, got %d", s.ShortQueryLength)
	}
	w, d := s.Weights, s.Deductions
	nonNegative := map[string]float64{
		"strict_threshold":           s.StrictThreshold,
		"coverage_penalty":           s.CoveragePenalty,
		"short_query_gate":           s.ShortQueryGate,
		"gate":                       s.Gate,
		"default_base_score":         s.DefaultBaseScore,
		"fallback_base_score":        s.FallbackBaseScore,
		"fallback_step":              s.FallbackStep,
		"weights.code":               w.Code,
		"weights.name":               w.Name,
		"weights.keywords":           w.Keywords,
		"weights.description":        w.Description,
		"weights.long_description":   w.LongDescription,
		"deductions.exact_code":      d.ExactCode,
		"deductions.code_prefix":     d.CodePrefix,
		"deductions.code_substring":  d.CodeSubstring,
		"deductions.exact_name":      d.ExactName,
		"deductions.name_prefix":     d.NamePrefix,
		"deductions.name_substring":  d.NameSubstring,
		"deductions.token_hit":       d.TokenHit,
		"deductions.token_hit_cap":   d.TokenHitCap,
		"deductions.synonym_hit":     d.SynonymHit,
		"deductions.synonym_hit_cap": d.SynonymHitCap,
		"deductions.full_coverage":   d.FullCoverage,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("search.%s must not be negative, got %g", name, v)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

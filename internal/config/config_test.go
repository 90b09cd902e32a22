package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 0},
		Database: DatabaseConfig{Driver: DriverMemory},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	for _, driver := range []string{DriverRedis, DriverValkey} {
		t.Run(driver, func(t *testing.T) {
			cfg := Config{
				HTTP:     HTTPConfig{Port: 8080},
				Database: DatabaseConfig{Driver: driver, Addrs: []string{}},
			}

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error for missing %s addrs", driver)
			}
		})
	}
}

func TestValidate_MemoryNeedsNoAddrs(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "postgres"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `database.driver must be one of memory, redis, valkey, got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ThresholdOrder(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.Search.StrictThreshold = 0.7
	cfg.Search.BroadThreshold = 0.5
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when strict threshold exceeds broad threshold")
	}
}

func TestValidate_SeedFileExtension(t *testing.T) {
	tests := []struct {
		file    string
		wantErr bool
	}{
		{"", false},
		{"config/forms.yaml", false},
		{"forms.YML", false},
		{"forms.json", false},
		{"forms.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Catalog: CatalogConfig{SeedFile: tt.file}}
			cfg.ApplyDefaults()

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("expected Driver=memory, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "formsearch:" {
		t.Errorf("expected KeyPrefix='formsearch:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.StrictThreshold != 0.34 {
		t.Errorf("expected StrictThreshold=0.34, got %g", cfg.Search.StrictThreshold)
	}
	if cfg.Search.BroadThreshold != 0.6 {
		t.Errorf("expected BroadThreshold=0.6, got %g", cfg.Search.BroadThreshold)
	}
	if cfg.Search.Weights.Code != 3 {
		t.Errorf("expected Weights.Code=3, got %g", cfg.Search.Weights.Code)
	}
	if cfg.Search.Deductions.ExactCode != 0.5 {
		t.Errorf("expected Deductions.ExactCode=0.5, got %g", cfg.Search.Deductions.ExactCode)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	custom := DefaultSearchConfig()
	custom.Gate = 0.5
	custom.Deductions.FullCoverage = 0
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: DriverValkey, ReadinessTimeout: 15},
		Search:   custom,
		Storage:  StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != DriverValkey {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Search.Gate != 0.5 {
		t.Errorf("expected Gate=0.5, got %g", cfg.Search.Gate)
	}
	if cfg.Search.Deductions.FullCoverage != 0 {
		t.Errorf("expected FullCoverage=0 to be kept, got %g", cfg.Search.Deductions.FullCoverage)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestSearchConfig_Tunables(t *testing.T) {
	cfg, err := Parse([]byte(`
http:
  port: 8080
search:
  top_up_floor: 20
  deductions:
    full_coverage: 0.1
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tun := cfg.Search.Tunables()
	if tun.TopUpFloor != 20 {
		t.Errorf("expected TopUpFloor=20, got %d", tun.TopUpFloor)
	}
	if tun.Deductions.FullCoverage != 0.1 {
		t.Errorf("expected FullCoverage=0.1, got %g", tun.Deductions.FullCoverage)
	}
	if tun.Deductions.ExactCode != 0.5 {
		t.Errorf("expected ExactCode=0.5, got %g", tun.Deductions.ExactCode)
	}
	if tun.ShortQueryGate != 0.48 {
		t.Errorf("expected ShortQueryGate=0.48, got %g", tun.ShortQueryGate)
	}
	if tun.Weights.LongDescription != 0.6 {
		t.Errorf("expected Weights.LongDescription=0.6, got %g", tun.Weights.LongDescription)
	}
	if tun.FallbackStep != 0.0001 {
		t.Errorf("expected FallbackStep=0.0001, got %g", tun.FallbackStep)
	}
}

func TestParse_ExplicitZeroDisablesDeduction(t *testing.T) {
	cfg, err := Parse([]byte(`
http:
  port: 8080
search:
  deductions:
    full_coverage: 0
    synonym_hit: 0
  weights:
    long_description: 0
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tun := cfg.Search.Tunables()
	if tun.Deductions.FullCoverage != 0 || tun.Deductions.SynonymHit != 0 {
		t.Errorf("explicit zeros replaced: %+v", tun.Deductions)
	}
	if tun.Weights.LongDescription != 0 {
		t.Errorf("expected Weights.LongDescription=0, got %g", tun.Weights.LongDescription)
	}
	if tun.Deductions.TokenHit != 0.08 || tun.Weights.Code != 3 {
		t.Errorf("unspecified tunables lost their defaults: %+v", tun)
	}
}

func TestParse_NoSearchSectionUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("http:\n  port: 8080\nsearch:\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Search != DefaultSearchConfig() {
		t.Errorf("expected default search config, got %+v", cfg.Search)
	}
}

func TestValidate_NegativeTunable(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	cfg.Search.Deductions.TokenHit = -0.1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative deduction")
	}
	expected := "search.deductions.token_hit must not be negative, got -0.1"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_NonPositivePool(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	cfg.Search.MinCandidatePool = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero candidate pool")
	}
}

func TestMustLoad(t *testing.T) {
	cfg := MustLoad("local")
	if cfg.HTTP.Port == 0 {
		t.Error("expected port to be set")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing config")
		}
	}()
	MustLoad("does-not-exist")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FORMSEARCH_TEST_PORT", "9090")
	t.Setenv("FORMSEARCH_TEST_EMPTY", "")

	tests := []struct {
		in   string
		want string
	}{
		{"port: ${FORMSEARCH_TEST_PORT}", "port: 9090"},
		{"port: ${FORMSEARCH_TEST_PORT:-8080}", "port: 9090"},
		{"port: ${FORMSEARCH_TEST_EMPTY:-8080}", "port: 8080"},
		{"port: ${FORMSEARCH_TEST_UNSET_VAR}", "port: "},
		{"driver: ${FORMSEARCH_TEST_UNSET_VAR:-memory}", "driver: memory"},
		{"plain: value", "plain: value"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := string(expandEnvVars([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Setenv("FORMSEARCH_TEST_KEY", "secret")

	data := []byte(`
http:
  port: 8080
database:
  driver: valkey
  addrs: ["localhost:6379"]
auth:
  api_keys: ["${FORMSEARCH_TEST_KEY}"]
catalog:
  seed_file: config/forms.yaml
search:
  gate: 0.7
  weights:
    name: 4
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Driver != DriverValkey {
		t.Errorf("expected driver valkey, got %q", cfg.Database.Driver)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "secret" {
		t.Errorf("expected expanded api key, got %v", cfg.Auth.APIKeys)
	}
	if cfg.Catalog.SeedFile != "config/forms.yaml" {
		t.Errorf("unexpected seed file %q", cfg.Catalog.SeedFile)
	}
	if cfg.Search.Gate != 0.7 || cfg.Search.Weights.Name != 4 || cfg.Search.Weights.Code != 3 {
		t.Errorf("unexpected search config %+v", cfg.Search)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected yaml error")
	}
	if _, err := Parse([]byte("http:\n  port: 0\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.HTTP.Port == 0 {
		t.Error("expected port to be set")
	}
}

func TestLoad_Missing(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

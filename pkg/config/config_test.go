package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine.TopK != 30 {
		t.Errorf("Expected default top_k 30, got %d", cfg.Engine.TopK)
	}
	if cfg.Resolver.ResolveLimit != 3 || cfg.Resolver.ResolveMinScore != 0.6 {
		t.Errorf("Unexpected resolution defaults: %+v", cfg.Resolver)
	}
	if cfg.Resolver.SuggestLimit != 5 || cfg.Resolver.SuggestMinScore != 0.3 {
		t.Errorf("Unexpected suggestion defaults: %+v", cfg.Resolver)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[engine]
top_k = 10

[resolver]
suggest_limit = 8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.TopK != 10 {
		t.Errorf("Expected top_k override 10, got %d", cfg.Engine.TopK)
	}
	if cfg.Resolver.SuggestLimit != 8 {
		t.Errorf("Expected suggest_limit override 8, got %d", cfg.Resolver.SuggestLimit)
	}
	// untouched keys keep defaults
	if cfg.Resolver.ResolveMinScore != 0.6 {
		t.Errorf("Unset key should keep default, got %v", cfg.Resolver.ResolveMinScore)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if cfg.Engine.TopK != 30 {
		t.Errorf("Expected defaults from fresh config, got %+v", cfg.Engine)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected config file to be created at %s: %v", path, err)
	}

	// and the created file must round-trip
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Reloading created config failed: %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("Round-trip mismatch: %+v vs %+v", reloaded, cfg)
	}
}

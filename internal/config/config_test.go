package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  api_key: secret\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("port = %d, want default 5000", cfg.Server.Port)
	}
	if cfg.Server.APIKey != "secret" {
		t.Errorf("api key = %q, want secret", cfg.Server.APIKey)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("mongo uri = %q, want default", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "emoup" {
		t.Errorf("mongo database = %q, want emoup", cfg.Mongo.Database)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v, want info/json defaults", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 6000\nmongo:\n  uri: mongodb://cfg:27017\n")

	t.Setenv("EMOUP_SERVER_PORT", "7000")
	t.Setenv("EMOUP_MONGO_URI", "mongodb://env:27017")
	t.Setenv("EMOUP_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want env override 7000", cfg.Server.Port)
	}
	if cfg.Mongo.URI != "mongodb://env:27017" {
		t.Errorf("mongo uri = %q, want env override", cfg.Mongo.URI)
	}
	if cfg.Server.APIKey != "from-env" {
		t.Errorf("api key = %q, want from-env", cfg.Server.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map\n")
	if _, err := Load(path); err == nil {
		t.Fatal("want error for malformed yaml")
	}
}

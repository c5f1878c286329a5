package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-curatorform/pkg/curator"
)

func mapLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(mapLookup(nil))
	if cfg.Addr != ":8080" || cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(mapLookup(map[string]string{
		EnvAddr:            " :9000 ",
		EnvLogLevel:        "debug",
		EnvRateLimitRPS:    "0",
		EnvRateLimitBurst:  "nope",
		EnvShutdownTimeout: "2s",
		EnvFormConfig:      "form.yaml",
		EnvTrustedProxies:  "10.0.0.0/8, 192.168.1.10,,",
	}))
	want := &Config{
		Addr:            ":9000",
		FormConfigPath:  "form.yaml",
		RateLimitRPS:    0,
		RateLimitBurst:  10,
		ShutdownTimeout: 2 * time.Second,
		TrustedProxies:  []string{"10.0.0.0/8", "192.168.1.10"},
		Logging: LoggingConfig{
			Level:      "debug",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRejectsNegativeRate(t *testing.T) {
	cfg := FromEnv(mapLookup(map[string]string{EnvRateLimitRPS: "-1"}))
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestTrustedProxyPrefixes(t *testing.T) {
	cfg := &Config{TrustedProxies: []string{"10.1.2.3/8", "192.168.1.10", "::ffff:172.16.0.1", "2001:db8::/32"}}
	prefixes, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		t.Fatalf("TrustedProxyPrefixes: %v", err)
	}
	got := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		got = append(got, prefix.String())
	}
	want := []string{"10.0.0.0/8", "192.168.1.10/32", "172.16.0.1/32", "2001:db8::/32"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prefixes mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRejectsBadTrustedProxy(t *testing.T) {
	cfg := FromEnv(mapLookup(map[string]string{EnvTrustedProxies: "10.0.0.0/8,proxy.internal"}))
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for non-IP proxy entry")
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CURATOR_ADDR=:7070\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv(EnvAddr, "")
	os.Unsetenv(EnvAddr)

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("expected dotenv addr, got %q", cfg.Addr)
	}
}

func TestParseFormConfig(t *testing.T) {
	cfg, err := ParseFormConfig([]byte(`
id: onboarding
passwordField: true
playlistsSettings:
  redirectOnRemoveFirst: /playlists
`))
	if err != nil {
		t.Fatalf("ParseFormConfig: %v", err)
	}
	want := curator.Config{
		ID:                "onboarding",
		PasswordField:     true,
		PlaylistsSettings: &curator.PlaylistsSettings{RedirectOnRemoveFirst: "/playlists"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("form config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormConfigRejectsUnknownKeys(t *testing.T) {
	if _, err := ParseFormConfig([]byte("passwordFeld: true\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestParseFormConfigEmpty(t *testing.T) {
	cfg, err := ParseFormConfig(nil)
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if diff := cmp.Diff(curator.Config{}, cfg); diff != "" {
		t.Fatalf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestLoadFormConfigMissingFile(t *testing.T) {
	if _, err := LoadFormConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
	if _, err := LoadFormConfig(""); err != nil {
		t.Fatalf("empty path must be allowed: %v", err)
	}
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env keys.
const (
	EnvAddr            = "CURATOR_ADDR"
	EnvLogLevel        = "CURATOR_LOG_LEVEL"
	EnvLogDir          = "CURATOR_LOG_DIR"
	EnvLogMaxSizeMB    = "CURATOR_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups   = "CURATOR_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays   = "CURATOR_LOG_MAX_AGE_DAYS"
	EnvRateLimitRPS    = "CURATOR_RATE_LIMIT_RPS"
	EnvRateLimitBurst  = "CURATOR_RATE_LIMIT_BURST"
	EnvFormConfig      = "CURATOR_FORM_CONFIG"
	EnvSuccessRedirect = "CURATOR_SUCCESS_REDIRECT"
	EnvShutdownTimeout = "CURATOR_SHUTDOWN_TIMEOUT"
	EnvTrustedProxies  = "CURATOR_TRUSTED_PROXIES"
)

// LoggingConfig controls the slog handler and optional file rotation.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config is the server configuration read from the environment.
type Config struct {
	Addr            string
	FormConfigPath  string
	SuccessRedirect string
	RateLimitRPS    int
	RateLimitBurst  int
	ShutdownTimeout time.Duration
	// TrustedProxies are IPs or CIDRs whose X-Forwarded-For header is
	// believed when identifying clients.
	TrustedProxies []string
	Logging        LoggingConfig
}

// LoadDotenvIfPresent loads each existing dotenv file. Missing files are
// skipped; variables already set in the environment win.
func LoadDotenvIfPresent(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: stat dotenv %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load dotenv %s: %w", path, err)
		}
	}
	return nil
}

// Load reads dotenv files (".env" by default) then builds and validates the
// configuration from the environment.
func Load(dotenvPaths ...string) (*Config, error) {
	if err := LoadDotenvIfPresent(dotenvPaths...); err != nil {
		return nil, err
	}
	cfg := FromEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config using lookup for every key.
func FromEnv(lookup func(string) (string, bool)) *Config {
	env := envReader{lookup: lookup}
	return &Config{
		Addr:            env.String(EnvAddr, ":8080"),
		FormConfigPath:  env.String(EnvFormConfig, ""),
		SuccessRedirect: env.String(EnvSuccessRedirect, ""),
		RateLimitRPS:    env.Int(EnvRateLimitRPS, 5),
		RateLimitBurst:  env.Int(EnvRateLimitBurst, 10),
		ShutdownTimeout: env.Duration(EnvShutdownTimeout, 10*time.Second),
		TrustedProxies:  env.List(EnvTrustedProxies),
		Logging: LoggingConfig{
			Level:      env.String(EnvLogLevel, "info"),
			LogDir:     env.String(EnvLogDir, ""),
			MaxSizeMB:  env.Int(EnvLogMaxSizeMB, 10),
			MaxBackups: env.Int(EnvLogMaxBackups, 3),
			MaxAgeDays: env.Int(EnvLogMaxAgeDays, 28),
			Compress:   true,
		},
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil config")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: %s is empty", EnvAddr)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config: invalid rate limit rps=%d burst=%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: %s must be positive", EnvShutdownTimeout)
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	return nil
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address is a single-host
// prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("config: %s: %w", EnvTrustedProxies, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvTrustedProxies, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// LogEnvStatus logs the effective configuration at debug level.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if cfg == nil || logger == nil {
		return
	}
	logger.Debug("env_status",
		"addr", cfg.Addr,
		"form_config", cfg.FormConfigPath,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
		"trusted_proxies", cfg.TrustedProxies,
		"log_level", cfg.Logging.Level,
		"log_dir", cfg.Logging.LogDir,
	)
}

type envReader struct {
	lookup func(string) (string, bool)
}

func (e envReader) String(key, def string) string {
	if e.lookup == nil {
		return def
	}
	if value, ok := e.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return def
}

// List splits a comma-separated value, dropping empty entries.
func (e envReader) List(key string) []string {
	raw := e.String(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e envReader) Int(key string, def int) int {
	raw := e.String(key, "")
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

func (e envReader) Duration(key string, def time.Duration) time.Duration {
	raw := e.String(key, "")
	if raw == "" {
		return def
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return value
}

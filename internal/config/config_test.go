package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:           "8080",
		BackendURL:     "http://localhost:8000",
		HTTPTimeout:    15 * time.Second,
		CurrencySymbol: "₪",
		DateFormat:     "02/01/2006",
		LogLevel:       "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty backend URL",
			mutate:      func(c *Config) { c.BackendURL = "" },
			wantErr:     true,
			errorString: "backend URL cannot be empty",
		},
		{
			name:        "invalid backend URL scheme",
			mutate:      func(c *Config) { c.BackendURL = "ftp://example.com" },
			wantErr:     true,
			errorString: "invalid backend URL scheme 'ftp'",
		},
		{
			name:        "timeout too short",
			mutate:      func(c *Config) { c.HTTPTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "empty currency symbol",
			mutate:      func(c *Config) { c.CurrencySymbol = "  " },
			wantErr:     true,
			errorString: "currency symbol cannot be empty",
		},
		{
			name:        "empty date format",
			mutate:      func(c *Config) { c.DateFormat = "" },
			wantErr:     true,
			errorString: "date format cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BACKEND_URL", "HTTP_TIMEOUT", "CURRENCY_SYMBOL", "DATE_FORMAT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.BackendURL != "http://localhost:8000" {
		t.Fatalf("default backend URL = %q", cfg.BackendURL)
	}
	if cfg.CurrencySymbol != "₪" {
		t.Fatalf("default currency symbol = %q", cfg.CurrencySymbol)
	}
	if cfg.DateFormat != "02/01/2006" {
		t.Fatalf("default date format = %q", cfg.DateFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "https://expenses.internal")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("CURRENCY_SYMBOL", "€")

	cfg := Load()
	if cfg.Port != "9090" || cfg.BackendURL != "https://expenses.internal" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("timeout override = %v", cfg.HTTPTimeout)
	}
	if cfg.CurrencySymbol != "€" {
		t.Fatalf("currency override = %q", cfg.CurrencySymbol)
	}
}

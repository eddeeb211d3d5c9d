package fetcher_test

import (
	"testing"
	"time"

	"smart-news/internal/infra/fetcher"
)

func TestDefaultConfig(t *testing.T) {
	cfg := fetcher.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if !cfg.DenyPrivateIPs {
		t.Error("DenyPrivateIPs must default to true")
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fetcher.ContentFetchConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *fetcher.ContentFetchConfig) {}, false},
		{"zero timeout", func(c *fetcher.ContentFetchConfig) { c.Timeout = 0 }, true},
		{"negative timeout", func(c *fetcher.ContentFetchConfig) { c.Timeout = -time.Second }, true},
		{"body size too small", func(c *fetcher.ContentFetchConfig) { c.MaxBodySize = 512 }, true},
		{"body size too large", func(c *fetcher.ContentFetchConfig) { c.MaxBodySize = 200 * 1024 * 1024 }, true},
		{"negative redirects", func(c *fetcher.ContentFetchConfig) { c.MaxRedirects = -1 }, true},
		{"too many redirects", func(c *fetcher.ContentFetchConfig) { c.MaxRedirects = 11 }, true},
		{"zero redirects allowed", func(c *fetcher.ContentFetchConfig) { c.MaxRedirects = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fetcher.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CONTENT_FETCH_TIMEOUT", "20s")
	t.Setenv("CONTENT_FETCH_MAX_BODY_SIZE", "2097152")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "3")
	t.Setenv("CONTENT_FETCH_DENY_PRIVATE_IPS", "false")

	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv err=%v", err)
	}

	if cfg.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MaxBodySize != 2097152 {
		t.Errorf("MaxBodySize = %d", cfg.MaxBodySize)
	}
	if cfg.MaxRedirects != 3 {
		t.Errorf("MaxRedirects = %d", cfg.MaxRedirects)
	}
	if cfg.DenyPrivateIPs {
		t.Error("DenyPrivateIPs = true, want false")
	}
}

func TestLoadConfigFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timeout", "CONTENT_FETCH_TIMEOUT", "ten seconds"},
		{"bad body size", "CONTENT_FETCH_MAX_BODY_SIZE", "big"},
		{"bad redirects", "CONTENT_FETCH_MAX_REDIRECTS", "many"},
		{"out of range redirects", "CONTENT_FETCH_MAX_REDIRECTS", "99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := fetcher.LoadConfigFromEnv(); err == nil {
				t.Error("LoadConfigFromEnv must fail")
			}
		})
	}
}

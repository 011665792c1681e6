package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:   "123:abc",
			RunMode: RunModeWebhook,
		},
		Webhook: WebhookConfig{
			URL:    "https://bot.example.org/hook",
			Listen: "0.0.0.0",
			Port:   8443,
		},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Content.BaseURL != "https://hmomen.com" {
		t.Errorf("base url = %q", cfg.Content.BaseURL)
	}
	if cfg.Content.PathPrefix != "/content/" {
		t.Errorf("path prefix = %q", cfg.Content.PathPrefix)
	}
	if cfg.Content.FetchTimeoutSeconds != 25 {
		t.Errorf("fetch timeout = %d", cfg.Content.FetchTimeoutSeconds)
	}
	if cfg.Telegram.RunMode != RunModeWebhook {
		t.Errorf("run mode = %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("expected token error, got %v", err)
	}
}

func TestNormalizeWebhookFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing url", func(c *Config) { c.Webhook.URL = "" }},
		{"missing listen", func(c *Config) { c.Webhook.Listen = "" }},
		{"zero port", func(c *Config) { c.Webhook.Port = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := Normalize(cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNormalizeRunModeAliases(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown run mode")
	}
}

func TestNormalizeContent(t *testing.T) {
	cfg := validConfig()
	cfg.Content.BaseURL = "https://hmomen.com/"
	cfg.Content.PathPrefix = "content/"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for relative path prefix")
	}

	cfg = validConfig()
	cfg.Content.BaseURL = "not a url at all\x7f"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for malformed base url")
	}

	cfg = validConfig()
	cfg.Content.BaseURL = "https://mirror.example.net/"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Content.BaseURL != "https://mirror.example.net" {
		t.Errorf("base url = %q, trailing slash not trimmed", cfg.Content.BaseURL)
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Errorf("exclusion not normalized: %q", cfg.RateLimit.ExcludeUpdates[0])
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclusion")
	}
}

package llm

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"mock needs no key", func(c *Config) { c.Provider = "mock" }, false},
		{"gemini without key", func(c *Config) { c.Provider = "gemini" }, true},
		{"gemini with key", func(c *Config) {
			c.Provider = "gemini"
			c.Gemini.APIKey = "k"
		}, false},
		{"openai without key", func(c *Config) { c.Provider = "openai" }, true},
		{"anthropic without key", func(c *Config) { c.Provider = "anthropic" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "llama-local" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("DERMASCAN_LLM_PROVIDER", "openai")
	t.Setenv("DERMASCAN_OPENAI_API_KEY", "key-from-env")
	t.Setenv("DERMASCAN_OPENAI_MODEL", "gpt-4o-mini")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "key-from-env" {
		t.Errorf("api key = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("ANTHROPIC_API_KEY", "ant-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini (highest priority)", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "gem-key" {
		t.Errorf("api key = %q", cfg.Gemini.APIKey)
	}
}

func TestDiscoverConfigNothingSet(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, ok := DiscoverConfig(); ok {
		t.Error("expected discovery to fail with no keys set")
	}
}

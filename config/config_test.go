package config

import "testing"

func TestIsSnowflake(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123456789012345678", true},
		{"12345678901234567", true},
		{"12345678901234567890", true},
		{"1234567890123456", false},
		{"123456789012345678901", false},
		{"12345678901234567a", false},
		{"", false},
		{" 123456789012345678", false},
	}
	for _, tt := range tests {
		if got := IsSnowflake(tt.in); got != tt.want {
			t.Errorf("IsSnowflake(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnvTrimsAndStripsQuotes(t *testing.T) {
	t.Setenv("GOHAN_TEST_KEY", `  "abc"  `)
	if got := env("GOHAN_TEST_KEY"); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"TOKEN", "DISCORD_BOT_TOKEN", "MYSQL_HOST", "MYSQL_PORT", "LLM_PROVIDER", "TRACKED_SWEEP_CRON", "DATABASE_PATH"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.SweepCron != "@daily" {
		t.Errorf("SweepCron = %q, want @daily", cfg.SweepCron)
	}
	if cfg.Database.MySQL.Port != 3306 {
		t.Errorf("MySQL port = %d, want 3306", cfg.Database.MySQL.Port)
	}
	if cfg.Database.MySQL.Enabled() {
		t.Error("MySQL should not be enabled without host/user/database")
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.LLM.Provider)
	}
}

func TestLoadTokenAlias(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TOKEN", "")
	t.Setenv("DISCORD_BOT_TOKEN", "abc")
	if got := Load().DiscordToken; got != "abc" {
		t.Errorf("token = %q, want %q", got, "abc")
	}
}

func TestLLMAPIKey(t *testing.T) {
	l := LLM{Provider: "anthropic", OpenAIKey: "o", AnthropicKey: "a"}
	if l.APIKey() != "a" {
		t.Errorf("anthropic key = %q", l.APIKey())
	}
	l.Provider = "openai"
	if l.APIKey() != "o" {
		t.Errorf("openai key = %q", l.APIKey())
	}
}

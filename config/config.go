package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken string
	MealQuestion MealQuestion
	SweepCron    string
	Database     Database
	LLM          LLM
	Custom       CustomCommand
	LogLevel     string
	LogFormat    string
}

// MealQuestion configures the scheduled "what did you eat" prompt.
type MealQuestion struct {
	Cron        string
	Timezone    string
	GuildID     string
	ChannelName string
	RoleName    string
	Text        string
	TextMorning string
	TextNoon    string
	TextNight   string
}

type Database struct {
	MySQL MySQL
	Path  string // SQLite file, used when MySQL is not configured
}

type MySQL struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Enabled reports whether the required MySQL keys are all present.
func (m MySQL) Enabled() bool {
	return m.Host != "" && m.User != "" && m.Database != ""
}

type LLM struct {
	Provider      string // openai, anthropic, ollama
	OpenAIKey     string
	AnthropicKey  string
	Model         string
	OllamaBaseURL string
}

// APIKey returns the key for the configured provider.
func (l LLM) APIKey() string {
	switch l.Provider {
	case "anthropic":
		return l.AnthropicKey
	case "ollama":
		return "ollama"
	default:
		return l.OpenAIKey
	}
}

type CustomCommand struct {
	Trigger string
	Reply   string
}

func ConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gohan")
}

func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config")
}

func Load() *Config {
	// godotenv never overrides variables that are already set, so the real
	// environment wins, then ./.env, then ~/.gohan/config.
	_ = godotenv.Load()
	_ = godotenv.Load(ConfigFile())

	return &Config{
		DiscordToken: firstEnv("TOKEN", "DISCORD_BOT_TOKEN"),
		MealQuestion: MealQuestion{
			Cron:        env("MEAL_QUESTION_CRON"),
			Timezone:    env("MEAL_QUESTION_TZ"),
			GuildID:     env("MEAL_QUESTION_GUILD_ID"),
			ChannelName: env("MEAL_QUESTION_CHANNEL_NAME"),
			RoleName:    env("MEAL_QUESTION_ROLE_NAME"),
			Text:        env("MEAL_QUESTION_TEXT"),
			TextMorning: env("MEAL_QUESTION_TEXT_MORNING"),
			TextNoon:    env("MEAL_QUESTION_TEXT_NOON"),
			TextNight:   env("MEAL_QUESTION_TEXT_NIGHT"),
		},
		SweepCron: envOr("TRACKED_SWEEP_CRON", "@daily"),
		Database: Database{
			MySQL: MySQL{
				Host:     env("MYSQL_HOST"),
				Port:     envInt("MYSQL_PORT", 3306),
				User:     env("MYSQL_USER"),
				Password: env("MYSQL_PASSWORD"),
				Database: env("MYSQL_DATABASE"),
			},
			Path: envOr("DATABASE_PATH", "./gohan.db"),
		},
		LLM: LLM{
			Provider:      envOr("LLM_PROVIDER", "openai"),
			OpenAIKey:     env("OPENAI_API_KEY"),
			AnthropicKey:  env("ANTHROPIC_API_KEY"),
			Model:         env("LLM_MODEL"),
			OllamaBaseURL: envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		},
		Custom: CustomCommand{
			Trigger: env("CUSTOM_COMMAND"),
			Reply:   env("CUSTOM_REPLY"),
		},
		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "text"),
	}
}

var snowflakeRe = regexp.MustCompile(`^[0-9]{17,20}$`)

// IsSnowflake reports whether s looks like a Discord id (17-20 digits).
func IsSnowflake(s string) bool {
	return snowflakeRe.MatchString(s)
}

// env returns the trimmed value of key. Quotes left over from hand-edited
// .env files (KEY = "value") are stripped.
func env(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	return v
}

func envOr(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(env(key))
	if err != nil {
		return fallback
	}
	return n
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := env(k); v != "" {
			return v
		}
	}
	return ""
}

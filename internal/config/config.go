package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	TelegramToken    string
	WebhookPublicURL string
	OpenAIKey        string // optional; commentary is off without it
	OpenAIModel      string
	Port             string
	DBPath           string
	Benchmark        string
	Confidence       float64
	LogLevel         zerolog.Level
}

// LoadDotEnv reads a .env file from the working directory when there is one.
// Variables already set in the environment win.
func LoadDotEnv(log zerolog.Logger) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env not loaded")
	}
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		fmt.Fprintf(os.Stderr, "missing env %s\n", k)
		os.Exit(1)
	}
	return v
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Load builds the bot configuration; the Telegram settings are required.
func Load() (Config, error) {
	cfg, err := LoadLocal()
	if err != nil {
		return Config{}, err
	}
	cfg.TelegramToken = mustEnv("TELEGRAM_BOT_TOKEN")
	cfg.WebhookPublicURL = mustEnv("WEBHOOK_PUBLIC_URL")
	return cfg, nil
}

// LoadLocal reads everything but the Telegram secrets. It serves the CLI and
// the parts of the bot that run without Telegram.
func LoadLocal() (Config, error) {
	cfg := Config{
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: envOr("OPENAI_MODEL", "gpt-4"),
		Port:        envOr("PORT", "9095"),
		DBPath:      envOr("DB_PATH", "/app/data/portfolio.db"),
		Benchmark:   envOr("BENCHMARK_SYMBOL", "^BVSP"),
	}

	c, err := strconv.ParseFloat(envOr("VAR_CONFIDENCE", "0.95"), 64)
	if err != nil || c <= 0 || c >= 1 {
		return Config{}, fmt.Errorf("VAR_CONFIDENCE must be a number in (0, 1), got %q", os.Getenv("VAR_CONFIDENCE"))
	}
	cfg.Confidence = c

	lvl, err := zerolog.ParseLevel(strings.ToLower(envOr("LOG_LEVEL", "info")))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = lvl
	return cfg, nil
}

// Logger returns a timestamped logger at the configured level. console
// selects zerolog's human-readable writer instead of JSON lines.
func (c Config) Logger(w io.Writer, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(c.LogLevel).With().Timestamp().Logger()
}

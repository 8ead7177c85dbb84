package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	BackendURL     string        `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
	ListenAddr     string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DefaultLocale  string        `env:"DEFAULT_LOCALE" envDefault:"en"`
	StatusTTL      time.Duration `env:"STATUS_TTL" envDefault:"5s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	CSRFKey        string        `env:"CSRF_KEY"`
	CSRFSecure     bool          `env:"CSRF_SECURE" envDefault:"true"`
	DiscordToken   string        `env:"DISCORD_TOKEN"`
	DiscordGuildID string        `env:"DISCORD_GUILD_ID"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load charge la configuration depuis .env et les variables d'environnement et la valide.
func Load() (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: lecture de l'environnement: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DiscordEnabled indique si le bot Discord doit démarrer.
func (c *Config) DiscordEnabled() bool {
	return strings.TrimSpace(c.DiscordToken) != ""
}

// SlogLevel convertit LogLevel en slog.Level (info par défaut).
func (c *Config) SlogLevel() slog.Level {
	return ParseLevel(c.LogLevel)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validate applique toutes les règles sur la configuration chargée.
func (c *Config) validate() error {
	c.BackendURL = strings.TrimSpace(c.BackendURL)
	parsed, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("config: BACKEND_URL invalide (%q): %w", c.BackendURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("config: BACKEND_URL invalide (%q): le scheme doit être http ou https", c.BackendURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("config: BACKEND_URL invalide (%q): host manquant", c.BackendURL)
	}

	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("config: LISTEN_ADDR est requis et ne peut pas être vide")
	}

	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: DEFAULT_LOCALE invalide (%q): %w", c.DefaultLocale, err)
	}

	if c.StatusTTL <= 0 {
		return fmt.Errorf("config: STATUS_TTL doit être positif, reçu %s", c.StatusTTL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT doit être positif, reçu %s", c.RequestTimeout)
	}

	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return fmt.Errorf("config: CSRF_KEY doit faire exactement 32 octets, reçu %d", len(c.CSRFKey))
	}

	for _, r := range c.DiscordGuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_GUILD_ID doit être un ID de serveur Discord (chiffres uniquement)")
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: LOG_LEVEL invalide (%q): attendu debug, info, warn ou error", c.LogLevel)
	}

	return nil
}

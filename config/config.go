// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required by the server).
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// RefreshCron is the schedule of the leaderboard warm-up job.
	RefreshCron string
	// AdminParticipants may record results regardless of their stored flag.
	AdminParticipants []string

	// CSVDir is the default directory for cmd/import and cmd/score.
	CSVDir string

	// MySQL – used only by cmd/migrate.
	MySQLDSN string
}

// Load reads the server configuration and exits when DB credentials or the
// JWT secret are missing.
func Load() *Config {
	cfg := read()
	cfg.validateDB()
	if cfg.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	return cfg
}

// LoadCLI reads the same keys as Load but only requires DB credentials.
func LoadCLI() *Config {
	cfg := read()
	cfg.validateDB()
	return cfg
}

func read() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "canape")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "canape")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)
	v.SetDefault("REFRESH_CRON", "@every 10m")
	v.SetDefault("CSV_DIR", "csv")

	return &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBUser:            v.GetString("DB_USER"),
		DBPass:            v.GetString("DB_PASS"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		Debug:             v.GetBool("DEBUG"),
		Port:              v.GetString("PORT"),
		TLSDomains:        splitTrimmed(v.GetString("TLS_DOMAINS")),
		RefreshCron:       v.GetString("REFRESH_CRON"),
		AdminParticipants: splitTrimmed(v.GetString("ADMIN_PARTICIPANTS")),
		CSVDir:            v.GetString("CSV_DIR"),
		MySQLDSN:          v.GetString("MYSQL_DSN"),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// IsAdmin reports whether the participant ID is listed in ADMIN_PARTICIPANTS.
func (c *Config) IsAdmin(participantID string) bool {
	id := strings.ToLower(strings.TrimSpace(participantID))
	return id != "" && slices.ContainsFunc(c.AdminParticipants, func(a string) bool {
		return strings.ToLower(a) == id
	})
}

func (c *Config) validateDB() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

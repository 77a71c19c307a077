// apps/go-server/internal/config/config.go
//
// Environment-driven configuration. A .env file in the working directory is
// loaded first (development); real environment variables take precedence.

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

const devSecret = "dev_secret_change_me"

// Config holds server settings.
type Config struct {
	Port         string
	DBPath       string
	WordsFile    string
	MaxWrong     int
	JWTSecret    string
	JWTExpires   time.Duration
	CookieName   string
	AnonCookie   string
	ClientOrigin string
	Production   bool
	LogLevel     zerolog.Level
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment, applying defaults.
func FromEnv() Config {
	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	maxWrong := envInt("MAX_WRONG", 6)
	if maxWrong <= 0 || maxWrong > game.MaxWrongLimit {
		maxWrong = 6
	}
	return Config{
		Port:         getEnv("PORT", "5175"),
		DBPath:       getEnv("DB_PATH", "./data/app.db"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		MaxWrong:     maxWrong,
		JWTSecret:    getEnv("JWT_SECRET", devSecret),
		JWTExpires:   time.Duration(envInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:   getEnv("COOKIE_NAME", "hangman_token"),
		AnonCookie:   getEnv("ANON_COOKIE_NAME", "hangman_anon"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",
		LogLevel:     lvl,
	}
}

// InsecureSecret reports whether the JWT secret is the development default.
func (c Config) InsecureSecret() bool { return c.JWTSecret == devSecret }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "WORDS_FILE", "MAX_WRONG", "JWT_SECRET", "JWT_EXPIRES_DAYS", "LOG_LEVEL", "NODE_ENV"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Port != "5175" || c.DBPath != "./data/app.db" || c.MaxWrong != 6 {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.JWTExpires != 14*24*time.Hour {
		t.Errorf("wanted 14 day expiry, got %v", c.JWTExpires)
	}
	if !c.InsecureSecret() || c.Production {
		t.Errorf("wanted dev settings, got %+v", c)
	}
	if c.LogLevel != zerolog.InfoLevel {
		t.Errorf("wanted info level, got %v", c.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	envTests := []struct {
		key, value string
		check      func(Config) bool
	}{
		{"PORT", "9000", func(c Config) bool { return c.Port == "9000" }},
		{"MAX_WRONG", "8", func(c Config) bool { return c.MaxWrong == 8 }},
		{"MAX_WRONG", "0", func(c Config) bool { return c.MaxWrong == 6 }},
		{"MAX_WRONG", "many", func(c Config) bool { return c.MaxWrong == 6 }},
		{"MAX_WRONG", "27", func(c Config) bool { return c.MaxWrong == 6 }},
		{"JWT_EXPIRES_DAYS", "1", func(c Config) bool { return c.JWTExpires == 24*time.Hour }},
		{"JWT_SECRET", "s3cret", func(c Config) bool { return !c.InsecureSecret() }},
		{"LOG_LEVEL", "debug", func(c Config) bool { return c.LogLevel == zerolog.DebugLevel }},
		{"LOG_LEVEL", "loud", func(c Config) bool { return c.LogLevel == zerolog.InfoLevel }},
		{"NODE_ENV", "production", func(c Config) bool { return c.Production }},
	}
	for i, test := range envTests {
		t.Setenv(test.key, test.value)
		if !test.check(FromEnv()) {
			t.Errorf("Test %v: %v=%q not applied", i, test.key, test.value)
		}
	}
}

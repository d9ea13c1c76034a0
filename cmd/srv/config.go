package main

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shelfmark/backend/config"
	"github.com/shelfmark/backend/pkg/xcontext"
)

// loadConfig builds the configuration from the environment. When
// SHELFMARK_CONFIG points at a toml file, the file provides the base and
// the environment overrides nothing; otherwise everything comes from
// env vars with local defaults.
func (s *srv) loadConfig() {
	// A missing .env file is fine in deployments.
	_ = godotenv.Load()

	if path := os.Getenv("SHELFMARK_CONFIG"); path != "" {
		configs := config.Configs{}
		if _, err := toml.DecodeFile(path, &configs); err != nil {
			panic(err)
		}

		s.configs = &configs
	} else {
		s.configs = &config.Configs{
			Env: getEnv("ENV", "local"),
			Database: config.DatabaseConfigs{
				Driver:     getEnv("DATABASE_DRIVER", "sqlite"),
				Host:       getEnv("MYSQL_HOST", "localhost"),
				Port:       getEnv("MYSQL_PORT", "3306"),
				Database:   getEnv("MYSQL_DATABASE", "shelfmark"),
				User:       getEnv("MYSQL_USER", "shelfmark"),
				Password:   getEnv("MYSQL_PASSWORD", "secret"),
				SQLiteFile: getEnv("SQLITE_FILE", "shelfmark.db"),
			},
			ApiServer: config.ServerConfigs{
				Host:         getEnv("HOST", "localhost"),
				Port:         getEnv("PORT", "8080"),
				AllowCORS:    []string{getEnv("ALLOW_CORS", "http://localhost:3000")},
				MaxLimit:     getIntEnv("API_MAX_LIMIT", 50),
				DefaultLimit: getIntEnv("API_DEFAULT_LIMIT", 10),
			},
			Auth: config.AuthConfigs{
				TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
				AccessToken: config.TokenConfigs{
					Name:       "access_token",
					Expiration: getDurationEnv("ACCESS_TOKEN_DURATION", "24h"),
				},
				Google: config.OAuth2Config{
					Name:         "google",
					Issuer:       getEnv("GOOGLE_ISSUER", "https://accounts.google.com"),
					ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
					ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
					IDField:      "sub",
				},
			},
			Session: config.SessionConfigs{
				Secret: getEnv("SESSION_SECRET", "session-secret"),
				Name:   getEnv("SESSION_NAME", "shelfmark_session"),
			},
			Redis: config.RedisConfigs{
				Addr: getEnv("REDIS_ADDR", "localhost:6379"),
			},
			Stats: config.StatsConfigs{
				DefaultWindowDays: getIntEnv("STATS_DEFAULT_WINDOW_DAYS", 30),
				MaxWindowDays:     getIntEnv("STATS_MAX_WINDOW_DAYS", 365),
			},
			Presence: config.PresenceConfigs{
				HeartbeatTTL: getDurationEnv("PRESENCE_HEARTBEAT_TTL", "90s"),
			},
		}
	}

	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func getDurationEnv(key, fallback string) time.Duration {
	value := getEnv(key, fallback)
	duration, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return duration
}

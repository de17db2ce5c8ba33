package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	ShutdownTimeout time.Duration

	MySQLDSN          string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	ResetDB           bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret        string
	TokenTTL         time.Duration
	LoginMaxAttempts int
	LoginLockout     time.Duration

	LogLevel         string
	LogFormat        string
	CORSAllowOrigins []string
	SwaggerHost      string

	Seed SeedConfig
}

// SeedConfig drives cmd/seed.
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	AdminAddress  string
	Demo          bool
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/storerating?charset=utf8mb4&parseTime=True&loc=Local"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ResetDB:           getEnvBool("RESET_DB", false),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		TokenTTL:         getEnvDuration("TOKEN_TTL", time.Hour),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockout:     getEnvDuration("LOGIN_LOCKOUT", 15*time.Minute),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),

		Seed: SeedConfig{
			AdminName:     getEnv("SEED_ADMIN_NAME", "System Administrator Account"),
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@storerating.local"),
			AdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
			AdminAddress:  os.Getenv("SEED_ADMIN_ADDRESS"),
			Demo:          getEnvBool("SEED_DEMO", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

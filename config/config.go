package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server Server
	Logger Logger
	SQLite SQLite
	JWT    JWT
	Redis  Redis
	Upload Upload
}

type Server struct {
	AppEnv   string
	HTTPPort string
}

type Logger struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SQLite struct {
	Path         string
	MaxOpenConns int
	BusyTimeout  int // milliseconds
}

type JWT struct {
	SecretKey string
	ExpiryHrs int
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Upload struct {
	Dir          string
	MaxSizeBytes int64
}

func LoadEnv() *Config {
	return &Config{
		Server: Server{
			AppEnv:   getEnv("APP_ENV", "development"),
			HTTPPort: getEnv("HTTP_PORT", ":3001"),
		},
		Logger: Logger{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		SQLite: SQLite{
			Path:         getEnv("SQLITE_PATH", "agriconnect.db"),
			MaxOpenConns: getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
			BusyTimeout:  getEnvInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
		},
		JWT: JWT{
			SecretKey: getEnv("JWT_SECRET", "your-secret-key"),
			ExpiryHrs: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Redis: Redis{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Upload: Upload{
			Dir:          getEnv("UPLOAD_DIR", "uploads"),
			MaxSizeBytes: int64(getEnvInt("UPLOAD_MAX_SIZE_BYTES", 5*1024*1024)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

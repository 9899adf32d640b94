package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	JWTSecret    string
	JWTExpiresIn string // minutes

	// Attendance store
	StoreDriver string // file | postgres | redis
	DataDir     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       string

	// Roster & schedule
	RosterURL    string
	ScheduleFile string

	LateThresholdMinutes       string
	EarlyLeaveThresholdMinutes string
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8080"),
		JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresIn: getenv("JWT_EXPIRES_IN", "720"),

		StoreDriver: getenv("STORE_DRIVER", "file"),
		DataDir:     getenv("DATA_DIR", "data"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "attendance_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenv("REDIS_DB", "0"),

		RosterURL:    getenv("ROSTER_URL", ""),
		ScheduleFile: getenv("SCHEDULE_FILE", ""),

		LateThresholdMinutes:       getenv("LATE_THRESHOLD_MINUTES", ""),
		EarlyLeaveThresholdMinutes: getenv("EARLY_LEAVE_THRESHOLD_MINUTES", ""),
	}
}

// IntOr parses s as an int, falling back when unset or malformed.
func IntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

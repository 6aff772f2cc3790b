package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SlackToken string
	CronSecret string

	LeetCodeGraphQLURL string
	Usernames          []string
	SubmissionsLimit   int
	MaxFetchAttempts   int

	// AllowedDifficulties gates random-question eligibility; one revision of
	// the bot excluded Hard, so the set is configurable.
	AllowedDifficulties []string

	// LeaderboardRule picks the "solved day" predicate:
	// "submission-day" or "assigned-question".
	LeaderboardRule string

	DispatchLockTTL time.Duration
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:             getEnv("API_PORT", "8080"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "user"),
		DBPassword:          getEnv("DB_PASSWORD", "password"),
		DBName:              getEnv("DB_NAME", "leetboard_db"),
		DBSslMode:           getEnv("DB_SSLMODE", "disable"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		SlackToken:          getEnv("SLACK_TOKEN", ""),
		CronSecret:          getEnv("CRON_SECRET", ""),
		LeetCodeGraphQLURL:  getEnv("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
		Usernames:           getEnvAsList("LEETCODE_USERNAMES", []string{"roccomaniscalco2001", "PrettyLegit"}),
		SubmissionsLimit:    getEnvAsInt("SUBMISSIONS_LIMIT", 10),
		MaxFetchAttempts:    getEnvAsInt("MAX_FETCH_ATTEMPTS", 5),
		AllowedDifficulties: getEnvAsList("ALLOWED_DIFFICULTIES", []string{"Easy", "Medium"}),
		LeaderboardRule:     getEnv("LEADERBOARD_RULE", "submission-day"),
		DispatchLockTTL:     time.Duration(getEnvAsInt("DISPATCH_LOCK_TTL_HOURS", 20)) * time.Hour,
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}

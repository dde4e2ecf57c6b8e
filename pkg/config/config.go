package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	GigaChat GigaChatConfig
	Speech   SpeechConfig
	Language LanguageConfig
	Matcher  MatcherConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SessionConfig struct {
	TTL           time.Duration
	MaxSessions   int
	SweepInterval time.Duration
	// Store selects the session backend: "memory" or "redis".
	Store         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

type SpeechConfig struct {
	CredentialsFile  string
	AudioStoragePath string
	AudioBaseURL     string
	RetentionPeriod  time.Duration
	SpeechRate       float64
	Timeout          time.Duration
}

type LanguageConfig struct {
	Default string
}

// MatcherConfig holds the relevance scoring weights. Tunable via env so a
// weight change does not need a rebuild.
type MatcherConfig struct {
	AgeWeight        float64
	IncomeWeight     float64
	OccupationWeight float64
	StateWeight      float64
	CategoryWeight   float64
	GenderWeight     float64
	BPLWeight        float64
	KeywordBonus     float64
}

func Load() (*Config, error) {
	// .env is optional; environment variables alone work for Docker/K8s.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_EXPIRE_MINUTES", "30"))
	maxSessions, _ := strconv.Atoi(getEnv("SESSION_MAX_COUNT", "1000"))
	sweepInterval, _ := strconv.Atoi(getEnv("SESSION_SWEEP_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	retentionHours, _ := strconv.Atoi(getEnv("AUDIO_RETENTION_HOURS", "24"))
	speechRate, _ := strconv.ParseFloat(getEnv("TTS_SPEECH_RATE", "0.9"), 64)
	gigachatTimeout, _ := strconv.Atoi(getEnv("GIGACHAT_TIMEOUT_SECONDS", "30"))
	speechTimeout, _ := strconv.Atoi(getEnv("SPEECH_TIMEOUT_SECONDS", "60"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Session: SessionConfig{
			TTL:           time.Duration(sessionTTL) * time.Minute,
			MaxSessions:   maxSessions,
			SweepInterval: time.Duration(sweepInterval) * time.Second,
			Store:         strings.ToLower(getEnv("SESSION_STORE", "memory")),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
			Timeout:            time.Duration(gigachatTimeout) * time.Second,
		},
		Speech: SpeechConfig{
			CredentialsFile:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			AudioStoragePath: getEnv("AUDIO_STORAGE_PATH", "./storage/audio"),
			AudioBaseURL:     getEnv("AUDIO_BASE_URL", "/api/v1/audio"),
			RetentionPeriod:  time.Duration(retentionHours) * time.Hour,
			SpeechRate:       speechRate,
			Timeout:          time.Duration(speechTimeout) * time.Second,
		},
		Language: LanguageConfig{
			Default: getEnv("DEFAULT_LANGUAGE", "hi"),
		},
		Matcher: MatcherConfig{
			AgeWeight:        getEnvFloat("MATCH_WEIGHT_AGE", 20),
			IncomeWeight:     getEnvFloat("MATCH_WEIGHT_INCOME", 15),
			OccupationWeight: getEnvFloat("MATCH_WEIGHT_OCCUPATION", 25),
			StateWeight:      getEnvFloat("MATCH_WEIGHT_STATE", 15),
			CategoryWeight:   getEnvFloat("MATCH_WEIGHT_CATEGORY", 15),
			GenderWeight:     getEnvFloat("MATCH_WEIGHT_GENDER", 5),
			BPLWeight:        getEnvFloat("MATCH_WEIGHT_BPL", 5),
			KeywordBonus:     getEnvFloat("MATCH_KEYWORD_BONUS", 10),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

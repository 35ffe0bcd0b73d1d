package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	UploadBackendLocal = "local"
	UploadBackendMinIO = "minio"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type DB struct {
	DbHOST         string
	DbPORT         string
	DbUSER         string
	DbPASSWORD     string
	DbNAME         string
	DbSSLMODE      string
	MigrationsPath string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Log struct {
	Level  string
	Format string
}

type RateLimit struct {
	RequestsPerSecond int
	Burst             int
}

// Web holds the presentation client settings.
type Web struct {
	Port          int
	APIBaseURL    string
	APITimeout    time.Duration
	UploadBackend string
	UploadsDir    string
	MemesDir      string
	SessionStore  string
	SessionSecret string
	SessionTTL    time.Duration
	APITimeZone   string // zone the Content API formats created_at in
}

type Config struct {
	ServerPort    int
	StoreDriver   string
	DB            DB
	MinIO         MinIO
	Redis         Redis
	Log           Log
	RateLimit     RateLimit
	Web           Web
	MaxUploadSize int64
}

// fileValues holds KEY: value pairs read from CONFIG_FILE. The environment wins over them.
var fileValues = map[string]string{}

func lookup(key string) (string, bool) {
	if value, exists := os.LookupEnv(key); exists {
		return value, true
	}
	value, exists := fileValues[key]
	return value, exists
}

func getEnv(key string, defaultValue string) string {
	if value, exists := lookup(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := lookup(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, ok := lookup(key); ok && value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.WithField("key", key).Warn("invalid duration, using default")
	}
	return defaultValue
}

// loadFile reads a flat YAML mapping of configuration keys.
func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		values[key] = fmt.Sprint(value)
	}
	return values, nil
}

func LoadDB() DB {
	return DB{
		DbHOST:         getEnv("DB_HOST", "localhost"),
		DbPORT:         getEnv("DB_PORT", "5432"),
		DbUSER:         getEnv("DB_USER", "postgres"),
		DbPASSWORD:     getEnv("DB_PASSWORD", "password"),
		DbNAME:         getEnv("DB_NAME", "newsboard"),
		DbSSLMODE:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadWeb() Web {
	return Web{
		Port:          getEnvAsInt("WEB_PORT", 8501),
		APIBaseURL:    getEnv("API_BASE_URL", "http://127.0.0.1:8080"),
		APITimeout:    getEnvDuration("API_TIMEOUT", 5*time.Second),
		UploadBackend: getEnv("UPLOAD_BACKEND", UploadBackendLocal),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		MemesDir:      getEnv("MEMES_DIR", "memes"),
		SessionStore:  getEnv("SESSION_STORE", SessionStoreMemory),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		APITimeZone:   getEnv("API_TIME_ZONE", "Local"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found, using environment variables")
	}

	fileValues = map[string]string{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		values, err := loadFile(path)
		if err != nil {
			log.WithError(err).Warn("config file ignored")
		} else {
			fileValues = values
		}
	}

	return &Config{
		ServerPort:  getEnvAsInt("SERVER_PORT", 8080),
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverPostgres),
		DB:          LoadDB(),
		MinIO:       LoadMinIO(),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		RateLimit: RateLimit{
			RequestsPerSecond: getEnvAsInt("RATE_LIMIT_RPS", 0),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 100),
		},
		Web:           LoadWeb(),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

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
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Catalog  CatalogConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// UpstreamConfig points at the remote catalog API that owns all business
// state (products, images, categories, users).
type UpstreamConfig struct {
	BaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicActivity string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type CatalogConfig struct {
	PageSize           int
	CategoryFetchLimit int
	ImageWorkers       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	pageSize, _ := strconv.Atoi(getEnv("CATALOG_PAGE_SIZE", "8"))
	categoryLimit, _ := strconv.Atoi(getEnv("CATALOG_CATEGORY_FETCH_LIMIT", "1000"))
	imageWorkers, _ := strconv.Atoi(getEnv("CATALOG_IMAGE_WORKERS", "4"))
	sessionTTLHours, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "168"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("CATALOG_API_URL", "http://localhost:8001"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicActivity: getEnv("KAFKA_TOPIC_ACTIVITY", "storefront-activity"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Catalog: CatalogConfig{
			PageSize:           pageSize,
			CategoryFetchLimit: categoryLimit,
			ImageWorkers:       imageWorkers,
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "sid"),
			TTL:        time.Duration(sessionTTLHours) * time.Hour,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, upstream=%s", cfg.Server.Env, cfg.Server.Port, cfg.Upstream.BaseURL)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

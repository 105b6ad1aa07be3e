package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Catalog   CatalogConfig
	Stock     StockConfig
	Auth      AuthConfig
	Cart      CartConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	AppEnv         string
	HTTPPort       string
	GRPCPort       string
	AllowedOrigins []string
	SecureCookies  bool
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type JWTConfig struct {
	SecretKey string
}

// RedisConfig with an empty Addr switches every keyed store to process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig with no brokers disables the stock event listener.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type CatalogConfig struct {
	Source    string // postgres, remote or file
	RemoteURL string
	FilePath  string
	CacheTTL  time.Duration
	PageSize  int
}

type StockConfig struct {
	BaseURL     string // empty means stock is read from the local catalog source
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
}

type AuthConfig struct {
	UpstreamURL string
	WebhookURL  string
	SenderEmail string
	PublicURL   string
	BrandName   string
	CodeTTL     time.Duration
}

type CartConfig struct {
	HandoffTTL time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:         getEnv("APP_ENV", "dev"),
			HTTPPort:       getEnv("HTTP_PORT", ":3000"),
			GRPCPort:       getEnv("GRPC_PORT", ":8083"),
			AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			SecureCookies:  getEnvBool("SECURE_COOKIES", false),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5433"),
			User:            getEnv("POSTGRES_USER", "omnipos"),
			Password:        getEnv("POSTGRES_PASSWORD", "omnipos"),
			DBName:          getEnv("POSTGRES_DB", "omnipos_storefront"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC_INVENTORY", "inventory.events"),
			GroupID: getEnv("KAFKA_GROUP_STOREFRONT", "storefront"),
		},
		Catalog: CatalogConfig{
			Source:    getEnv("CATALOG_SOURCE", "postgres"),
			RemoteURL: getEnv("CATALOG_REMOTE_URL", "http://localhost:3001"),
			FilePath:  getEnv("CATALOG_FILE", "catalog.json"),
			CacheTTL:  getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			PageSize:  getEnvInt("CATALOG_PAGE_SIZE", 12),
		},
		Stock: StockConfig{
			BaseURL:     getEnv("STOCK_BASE_URL", ""),
			Timeout:     getEnvDuration("STOCK_TIMEOUT", 5*time.Second),
			MaxAttempts: getEnvInt("STOCK_MAX_ATTEMPTS", 3),
			BaseBackoff: getEnvDuration("STOCK_BASE_BACKOFF", 200*time.Millisecond),
		},
		Auth: AuthConfig{
			UpstreamURL: getEnv("AUTH_UPSTREAM_URL", "http://localhost:4000"),
			WebhookURL:  getEnv("N8N_WEBHOOK_URL", ""),
			SenderEmail: getEnv("SENDER_EMAIL", "no-reply@localhost"),
			PublicURL:   getEnv("BETTER_AUTH_URL", "http://localhost:3000"),
			BrandName:   getEnv("BRAND_NAME", "Sanrico Mercantile"),
			CodeTTL:     getEnvDuration("VERIFICATION_CODE_TTL", 15*time.Minute),
		},
		Cart: CartConfig{
			HandoffTTL: getEnvDuration("CHECKOUT_HANDOFF_TTL", 30*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("AUTH_RATE_LIMIT_REQUESTS", 10),
			Window:   getEnvDuration("AUTH_RATE_LIMIT_WINDOW", time.Minute),
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

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

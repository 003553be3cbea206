package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Cart     CartConfig
	Pricing  PricingConfig
	Catalog  CatalogConfig
	JWT      JWTConfig
	CORS     CORSConfig
	S3       S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// IsDevelopment reports whether verbose logging and console output should be used.
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	ConnectRetries int
	RetryBackoff   time.Duration
}

type MongoConfig struct {
	URI    string
	DBName string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Cart persistence backends.
const (
	CartStoreMemory   = "memory"
	CartStorePostgres = "postgres"
	CartStoreRedis    = "redis"
	CartStoreMongo    = "mongo"
)

type CartConfig struct {
	Store                string
	TTL                  time.Duration
	CleanupSchedule      string
	DefaultPaymentMethod string
}

type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

type CatalogConfig struct {
	PageSize int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

// Enabled reports whether product image uploads are configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	p := &parser{}

	environment := getEnv("ENVIRONMENT", getEnv("NODE_ENV", "development"))

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "5000"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: environment,
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "beanvanilla"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectRetries: p.intVar("DB_CONNECT_RETRIES", 5),
			RetryBackoff:   p.durationVar("DB_RETRY_BACKOFF", time.Second),
		},
		Mongo: MongoConfig{
			URI:    getEnv("MONGO_URI", ""),
			DBName: getEnv("MONGO_DB_NAME", "beanvanilla"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       p.intVar("REDIS_DB", 0),
		},
		Cart: CartConfig{
			Store:                getEnv("CART_STORE", CartStorePostgres),
			TTL:                  p.durationVar("CART_TTL", 720*time.Hour),
			CleanupSchedule:      getEnv("CART_CLEANUP_SCHEDULE", "0 3 * * *"),
			DefaultPaymentMethod: getEnv("DEFAULT_PAYMENT_METHOD", "PayPal"),
		},
		Pricing: PricingConfig{
			FreeShippingThreshold: p.decimalVar("FREE_SHIPPING_THRESHOLD", "150"),
			FlatShippingFee:       p.decimalVar("FLAT_SHIPPING_FEE", "10"),
			TaxRate:               p.decimalVar("TAX_RATE", "0.08"),
		},
		Catalog: CatalogConfig{
			PageSize: p.intVar("CATALOG_PAGE_SIZE", 6),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "bean-and-vanilla-dev-secret"),
			AccessTokenExpiry:  p.durationVar("JWT_ACCESS_TOKEN_EXPIRY", 24*time.Hour),
			RefreshTokenExpiry: p.durationVar("JWT_REFRESH_TOKEN_EXPIRY", 168*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
	}

	switch config.Cart.Store {
	case CartStoreMemory, CartStorePostgres, CartStoreRedis, CartStoreMongo:
	default:
		p.fail("CART_STORE", config.Cart.Store, errors.New("must be one of memory, postgres, redis, mongo"))
	}
	if config.Cart.Store == CartStoreRedis && !config.Redis.Enabled() {
		p.fail("CART_STORE", config.Cart.Store, errors.New("REDIS_HOST is required"))
	}
	if config.Cart.Store == CartStoreMongo && config.Mongo.URI == "" {
		p.fail("CART_STORE", config.Cart.Store, errors.New("MONGO_URI is required"))
	}
	if config.Catalog.PageSize < 1 {
		p.fail("CATALOG_PAGE_SIZE", strconv.Itoa(config.Catalog.PageSize), errors.New("must be at least 1"))
	}

	if err := p.err(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns host:port for the redis client.
func (r *RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// FieldError reports an environment variable that could not be parsed.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// parser collects every invalid variable so they are reported together.
type parser struct {
	errs []error
}

func (p *parser) fail(key, value string, err error) {
	p.errs = append(p.errs, &FieldError{Key: key, Value: value, Err: err})
}

func (p *parser) err() error {
	return errors.Join(p.errs...)
}

func (p *parser) intVar(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) durationVar(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) decimalVar(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		p.fail(key, raw, err)
		return decimal.RequireFromString(def)
	}
	if v.IsNegative() {
		p.fail(key, raw, errors.New("must not be negative"))
	}
	return v
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseSlice(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settlement modes.
const (
	SettlementGateway = "gateway"
	SettlementQueue   = "queue"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	NATS         NATSConfig         `mapstructure:"nats"`
	Settlement   SettlementConfig   `mapstructure:"settlement"`
	Gateway      GatewayConfig      `mapstructure:"gateway"`
	Exchange     ExchangeConfig     `mapstructure:"exchange"`
	Tokenization TokenizationConfig `mapstructure:"tokenization"`
	Webhook      WebhookConfig      `mapstructure:"webhook"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"` // empty disables redis
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	ClaimTTL time.Duration `mapstructure:"claim_ttl"`
}

// Enabled reports whether a redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	Stream          string        `mapstructure:"stream"`
	RequestSubject  string        `mapstructure:"request_subject"`
	ResponseSubject string        `mapstructure:"response_subject"`
	AckSubject      string        `mapstructure:"ack_subject"`
	Durable         string        `mapstructure:"durable"`
	FetchBatch      int           `mapstructure:"fetch_batch"`
	FetchWait       time.Duration `mapstructure:"fetch_wait"`
}

// Enabled reports whether a NATS url is configured.
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

type SettlementConfig struct {
	Mode string `mapstructure:"mode"` // gateway, queue
}

type GatewayConfig struct {
	URL        string        `mapstructure:"url"`
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ExchangeConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TokenizationConfig struct {
	Key string `mapstructure:"key"` // HMAC key used to derive wallet tokens
}

type WebhookConfig struct {
	Secret string `mapstructure:"secret"` // empty disables signature checks
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from a .env file, the config file and environment variables.
// Environment variables override file values. Prefix: WLT_.
// Nested keys use underscore: WLT_DATABASE_HOST, WLT_SETTLEMENT_MODE, etc.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("storage.driver", StoragePostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallets")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.claim_ttl", "24h")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.stream", "TRANSACTIONS")
	v.SetDefault("nats.request_subject", "transactions.request")
	v.SetDefault("nats.response_subject", "transactions.response")
	v.SetDefault("nats.ack_subject", "transactions.ack")
	v.SetDefault("nats.durable", "wallet-settlement")
	v.SetDefault("nats.fetch_batch", 16)
	v.SetDefault("nats.fetch_wait", "2s")
	v.SetDefault("settlement.mode", SettlementGateway)
	v.SetDefault("gateway.url", "http://localhost:9090/transaction")
	v.SetDefault("gateway.webhook_url", "http://localhost:8080/api/v1/transaction/webhook")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("exchange.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("exchange.api_key", "")
	v.SetDefault("exchange.timeout", "5s")
	v.SetDefault("tokenization.key", "")
	v.SetDefault("webhook.secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// WLT_DATABASE_HOST -> database.host
	v.SetEnvPrefix("WLT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the cross-field rules Load cannot express as defaults.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q must be %q or %q", c.Storage.Driver, StoragePostgres, StorageMemory))
	}

	switch c.Settlement.Mode {
	case SettlementGateway:
		if c.Gateway.URL == "" {
			errs = append(errs, errors.New("gateway.url is required in gateway settlement mode"))
		}
	case SettlementQueue:
		if !c.NATS.Enabled() {
			errs = append(errs, errors.New("nats.url is required in queue settlement mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("settlement.mode %q must be %q or %q", c.Settlement.Mode, SettlementGateway, SettlementQueue))
	}

	if c.Tokenization.Key == "" {
		errs = append(errs, errors.New("tokenization.key is required"))
	}
	if c.Exchange.BaseURL == "" {
		errs = append(errs, errors.New("exchange.base_url is required"))
	}

	return errors.Join(errs...)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "JOBFAIR"

type AppConfig struct {
	API        *APIConfig        `mapstructure:"api"`
	Gin        *GinConfig        `mapstructure:"gin"`
	Postgres   *PostgresConfig   `mapstructure:"postgres"`
	Redis      *RedisConfig      `mapstructure:"redis"`
	RabbitMQ   *RabbitMQConfig   `mapstructure:"rabbitmq"`
	Assignment *AssignmentConfig `mapstructure:"assignment"`

	v    *viper.Viper
	once sync.Once
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RabbitMQConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

type AssignmentConfig struct {
	BulkBatchSize  int           `mapstructure:"bulk_batch_size"`
	BulkBatchPause time.Duration `mapstructure:"bulk_batch_pause"`
	StatsCacheTTL  time.Duration `mapstructure:"stats_cache_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.jwt_ttl", "12h")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "jobfair")
	v.SetDefault("postgres.ssl_mode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "booth.assignments")

	v.SetDefault("assignment.bulk_batch_size", 10)
	v.SetDefault("assignment.bulk_batch_pause", "100ms")
	v.SetDefault("assignment.stats_cache_ttl", "30s")
}

// Load reads the YAML file at path. Every key can be overridden by an environment
// variable such as JOBFAIR_POSTGRES_HOST. A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !isMissingFile(err) {
			return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
		}
	}

	conf, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	return conf, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{v: v}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.Assignment.BulkBatchSize <= 0 {
		return fmt.Errorf("assignment.bulk_batch_size must be positive, got %d", c.Assignment.BulkBatchSize)
	}
	if c.Assignment.BulkBatchPause < 0 {
		return fmt.Errorf("assignment.bulk_batch_pause must not be negative, got %v", c.Assignment.BulkBatchPause)
	}

	return nil
}

// Watch reloads the file whenever it changes on disk and hands the new config to
// onChange. Reloads that fail to parse or validate are passed to onError instead.
func (c *AppConfig) Watch(onChange func(*AppConfig), onError func(error)) {
	c.once.Do(func() {
		c.v.OnConfigChange(func(_ fsnotify.Event) {
			conf, err := unmarshal(c.v)
			if err != nil {
				onError(err)
				return
			}
			onChange(conf)
		})
		c.v.WatchConfig()
	})
}

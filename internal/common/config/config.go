// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Matching      MatchingConfig          `mapstructure:"matching"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	HTTPAddress string `mapstructure:"http_address"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	JobsIndex string   `mapstructure:"jobs_index"`
}

type RedisConfig struct {
	Address   string        `mapstructure:"address"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	PoolSize  int           `mapstructure:"pool_size"`
	MinIdle   int           `mapstructure:"min_idle"`
	OpTimeout time.Duration `mapstructure:"op_timeout"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// Job sources for the match engine.
const (
	JobSourcePostgres      = "postgres"
	JobSourceElasticsearch = "elasticsearch"
)

// MatchingConfig tunes the match engine and its stores.
type MatchingConfig struct {
	DefaultLimit      int           `mapstructure:"default_limit"`
	MaxCandidates     int           `mapstructure:"max_candidates"`
	Parallelism       int           `mapstructure:"parallelism"`
	ParallelThreshold int           `mapstructure:"parallel_threshold"`
	JobSource         string        `mapstructure:"job_source"`
	CacheTTL          int           `mapstructure:"cache_ttl"` // milliseconds, 0 disables caching
	DefaultWeights    WeightsConfig `mapstructure:"default_weights"`
}

type WeightsConfig struct {
	Skill    float64 `mapstructure:"skill"`
	Title    float64 `mapstructure:"title"`
	Salary   float64 `mapstructure:"salary"`
	Remote   float64 `mapstructure:"remote"`
	Location float64 `mapstructure:"location"`
	Industry float64 `mapstructure:"industry"`
}

// NotificationConfig holds settings for the match digest worker.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	DigestThreshold int `mapstructure:"digest_threshold"`
	DigestMaxItems  int `mapstructure:"digest_max_items"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds metrics and tracing settings.
type ObservabilityConfig struct {
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

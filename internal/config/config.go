package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Mode           string               `xml:"MODE,attr"` // "development" or "production"
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
	DB             DBConfig             `xml:"DB"`
	Redis          RedisConfig          `xml:"REDIS"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
	LogDir   string `xml:"LOG_DIR"`
}

// AuthenticationConfig holds token settings. Secrets may be overridden by the
// QUIZHIVE_ACCESS_SECRET / QUIZHIVE_REFRESH_SECRET environment variables.
type AuthenticationConfig struct {
	AccessSecret        string `xml:"ACCESS_SECRET"`
	RefreshSecret       string `xml:"REFRESH_SECRET"`
	AccessExpiryMinutes int    `xml:"ACCESS_EXPIRY_MINUTES"`
	RefreshExpiryHours  int    `xml:"REFRESH_EXPIRY_HOURS"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize    int `xml:"PAGE_SIZE"`
	MaxPageSize int `xml:"MAX_PAGE_SIZE"`
}

// RateLimitConfig holds per-client request throttling settings.
type RateLimitConfig struct {
	Enabled           bool    `xml:"ENABLED"`
	RequestsPerSecond float64 `xml:"REQUESTS_PER_SECOND"`
	Burst             int     `xml:"BURST"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Host     string       `xml:"HOST"`
	Port     int          `xml:"PORT"`
	SSLMode  string       `xml:"SSL_MODE"`
	Name     string       `xml:"NAME"`
	Username string       `xml:"USERNAME"`
	Password string       `xml:"PASSWORD"`
	Pool     DBPoolConfig `xml:"POOL"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"` // minutes
}

// RedisConfig holds leaderboard cache settings. An empty ADDR disables caching.
type RedisConfig struct {
	Addr       string `xml:"ADDR"`
	Password   string `xml:"PASSWORD"`
	DB         int    `xml:"DB"`
	TTLSeconds int    `xml:"TTL_SECONDS"`
}

// LoadConfig loads and parses the XML configuration from the given file.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	var loadErr error
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			loadErr = err
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			loadErr = err
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			loadErr = err
			return
		}

		applyEnvOverrides(&newCfg)
		cfg = &newCfg
	})

	if loadErr != nil {
		return nil, loadErr
	}
	if cfg == nil {
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

// IsProduction reports whether the API runs in production mode. Internal
// error details are suppressed from client responses in production.
func (c *APIConfig) IsProduction() bool {
	return c.Mode != "development"
}

// applyEnvOverrides lets secrets from the environment (or a .env file loaded
// by the caller) take precedence over values committed in config.xml.
func applyEnvOverrides(c *APIConfig) {
	if v := os.Getenv("QUIZHIVE_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("QUIZHIVE_ACCESS_SECRET"); v != "" {
		c.Authentication.AccessSecret = v
	}
	if v := os.Getenv("QUIZHIVE_REFRESH_SECRET"); v != "" {
		c.Authentication.RefreshSecret = v
	}
	if v := os.Getenv("QUIZHIVE_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

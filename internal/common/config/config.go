// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port             int  `mapstructure:"port"`
	ReadTimeout      int  `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout     int  `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout  int  `mapstructure:"shutdown_timeout"` // milliseconds
	MaxBodyBytes     int  `mapstructure:"max_body_bytes"`
	HealthFailStatus bool `mapstructure:"health_fail_status"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// ArtifactsConfig points at the frozen artifact directory written by the
// training process.
type ArtifactsConfig struct {
	Path      string `mapstructure:"path"`
	ModelCard string `mapstructure:"model_card"`
}

type PipelineConfig struct {
	Clamp            ClampConfig `mapstructure:"clamp"`
	StrictCategories bool        `mapstructure:"strict_categories"`
}

// ClampConfig is the plausibility range applied to raw model output.
type ClampConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     int    `mapstructure:"ttl"` // milliseconds
	Prefix  string `mapstructure:"prefix"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

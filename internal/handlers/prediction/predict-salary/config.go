// internal/handlers/prediction/predict-salary/config.go
package predictsalary

import (
	"time"

	"salary-predictor/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	MaxBodyBytes int64
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:      5 * time.Second,
		MaxBodyBytes: 1 << 16,
	}
	if cfg == nil {
		return c
	}
	if cfg.Server.WriteTimeout > 0 {
		c.Timeout = config.GetDuration(cfg.Server.WriteTimeout)
	}
	if cfg.Server.MaxBodyBytes > 0 {
		c.MaxBodyBytes = int64(cfg.Server.MaxBodyBytes)
	}
	return c
}

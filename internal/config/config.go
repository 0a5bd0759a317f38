package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env         string
	ListenAddr  string
	DatabaseURL string

	DispatchWorkers    int
	PollInterval       time.Duration
	ProcessingTimeout  time.Duration
	DefaultMaxRetries  int
	DispatchBackoff    time.Duration
	DispatchBackoffMax time.Duration

	ExecutorURL     string
	ExecutorTimeout time.Duration
	ExecutorRetries int

	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("dispatch_workers", 2)
	v.SetDefault("poll_interval", "30s")
	v.SetDefault("processing_timeout", "0s")
	v.SetDefault("default_max_retries", 3)
	v.SetDefault("dispatch_backoff", "5s")
	v.SetDefault("dispatch_backoff_max", "5m")
	v.SetDefault("executor_url", "")
	v.SetDefault("executor_timeout", "10s")
	v.SetDefault("executor_retries", 2)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads the optional config file, then environment variables
// (LISTEN_ADDR, DATABASE_URL, ...), which win over the file.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		Env:                v.GetString("app_env"),
		ListenAddr:         v.GetString("listen_addr"),
		DatabaseURL:        v.GetString("database_url"),
		DispatchWorkers:    v.GetInt("dispatch_workers"),
		PollInterval:       v.GetDuration("poll_interval"),
		ProcessingTimeout:  v.GetDuration("processing_timeout"),
		DefaultMaxRetries:  v.GetInt("default_max_retries"),
		DispatchBackoff:    v.GetDuration("dispatch_backoff"),
		DispatchBackoffMax: v.GetDuration("dispatch_backoff_max"),
		ExecutorURL:        v.GetString("executor_url"),
		ExecutorTimeout:    v.GetDuration("executor_timeout"),
		ExecutorRetries:    v.GetInt("executor_retries"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.PollInterval <= 0:
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	case c.ProcessingTimeout < 0:
		return fmt.Errorf("PROCESSING_TIMEOUT must not be negative")
	case c.DefaultMaxRetries < 0:
		return fmt.Errorf("DEFAULT_MAX_RETRIES must not be negative")
	case c.DispatchBackoff <= 0 || c.DispatchBackoffMax < c.DispatchBackoff:
		return fmt.Errorf("DISPATCH_BACKOFF must be positive and no larger than DISPATCH_BACKOFF_MAX")
	case c.ExecutorRetries < 0:
		return fmt.Errorf("EXECUTOR_RETRIES must not be negative")
	}
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	LogConfig   logger.LogConfig `json:"log_config"`
	Database    DatabaseConfig   `json:"database"`
	Recommend   RecommendConfig  `json:"recommend"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type RecommendConfig struct {
	// TopK is the default number of items returned when the caller does not
	// pass a limit.
	TopK int `json:"top_k"`
	// TrainTimeoutSec bounds the model fit, the only unbounded-latency step of
	// a recommendation request.
	TrainTimeoutSec int `json:"train_timeout_sec"`
	// ExcludeOwned drops items the caller already engaged with from the ranked
	// output. Off by default: returning already-owned items is the documented
	// behaviour, not a bug.
	ExcludeOwned bool `json:"exclude_owned"`
	// StatsCron schedules the signal stats job; empty disables it.
	StatsCron string `json:"stats_cron"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Recommend.TopK <= 0 {
		cfg.Recommend.TopK = 5
	}
	if cfg.Recommend.TrainTimeoutSec <= 0 {
		cfg.Recommend.TrainTimeoutSec = 30
	}
	return &cfg, nil
}

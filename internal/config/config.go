// Package config 模擬器設定：讀取 yaml 並補上預設值。
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig PostgreSQL 連線設定，Enabled 為 false 時不落歷史
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig Redis 連線設定，Enabled 為 false 時不記積分
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// NATSConfig NATS 連線設定，Enabled 為 false 時不發事件
type NATSConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

// SimulationConfig 自動對局參數
type SimulationConfig struct {
	// Matches 要打幾場
	Matches int `mapstructure:"matches"`
	// MaxHands 每場局數上限，0 表示打滿一將
	MaxHands int `mapstructure:"max_hands"`
	// Seed 洗牌種子，0 表示以當前時間為種子
	Seed int64 `mapstructure:"seed"`
	// Workers 並行跑場的 worker 數
	Workers int `mapstructure:"workers"`
	// DisableAudit 關閉守恆審計
	DisableAudit bool `mapstructure:"disable_audit"`
}

// Load 從指定路徑加載配置
func Load(configPath string) (*Config, error) {
	setDefaults()

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "mahjong-simulate")
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.max_idle_conns", 2)
	viper.SetDefault("database.conn_max_lifetime", time.Hour)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("nats.max_reconnects", 10)
	viper.SetDefault("nats.reconnect_wait", 2*time.Second)

	viper.SetDefault("simulation.matches", 1)
	viper.SetDefault("simulation.max_hands", 16)
	viper.SetDefault("simulation.workers", 1)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMergesFileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `app:
  name: sim-test
  log_level: debug
database:
  enabled: true
  host: db.local
  port: 5433
  name: mahjong
  user: dealer
  password: secret
simulation:
  matches: 8
  seed: 42
  disable_audit: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("寫入測試配置失敗: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加載配置失敗: %v", err)
	}

	if cfg.App.Name != "sim-test" {
		t.Errorf("app.name 期望 sim-test，實際 %s", cfg.App.Name)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("app.log_level 期望 debug，實際 %s", cfg.App.LogLevel)
	}

	if !cfg.Database.Enabled {
		t.Error("database.enabled 期望 true")
	}
	if cfg.Database.Host != "db.local" {
		t.Errorf("database.host 期望 db.local，實際 %s", cfg.Database.Host)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("database.port 期望 5433，實際 %d", cfg.Database.Port)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("database.max_open_conns 預設值期望 10，實際 %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.ConnMaxLifetime != time.Hour {
		t.Errorf("database.conn_max_lifetime 預設值期望 1h，實際 %v", cfg.Database.ConnMaxLifetime)
	}

	if cfg.Redis.Enabled {
		t.Error("redis.enabled 預設值期望 false")
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("redis.port 預設值期望 6379，實際 %d", cfg.Redis.Port)
	}

	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("nats.url 預設值期望 nats://localhost:4222，實際 %s", cfg.NATS.URL)
	}
	if cfg.NATS.ReconnectWait != 2*time.Second {
		t.Errorf("nats.reconnect_wait 預設值期望 2s，實際 %v", cfg.NATS.ReconnectWait)
	}

	if cfg.Simulation.Matches != 8 {
		t.Errorf("simulation.matches 期望 8，實際 %d", cfg.Simulation.Matches)
	}
	if cfg.Simulation.MaxHands != 16 {
		t.Errorf("simulation.max_hands 預設值期望 16，實際 %d", cfg.Simulation.MaxHands)
	}
	if cfg.Simulation.Workers != 1 {
		t.Errorf("simulation.workers 預設值期望 1，實際 %d", cfg.Simulation.Workers)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("simulation.seed 期望 42，實際 %d", cfg.Simulation.Seed)
	}
	if !cfg.Simulation.DisableAudit {
		t.Error("simulation.disable_audit 期望 true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("期望加載不存在的配置文件返回錯誤")
	}
}

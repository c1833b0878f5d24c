package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type DumpConfig struct {
	Name   string       `toml:"name"`
	Log    LogConfig    `toml:"log"`
	Decode DecodeConfig `toml:"decode"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
}

type DecodeConfig struct {
	GearRatio float64 `toml:"gear_ratio"`
	Radians   bool    `toml:"radians"`
	ShowRaw   bool    `toml:"show_raw"`
}

type BridgeConfig struct {
	ID          string    `toml:"id"`
	TCPAddr     string    `toml:"tcp_addr"`
	HTTPAddr    string    `toml:"http_addr"`
	CorsOrigins []string  `toml:"cors_origins"`
	Log         LogConfig `toml:"log"`
}

func LoadBridgeConfig(path string) (BridgeConfig, error) {
	var cfg BridgeConfig
	if err := loadToml(path, &cfg); err != nil {
		return BridgeConfig{}, err
	}
	if cfg.ID == "" {
		cfg.ID = "lwpbridge"
	}
	if cfg.TCPAddr == "" {
		cfg.TCPAddr = "127.0.0.1:8888"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":9888"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if err := ValidateBridgeConfig(cfg); err != nil {
		return BridgeConfig{}, err
	}
	return cfg, nil
}

func ValidateBridgeConfig(cfg BridgeConfig) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("bridge config missing id")
	}
	if strings.TrimSpace(cfg.TCPAddr) == "" {
		return fmt.Errorf("bridge config missing tcp_addr")
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return fmt.Errorf("bridge config missing http_addr")
	}
	return nil
}

func LoadDumpConfig(path string) (DumpConfig, error) {
	var cfg DumpConfig
	if err := loadToml(path, &cfg); err != nil {
		return DumpConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "lwpdump"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Decode.GearRatio == 0 {
		cfg.Decode.GearRatio = 1.0
	}
	if err := ValidateDumpConfig(cfg); err != nil {
		return DumpConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateDumpConfig(cfg DumpConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("dump config missing name")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		return fmt.Errorf("dump config log level unknown: %s", cfg.Log.Level)
	}
	if cfg.Decode.GearRatio <= 0 {
		return fmt.Errorf("dump config gear ratio must be positive")
	}
	return nil
}

// Package config resolves the modelwatch settings: built-in defaults,
// overridden by an optional ~/.modelwatch/config.toml, overridden in turn
// by MW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".modelwatch"
	configFileName = "config.toml"

	daemonHostKey    = "daemon.host"
	daemonPortKey    = "daemon.port"
	fetchTimeoutKey  = "daemon.fetch_timeout"
	historyPathKey   = "history.path"
	retentionDaysKey = "history.retention_days"
	listenAddrKey    = "server.listen"
)

type Settings struct {
	DaemonHost    string
	DaemonPort    int
	FetchTimeout  time.Duration
	HistoryPath   string
	RetentionDays int
	ListenAddr    string
}

func (s Settings) Retention() time.Duration {
	return time.Duration(s.RetentionDays) * 24 * time.Hour
}

// fileSchema is the shape of config.toml. Every field is optional; zero
// values leave the default in place.
type fileSchema struct {
	Daemon struct {
		Host         string `toml:"host"`
		Port         int    `toml:"port"`
		FetchTimeout string `toml:"fetch_timeout"`
	} `toml:"daemon"`
	History struct {
		Path          string `toml:"path"`
		RetentionDays int    `toml:"retention_days"`
	} `toml:"history"`
	Server struct {
		Listen string `toml:"listen"`
	} `toml:"server"`
}

func Load(cfg *viper.Viper) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, configDirName)

	cfg.SetDefault(daemonHostKey, "127.0.0.1")
	cfg.SetDefault(daemonPortKey, 11434)
	cfg.SetDefault(fetchTimeoutKey, "5s")
	cfg.SetDefault(historyPathKey, filepath.Join(configDir, "history.json"))
	cfg.SetDefault(retentionDaysKey, 30)
	cfg.SetDefault(listenAddrKey, "127.0.0.1:8414")

	cfg.SetEnvPrefix("MW")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := applyConfigFile(cfg, filepath.Join(configDir, configFileName)); err != nil {
		return Settings{}, err
	}

	fetchTimeout, err := time.ParseDuration(cfg.GetString(fetchTimeoutKey))
	if err != nil {
		return Settings{}, fmt.Errorf("parse fetch timeout: %w", err)
	}

	return Settings{
		DaemonHost:    cfg.GetString(daemonHostKey),
		DaemonPort:    cfg.GetInt(daemonPortKey),
		FetchTimeout:  fetchTimeout,
		HistoryPath:   cfg.GetString(historyPathKey),
		RetentionDays: cfg.GetInt(retentionDaysKey),
		ListenAddr:    cfg.GetString(listenAddrKey),
	}, nil
}

// applyConfigFile layers config.toml values over the defaults. They are
// registered as defaults so environment variables still win.
func applyConfigFile(cfg *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}

	if file.Daemon.Host != "" {
		cfg.SetDefault(daemonHostKey, file.Daemon.Host)
	}
	if file.Daemon.Port != 0 {
		cfg.SetDefault(daemonPortKey, file.Daemon.Port)
	}
	if file.Daemon.FetchTimeout != "" {
		cfg.SetDefault(fetchTimeoutKey, file.Daemon.FetchTimeout)
	}
	if file.History.Path != "" {
		cfg.SetDefault(historyPathKey, file.History.Path)
	}
	if file.History.RetentionDays != 0 {
		cfg.SetDefault(retentionDaysKey, file.History.RetentionDays)
	}
	if file.Server.Listen != "" {
		cfg.SetDefault(listenAddrKey, file.Server.Listen)
	}

	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"wireterm/internal/canvas"
	"wireterm/internal/history"
	"wireterm/internal/templates"
)

// Config holds user settings. Values come from ~/.wireterm.yaml (or
// --config), WIRETERM_* environment variables and flags, in rising priority.
type Config struct {
	SaveDirectory  string        `mapstructure:"save_directory"`
	StartMenu      bool          `mapstructure:"start_menu"`
	Confirmations  bool          `mapstructure:"confirmations"`
	Mode           string        `mapstructure:"mode"`
	Cols           int           `mapstructure:"cols"`
	Rows           int           `mapstructure:"rows"`
	HistoryLimit   int           `mapstructure:"history_limit"`
	Autosave       bool          `mapstructure:"autosave"`
	AutosaveDelay  time.Duration `mapstructure:"autosave_delay"`
	NoticeDuration time.Duration `mapstructure:"notice_duration"`
	AutosaveFile   string        `mapstructure:"autosave_file"`
	LogFile        string        `mapstructure:"log_file"`
	LogLevel       string        `mapstructure:"log_level"`
}

const envPrefix = "WIRETERM"

func setDefaults(v *viper.Viper) {
	v.SetDefault("save_directory", "")
	v.SetDefault("start_menu", true)
	v.SetDefault("confirmations", true)
	v.SetDefault("mode", templates.UIMode.String())
	v.SetDefault("cols", canvas.DefaultCols)
	v.SetDefault("rows", canvas.DefaultRows)
	v.SetDefault("history_limit", history.DefaultLimit)
	v.SetDefault("autosave", true)
	v.SetDefault("autosave_delay", time.Second)
	v.SetDefault("notice_duration", 2500*time.Millisecond)
	v.SetDefault("autosave_file", "~/.wireterm/autosave.json")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
}

// newViper prepares a viper instance. With cfgFile empty it looks for
// .wireterm.yaml in the home directory; a missing file is not an error.
func newViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".wireterm")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := templates.ParseMode(cfg.Mode); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Cols < 1 || cfg.Rows < 1 {
		return nil, fmt.Errorf("invalid config: canvas size %dx%d", cfg.Cols, cfg.Rows)
	}
	if cfg.AutosaveDelay <= 0 {
		cfg.AutosaveDelay = time.Second
	}
	if cfg.NoticeDuration <= 0 {
		cfg.NoticeDuration = 2500 * time.Millisecond
	}
	cfg.SaveDirectory = expandPath(cfg.SaveDirectory)
	cfg.AutosaveFile = expandPath(cfg.AutosaveFile)
	cfg.LogFile = expandPath(cfg.LogFile)
	return &cfg, nil
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return p
}

func (c *Config) mode() templates.Mode {
	m, _ := templates.ParseMode(c.Mode)
	return m
}

// GetSavePath places filename in the save directory, if one is set.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0o755)
	return filepath.Join(c.SaveDirectory, filename)
}

// DesignsDir is where named designs live.
func (c *Config) DesignsDir() string {
	if c.SaveDirectory != "" {
		return filepath.Join(c.SaveDirectory, "designs")
	}
	return filepath.Join(filepath.Dir(c.AutosaveFile), "designs")
}

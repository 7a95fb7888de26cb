// Package config loads command line defaults from folio.toml and FOLIO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/ByLCY/folio/document"
)

// Config is the complete tool configuration.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Log    LogConfig    `mapstructure:"log"`
}

// RenderConfig maps onto document.Settings plus batch options.
type RenderConfig struct {
	MaxPages    int    `mapstructure:"max_pages"`
	Caching     bool   `mapstructure:"caching"`
	Debug       bool   `mapstructure:"debug"`
	CheckGlyphs bool   `mapstructure:"check_glyphs"`
	Workers     int    `mapstructure:"workers"`
	OutputDir   string `mapstructure:"output_dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults registers every key so environment overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("render.max_pages", document.DefaultMaxPages)
	v.SetDefault("render.caching", true)
	v.SetDefault("render.debug", false)
	v.SetDefault("render.check_glyphs", false)
	v.SetDefault("render.workers", 4)
	v.SetDefault("render.output_dir", "output")
	v.SetDefault("log.level", "info")
}

// Load reads path, or ./folio.toml when path is empty. A missing default
// file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("toml")
	}
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置失败: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if cfg.Render.MaxPages <= 0 {
		return nil, fmt.Errorf("render.max_pages 必须为正数，实际为 %d", cfg.Render.MaxPages)
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	return &cfg, nil
}

// Settings converts the render section to document settings.
func (c *Config) Settings(logger *log.Logger) document.Settings {
	return document.Settings{
		MaxPages:        c.Render.MaxPages,
		EnableCaching:   c.Render.Caching,
		EnableDebugging: c.Render.Debug,
		CheckGlyphs:     c.Render.CheckGlyphs,
		Logger:          logger,
	}
}

// Level is the configured log level; Load has validated it.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

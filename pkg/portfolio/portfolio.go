// Package portfolio builds the JSON manifests that drive the portfolio galleries.
package portfolio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ThumbOpts are thumbnail options.
type ThumbOpts struct {
	Edge    int `mapstructure:"edge"`
	Quality int `mapstructure:"quality"`
}

// Config holds configuration for the portfolio tools.
type Config struct {
	Root          string    `mapstructure:"root"`
	ImagesURL     string    `mapstructure:"images_url"`
	SiteURL       string    `mapstructure:"site_url"`
	ShowcaseLimit int       `mapstructure:"showcase_limit"`
	PageSize      int       `mapstructure:"page_size"`
	Thumbnail     ThumbOpts `mapstructure:"thumbnail"`
}

// ImagesDir is where the category folders live.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.Root, "images")
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Root:          ".",
		ImagesURL:     "/images",
		ShowcaseLimit: 6,
		PageSize:      8,
		Thumbnail:     ThumbOpts{Edge: 1100, Quality: 85},
	}
}

// LoadConfig reads an optional YAML config file. PORTFOLIO_* environment
// variables override file values, e.g. PORTFOLIO_THUMBNAIL_EDGE.
func LoadConfig(path string) (*Config, error) {
	d := DefaultConfig()
	v := viper.New()
	v.SetDefault("root", d.Root)
	v.SetDefault("images_url", d.ImagesURL)
	v.SetDefault("site_url", d.SiteURL)
	v.SetDefault("showcase_limit", d.ShowcaseLimit)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("thumbnail.edge", d.Thumbnail.Edge)
	v.SetDefault("thumbnail.quality", d.Thumbnail.Quality)

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Package config loads and persists unspool's TOML configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application settings.
type Config struct {
	Version int           `toml:"version"`
	Capture CaptureConfig `toml:"capture"`
	Thread  ThreadConfig  `toml:"thread"`
	Archive ArchiveConfig `toml:"archive"`
	Output  OutputConfig  `toml:"output"`
	Watch   WatchConfig   `toml:"watch"`
}

// CaptureConfig tunes browser sessions.
type CaptureConfig struct {
	Headless     bool       `toml:"headless"`
	FeedPosts    int        `toml:"feed_posts"`
	LoadMoreWait WaitConfig `toml:"load_more_wait"`
}

// WaitConfig bounds the load-more stabilization poll.
type WaitConfig struct {
	IntervalMS  int `toml:"interval_ms"`
	StabilityMS int `toml:"stability_ms"`
	MaxWaitMS   int `toml:"max_wait_ms"`
}

// ThreadConfig tunes reconstruction.
type ThreadConfig struct {
	// WindowHours bounds how far apart thread siblings may be posted.
	WindowHours int `toml:"window_hours"`
}

// ArchiveConfig locates the post archive database.
type ArchiveConfig struct {
	Path string `toml:"path"`
}

// OutputConfig sets rendering defaults.
type OutputConfig struct {
	// Format is one of "markdown", "text", or "html".
	Format string `toml:"format"`
}

// WatchConfig tunes feed watching.
type WatchConfig struct {
	PollSeconds int `toml:"poll_seconds"`
	// Schedule is an optional cron expression for periodic full feed
	// scans (e.g. "0 */2 * * *"). Empty disables the scheduler.
	Schedule string `toml:"schedule"`
	Timezone string `toml:"timezone"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Capture: CaptureConfig{
			Headless:  true,
			FeedPosts: 100,
			LoadMoreWait: WaitConfig{
				IntervalMS:  250,
				StabilityMS: 1000,
				MaxWaitMS:   8000,
			},
		},
		Thread: ThreadConfig{
			WindowHours: 24,
		},
		Output: OutputConfig{
			Format: "markdown",
		},
		Watch: WatchConfig{
			PollSeconds: 30,
			Timezone:    "Local",
		},
	}
}

// Dir returns the platform-appropriate config directory.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "unspool"), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultArchivePath returns the standard archive database location.
func DefaultArchivePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "archive.db"), nil
}

// Load reads config from disk.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ramanasai/daytodo/internal/dateutil"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	BaseURL string        `mapstructure:"base_url"` // "http://127.0.0.1:5000/api"
	Timeout time.Duration `mapstructure:"timeout"`
}

type DisplayConfig struct {
	DateFormat string `mapstructure:"date_format"` // Go layout, "Jan 2"
	TimeFormat string `mapstructure:"time_format"` // "15:04"
	Timezone   string `mapstructure:"timezone"`    // e.g. "Asia/Shanghai" (optional)
}

type DirectoryConfig struct {
	FallbackDays int    `mapstructure:"fallback_days"`
	CopyStrategy string `mapstructure:"copy_strategy"` // token | probe
	MaxProbe     int    `mapstructure:"max_probe"`
}

type SearchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type PrefsConfig struct {
	Path string `mapstructure:"path"` // empty: ~/.local/share/daytodo/prefs.db
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json, logfmt
	File   string `mapstructure:"file"`   // TUI log file; empty uses the data dir
}

type NotificationConfig struct {
	Desktop bool `mapstructure:"desktop"`
}

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "17:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue","Wed","Thu","Fri"]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-01"]
}

type Config struct {
	Theme         string             `mapstructure:"theme"`
	Server        ServerConfig       `mapstructure:"server"`
	Display       DisplayConfig      `mapstructure:"display"`
	Directory     DirectoryConfig    `mapstructure:"directory"`
	Search        SearchConfig       `mapstructure:"search"`
	Prefs         PrefsConfig        `mapstructure:"prefs"`
	Log           LogConfig          `mapstructure:"log"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Reminder      ReminderConfig     `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		Theme: "default",
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:5000/api",
			Timeout: 10 * time.Second,
		},
		Display: DisplayConfig{
			DateFormat: "Jan 2",
			TimeFormat: "15:04",
		},
		Directory: DirectoryConfig{
			FallbackDays: 8,
			CopyStrategy: "token",
			MaxProbe:     366,
		},
		Search: SearchConfig{Concurrency: 8},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Notifications: NotificationConfig{Desktop: false},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "17:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			Holidays: []string{},
		},
	}
}

// DefaultPath is ~/.config/daytodo/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "daytodo", "config.yaml"), nil
}

// Load reads the YAML file at path (DefaultPath when empty) over the
// defaults. A missing file is fine. DAYTODO_* environment variables
// override both, e.g. DAYTODO_SERVER_BASE_URL.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("daytodo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("server.base_url", cfg.Server.BaseURL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("display.date_format", cfg.Display.DateFormat)
	v.SetDefault("display.time_format", cfg.Display.TimeFormat)
	v.SetDefault("display.timezone", cfg.Display.Timezone)
	v.SetDefault("directory.fallback_days", cfg.Directory.FallbackDays)
	v.SetDefault("directory.copy_strategy", cfg.Directory.CopyStrategy)
	v.SetDefault("directory.max_probe", cfg.Directory.MaxProbe)
	v.SetDefault("search.concurrency", cfg.Search.Concurrency)
	v.SetDefault("prefs.path", cfg.Prefs.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("notifications.desktop", cfg.Notifications.Desktop)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)

	if err := v.ReadInConfig(); err != nil && !isMissing(err) {
		return cfg, fmt.Errorf("config read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	// normalize workdays
	for i, d := range cfg.Reminder.Workdays {
		cfg.Reminder.Workdays[i] = NormalizeWeekday(d)
	}
	cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Server.BaseURL), "/")
	return cfg, nil
}

func isMissing(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// NormalizeWeekday turns "monday", "MON" or "Mon" into "Mon".
func NormalizeWeekday(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if len(d) > 3 {
		d = d[:3]
	}
	if d == "" {
		return d
	}
	return strings.ToUpper(d[:1]) + d[1:]
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Display.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// Formatter builds the display formatter from the display section.
func (c Config) Formatter() dateutil.Formatter {
	f := dateutil.DefaultFormatter()
	if c.Display.DateFormat != "" {
		f.DateLayout = c.Display.DateFormat
	}
	if c.Display.TimeFormat != "" {
		f.TimeLayout = c.Display.TimeFormat
	}
	f.Location = c.Location()
	return f
}

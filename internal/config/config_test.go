package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Server.BaseURL != def.Server.BaseURL || cfg.Directory.FallbackDays != 8 || cfg.Directory.MaxProbe != 366 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Reminder.Enabled {
		t.Error("reminder should default off")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  base_url: http://todo.local/api/
  timeout: 3s
display:
  date_format: "2006/01/02"
  timezone: UTC
directory:
  copy_strategy: probe
reminder:
  workdays: [monday, TUE]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DAYTODO_SEARCH_CONCURRENCY", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.BaseURL != "http://todo.local/api" {
		t.Errorf("base url = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout != 3*time.Second {
		t.Errorf("timeout = %v", cfg.Server.Timeout)
	}
	if cfg.Directory.CopyStrategy != "probe" {
		t.Errorf("strategy = %q", cfg.Directory.CopyStrategy)
	}
	if cfg.Search.Concurrency != 3 {
		t.Errorf("concurrency = %d", cfg.Search.Concurrency)
	}
	if got := cfg.Reminder.Workdays; len(got) != 2 || got[0] != "Mon" || got[1] != "Tue" {
		t.Errorf("workdays = %v", got)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("location = %v", cfg.Location())
	}
	if got := cfg.Formatter().Display("2024-01-02"); got != "2024/01/02" {
		t.Errorf("display = %q", got)
	}
}

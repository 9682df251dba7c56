package cmd

import (
	"testing"

	"github.com/ramanasai/daytodo/internal/config"
	"github.com/ramanasai/daytodo/internal/dateutil"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{"#7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseID(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestResolveDateKeepsSyntheticKeys(t *testing.T) {
	cfg = config.Default()
	if got := resolveDate("copy-20240301-1709251200000"); got != "copy-20240301-1709251200000" {
		t.Errorf("got %q", got)
	}
	if got := resolveDate("2024-03-01"); got != "2024-03-01" {
		t.Errorf("got %q", got)
	}
	if got := resolveDate(""); !dateutil.IsCalendarKey(got) {
		t.Errorf("empty input gave %q", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"tui", "list", "add", "edit", "toggle", "rm", "dup", "move",
		"dates", "rename", "pin", "copy-date", "delete-date", "search", "export", "version", "dev-server"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

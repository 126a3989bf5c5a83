package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeTemp(t, `
thresholds:
  cpu: 75
  memory: 85
  disk: 90
interval: 60
alert_cooldown: 600
advanced:
  disk_paths:
    - /
    - /var
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Thresholds.CPU != 75 || cfg.Thresholds.Disk != 90 {
		t.Fatalf("thresholds = %+v", cfg.Thresholds)
	}
	if cfg.Interval != 60 || cfg.AlertCooldown != 600 {
		t.Fatalf("interval=%d cooldown=%d", cfg.Interval, cfg.AlertCooldown)
	}
	// Unset sections keep their defaults.
	if cfg.Output.LogLevel != "INFO" || cfg.Advanced.HistorySize != 60 {
		t.Fatalf("defaults not preserved: %+v %+v", cfg.Output, cfg.Advanced)
	}
	if len(cfg.Advanced.DiskPaths) != 2 {
		t.Fatalf("disk_paths = %v", cfg.Advanced.DiskPaths)
	}
}

func TestLoadEmptyFileGivesDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Thresholds != want.Thresholds || cfg.Interval != want.Interval {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name  string
		yaml  string
		field string
	}{
		{
			"cpu_over_100",
			"thresholds:\n  cpu: 150\n",
			"thresholds.cpu",
		},
		{
			"negative_memory",
			"thresholds:\n  memory: -5\n",
			"thresholds.memory",
		},
		{
			"zero_interval",
			"interval: 0\n",
			"interval",
		},
		{
			"negative_cooldown",
			"alert_cooldown: -1\n",
			"alert_cooldown",
		},
		{
			"negative_history",
			"advanced:\n  history_size: -1\n",
			"advanced.history_size",
		},
		{
			"empty_disk_paths",
			"advanced:\n  disk_paths: []\n",
			"advanced.disk_paths",
		},
		{
			"unknown_log_level",
			"output:\n  log_level: TRACE\n",
			"output.log_level",
		},
		{
			"partial_email",
			"email:\n  smtp_server: smtp.example.com\n",
			"email.smtp_port",
		},
		{
			"unknown_key",
			"treshholds:\n  cpu: 50\n",
			"yaml",
		},
		{
			"malformed_yaml",
			"thresholds: [not a map\n",
			"yaml",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, c.yaml))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("error type %T, want *config.Error", err)
			}
			if cerr.Field != c.field {
				t.Fatalf("field = %q, want %q", cerr.Field, c.field)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Field != "file" {
		t.Fatalf("err = %v, want *config.Error on file", err)
	}
}

func TestEmailConfigured(t *testing.T) {
	if (Email{}).Configured() {
		t.Fatal("empty email block must count as unconfigured")
	}
	e := Email{SMTPServer: "smtp.example.com"}
	if !e.Configured() {
		t.Fatal("any set field must count as configured")
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Error reports an invalid or unusable configuration. It is the only
// error class that aborts startup.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Thresholds are usage percentages above which a metric is in breach.
// Comparison is strict: a reading equal to the threshold is not a breach.
type Thresholds struct {
	CPU    float64 `yaml:"cpu"`
	Memory float64 `yaml:"memory"`
	Disk   float64 `yaml:"disk"`
}

// Email holds the SMTP delivery settings for alerts. Leaving all fields
// empty disables email delivery; a partially filled block is an error.
type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Sender     string `yaml:"sender"`
	Password   string `yaml:"password"`
	Recipient  string `yaml:"recipient"`
}

// Configured reports whether email delivery is set up at all.
func (e Email) Configured() bool {
	return e != Email{}
}

// Output controls logging and console rendering.
type Output struct {
	LogLevel      string `yaml:"log_level"` // DEBUG, INFO, WARNING, ERROR
	ConsoleColors bool   `yaml:"console_colors"`
	LogFile       bool   `yaml:"log_file"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogBackups    int    `yaml:"log_backups"`
}

// Advanced holds the knobs beyond the basic thresholds.
type Advanced struct {
	DiskPaths      []string `yaml:"disk_paths"`
	NetworkMonitor bool     `yaml:"network_monitor"`
	ProcessMonitor bool     `yaml:"process_monitor"`
	HistorySize    int      `yaml:"history_size"`
}

// Config is the full monitor configuration, immutable after Load.
type Config struct {
	Thresholds    Thresholds `yaml:"thresholds"`
	Interval      int        `yaml:"interval"`       // seconds between ticks
	AlertCooldown int        `yaml:"alert_cooldown"` // seconds between alerts per metric
	Email         Email      `yaml:"email"`
	Output        Output     `yaml:"output"`
	Advanced      Advanced   `yaml:"advanced"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Thresholds:    Thresholds{CPU: 80, Memory: 80, Disk: 80},
		Interval:      300,
		AlertCooldown: 3600,
		Output: Output{
			LogLevel:      "INFO",
			ConsoleColors: true,
			LogMaxSizeMB:  10,
			LogBackups:    5,
		},
		Advanced: Advanced{
			DiskPaths:   []string{"/"},
			HistorySize: 60,
		},
	}
}

// Load reads and validates a YAML config file. Unknown keys are rejected
// so a typo cannot silently disable a threshold.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Field: "file", Reason: err.Error()}
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Field: "yaml", Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every invariant up front. The config is never applied
// partially: the first violation aborts.
func (c *Config) Validate() error {
	pcts := []struct {
		field string
		value float64
	}{
		{"thresholds.cpu", c.Thresholds.CPU},
		{"thresholds.memory", c.Thresholds.Memory},
		{"thresholds.disk", c.Thresholds.Disk},
	}
	for _, p := range pcts {
		if p.value < 0 || p.value > 100 {
			return &Error{Field: p.field, Reason: fmt.Sprintf("percentage %.1f outside [0,100]", p.value)}
		}
	}

	if c.Interval <= 0 {
		return &Error{Field: "interval", Reason: fmt.Sprintf("must be positive, got %d", c.Interval)}
	}
	if c.AlertCooldown < 0 {
		return &Error{Field: "alert_cooldown", Reason: fmt.Sprintf("must not be negative, got %d", c.AlertCooldown)}
	}
	if c.Advanced.HistorySize < 0 {
		return &Error{Field: "advanced.history_size", Reason: fmt.Sprintf("must not be negative, got %d", c.Advanced.HistorySize)}
	}
	if len(c.Advanced.DiskPaths) == 0 {
		return &Error{Field: "advanced.disk_paths", Reason: "at least one path required"}
	}
	for _, p := range c.Advanced.DiskPaths {
		if p == "" {
			return &Error{Field: "advanced.disk_paths", Reason: "empty path"}
		}
	}

	switch c.Output.LogLevel {
	case "DEBUG", "INFO", "WARNING", "ERROR":
	default:
		return &Error{Field: "output.log_level", Reason: fmt.Sprintf("unknown level %q", c.Output.LogLevel)}
	}
	if c.Output.LogFile {
		if c.Output.LogMaxSizeMB <= 0 {
			return &Error{Field: "output.log_max_size_mb", Reason: "must be positive when log_file is enabled"}
		}
		if c.Output.LogBackups < 0 {
			return &Error{Field: "output.log_backups", Reason: "must not be negative"}
		}
	}

	// Email is all-or-nothing: empty means delivery disabled, partial is
	// a misconfiguration that would only surface on the first alert.
	if c.Email.Configured() {
		fields := []struct {
			name  string
			empty bool
		}{
			{"email.smtp_server", c.Email.SMTPServer == ""},
			{"email.smtp_port", c.Email.SMTPPort == 0},
			{"email.sender", c.Email.Sender == ""},
			{"email.password", c.Email.Password == ""},
			{"email.recipient", c.Email.Recipient == ""},
		}
		for _, f := range fields {
			if f.empty {
				return &Error{Field: f.name, Reason: "required when email is configured"}
			}
		}
	}

	return nil
}

// IntervalDuration returns the tick interval.
func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// CooldownDuration returns the per-metric alert cooldown window.
func (c *Config) CooldownDuration() time.Duration {
	return time.Duration(c.AlertCooldown) * time.Second
}

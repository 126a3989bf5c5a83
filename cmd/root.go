package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/liops/vigil/collector"
	"github.com/liops/vigil/config"
	"github.com/liops/vigil/engine"
	"github.com/liops/vigil/logging"
	"github.com/liops/vigil/notify"
	"github.com/liops/vigil/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// Options holds the CLI configuration.
type Options struct {
	ConfigPath string
	Interval   int // seconds, 0 = use config
	LogFile    bool
	Once       bool
	JSONMode   bool
	TopMode    bool
	DaemonMode bool
	DataDir    string
	ListenAddr string
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vigil v%s - threshold-based host resource monitor

Usage:
  vigil [OPTIONS]

Modes:
  (default)         Periodic console report + alerting loop
  -top              Live terminal view (fullscreen)
  -daemon           Headless loop, JSONL sample/alert logs in datadir
  -once             Single check; exit non-zero if any threshold is breached
  -json             Single sample as JSON to stdout, then exit
  -version          Print version and exit

Options:
  -config PATH      Config file (default: config.yaml; defaults if absent)
  -interval N       Override check interval in seconds
  -log-file         Force rotating file log regardless of config
  -datadir PATH     Data directory for daemon mode (default: ~/.vigil/)
  -listen ADDR      Serve Prometheus-style metrics on ADDR (e.g. :9188)

Examples:
  vigil                              Report loop with config.yaml
  vigil -config /etc/vigil.yaml -interval 60
  vigil -once && echo "all clear"
  vigil -top
  vigil -daemon -datadir /var/lib/vigil -listen :9188
`, Version)
}

// Run parses flags and starts the selected mode.
func Run() error {
	var opts Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "config.yaml", "Path to configuration file")
	flag.IntVar(&opts.Interval, "interval", 0, "Override check interval in seconds")
	flag.BoolVar(&opts.LogFile, "log-file", false, "Force logging to a rotating file")
	flag.BoolVar(&opts.Once, "once", false, "Run a single check and exit")
	flag.BoolVar(&opts.JSONMode, "json", false, "Output a single sample as JSON and exit")
	flag.BoolVar(&opts.TopMode, "top", false, "Live terminal view")
	flag.BoolVar(&opts.DaemonMode, "daemon", false, "Headless loop writing JSONL logs")
	flag.StringVar(&opts.DataDir, "datadir", "", "Data directory for daemon mode")
	flag.StringVar(&opts.ListenAddr, "listen", "", "Serve metrics on this address")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("vigil v%s\n", Version)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log := logging.New(cfg.Output, opts.LogFile)

	var notifier engine.Notifier
	if cfg.Email.Configured() {
		notifier = notify.New(cfg.Email)
	} else {
		log.Warn("email not configured, alerts will be logged only")
	}

	mon := engine.NewMonitor(cfg, collector.NewRegistry(cfg), notifier, log)

	// Exporter runs in every mode once -listen is given.
	var store *engine.MetricsStore
	if opts.ListenAddr != "" {
		store = engine.NewMetricsStore()
		mux := http.NewServeMux()
		mux.Handle("/metrics", store.Handler())
		go func() {
			if err := http.ListenAndServe(opts.ListenAddr, mux); err != nil {
				log.Errorf("metrics listener: %v", err)
			}
		}()
		log.Infof("metrics on http://%s/metrics", opts.ListenAddr)
	}

	switch {
	case opts.JSONMode:
		return runJSON(mon)
	case opts.Once:
		return runOnce(mon, cfg)
	case opts.TopMode:
		return runTop(mon, cfg)
	case opts.DaemonMode:
		return runDaemon(mon, log, store, opts)
	default:
		return runReportLoop(mon, cfg, store)
	}
}

// loadConfig loads and validates the config file. A missing file falls
// back to defaults; a file that exists but fails to parse or validate is
// fatal and never partially applied.
func loadConfig(opts Options) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(opts.ConfigPath); os.IsNotExist(err) {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Interval > 0 {
		// Copy-and-override keeps the loaded config otherwise untouched.
		override := *cfg
		override.Interval = opts.Interval
		if err := override.Validate(); err != nil {
			return nil, err
		}
		cfg = &override
	}
	return cfg, nil
}

func runJSON(mon *engine.Monitor) error {
	res := mon.Tick(context.Background())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Sample)
}

func runOnce(mon *engine.Monitor, cfg *config.Config) error {
	res := mon.Tick(context.Background())
	fmt.Println(renderReport(res.Sample, cfg.Thresholds, cfg.Output.ConsoleColors))
	if len(res.Breaches) > 0 {
		return fmt.Errorf("%d threshold breach(es) detected", len(res.Breaches))
	}
	return nil
}

func runTop(mon *engine.Monitor, cfg *config.Config) error {
	p := tea.NewProgram(ui.NewModel(mon, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runReportLoop(mon *engine.Monitor, cfg *config.Config, store *engine.MetricsStore) error {
	mon.OnTick = func(res engine.TickResult) {
		fmt.Println(renderReport(res.Sample, cfg.Thresholds, cfg.Output.ConsoleColors))
		if store != nil {
			store.Update(res)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mon.Run(ctx)
}

func runDaemon(mon *engine.Monitor, log *logrus.Logger, store *engine.MetricsStore, opts Options) error {
	dataDir := opts.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = filepath.Join(home, ".vigil")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pidPath := filepath.Join(dataDir, "daemon.pid")
	if err := os.WriteFile(pidPath, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0600); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	sampleLog := engine.NewSampleLog(filepath.Join(dataDir, "samples.jsonl"))
	alertLog := engine.NewAlertLog(filepath.Join(dataDir, "alerts.jsonl"))

	mon.OnTick = func(res engine.TickResult) {
		if err := sampleLog.Write(res); err != nil {
			log.Errorf("write sample log: %v", err)
		}
		for _, a := range res.Alerts {
			if err := alertLog.Write(a); err != nil {
				log.Errorf("write alert log: %v", err)
			}
		}
		if store != nil {
			store.Update(res)
		}
	}

	log.Infof("daemon started (pid=%d, datadir=%s)", os.Getpid(), dataDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mon.Run(ctx)
}

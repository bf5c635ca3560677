package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/nhle/dashboard/internal/api"
	"github.com/nhle/dashboard/internal/app"
	"github.com/nhle/dashboard/internal/credential"
	"github.com/nhle/dashboard/internal/logger"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

const usage = `Usage: dashboard [flags]
       dashboard serve [flags] [--addr host:port]

Flags:
`

type options struct {
	configPath string
	dbPath     string
	logLevel   string
	addr       string
	serve      bool
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	if len(args) > 0 && args[0] == "serve" {
		opts.serve = true
		args = args[1:]
	}

	fs := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", model.DefaultConfigPath(), "path to the config file")
	fs.StringVar(&opts.dbPath, "db", "", "path to the SQLite database (overrides storage.path)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	if opts.serve {
		fs.StringVar(&opts.addr, "addr", "", "listen address (overrides server.addr)")
	}
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return opts, nil
}

func applyOverrides(cfg *model.AppConfig, opts options) {
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
}

func run(opts options) error {
	cfg, err := model.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)

	if opts.serve {
		logger.InitConsole(os.Stderr, cfg.Log.Level)
	} else {
		closer, err := logger.Init(cfg.Log)
		if err != nil {
			return err
		}
		defer closer.Close()
	}

	s, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	var secrets credential.Store
	if ring, err := credential.Open(model.ConfigDir()); err != nil {
		log.Warn().Err(err).Msg("keyring unavailable, api key stays in the settings record")
	} else {
		secrets = ring
	}

	c := app.NewContext(cfg, s, secrets)
	if _, err := c.Load(context.Background()); err != nil {
		return err
	}
	defer c.Close()

	if opts.serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		router := api.NewRouter(api.NewHandlers(c), cfg.Server.AllowedOrigins)
		return api.Serve(ctx, cfg.Server.Addr, router)
	}

	p := tea.NewProgram(app.New(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/quantfold/futures"
	"github.com/quantfold/futures/server"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	configFile string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve portfolio reports over HTTP" }
func (*serveCmd) Usage() string {
	return `frp serve [-config <file>]

  Starts the HTTP report service. Reports are served as JSON from
  GET /api/v1/report, with /health and Prometheus /metrics alongside.
  Without -config the service listens on :8080 and reads the account
  tables from the -data-dir folder.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Path to the YAML config file")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := server.DefaultConfig()
	cfg.DataDir = *dataDir
	if c.configFile != "" {
		var err error
		if cfg, err = server.LoadConfig(c.configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	tables, err := futures.LoadDir(cfg.DataDir)
	if err != nil {
		log.Error("loading account data", "dir", cfg.DataDir, "err", err)
		return subcommands.ExitFailure
	}
	account, err := futures.NewAccount(tables)
	if err != nil {
		log.Error("account data failed validation", "err", err)
		return subcommands.ExitFailure
	}

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      server.New(account, log, cfg).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("report service listening", "addr", cfg.Listen, "data_dir", cfg.DataDir)
		errc <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		log.Error("server error", "err", err)
		return subcommands.ExitFailure
	case <-quit:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Info("shutting down report service")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

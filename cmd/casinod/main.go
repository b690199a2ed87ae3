package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/feltworks/casino-core/internal/api"
	"github.com/feltworks/casino-core/internal/ledger"
	"github.com/feltworks/casino-core/internal/rng"
	"github.com/feltworks/casino-core/internal/store"
)

var CLI struct {
	Addr     string `short:"a" default:":8080" help:"Address to bind the HTTP server to"`
	DB       string `short:"d" default:"casino.db" help:"Path to the sqlite ledger database"`
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	Seed     string `help:"Fixed RNG seed (reproducible rounds); random when empty"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logger := log.New(os.Stderr)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		kctx.Exit(1)
	}
}

func run(logger *log.Logger) error {
	db, err := store.OpenSQLite(CLI.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	led, err := ledger.New(db, logger)
	if err != nil {
		return err
	}

	var src rng.Source
	if CLI.Seed != "" {
		src = rng.NewStream(CLI.Seed)
		logger.Warn("using fixed RNG seed", "seed", CLI.Seed)
	} else {
		stream, err := rng.NewSeededStream()
		if err != nil {
			return err
		}
		src = stream
	}

	srv := api.NewServer(led, src, logger)
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:         CLI.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("casino server listening", "addr", CLI.Addr, "db", CLI.DB)
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return err
	}
	return nil
}

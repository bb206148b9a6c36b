package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/devserver"
	"github.com/shivam-bit/highlight/internal/logging"
)

type DevServerCommand struct {
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	serve      func(ctx context.Context, server *devserver.Server, addr string) error
}

func NewDevServerCommand(stderr io.Writer, loadConfig func() (config.CoreConfig, error)) *DevServerCommand {
	return &DevServerCommand{
		stderr:     stderr,
		loadConfig: loadConfig,
		serve: func(ctx context.Context, server *devserver.Server, addr string) error {
			return server.ListenAndServe(ctx, addr)
		},
	}
}

func (c *DevServerCommand) Run(args []string) error {
	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	addr := fs.String("addr", "", "listen address (defaults to [api] address)")
	fixturePath := fs.String("fixture", "", "YAML fixture file (defaults to the bundled fixture)")
	latency := fs.Duration("latency", 0, "delay added to every response")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = cfg.APIAddress()
	}

	var fixture *devserver.Fixture
	if *fixturePath != "" {
		fixture, err = devserver.LoadFixture(*fixturePath)
	} else {
		fixture, err = devserver.DefaultFixture()
	}
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	logger := commandLogger(c.stderr, cfg).With(logging.F("component", "devserver"))
	server := devserver.New(fixture,
		devserver.WithToken(cfg.APIToken()),
		devserver.WithLatency(*latency),
		devserver.WithLogger(logger),
	)
	logger.Info("devserver starting",
		logging.F("addr", listenAddr),
		logging.F("latency", *latency),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	start := time.Now()
	err = c.serve(ctx, server, listenAddr)
	logger.Info("devserver stopped", logging.F("uptime", time.Since(start).Round(time.Second)))
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

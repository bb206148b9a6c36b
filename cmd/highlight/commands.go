package main

import (
	"io"
	"os"

	"github.com/shivam-bit/highlight/internal/app"
	"github.com/shivam-bit/highlight/internal/config"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	newClient  clientFactory
	runUI      func(opts app.Options) error
	openUILog  func() (io.WriteCloser, error)
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.LoadCoreConfig,
		newClient:  newAPIClient,
		runUI:      app.Run,
		openUILog:  openUILog,
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"feed":      NewFeedCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.newClient),
		"search":    NewSearchCommand(wiring.stdout, wiring.stderr, wiring.loadConfig, wiring.newClient),
		"select":    NewSelectCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
		"ui":        NewUICommand(wiring.stderr, wiring.loadConfig, wiring.newClient, wiring.runUI, wiring.openUILog),
		"docs":      NewDocsCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
		"config":    NewConfigCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
		"devserver": NewDevServerCommand(wiring.stderr, wiring.loadConfig),
	}
}

package main

import (
	"fmt"
	"os"
)

const usageText = `highlight is a terminal client for the session replay API.

Usage:
  highlight <command> [flags]

Commands:
  feed       print the session feed
  search     run a quick search and print grouped suggestions
  select     apply a quick search suggestion and print the resulting query
  ui         run the terminal UI
  docs       render a logging quickstart guide
  config     print the effective configuration
  devserver  serve a fixture-backed replay API
  help       show help

Flags:
  -h, --help   show help

Common flags:
  --project id    project to query (defaults to [api] project_id)

Examples:
  highlight feed --hide-viewed --pages 3
  highlight search chrome
  highlight select error-field browser Chrome
  highlight config --format toml
  highlight devserver --addr 127.0.0.1:8082 --latency 300ms
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/quicksearch"
	"github.com/shivam-bit/highlight/internal/types"
)

type SearchCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	newClient  clientFactory
}

func NewSearchCommand(stdout, stderr io.Writer, loadConfig func() (config.CoreConfig, error), newClient clientFactory) *SearchCommand {
	return &SearchCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		newClient:  newClient,
	}
}

func (c *SearchCommand) Run(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	project := fs.String("project", "", "project id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	projectID, err := resolveProject(*project, cfg)
	if err != nil {
		return err
	}
	logger := commandLogger(c.stderr, cfg).With(logging.F("component", "quicksearch"))
	api, err := c.newClient(cfg, logger)
	if err != nil {
		return err
	}

	searcher := quicksearch.NewSearcher(api, projectID, logger)
	defer searcher.Close()
	result, err := searcher.Search(context.Background(), query)
	if err != nil {
		return err
	}
	printGroups(c.stdout, result.Groups, query)
	return nil
}

func printGroups(output io.Writer, groups []types.SuggestionGroup, query string) {
	options := quicksearch.Flatten(groups)
	if len(options) == 0 {
		if msg := quicksearch.NoOptionsMessage(query); msg != "" {
			fmt.Fprintln(output, msg)
		}
		return
	}
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	for _, group := range groups {
		if len(group.Options) == 0 {
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\n", strings.ToUpper(group.Label), group.Tooltip)
		for _, opt := range group.Options {
			fmt.Fprintf(writer, "  %s\t%s\n", quicksearch.FieldKey(opt), opt.Value)
		}
	}
	_ = writer.Flush()
}

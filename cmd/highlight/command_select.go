package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/navigation"
	"github.com/shivam-bit/highlight/internal/quicksearch"
	"github.com/shivam-bit/highlight/internal/searchparams"
	"github.com/shivam-bit/highlight/internal/types"
)

// SelectCommand applies a suggestion offline and prints where it leads.
type SelectCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
}

func NewSelectCommand(stdout, stderr io.Writer, loadConfig func() (config.CoreConfig, error)) *SelectCommand {
	return &SelectCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
	}
}

type selectOutput struct {
	Path       string                   `json:"path"`
	ErrorQuery *types.QueryBuilderInput `json:"error_query,omitempty"`
	Params     *types.SearchParams      `json:"params,omitempty"`
}

func (c *SelectCommand) Run(args []string) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	project := fs.String("project", "", "project id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("usage: highlight select <type> <name> <value>")
	}
	opt := types.QuickSearchOption{
		Type:  fs.Arg(0),
		Name:  fs.Arg(1),
		Value: strings.Join(fs.Args()[2:], " "),
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	projectID, err := resolveProject(*project, cfg)
	if err != nil {
		return err
	}

	state := searchparams.New(types.EmptySessionsSearchParams())
	history := navigation.NewHistory(0)
	selection, err := quicksearch.NewSelector(projectID, state, history).Select(opt)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(selectOutput{
		Path:       selection.Path,
		ErrorQuery: selection.ErrorQuery,
		Params:     selection.Params,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, string(data))
	return err
}

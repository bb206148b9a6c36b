package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/shivam-bit/highlight/internal/app"
	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/quickstart"
)

type DocsCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
}

func NewDocsCommand(stdout, stderr io.Writer, loadConfig func() (config.CoreConfig, error)) *DocsCommand {
	return &DocsCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
	}
}

func (c *DocsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("docs", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	project := fs.String("project", "", "project id to substitute into snippets")
	width := fs.Int("width", 80, "wrap width")
	raw := fs.Bool("raw", false, "print markdown without rendering")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name := "pino"
	if fs.NArg() > 0 {
		name = fs.Arg(0)
	}
	guide, ok := quickstart.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown guide %q (available: %s)", name, strings.Join(quickstart.Names(), ", "))
	}

	projectID := strings.TrimSpace(*project)
	if projectID == "" {
		if cfg, err := c.loadConfig(); err == nil {
			projectID = cfg.ProjectID()
		}
	}
	markdown := guide.Markdown(projectID)
	if !*raw {
		markdown = app.RenderMarkdown(markdown, *width)
	}
	_, err := fmt.Fprintln(c.stdout, markdown)
	return err
}

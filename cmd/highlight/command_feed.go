package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/shivam-bit/highlight/internal/config"
	"github.com/shivam-bit/highlight/internal/feed"
	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/searchparams"
	"github.com/shivam-bit/highlight/internal/types"
)

type FeedCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	newClient  clientFactory
}

func NewFeedCommand(stdout, stderr io.Writer, loadConfig func() (config.CoreConfig, error), newClient clientFactory) *FeedCommand {
	return &FeedCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		newClient:  newClient,
	}
}

func (c *FeedCommand) Run(args []string) error {
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	project := fs.String("project", "", "project id")
	hideViewed := fs.Bool("hide-viewed", false, "skip sessions already viewed")
	live := fs.Bool("live", false, "include live sessions")
	starred := fs.Bool("starred", false, "only starred sessions")
	segment := fs.String("segment", "", "segment id (\"live\" always includes live sessions)")
	pages := fs.Int("pages", 1, "number of pages to load")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pages < 1 {
		return errors.New("--pages must be at least 1")
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	projectID, err := resolveProject(*project, cfg)
	if err != nil {
		return err
	}
	logger := commandLogger(c.stderr, cfg).With(logging.F("component", "feed"))
	api, err := c.newClient(cfg, logger)
	if err != nil {
		return err
	}

	params := searchparams.New(types.SearchParams{HideViewed: *hideViewed, ShowLiveSessions: *live})
	params.SetSegment(*segment)
	params.SetShowStarred(*starred)
	scope := feed.Scope{
		ProjectID: projectID,
		Params:    params.Params(),
		Lifecycle: params.Lifecycle(),
		Starred:   params.ShowStarred(),
	}

	ctx := context.Background()
	loader := feed.NewLoader(api, feed.WithLogger(logger))
	if err := loader.OnSearchParamsChanged(ctx, scope); err != nil {
		return err
	}
	for page := 1; page < *pages; page++ {
		err := loader.RequestMore(ctx)
		if errors.Is(err, feed.ErrNoMorePages) {
			break
		}
		if err != nil {
			return err
		}
	}

	snapshot := loader.Snapshot()
	if snapshot.ShowEmpty {
		fmt.Fprintln(c.stdout, "no sessions")
		return nil
	}
	printSessions(c.stdout, snapshot.Sessions)

	total := "?"
	if snapshot.TotalKnown() {
		total = feed.FormatNumber(snapshot.TotalCount)
	}
	summary := fmt.Sprintf("%d shown of %s sessions (%s)", len(snapshot.Sessions), total, scope.Lifecycle)
	if count, err := api.UnprocessedSessionsCount(ctx, projectID); err != nil {
		logger.Warn("unprocessed count failed", logging.F("err", err))
	} else if feed.ShowLiveBadge(count, scope.Params.ShowLiveSessions) {
		summary += fmt.Sprintf(" (%s live)", feed.FormatNumber(count))
	}
	if loader.HasNextPage() {
		summary += ", more available"
	}
	fmt.Fprintln(c.stdout, summary)
	return nil
}

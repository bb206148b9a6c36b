package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/shivam-bit/highlight/internal/feed"
	"github.com/shivam-bit/highlight/internal/quicksearch"
	"github.com/shivam-bit/highlight/internal/store"
	"github.com/shivam-bit/highlight/internal/types"
)

const (
	tickInterval   = 250 * time.Millisecond
	requestTimeout = 10 * time.Second
)

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startupCmd loads the billing details and integration status together.
func startupCmd(ctx context.Context, api API, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		var (
			billing    *types.BillingDetails
			integrated bool
		)
		group, gctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			var err error
			billing, err = api.BillingDetails(gctx, projectID)
			return err
		})
		group.Go(func() error {
			var err error
			integrated, err = api.Integrated(gctx, projectID)
			return err
		})
		err := group.Wait()
		return startupMsg{billing: billing, integrated: integrated, err: err}
	}
}

func fetchFeedCmd(ctx context.Context, req *feed.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		err := req.Run(ctx)
		return feedLoadedMsg{version: req.Version(), count: req.Count(), err: err}
	}
}

func liveCountCmd(counter *feed.LiveCounter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		count, err := counter.Refresh(ctx)
		return liveCountMsg{count: count, err: err}
	}
}

func searchDebounceCmd(delay time.Duration, seq int, query string) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	})
}

func quickSearchCmd(ctx context.Context, searcher *quicksearch.Searcher, seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		res, err := searcher.Run(ctx, seq, query)
		return quickSearchMsg{result: res, err: err}
	}
}

func saveStateCmd(states store.AppStateStore, state types.AppState) tea.Cmd {
	if states == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return stateSavedMsg{err: states.Save(ctx, &state)}
	}
}

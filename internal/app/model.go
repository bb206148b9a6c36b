package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shivam-bit/highlight/internal/feed"
	"github.com/shivam-bit/highlight/internal/logging"
	"github.com/shivam-bit/highlight/internal/navigation"
	"github.com/shivam-bit/highlight/internal/quicksearch"
	"github.com/shivam-bit/highlight/internal/searchparams"
	"github.com/shivam-bit/highlight/internal/store"
	"github.com/shivam-bit/highlight/internal/types"
)

const (
	defaultSearchDebounce = 250 * time.Millisecond
	scrollThreshold       = 3
	minWidth              = 40
	minHeight             = 10
)

type uiMode int

const (
	uiModeBrowse uiMode = iota
	uiModeSearch
	uiModeDocs
)

type Options struct {
	API                 API
	ProjectID           string
	State               *types.AppState
	StateStore          store.AppStateStore
	Keymap              *types.Keymap
	Logger              logging.Logger
	LivePollInterval    time.Duration
	ScrollCheckInterval time.Duration
	SearchDebounce      time.Duration
	DocsMarkdown        string
	Now                 func() time.Time
}

type Model struct {
	api         API
	projectID   string
	logger      logging.Logger
	params      *searchparams.Store
	loader      *feed.Loader
	scroll      *feed.ScrollTrigger
	live        *feed.LiveCounter
	searcher    *quicksearch.Searcher
	selector    *quicksearch.Selector
	history     *navigation.History
	stateStore  store.AppStateStore
	keybindings *Keybindings
	player      types.PlayerConfig
	now         func() time.Time

	mode          uiMode
	width         int
	height        int
	cursor        int
	offset        int
	paramsChanged bool
	feedStarted   bool
	liveCount     int
	billing       *types.BillingDetails
	integrated    bool

	searchInput    textinput.Model
	searchDebounce time.Duration
	searchSeq      int
	searching      bool
	searchQuery    string
	suggestions    []types.SuggestionGroup
	options        []types.QuickSearchOption
	optionCursor   int

	docs         viewport.Model
	docsMarkdown string

	spinner       spinner.Model
	status        string
	toastText     string
	toastLevel    toastLevel
	toastUntil    time.Time
	requestScopes map[string]requestScope
	unsubscribe   func()
}

func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	params := searchparams.New(types.EmptySessionsSearchParams())
	var player types.PlayerConfig
	if opts.State != nil {
		params.Restore(opts.State)
		player = opts.State.Player
	}
	history := navigation.NewHistory(0)
	history.Push(navigation.SessionsPath(opts.ProjectID))

	loader := feed.NewLoader(opts.API, feed.WithLogger(logger.With(logging.F("component", "feed"))))

	input := textinput.New()
	input.Placeholder = "Search for a property..."
	input.Prompt = "⌕ "
	input.CharLimit = 256

	spin := spinner.New()
	spin.Spinner = spinner.Line
	spin.Style = lipgloss.NewStyle()

	debounce := opts.SearchDebounce
	if debounce <= 0 {
		debounce = defaultSearchDebounce
	}
	var overrides map[string]string
	if opts.Keymap != nil {
		overrides = opts.Keymap.Bindings
	}

	m := &Model{
		api:            opts.API,
		projectID:      strings.TrimSpace(opts.ProjectID),
		logger:         logger,
		params:         params,
		loader:         loader,
		scroll:         feed.NewScrollTrigger(loader, opts.ScrollCheckInterval, scrollThreshold),
		live:           feed.NewLiveCounter(opts.API, opts.ProjectID, opts.LivePollInterval, logger),
		searcher:       quicksearch.NewSearcher(opts.API, opts.ProjectID, logger),
		history:        history,
		stateStore:     opts.StateStore,
		keybindings:    NewKeybindings(overrides),
		player:         player,
		now:            now,
		searchInput:    input,
		searchDebounce: debounce,
		docs:           viewport.New(minWidth, minHeight),
		docsMarkdown:   opts.DocsMarkdown,
		spinner:        spin,
		requestScopes:  map[string]requestScope{},
	}
	m.selector = quicksearch.NewSelector(m.projectID, params, history)
	m.unsubscribe = params.Subscribe(func(searchparams.Change) {
		m.paramsChanged = true
	})
	return m
}

// Run starts the UI and blocks until it exits.
func Run(opts Options) error {
	m := NewModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.live.Run(ctx, func(count int) {
		p.Send(liveCountMsg{count: count})
	})

	_, err := p.Run()
	m.shutdown()
	if saveErr := m.saveStateNow(); saveErr != nil && err == nil {
		err = saveErr
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		startupCmd(m.replaceRequestScope(requestScopeStartup), m.api, m.projectID),
		m.resetFeed(),
		m.beginQuickSearch(""),
		m.spinner.Tick,
		tickCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.syncFeed())
	case tickMsg:
		return m, m.handleTick(time.Time(msg))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case startupMsg:
		return m, m.handleStartup(msg)
	case feedLoadedMsg:
		m.handleFeedLoaded(msg)
		return m, nil
	case liveCountMsg:
		if msg.err == nil {
			m.liveCount = msg.count
		}
		return m, nil
	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m, m.beginQuickSearch(msg.query)
	case quickSearchMsg:
		m.handleQuickSearch(msg)
		return m, nil
	case stateSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save app state failed", logging.F("err", msg.err))
		}
		return m, nil
	}
	if m.mode == uiModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = max(width, minWidth)
	m.height = max(height, minHeight)
	m.searchInput.Width = max(10, m.width-8)
	m.docs.Width = m.width
	m.docs.Height = max(1, m.height-3)
	if m.mode == uiModeDocs {
		m.docs.SetContent(RenderMarkdown(m.docsMarkdown, m.width))
	}
	m.clampCursor()
}

func (m *Model) handleTick(at time.Time) tea.Cmd {
	if !m.toastUntil.IsZero() && !m.toastActive(at) {
		m.clearToast()
	}
	cmds := []tea.Cmd{tickCmd()}
	if m.mode != uiModeDocs && m.onFeedRoute() {
		cmds = append(cmds, m.checkScroll())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleStartup(msg startupMsg) tea.Cmd {
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warn("startup load failed", logging.F("err", msg.err))
			m.showWarningToast("could not load project details")
		}
		return nil
	}
	m.billing = msg.billing
	m.integrated = msg.integrated
	feed.ApplyNewProjectPolicy(m.params, msg.billing, msg.integrated)
	return m.syncFeed()
}

func (m *Model) handleFeedLoaded(msg feedLoadedMsg) {
	switch {
	case msg.err == nil:
		m.clampCursor()
	case errors.Is(msg.err, feed.ErrStale), errors.Is(msg.err, context.Canceled):
	default:
		m.showErrorToast("failed to load sessions: " + msg.err.Error())
	}
}

// syncFeed restarts the feed when the search state changed since the last
// load.
func (m *Model) syncFeed() tea.Cmd {
	if !m.paramsChanged {
		return nil
	}
	return tea.Batch(m.resetFeed(), m.saveState())
}

func (m *Model) resetFeed() tea.Cmd {
	m.paramsChanged = false
	m.feedStarted = true
	m.cursor = 0
	m.offset = 0
	req := m.loader.BeginReset(m.feedScope())
	return fetchFeedCmd(m.replaceRequestScope(requestScopeFeed), req)
}

func (m *Model) feedScope() feed.Scope {
	snap := m.params.Snapshot()
	return feed.Scope{
		ProjectID: m.projectID,
		Params:    snap.Params,
		Lifecycle: m.params.Lifecycle(),
		Starred:   snap.Starred,
	}
}

func (m *Model) checkScroll() tea.Cmd {
	rows := len(m.loader.Snapshot().Sessions)
	req := m.scroll.Check(m.cursor, rows)
	if req == nil {
		return nil
	}
	return fetchFeedCmd(m.requestScopeContext(requestScopeFeed), req)
}

func (m *Model) loadMore() tea.Cmd {
	req, err := m.loader.BeginMore()
	if err != nil {
		if errors.Is(err, feed.ErrNoMorePages) {
			m.status = "all sessions loaded"
		}
		return nil
	}
	return fetchFeedCmd(m.requestScopeContext(requestScopeFeed), req)
}

func (m *Model) refetch() tea.Cmd {
	req, err := m.loader.Refetch()
	if err != nil {
		return nil
	}
	return fetchFeedCmd(m.requestScopeContext(requestScopeFeed), req)
}

func (m *Model) appState() types.AppState {
	return m.params.AppState(types.AppState{ProjectID: m.projectID, Player: m.player})
}

func (m *Model) saveState() tea.Cmd {
	return saveStateCmd(m.stateStore, m.appState())
}

func (m *Model) saveStateNow() error {
	if m.stateStore == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	state := m.appState()
	return m.stateStore.Save(ctx, &state)
}

func (m *Model) shutdown() {
	m.cancelAllRequestScopes()
	m.searcher.Close()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) route() string {
	path, _ := m.history.Current()
	return path
}

func (m *Model) onFeedRoute() bool {
	return m.route() == navigation.SessionsPath(m.projectID)
}

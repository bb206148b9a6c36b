package searchparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-bit/highlight/internal/types"
)

func TestSelectLifecycleDecisionTable(t *testing.T) {
	cases := []struct {
		name        string
		liveSegment bool
		showLive    bool
		want        types.SessionLifecycle
	}{
		{name: "live segment overrides toggle off", liveSegment: true, showLive: false, want: types.SessionLifecycleAll},
		{name: "live segment with toggle on", liveSegment: true, showLive: true, want: types.SessionLifecycleAll},
		{name: "toggle on", liveSegment: false, showLive: true, want: types.SessionLifecycleAll},
		{name: "neither", liveSegment: false, showLive: false, want: types.SessionLifecycleCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectLifecycle(tc.liveSegment, tc.showLive))
		})
	}
}

func TestStoreLifecycleUsesSegment(t *testing.T) {
	s := New(types.EmptySessionsSearchParams())
	assert.Equal(t, types.SessionLifecycleCompleted, s.Lifecycle())

	s.SetSegment(types.LiveSegmentID)
	assert.Equal(t, types.SessionLifecycleAll, s.Lifecycle())

	s.SetSegment("saved-segment")
	s.SetShowLiveSessions(true)
	assert.Equal(t, types.SessionLifecycleAll, s.Lifecycle())
}

func TestUpdateBumpsVersionOnlyOnChange(t *testing.T) {
	s := New(types.EmptySessionsSearchParams())
	var changes []Change
	cancel := s.Subscribe(func(c Change) { changes = append(changes, c) })
	defer cancel()

	start := s.Version()
	assert.False(t, s.Update(func(p *types.SearchParams) { p.HideViewed = false }))
	assert.Equal(t, start, s.Version())

	assert.True(t, s.ToggleHideViewed())
	assert.Equal(t, start+1, s.Version())
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Params.HideViewed)
	assert.Equal(t, start+1, changes[0].Version)

	assert.True(t, s.SetShowStarred(true))
	assert.False(t, s.SetShowStarred(true))
	assert.Len(t, changes, 2)
}

func TestUpdateDoesNotLeakMutations(t *testing.T) {
	s := New(types.SearchParams{Environments: []string{"prod"}})
	params := s.Params()
	params.Environments[0] = "dev"
	assert.Equal(t, []string{"prod"}, s.Params().Environments)
}

func TestUnsubscribe(t *testing.T) {
	s := New(types.EmptySessionsSearchParams())
	calls := 0
	cancel := s.Subscribe(func(Change) { calls++ })
	s.ToggleShowLiveSessions()
	cancel()
	s.ToggleShowLiveSessions()
	assert.Equal(t, 1, calls)
}

func TestErrorQueryIsCopied(t *testing.T) {
	s := New(types.EmptySessionsSearchParams())
	input := &types.QueryBuilderInput{
		Type:  types.QueryTypeErrors,
		IsAnd: true,
		Rules: []types.QueryRule{types.NewQueryRule("error-field_browser", types.RuleOpIs, "Chrome")},
	}
	before := s.Version()
	s.SetErrorQuery(input)
	input.Rules[0] = types.NewQueryRule("x", "is", "y")

	got := s.ErrorQuery()
	require.NotNil(t, got)
	assert.Equal(t, "error-field_browser", got.Rules[0].Field())
	assert.Equal(t, before, s.Version())
}

func TestRestoreAndAppState(t *testing.T) {
	s := New(types.EmptySessionsSearchParams())
	s.Restore(&types.AppState{
		SegmentID:    types.LiveSegmentID,
		ShowStarred:  true,
		SearchParams: types.SearchParams{HideViewed: true},
	})
	assert.Equal(t, types.LiveSegmentID, s.SegmentID())
	assert.True(t, s.ShowStarred())
	assert.True(t, s.Params().HideViewed)
	assert.True(t, s.ExistingParams().HideViewed)

	state := s.AppState(types.AppState{ProjectID: "1"})
	assert.Equal(t, "1", state.ProjectID)
	assert.Equal(t, types.LiveSegmentID, state.SegmentID)
	assert.True(t, state.SearchParams.HideViewed)
}

package quicksearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-bit/highlight/internal/navigation"
	"github.com/shivam-bit/highlight/internal/searchparams"
	"github.com/shivam-bit/highlight/internal/types"
)

func TestSelectErrorOptionKeepsSessionParams(t *testing.T) {
	params := types.EmptySessionsSearchParams()
	params.Identified = true
	params.Query = "existing"
	store := searchparams.New(params)
	history := navigation.NewHistory(0)
	selector := NewSelector("1", store, history)

	sel, err := selector.Select(types.QuickSearchOption{Type: "error-field", Name: "Browser", Value: "Chrome"})

	require.NoError(t, err)
	assert.Equal(t, "/1/errors", sel.Path)
	cur, _ := history.Current()
	assert.Equal(t, "/1/errors", cur)

	query := store.ErrorQuery()
	require.NotNil(t, query)
	assert.Equal(t, types.QueryTypeErrors, query.Type)
	assert.True(t, query.IsAnd)
	require.Len(t, query.Rules, 1)
	assert.Equal(t, types.QueryRule{"error-field_browser", "is", "Chrome"}, query.Rules[0])

	assert.True(t, store.Params().Identified)
	assert.Equal(t, "existing", store.Params().Query)
}

func TestSelectSessionOptionResetsParams(t *testing.T) {
	params := types.EmptySessionsSearchParams()
	params.HideViewed = true
	params.Browser = "Firefox"
	store := searchparams.New(params)
	history := navigation.NewHistory(0)
	selector := NewSelector("1", store, history)
	before := store.Version()

	sel, err := selector.Select(types.QuickSearchOption{Type: "session", Name: "OS_Name", Value: "Linux"})

	require.NoError(t, err)
	assert.Equal(t, "/1/sessions", sel.Path)
	got := store.Params()
	assert.Equal(t, `{"isAnd":true,"rules":[["session_os_name","is","Linux"]]}`, got.Query)
	assert.False(t, got.HideViewed)
	assert.Empty(t, got.Browser)
	assert.Equal(t, got, store.ExistingParams())
	assert.Greater(t, store.Version(), before)
	assert.Nil(t, store.ErrorQuery())
}

func TestSelectRequiresProject(t *testing.T) {
	selector := NewSelector(" ", searchparams.New(types.EmptySessionsSearchParams()), nil)
	_, err := selector.Select(types.QuickSearchOption{Type: "session", Name: "a", Value: "b"})
	assert.Error(t, err)
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchParamsCloneIsDeep(t *testing.T) {
	orig := SearchParams{
		Environments: []string{"production"},
		LengthRange:  &LengthRange{Min: 1, Max: 5},
	}
	clone := orig.Clone()
	clone.Environments[0] = "staging"
	clone.LengthRange.Max = 9

	assert.Equal(t, "production", orig.Environments[0])
	assert.Equal(t, 5, orig.LengthRange.Max)
	assert.False(t, orig.Equal(clone))
}

func TestSearchParamsEqual(t *testing.T) {
	a := SearchParams{Query: "q", HideViewed: true, LengthRange: &LengthRange{Min: 1}}
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.LengthRange = nil
	assert.False(t, a.Equal(b))

	b = a.Clone()
	b.ShowLiveSessions = true
	assert.False(t, a.Equal(b))
	assert.True(t, EmptySessionsSearchParams().Equal(SearchParams{}))
}

func TestSessionResultsPaging(t *testing.T) {
	empty := EmptySessionResults()
	assert.False(t, empty.TotalKnown())
	assert.False(t, empty.HasNextPage())

	partial := SessionResults{Sessions: []*Session{{ID: "1"}}, TotalCount: 3}
	assert.True(t, partial.TotalKnown())
	assert.True(t, partial.HasNextPage())

	full := SessionResults{Sessions: []*Session{{ID: "1"}}, TotalCount: 1}
	assert.False(t, full.HasNextPage())
}

func TestQueryRuleAccessors(t *testing.T) {
	rule := NewQueryRule("session_browser", RuleOpIs, "Chrome")
	assert.Equal(t, "session_browser", rule.Field())
	assert.Equal(t, RuleOpIs, rule.Op())
	assert.Equal(t, "Chrome", rule.Value())

	short := QueryRule{"only"}
	assert.Equal(t, "", short.Value())
}

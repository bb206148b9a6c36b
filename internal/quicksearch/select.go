package quicksearch

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/shivam-bit/highlight/internal/navigation"
	"github.com/shivam-bit/highlight/internal/types"
)

// SearchState is the part of the search parameter store a selection writes.
type SearchState interface {
	SetErrorQuery(input *types.QueryBuilderInput)
	SetExistingParams(params types.SearchParams)
	Replace(params types.SearchParams) bool
}

// Selection describes what a pick did.
type Selection struct {
	Path       string
	ErrorQuery *types.QueryBuilderInput
	Params     *types.SearchParams
}

type Selector struct {
	projectID string
	state     SearchState
	nav       navigation.Navigator
}

func NewSelector(projectID string, state SearchState, nav navigation.Navigator) *Selector {
	return &Selector{projectID: strings.TrimSpace(projectID), state: state, nav: nav}
}

// Select applies a picked suggestion. Error fields open the errors view with
// a single-rule error query and leave the session params alone; session
// fields replace the session params with a single-rule query.
func (s *Selector) Select(opt types.QuickSearchOption) (Selection, error) {
	if s.projectID == "" {
		return Selection{}, fmt.Errorf("quicksearch: project id is required")
	}
	rule := types.NewQueryRule(FieldKey(opt), types.RuleOpIs, opt.Value)
	if IsErrorOption(opt) {
		input := &types.QueryBuilderInput{
			Type:  types.QueryTypeErrors,
			IsAnd: true,
			Rules: []types.QueryRule{rule},
		}
		s.state.SetErrorQuery(input)
		path := navigation.ErrorsPath(s.projectID)
		s.push(path)
		return Selection{Path: path, ErrorQuery: input}, nil
	}
	params, err := SessionParamsForRule(rule)
	if err != nil {
		return Selection{}, err
	}
	path := navigation.SessionsPath(s.projectID)
	s.push(path)
	s.state.SetExistingParams(params)
	s.state.Replace(params)
	return Selection{Path: path, Params: &params}, nil
}

func (s *Selector) push(path string) {
	if s.nav != nil {
		s.nav.Push(path)
	}
}

// SessionParamsForRule returns empty session params whose query holds rule.
func SessionParamsForRule(rule types.QueryRule) (types.SearchParams, error) {
	raw, err := json.Marshal(types.QueryBuilderInput{
		IsAnd: true,
		Rules: []types.QueryRule{rule},
	})
	if err != nil {
		return types.SearchParams{}, err
	}
	params := types.EmptySessionsSearchParams()
	params.Query = string(raw)
	return params, nil
}

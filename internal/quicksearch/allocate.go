// Package quicksearch turns quick-field search results into suggestion
// groups and applies a picked suggestion to the search state.
package quicksearch

import (
	"math"
	"strings"

	"github.com/shivam-bit/highlight/internal/types"
)

const (
	// ResultCount is the total number of suggestions shown across groups.
	ResultCount = 10
	// ErrorType marks options recorded for errors; every other type is a
	// session field.
	ErrorType = "error-field"

	SessionsLabel   = "Sessions"
	SessionsTooltip = "Fields recorded for sessions."
	ErrorsLabel     = "Errors"
	ErrorsTooltip   = "Fields recorded for errors."
)

func IsErrorOption(opt types.QuickSearchOption) bool {
	return opt.Type == ErrorType
}

// FieldKey is the query-builder field name for an option.
func FieldKey(opt types.QuickSearchOption) string {
	return strings.ToLower(opt.Type) + "_" + strings.ToLower(opt.Name)
}

// Partition splits options into session and error options, keeping the
// server order within each.
func Partition(options []types.QuickSearchOption) (sessions, errs []types.QuickSearchOption) {
	sessions = []types.QuickSearchOption{}
	errs = []types.QuickSearchOption{}
	for _, opt := range options {
		if IsErrorOption(opt) {
			errs = append(errs, opt)
			continue
		}
		sessions = append(sessions, opt)
	}
	return sessions, errs
}

// Shares returns how many session and error suggestions to show out of k,
// proportional to how many of each were returned.
func Shares(sessionCount, errorCount, k int) (shownSessions, shownErrors int) {
	total := sessionCount + errorCount
	if total <= 0 || k <= 0 {
		return 0, 0
	}
	shownSessions = int(math.Floor(float64(sessionCount)/float64(total)*float64(k) + 0.5))
	return shownSessions, k - shownSessions
}

// Allocate builds the Sessions and Errors groups, in that order.
func Allocate(options []types.QuickSearchOption, k int) []types.SuggestionGroup {
	sessions, errs := Partition(options)
	shownSessions, shownErrors := Shares(len(sessions), len(errs), k)
	return []types.SuggestionGroup{
		{
			Label:   SessionsLabel,
			Tooltip: SessionsTooltip,
			Options: truncate(sessions, shownSessions),
		},
		{
			Label:   ErrorsLabel,
			Tooltip: ErrorsTooltip,
			Options: truncate(errs, shownErrors),
		},
	}
}

func truncate(options []types.QuickSearchOption, n int) []types.QuickSearchOption {
	if n < 0 {
		n = 0
	}
	if n < len(options) {
		options = options[:n]
	}
	return append([]types.QuickSearchOption{}, options...)
}

// NoOptionsMessage is shown when a search yields no suggestions. An empty
// query shows nothing.
func NoOptionsMessage(query string) string {
	if query == "" {
		return ""
	}
	return `No results for "` + query + `"`
}

// Flatten lists the options of groups in display order.
func Flatten(groups []types.SuggestionGroup) []types.QuickSearchOption {
	var out []types.QuickSearchOption
	for _, g := range groups {
		out = append(out, g.Options...)
	}
	return out
}

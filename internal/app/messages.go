package app

import (
	"time"

	"github.com/shivam-bit/highlight/internal/quicksearch"
	"github.com/shivam-bit/highlight/internal/types"
)

type tickMsg time.Time

type startupMsg struct {
	billing    *types.BillingDetails
	integrated bool
	err        error
}

type feedLoadedMsg struct {
	version uint64
	count   int
	err     error
}

type liveCountMsg struct {
	count int
	err   error
}

type searchDebounceMsg struct {
	seq   int
	query string
}

type quickSearchMsg struct {
	result quicksearch.Result
	err    error
}

type stateSavedMsg struct {
	err error
}

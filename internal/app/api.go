package app

import (
	"context"

	"github.com/shivam-bit/highlight/internal/feed"
	"github.com/shivam-bit/highlight/internal/quicksearch"
	"github.com/shivam-bit/highlight/internal/types"
)

// API is everything the UI asks of the replay service.
type API interface {
	feed.SessionSource
	feed.UnprocessedCounter
	quicksearch.FieldSource
	BillingDetails(ctx context.Context, projectID string) (*types.BillingDetails, error)
	Integrated(ctx context.Context, projectID string) (bool, error)
}

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-bit/highlight/internal/devserver"
	"github.com/shivam-bit/highlight/internal/types"
)

func newDevserverClient(t *testing.T, opts ...devserver.Option) (*Client, *devserver.Server) {
	t.Helper()
	fixture, err := devserver.DefaultFixture()
	require.NoError(t, err)
	srv := devserver.New(fixture, opts...)
	httpServer := httptest.NewServer(srv.Handler())
	t.Cleanup(httpServer.Close)
	return NewWithBaseURL(httpServer.URL, "token"), srv
}

func TestGetSessionsReturnsPrefixAndTotal(t *testing.T) {
	c, srv := newDevserverClient(t, devserver.WithToken("token"))

	res, err := c.GetSessions(context.Background(), types.SessionsQuery{
		ProjectID: srv.ProjectID(),
		Count:     10,
		Lifecycle: types.SessionLifecycleAll,
	})
	require.NoError(t, err)
	assert.Len(t, res.Sessions, 10)
	assert.Greater(t, res.TotalCount, 10)
	assert.True(t, res.HasNextPage())

	bigger, err := c.GetSessions(context.Background(), types.SessionsQuery{
		ProjectID: srv.ProjectID(),
		Count:     20,
		Lifecycle: types.SessionLifecycleAll,
	})
	require.NoError(t, err)
	require.Len(t, bigger.Sessions, 20)
	assert.Equal(t, res.Sessions[0].SecureID, bigger.Sessions[0].SecureID)
}

func TestUnprocessedCountBillingAndIntegrated(t *testing.T) {
	c, srv := newDevserverClient(t)
	ctx := context.Background()

	srv.SetUnprocessedCount(4)
	count, err := c.UnprocessedSessionsCount(ctx, srv.ProjectID())
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	billing, err := c.BillingDetails(ctx, srv.ProjectID())
	require.NoError(t, err)
	assert.Equal(t, types.PlanTypeFree, billing.Plan.Type)
	assert.EqualValues(t, 12, billing.Meter)

	integrated, err := c.Integrated(ctx, srv.ProjectID())
	require.NoError(t, err)
	assert.True(t, integrated)
}

func TestQuickFieldsSearchSendsCountAndQuery(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.RequestURI()
		if r.Header.Get("X-Request-ID") == "" {
			http.Error(w, "missing request id", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fields":[{"type":"error-field","name":"Browser","value":"Chrome"}]}`))
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "")
	fields, err := c.QuickFieldsSearch(context.Background(), "9", 10, "chr ome")
	require.NoError(t, err)
	assert.Equal(t, "/v1/projects/9/quick_fields?count=10&query=chr+ome", seen)
	assert.Equal(t, []types.QuickSearchOption{{Type: "error-field", Name: "Browser", Value: "Chrome"}}, fields)
}

func TestAPIErrorDecoded(t *testing.T) {
	c, srv := newDevserverClient(t)
	srv.FailNext("billing", 1)

	_, err := c.BillingDetails(context.Background(), srv.ProjectID())
	require.Error(t, err)
	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "billing unavailable", apiErr.Message)
}

func TestProjectIDRequired(t *testing.T) {
	c := NewWithBaseURL("http://127.0.0.1:1", "")
	_, err := c.GetSessions(context.Background(), types.SessionsQuery{Count: 10})
	require.Error(t, err)
	_, err = c.UnprocessedSessionsCount(context.Background(), " ")
	require.Error(t, err)
}

package client

import "github.com/shivam-bit/highlight/internal/types"

type SessionsSearchRequest struct {
	Params    types.SearchParams     `json:"params"`
	Count     int                    `json:"count"`
	Lifecycle types.SessionLifecycle `json:"lifecycle"`
	Starred   bool                   `json:"starred"`
}

type UnprocessedSessionsCountResponse struct {
	Count int `json:"count"`
}

type IntegratedResponse struct {
	Integrated bool `json:"integrated"`
}

type QuickFieldsResponse struct {
	Fields []types.QuickSearchOption `json:"fields"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

package types

import "time"

type SessionLifecycle string

const (
	SessionLifecycleCompleted SessionLifecycle = "Completed"
	SessionLifecycleLive      SessionLifecycle = "Live"
	SessionLifecycleAll       SessionLifecycle = "All"
)

// UnknownTotalCount marks a result set whose total has not been fetched yet.
const UnknownTotalCount = -1

type Session struct {
	ID           string            `json:"id"`
	SecureID     string            `json:"secure_id"`
	Identifier   string            `json:"identifier,omitempty"`
	City         string            `json:"city,omitempty"`
	Country      string            `json:"country,omitempty"`
	BrowserName  string            `json:"browser_name,omitempty"`
	OSName       string            `json:"os_name,omitempty"`
	ActiveLength int64             `json:"active_length,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	Viewed       bool              `json:"viewed"`
	Starred      bool              `json:"starred"`
	Processed    bool              `json:"processed"`
	Fields       map[string]string `json:"fields,omitempty"`
}

type SessionResults struct {
	Sessions   []*Session `json:"sessions"`
	TotalCount int        `json:"totalCount"`
}

func EmptySessionResults() SessionResults {
	return SessionResults{Sessions: []*Session{}, TotalCount: UnknownTotalCount}
}

func (r SessionResults) TotalKnown() bool {
	return r.TotalCount != UnknownTotalCount
}

func (r SessionResults) HasNextPage() bool {
	return len(r.Sessions) < r.TotalCount
}

type SessionsQuery struct {
	ProjectID string           `json:"project_id"`
	Params    SearchParams     `json:"params"`
	Count     int              `json:"count"`
	Lifecycle SessionLifecycle `json:"lifecycle"`
	Starred   bool             `json:"starred"`
}

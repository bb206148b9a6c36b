package types

import "slices"

// LiveSegmentID is the segment whose selection always includes live sessions.
const LiveSegmentID = "live"

type LengthRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type SearchParams struct {
	Query            string       `json:"query,omitempty"`
	ShowLiveSessions bool         `json:"show_live_sessions"`
	HideViewed       bool         `json:"hide_viewed"`
	Identified       bool         `json:"identified"`
	FirstTime        bool         `json:"first_time"`
	Browser          string       `json:"browser,omitempty"`
	OS               string       `json:"os,omitempty"`
	VisitedURL       string       `json:"visited_url,omitempty"`
	Referrer         string       `json:"referrer,omitempty"`
	Environments     []string     `json:"environments,omitempty"`
	LengthRange      *LengthRange `json:"length_range,omitempty"`
}

func EmptySessionsSearchParams() SearchParams {
	return SearchParams{}
}

func (p SearchParams) Clone() SearchParams {
	out := p
	if p.Environments != nil {
		out.Environments = append([]string{}, p.Environments...)
	}
	if p.LengthRange != nil {
		lr := *p.LengthRange
		out.LengthRange = &lr
	}
	return out
}

func (p SearchParams) Equal(other SearchParams) bool {
	if p.Query != other.Query ||
		p.ShowLiveSessions != other.ShowLiveSessions ||
		p.HideViewed != other.HideViewed ||
		p.Identified != other.Identified ||
		p.FirstTime != other.FirstTime ||
		p.Browser != other.Browser ||
		p.OS != other.OS ||
		p.VisitedURL != other.VisitedURL ||
		p.Referrer != other.Referrer {
		return false
	}
	if !slices.Equal(p.Environments, other.Environments) {
		return false
	}
	switch {
	case p.LengthRange == nil && other.LengthRange == nil:
		return true
	case p.LengthRange == nil || other.LengthRange == nil:
		return false
	default:
		return *p.LengthRange == *other.LengthRange
	}
}

const (
	RuleOpIs = "is"

	QueryTypeErrors   = "errors"
	QueryTypeSessions = "sessions"
)

// QueryRule is a [field, operator, value] triple.
type QueryRule []string

func NewQueryRule(field, op, value string) QueryRule {
	return QueryRule{field, op, value}
}

func (r QueryRule) Field() string { return r.at(0) }
func (r QueryRule) Op() string    { return r.at(1) }
func (r QueryRule) Value() string { return r.at(2) }

func (r QueryRule) at(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

type QueryBuilderInput struct {
	Type  string      `json:"type,omitempty"`
	IsAnd bool        `json:"isAnd"`
	Rules []QueryRule `json:"rules"`
}

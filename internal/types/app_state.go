package types

type AppState struct {
	ProjectID    string       `json:"project_id"`
	SegmentID    string       `json:"segment_id,omitempty"`
	SearchParams SearchParams `json:"search_params"`
	ShowStarred  bool         `json:"show_starred"`
	Player       PlayerConfig `json:"player"`
}

type PlayerConfig struct {
	AutoPlaySessions        bool `json:"autoplay_sessions"`
	ShowDetailedSessionView bool `json:"show_detailed_session_view"`
}

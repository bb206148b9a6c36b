package types

type QuickSearchOption struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type SuggestionGroup struct {
	Label   string              `json:"label"`
	Tooltip string              `json:"tooltip"`
	Options []QuickSearchOption `json:"options"`
}

package types

// Keymap maps UI command names to user-chosen keys.
type Keymap struct {
	Bindings map[string]string `json:"bindings"`
}

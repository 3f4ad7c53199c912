// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Font size bounds for the editor panes.
const (
	MinFontSize = 8
	MaxFontSize = 28
)

// UserSettings holds per-user window and session preferences.
type UserSettings struct {
	Width    int `json:"width" yaml:"width"`
	Height   int `json:"height" yaml:"height"`
	X        int `json:"x" yaml:"x"`
	Y        int `json:"y" yaml:"y"`
	FontSize int `json:"font_size" yaml:"font_size"`

	// CurrentConfig is the rule set selected when the session ended.
	CurrentConfig string `json:"current_config,omitempty" yaml:"current_config,omitempty"`
}

// DefaultUserSettings returns the settings used for unknown users.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Width:    1100,
		Height:   720,
		X:        100,
		Y:        100,
		FontSize: 12,
	}
}

// ClampFontSize bounds size to [MinFontSize, MaxFontSize].
func ClampFontSize(size int) int {
	return max(MinFontSize, min(MaxFontSize, size))
}

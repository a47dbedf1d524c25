package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hard-coded default settings.
// Unlimited in-game rendering, 60 Hz menus, layouts for 4 to 8 lanes.
func DefaultSettings() Settings {
	menuCap := 60.0
	return Settings{
		KeyLayouts: map[int][]string{
			4: {"d", "f", "j", "k"},
			5: {"d", "f", "space", "j", "k"},
			6: {"s", "d", "f", "j", "k", "l"},
			7: {"s", "d", "f", "space", "j", "k", "l"},
			8: {"a", "s", "d", "f", "j", "k", "l", ";"},
		},
		IngameFPSCap: nil,
		MenuFPSCap:   &menuCap,
		Fullscreen:   false,
		Timing: TimingSettings{
			FixedTickHz:        1000,
			MaxTicksPerAdvance: 10,
			PollHz:             DefaultPollHz,
		},
	}
}

// Default returns the embedded default settings document, falling back to
// DefaultSettings if the embedded YAML cannot be parsed.
func Default() Settings {
	var s Settings
	if err := yaml.Unmarshal(defaultSettingsYAML, &s); err != nil {
		return DefaultSettings()
	}
	return s.Normalize()
}

// DefaultYAML returns the embedded default settings document.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}

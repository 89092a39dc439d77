package surfview

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings configure a [Server]. Zero fields are replaced with the
// corresponding default at serve time.
type Settings struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// UpdateIntervalMs is the delay between broadcast frames in
	// milliseconds.
	UpdateIntervalMs int `toml:"update_interval_ms"`
	// StepsPerFrame is how many solver timesteps run per broadcast frame.
	StepsPerFrame int `toml:"steps_per_frame"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Addr:             ":8080",
		UpdateIntervalMs: 33,
		StepsPerFrame:    4,
	}
}

// LoadSettings reads a TOML settings file, falling back to defaults for a
// missing file and for any field left unset in it.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger().Info("no settings file, using defaults", "path", path)
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings %q: %w", path, err)
	}
	s.applyDefaults()
	return s, nil
}

func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.Addr == "" {
		s.Addr = def.Addr
	}
	if s.UpdateIntervalMs <= 0 {
		s.UpdateIntervalMs = def.UpdateIntervalMs
	}
	if s.StepsPerFrame <= 0 {
		s.StepsPerFrame = def.StepsPerFrame
	}
}

// updateInterval returns the broadcast period as a duration.
func (s Settings) updateInterval() time.Duration {
	return time.Duration(s.UpdateIntervalMs) * time.Millisecond
}

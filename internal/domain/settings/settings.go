package settings

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid settings")

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Settings struct {
	Theme            string `json:"theme"`
	SoundEnabled     bool   `json:"soundEnabled"`
	VibrationEnabled bool   `json:"vibrationEnabled"`
	TimerEnabled     bool   `json:"timerEnabled"`
	NativeLanguage   string `json:"nativeLanguage"`
}

// Default returns the settings written on first run.
func Default() Settings {
	return Settings{
		Theme:            ThemeLight,
		SoundEnabled:     true,
		VibrationEnabled: true,
		TimerEnabled:     false,
		NativeLanguage:   "en",
	}
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Theme            *string `json:"theme,omitempty"`
	SoundEnabled     *bool   `json:"soundEnabled,omitempty"`
	VibrationEnabled *bool   `json:"vibrationEnabled,omitempty"`
	TimerEnabled     *bool   `json:"timerEnabled,omitempty"`
	NativeLanguage   *string `json:"nativeLanguage,omitempty"`
}

// Apply returns s with p applied, or ErrInvalid if the result fails validation.
func (s Settings) Apply(p Patch) (Settings, error) {
	if p.Theme != nil {
		s.Theme = strings.ToLower(strings.TrimSpace(*p.Theme))
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.VibrationEnabled != nil {
		s.VibrationEnabled = *p.VibrationEnabled
	}
	if p.TimerEnabled != nil {
		s.TimerEnabled = *p.TimerEnabled
	}
	if p.NativeLanguage != nil {
		s.NativeLanguage = strings.ToLower(strings.TrimSpace(*p.NativeLanguage))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("%w: theme must be %q or %q, got %q", ErrInvalid, ThemeLight, ThemeDark, s.Theme)
	}
	if !ValidLanguage(s.NativeLanguage) {
		return fmt.Errorf("%w: language %q is not a 2 or 3 letter code", ErrInvalid, s.NativeLanguage)
	}
	return nil
}

// ValidLanguage accepts lowercase ISO 639 codes of two or three letters.
func ValidLanguage(code string) bool {
	if len(code) < 2 || len(code) > 3 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

package settings_test

import (
	"errors"
	"testing"

	"github.com/ozcitizen/backend/internal/domain/settings"
)

func ptr[T any](v T) *T { return &v }

func TestDefault(t *testing.T) {
	s := settings.Default()
	if s.Theme != settings.ThemeLight || !s.SoundEnabled || !s.VibrationEnabled || s.TimerEnabled || s.NativeLanguage != "en" {
		t.Errorf("unexpected defaults %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestApply(t *testing.T) {
	got, err := settings.Default().Apply(settings.Patch{
		Theme:          ptr(" Dark "),
		TimerEnabled:   ptr(true),
		NativeLanguage: ptr("ZH"),
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := settings.Settings{
		Theme:            settings.ThemeDark,
		SoundEnabled:     true,
		VibrationEnabled: true,
		TimerEnabled:     true,
		NativeLanguage:   "zh",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestApply_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		patch settings.Patch
	}{
		{"theme", settings.Patch{Theme: ptr("blue")}},
		{"language too long", settings.Patch{NativeLanguage: ptr("english")}},
		{"language digits", settings.Patch{NativeLanguage: ptr("e1")}},
		{"language empty", settings.Patch{NativeLanguage: ptr("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := settings.Default().Apply(tt.patch); !errors.Is(err, settings.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

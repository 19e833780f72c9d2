package quiz

import (
	"fmt"
	"time"
)

type Mode string

const (
	// ModePractice draws a random subset, optionally from one section.
	ModePractice Mode = "practice"
	// ModeTest mirrors the real test: TestLength questions, TestValuesCount
	// of them from the Australian values part.
	ModeTest Mode = "test"
)

const (
	TestLength      = 20
	TestValuesCount = 5
	// TestDuration is the time allowed for the real test.
	TestDuration = 45 * time.Minute
)

// Config holds the optional constraints for a quiz.
type Config struct {
	Mode         Mode
	Section      string         // practice only; empty = every section
	MaxQuestions *int           // practice only; nil = every matching question
	MaxDuration  *time.Duration // nil = no time limit
}

// DefaultConfig returns an unconstrained practice config.
func DefaultConfig() Config {
	return Config{Mode: ModePractice}
}

// TestConfig returns the config of a full mock test.
func TestConfig() Config {
	d := TestDuration
	return Config{Mode: ModeTest, MaxDuration: &d}
}

func (c Config) validate() error {
	switch c.Mode {
	case "", ModePractice, ModeTest:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.MaxQuestions != nil && *c.MaxQuestions < 0 {
		return fmt.Errorf("%w: max questions must not be negative", ErrInvalidConfig)
	}
	if c.MaxDuration != nil && *c.MaxDuration < 0 {
		return fmt.Errorf("%w: max duration must not be negative", ErrInvalidConfig)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Card geometry
	CardWidth   = 120
	CardHeight  = 160
	CardSpacing = 10

	// Multi-row layout
	RowCount   = 3
	RowHeight  = 80
	RowSpacing = 10
	RowShift   = 60

	// Curve parameters
	AnglePerCard = 50
	CurveHeight  = 50

	// Motion
	WheelSpeed       = 40
	MomentumFriction = 0.92
	MomentumMinSpeed = 0.3
	SnapRate         = 0.2
	AutoplaySpeed    = 1.5

	SampleCardCount = 7

	// Detent tick
	TickSampleRate = 44100
	TickFrequency  = 1320
	TickLengthMs   = 25
	TickVolume     = 0.2
)

// Env holds the settings read from the environment.
type Env struct {
	// TickSound is a wav, mp3 or flac file used as the detent tick; empty
	// selects the built-in tone.
	TickSound string `env:"CAROUSEL_TICK_SOUND"`
	// SampleCards is how many sample cards to show at start and on reset.
	SampleCards int `env:"CAROUSEL_SAMPLE_CARDS" envDefault:"7"`
	// Autoplay starts the carousel drifting on launch.
	Autoplay bool `env:"CAROUSEL_AUTOPLAY" envDefault:"false"`
}

// DefaultEnv is the configuration used when the environment cannot be parsed.
func DefaultEnv() Env {
	return Env{SampleCards: SampleCardCount}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env. On error the defaults are returned with the error.
func LoadEnv() (Env, error) {
	cfg := DefaultEnv()
	if err := ParseEnv(&cfg); err != nil {
		return DefaultEnv(), err
	}
	if cfg.SampleCards < 0 {
		return DefaultEnv(), fmt.Errorf("parse env: CAROUSEL_SAMPLE_CARDS must not be negative, got %d", cfg.SampleCards)
	}
	return cfg, nil
}

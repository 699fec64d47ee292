package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Options holds the run settings that can come from the environment.
// Command line flags take precedence over these values.
type Options struct {
	OutDir     string `env:"EYA_OUT_DIR"`
	LabelsFile string `env:"EYA_LABELS_FILE"`
	Calendar   bool   `env:"EYA_CALENDAR"`
	VCard      bool   `env:"EYA_VCARD"`
	NoWait     bool   `env:"EYA_NO_WAIT"`
	Debug      bool   `env:"EYA_DEBUG"`
}

// LoadOptions reads Options from the process environment.
func LoadOptions() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	return opts, nil
}

// LoadOptionsFrom reads Options from an explicit variable set.
// Used by tests to avoid touching the real environment.
func LoadOptionsFrom(vars map[string]string) (Options, error) {
	var opts Options
	if err := env.ParseWithOptions(&opts, env.Options{Environment: vars}); err != nil {
		return Options{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	return opts, nil
}

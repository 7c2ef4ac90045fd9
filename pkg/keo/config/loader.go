package config

import (
	"fmt"
	"os"

	"github.com/cognicore/keo/pkg/keo/lexicon"
)

// Loader loads the config file and the lexicon it points to.
type Loader struct {
	ConfigPath string
	// LexiconPath overrides lexicon.path from the config file.
	LexiconPath string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Components holds the loaded configuration.
type Components struct {
	Config  Config
	Lexicon *lexicon.Tables
}

// Load reads, overrides and validates the configuration, then loads the
// lexicon (built-in tables when no path is set).
func (l *Loader) Load() (*Components, error) {
	cfg, err := Load(l.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.ApplyEnv(getenv)
	if l.LexiconPath != "" {
		cfg.Lexicon.Path = l.LexiconPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{Config: cfg, Lexicon: lexicon.Default()}
	if cfg.Lexicon.Path != "" {
		tables, err := lexicon.LoadFromYAML(cfg.Lexicon.Path)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = tables
	}
	return comp, nil
}

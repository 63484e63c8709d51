package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PipelinePath is a single .hcl file or a directory of them.
	PipelinePath string
	LogFormat    string
	LogLevel     string

	// Dot prints the graph as Graphviz DOT source instead of evaluating it.
	Dot bool
	// Watch keeps the process alive and re-evaluates sinks whenever a
	// remote control pushes a new value.
	Watch bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Dot && cfg.Watch {
		return nil, errors.New("the dot and watch options are mutually exclusive")
	}
	return &cfg, nil
}

package config

import (
	"fmt"

	"github.com/danmuck/agentwire/internal/logging"
)

// Logging converts the [log] table into a logger setup.
func (c LogConfig) Logging() (logging.Config, error) {
	level, ok := logging.ParseLevel(c.Level)
	if !ok {
		return logging.Config{}, fmt.Errorf("log.level %q is not a known level", c.Level)
	}
	return logging.Config{
		Level:     level,
		Timestamp: c.Timestamp,
		NoColor:   c.NoColor,
	}, nil
}

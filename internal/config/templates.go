package config

import (
	"fmt"
	"os"
)

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}

// Template mirrors DefaultConfig.
const Template = `[log]
level = "info"
timestamp = true
no_color = false

[limits]
max_input_bytes = 262144

[output]
format = "text"
`

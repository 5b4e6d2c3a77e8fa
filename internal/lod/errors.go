package lod

import "fmt"

// ConfigError reports an invalid Config field at construction time.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lod config: %s: %s", e.Field, e.Reason)
}

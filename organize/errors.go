package organize

import "fmt"

// ConfigError reports an invalid category selection before any file is touched.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// NotDirectoryError reports a target path that is missing or not a directory.
type NotDirectoryError struct {
	Path   string
	Reason string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ConflictError reports a move that was skipped because the destination
// already contains a file with the same name.
type ConflictError struct {
	Source      string
	Destination string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot move %s: %s already exists", e.Source, e.Destination)
}

package organize

import (
	"errors"
	"fmt"
)

// Kind classifies per-file failures recorded in a run outcome.
type Kind string

const (
	KindDiscovery    Kind = "discovery"     // source subtree could not be enumerated
	KindMetadata     Kind = "metadata"      // tag decode failure
	KindPathSecurity Kind = "path-security" // destination escapes the library root
	KindRelocation   Kind = "relocation"    // move/copy/permission/integrity failure
)

// ErrRunInProgress is returned by Start while another run is active.
var ErrRunInProgress = errors.New("an organization run is already active")

// ConfigError reports an unusable source or destination folder.
// It is the only error that aborts a run before any file is processed.
type ConfigError struct {
	Field string // "source" or "destination"
	Path  string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s folder %q: %v", e.Field, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

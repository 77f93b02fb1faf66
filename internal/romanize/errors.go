package romanize

import "fmt"

// ConfigurationError reports an unsupported language code or a missing
// backend capability. It is fatal: nothing is annotated.
type ConfigurationError struct {
	Lang   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("language %q: %s: %v", e.Lang, e.Reason, e.Err)
	}
	return fmt.Sprintf("language %q: %s", e.Lang, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// BackendError reports a backend failing on a single piece of text. The
// annotator skips the node and keeps going.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

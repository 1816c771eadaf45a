package importer

import "fmt"

// ImportError reports that an external catalog was unreachable, returned a
// malformed payload, or was missing a required field. The import is atomic:
// when an ImportError is returned, no partial work was persisted.
type ImportError struct {
	Source string
	Slug   string
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import %s/%s: %s: %v", e.Source, e.Slug, e.Reason, e.Err)
	}
	return fmt.Sprintf("import %s/%s: %s", e.Source, e.Slug, e.Reason)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

package docs

import "fmt"

// DocsError wraps an error with the operation and document it occurred on.
type DocsError struct {
	Op         string // The operation that failed (e.g., "createDocument", "batchUpdate")
	DocumentID string // The document involved, if any
	Err        error  // The underlying error
}

// Error implements the error interface
func (e *DocsError) Error() string {
	if e.DocumentID != "" {
		return fmt.Sprintf("docs %s %s: %v", e.Op, e.DocumentID, e.Err)
	}
	return fmt.Sprintf("docs %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *DocsError) Unwrap() error {
	return e.Err
}

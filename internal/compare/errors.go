package compare

import (
	"fmt"

	"snapshot-matcher/internal/diff"
)

// WriteError reports a failure to encode a value or to create its snapshot.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write snapshot %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failure to read an existing snapshot or to encode the
// value it is compared with.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read snapshot %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// MismatchError is the designed outcome of a failed comparison.
type MismatchError struct {
	Path    string
	Regions []diff.Region
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("snapshot %s: %d differences found", e.Path, len(e.Regions))
}

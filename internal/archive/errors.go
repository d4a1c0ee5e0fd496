package archive

import (
	"errors"
	"fmt"
)

// ErrMemberNotFound is wrapped by Error when a member name is absent.
var ErrMemberNotFound = errors.New("member not found in archive")

// Error reports a failure to open the archive or to locate a member in it.
type Error struct {
	Path   string // archive path
	Member string // member name, empty when the archive itself failed
	Err    error
}

func (e *Error) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("archive %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("archive %s: member %s: %v", e.Path, e.Member, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

package tabroom

import (
	"errors"
	"fmt"
)

// ErrAuthenticationRequired is returned before any network call by operations
// that need a logged in session.
var ErrAuthenticationRequired = errors.New("tabroom: not logged in")

// ErrInvalidToken means the login response set a TabroomToken cookie with an
// empty value.
var ErrInvalidToken = errors.New("tabroom: TabroomToken cookie is empty")

// FetchError is a document fetch that got a non-success status.
type FetchError struct {
	Url    string
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("tabroom: failed to fetch document %s: status %d", e.Url, e.Status)
}

// UnexpectedStatusError is a login submission that was not answered with a redirect.
type UnexpectedStatusError struct {
	Status int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("tabroom: unexpected status code %d", e.Status)
}

// StructuralMismatchError is a page whose layout is different enough from what
// the extractors expect that no sensible default exists.
type StructuralMismatchError struct {
	Page   string
	Reason string
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("tabroom: unexpected structure on %s: %s", e.Page, e.Reason)
}

package git

import (
	"fmt"
)

// ErrorKind classifies why a snapshot could not be resolved.
type ErrorKind string

const (
	KindRepositoryResolution ErrorKind = "REPOSITORY_RESOLUTION"
	KindHeadResolution       ErrorKind = "HEAD_RESOLUTION"
	KindTreeAccess           ErrorKind = "TREE_ACCESS"
	KindObjectRead           ErrorKind = "OBJECT_READ"
	KindWorkdirRead          ErrorKind = "WORKDIR_READ"
	KindInvalidPath          ErrorKind = "INVALID_PATH"
)

// Error is returned by Resolve for every failure. Absence of the file at
// HEAD or on disk is never an Error.
type Error struct {
	Kind    ErrorKind `json:"type"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error of the same kind, so the
// sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrRepositoryResolution = &Error{Kind: KindRepositoryResolution, Message: "failed to open repository"}
	ErrHeadResolution       = &Error{Kind: KindHeadResolution, Message: "failed to resolve HEAD"}
	ErrTreeAccess           = &Error{Kind: KindTreeAccess, Message: "failed to get HEAD tree"}
	ErrObjectRead           = &Error{Kind: KindObjectRead, Message: "failed to read object"}
	ErrWorkdirRead          = &Error{Kind: KindWorkdirRead, Message: "failed to read current file"}
	ErrInvalidPath          = &Error{Kind: KindInvalidPath, Message: "invalid path"}
)

func newError(kind ErrorKind, message, path string, err error) *Error {
	return &Error{
		Kind:    kind,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

package entry

import (
	"errors"
	"fmt"
	"io/fs"
)

// The three failure kinds callers have to tell apart.
var (
	ErrNotFound     = errors.New("no such file or directory")
	ErrUnauthorized = errors.New("permission denied")
	ErrUnknown      = errors.New("unknown I/O error")
)

// Error records a failed filesystem operation on a path together with its kind.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == ErrUnknown {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// NewError wraps err, classifying it as not found, unauthorized or unknown.
// A nil err yields nil.
func NewError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{Op: op, Path: path, Kind: KindOf(err), Err: err}
}

// KindOf returns ErrNotFound, ErrUnauthorized or ErrUnknown for err.
func KindOf(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, fs.ErrPermission):
		return ErrUnauthorized
	default:
		return ErrUnknown
	}
}

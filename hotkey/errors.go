package hotkey

import (
	"errors"
	"fmt"

	"hotkeyd/keys"
)

var (
	ErrUnsupportedCombo     = keys.ErrUnsupportedCombo
	ErrAlreadyRegistered    = errors.New("hotkey already registered")
	ErrNotFound             = errors.New("hotkey id not registered")
	ErrHandlerInstallFailed = errors.New("dispatch handler install failed")
	ErrBackend              = errors.New("hotkey backend failure")
	ErrHandleReleased       = errors.New("handle already released")
	ErrNilCallback          = errors.New("hotkey callback is required")
	ErrNativeIDsExhausted   = errors.New("no free native hotkey id")
)

// BackendError carries the OS status of a failed backend call. It matches
// ErrBackend with errors.Is.
type BackendError struct {
	Backend string
	Op      string
	Status  int // OS status code, 0 when the OS reported none
	Err     error
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Backend, e.Op)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BackendError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBackend}
	}
	return []error{ErrBackend, e.Err}
}

// asBackendError makes err match ErrBackend, keeping any BackendError the
// backend already built.
func asBackendError(backend, op string, err error) error {
	if err == nil || errors.Is(err, ErrBackend) {
		return err
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}

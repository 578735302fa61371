// Package hotkey binds system-wide key combinations to callbacks.
//
// A Registry owns every live binding. It installs one dispatch handler with
// the Backend when the first hotkey is registered and removes it when the
// last one goes away. Presses arrive on the backend's delivery goroutine and
// are routed to the callback registered for the matching ID.
package hotkey

import "hotkeyd/keys"

// ID is the caller-chosen identifier of a registration.
type ID uint32

// NativeID is the identifier handed to the OS for one registration. The
// registry assigns it; it is never reused while its registration is live.
type NativeID uint32

// Callback runs on the backend's delivery goroutine for every press of a
// registered combo. It must not block for long: presses are delivered one at
// a time.
type Callback func(id ID, userData any)

// DispatchFunc receives the native id of every press the backend observes.
type DispatchFunc func(NativeID)

// Backend is the OS-facing half of the subsystem.
//
// InstallHandler is called at most once between teardowns. Every press of a
// natively registered combo must be reported to fn from a single goroutine.
// RegisterNative binds n under nid; releasing the returned handle undoes it.
type Backend interface {
	Name() string
	Platform() keys.Platform
	InstallHandler(fn DispatchFunc) (*HandlerHandle, error)
	RegisterNative(n keys.Native, nid NativeID) (*NativeHandle, error)
}

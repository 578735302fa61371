package hotkey

import "sync"

// releaser is the single release path shared by both handle kinds. A failed
// release leaves the handle live so the owner can retry.
type releaser struct {
	mu       sync.Mutex
	release  func() error
	released bool
}

func (r *releaser) do() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrHandleReleased
	}
	if r.release != nil {
		if err := r.release(); err != nil {
			return err
		}
	}
	r.released = true
	r.release = nil
	return nil
}

func (r *releaser) done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

// NativeHandle owns one OS-level hotkey registration. It is only used by
// pointer and must be released exactly once.
type NativeHandle struct {
	rel releaser
	id  NativeID
}

// NewNativeHandle wraps a backend's unregister call.
func NewNativeHandle(id NativeID, release func() error) *NativeHandle {
	return &NativeHandle{rel: releaser{release: release}, id: id}
}

func (h *NativeHandle) NativeID() NativeID { return h.id }

// Release unregisters the hotkey with the OS. A second call returns
// ErrHandleReleased without touching the OS.
func (h *NativeHandle) Release() error {
	if h == nil {
		return ErrHandleReleased
	}
	return h.rel.do()
}

func (h *NativeHandle) Released() bool { return h == nil || h.rel.done() }

// HandlerHandle owns the installed dispatch handler.
type HandlerHandle struct {
	rel releaser
}

// NewHandlerHandle wraps a backend's handler removal.
func NewHandlerHandle(release func() error) *HandlerHandle {
	return &HandlerHandle{rel: releaser{release: release}}
}

// Release removes the handler. A second call returns ErrHandleReleased.
func (h *HandlerHandle) Release() error {
	if h == nil {
		return ErrHandleReleased
	}
	return h.rel.do()
}

func (h *HandlerHandle) Released() bool { return h == nil || h.rel.done() }

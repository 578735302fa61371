//go:build !linux || x11

package hotkey

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.design/x/hotkey"

	"hotkeyd/keys"
)

// The OS allows one dispatch handler per process no matter how many
// backends are constructed.
var xhotkeyInstalled atomic.Bool

type xhotkeyBackend struct {
	mu     sync.Mutex
	events chan NativeID
	stop   chan struct{}
}

func newXHotkey() (Backend, error) {
	return &xhotkeyBackend{}, nil
}

func (b *xhotkeyBackend) Name() string { return "xhotkey" }

func (b *xhotkeyBackend) Platform() keys.Platform {
	switch runtime.GOOS {
	case "darwin":
		return keys.PlatformCarbon
	case "windows":
		return keys.PlatformWin32
	default:
		return keys.PlatformX11
	}
}

// InstallHandler starts the delivery goroutine. Each registered hotkey gets
// a forwarder that feeds its keydown events into one channel, so fn only
// ever runs on that goroutine.
func (b *xhotkeyBackend) InstallHandler(fn DispatchFunc) (*HandlerHandle, error) {
	if !xhotkeyInstalled.CompareAndSwap(false, true) {
		return nil, &BackendError{Backend: b.Name(), Op: "install handler", Err: errors.New("a dispatch handler is already installed in this process")}
	}

	events := make(chan NativeID, 16)
	stop := make(chan struct{})

	b.mu.Lock()
	b.events, b.stop = events, stop
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-stop:
				return
			case nid := <-events:
				fn(nid)
			}
		}
	}()

	return NewHandlerHandle(func() error {
		b.mu.Lock()
		b.events, b.stop = nil, nil
		b.mu.Unlock()
		close(stop)
		xhotkeyInstalled.Store(false)
		return nil
	}), nil
}

func (b *xhotkeyBackend) RegisterNative(n keys.Native, nid NativeID) (*NativeHandle, error) {
	b.mu.Lock()
	events, stop := b.events, b.stop
	b.mu.Unlock()
	if events == nil {
		return nil, &BackendError{Backend: b.Name(), Op: "register", Err: errors.New("no dispatch handler installed")}
	}

	hk := hotkey.New(xhotkeyModifiers(n.Mods), hotkey.Key(n.Key))
	if err := hk.Register(); err != nil {
		return nil, &BackendError{Backend: b.Name(), Op: "register", Err: err}
	}

	quit := make(chan struct{})
	keydown := hk.Keydown()
	go func() {
		for {
			select {
			case <-quit:
				return
			case _, ok := <-keydown:
				if !ok {
					return
				}
				select {
				case events <- nid:
				case <-quit:
					return
				case <-stop:
					return
				}
			}
		}
	}()

	return NewNativeHandle(nid, func() error {
		if err := hk.Unregister(); err != nil {
			return &BackendError{Backend: b.Name(), Op: "unregister", Err: err}
		}
		close(quit)
		return nil
	}), nil
}

// xhotkeyModifiers splits a native mask into one hotkey.Modifier per bit.
func xhotkeyModifiers(mask uint32) []hotkey.Modifier {
	var mods []hotkey.Modifier
	for bit := uint32(1); bit != 0 && bit <= mask; bit <<= 1 {
		if mask&bit != 0 {
			mods = append(mods, hotkey.Modifier(bit))
		}
	}
	return mods
}

func diagnoseXHotkey() (string, error) {
	return "hotkey support available via " + runtime.GOOS + " hotkey API", nil
}

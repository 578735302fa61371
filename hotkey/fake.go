package hotkey

import (
	"errors"
	"sync"
	"time"

	"hotkeyd/keys"
)

// FakeBackend is an in-memory Backend. Presses are injected with Fire or
// FireCombo and delivered on a single goroutine like a real OS event loop.
type FakeBackend struct {
	platform keys.Platform

	mu         sync.Mutex
	events     chan NativeID
	live       map[NativeID]keys.Native
	delay      time.Duration
	installs   int
	uninstalls int

	failInstall    error
	failUninstall  error
	failRegister   error
	failUnregister error
}

var errFakeHandlerInstalled = errors.New("dispatch handler already installed")

func NewFake() *FakeBackend {
	return NewFakeFor(keys.PlatformX11)
}

// NewFakeFor returns a fake that encodes combos for p.
func NewFakeFor(p keys.Platform) *FakeBackend {
	return &FakeBackend{
		platform: p,
		live:     make(map[NativeID]keys.Native),
	}
}

func (f *FakeBackend) Name() string            { return "fake" }
func (f *FakeBackend) Platform() keys.Platform { return f.platform }

func (f *FakeBackend) InstallHandler(fn DispatchFunc) (*HandlerHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failInstall != nil {
		return nil, &BackendError{Backend: "fake", Op: "install handler", Status: -1, Err: f.failInstall}
	}
	if f.events != nil {
		return nil, errFakeHandlerInstalled
	}

	events := make(chan NativeID, 64)
	f.events = events
	f.installs++
	delay := f.delay

	go func() {
		for nid := range events {
			if delay > 0 {
				time.Sleep(delay)
			}
			fn(nid)
		}
	}()

	return NewHandlerHandle(func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failUninstall != nil {
			return f.failUninstall
		}
		close(events)
		f.events = nil
		f.uninstalls++
		return nil
	}), nil
}

func (f *FakeBackend) RegisterNative(n keys.Native, nid NativeID) (*NativeHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failRegister != nil {
		return nil, &BackendError{Backend: "fake", Op: "register", Status: 1409, Err: f.failRegister}
	}
	if _, dup := f.live[nid]; dup {
		return nil, &BackendError{Backend: "fake", Op: "register", Err: errors.New("native id in use")}
	}
	f.live[nid] = n

	return NewNativeHandle(nid, func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failUnregister != nil {
			return f.failUnregister
		}
		delete(f.live, nid)
		return nil
	}), nil
}

// Fire queues a press for nid. It reports false when no handler is
// installed, in which case the press is lost.
func (f *FakeBackend) Fire(nid NativeID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.events == nil {
		return false
	}
	select {
	case f.events <- nid:
		return true
	default:
		return false
	}
}

// FireCombo presses n. Only natively registered combos reach the handler.
func (f *FakeBackend) FireCombo(n keys.Native) bool {
	f.mu.Lock()
	var target NativeID
	found := false
	for nid, live := range f.live {
		if live == n {
			target, found = nid, true
			break
		}
	}
	f.mu.Unlock()
	if !found {
		return false
	}
	return f.Fire(target)
}

// SetDispatchDelay stalls the delivery goroutine before each press. It
// applies to handlers installed after the call.
func (f *FakeBackend) SetDispatchDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

func (f *FakeBackend) FailInstall(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failInstall = err
}

func (f *FakeBackend) FailUninstall(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUninstall = err
}

func (f *FakeBackend) FailRegister(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRegister = err
}

func (f *FakeBackend) FailUnregister(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUnregister = err
}

// Live is the number of native registrations currently held.
func (f *FakeBackend) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

func (f *FakeBackend) HandlerInstalled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events != nil
}

func (f *FakeBackend) Installs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installs
}

func (f *FakeBackend) Uninstalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uninstalls
}

//go:build linux

package hotkey

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"hotkeyd/keys"
)

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

const inputEventSize = 24

var evdevInstalled atomic.Bool

type evdevCombo struct {
	code uint16
	mods keys.Modifier
}

// evdevBackend reads /dev/input/event* directly. It sees every key the
// kernel reports, so matching registered combos is done here.
type evdevBackend struct {
	mu     sync.Mutex
	combos map[evdevCombo]NativeID
	files  []*os.File
	events chan NativeID
	stop   chan struct{}
	wg     sync.WaitGroup
}

func newEvdev() (Backend, error) {
	return &evdevBackend{combos: make(map[evdevCombo]NativeID)}, nil
}

func (b *evdevBackend) Name() string            { return "evdev" }
func (b *evdevBackend) Platform() keys.Platform { return keys.PlatformEvdev }

func (b *evdevBackend) InstallHandler(fn DispatchFunc) (*HandlerHandle, error) {
	if !evdevInstalled.CompareAndSwap(false, true) {
		return nil, &BackendError{Backend: b.Name(), Op: "install handler", Err: errors.New("a dispatch handler is already installed in this process")}
	}

	files, err := openKeyboards()
	if err != nil {
		evdevInstalled.Store(false)
		return nil, &BackendError{Backend: b.Name(), Op: "install handler", Err: err}
	}

	events := make(chan NativeID, 16)
	stop := make(chan struct{})

	b.mu.Lock()
	b.files, b.events, b.stop = files, events, stop
	b.mu.Unlock()

	for _, f := range files {
		b.wg.Add(1)
		go b.readEvents(f, events, stop)
	}

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
		files := b.files
		b.files, b.events, b.stop = nil, nil, nil
		b.mu.Unlock()

		close(stop)
		for _, f := range files {
			f.Close()
		}
		// Readers never call fn, so waiting here cannot deadlock on a
		// callback that is still running.
		b.wg.Wait()
		evdevInstalled.Store(false)
		return nil
	}), nil
}

func (b *evdevBackend) RegisterNative(n keys.Native, nid NativeID) (*NativeHandle, error) {
	c := evdevCombo{code: uint16(n.Key), mods: keys.Modifier(n.Mods)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.events == nil {
		return nil, &BackendError{Backend: b.Name(), Op: "register", Err: errors.New("no dispatch handler installed")}
	}
	if _, taken := b.combos[c]; taken {
		return nil, &BackendError{Backend: b.Name(), Op: "register", Err: fmt.Errorf("combo %s already grabbed", n)}
	}
	b.combos[c] = nid

	return NewNativeHandle(nid, func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.combos[c] == nid {
			delete(b.combos, c)
		}
		return nil
	}), nil
}

func (b *evdevBackend) lookup(code uint16, mods keys.Modifier) (NativeID, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	nid, ok := b.combos[evdevCombo{code: code, mods: mods}]
	return nid, ok
}

func (b *evdevBackend) readEvents(f *os.File, events chan<- NativeID, stop <-chan struct{}) {
	defer b.wg.Done()
	buf := make([]byte, inputEventSize*16)
	var t keyTracker

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			code, mods, ok := t.feed(decodeEvent(buf[i : i+inputEventSize]))
			if !ok {
				continue
			}
			nid, ok := b.lookup(code, mods)
			if !ok {
				continue
			}
			select {
			case events <- nid:
			case <-stop:
				return
			}
		}
	}
}

type inputEvent struct {
	typ   uint16
	code  uint16
	value int32
}

// decodeEvent reads one struct input_event on a 64-bit kernel.
func decodeEvent(b []byte) inputEvent {
	return inputEvent{
		typ:   binary.LittleEndian.Uint16(b[16:]),
		code:  binary.LittleEndian.Uint16(b[18:]),
		value: int32(binary.LittleEndian.Uint32(b[20:])),
	}
}

// keyTracker follows modifier state for one device and reports presses of
// non-modifier keys together with the modifiers held at that moment.
// Autorepeat is ignored.
type keyTracker struct {
	held [4]int // per modifier bit, count of physical keys down (left+right)
}

var trackerBits = [4]keys.Modifier{keys.ModShift, keys.ModControl, keys.ModAlt, keys.ModSuper}

func (t *keyTracker) feed(ev inputEvent) (uint16, keys.Modifier, bool) {
	if ev.typ != evKey {
		return 0, 0, false
	}
	if mod, isMod := keys.EvdevModifier(ev.code); isMod {
		for i, bit := range trackerBits {
			if bit != mod {
				continue
			}
			switch ev.value {
			case keyPress:
				t.held[i]++
			case keyRelease:
				if t.held[i] > 0 {
					t.held[i]--
				}
			}
		}
		return 0, 0, false
	}
	if ev.value != keyPress {
		return 0, 0, false
	}
	return ev.code, t.mods(), true
}

func (t *keyTracker) mods() keys.Modifier {
	var m keys.Modifier
	for i, bit := range trackerBits {
		if t.held[i] > 0 {
			m |= bit
		}
	}
	return m
}

func openKeyboards() ([]*os.File, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return nil, fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return nil, errors.New("no keyboard devices found (is user in 'input' group?)")
	}

	var files []*os.File
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, errors.New("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}
	return files, nil
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(data))) > 10
}

func diagnoseEvdev() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", errors.New("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}

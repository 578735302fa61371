// Package doctor runs interactive checks of the hotkey stack.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"hotkeyd/clipboard"
	"hotkeyd/hotkey"
	"hotkeyd/keys"
	"hotkeyd/shutdown"
)

// probe is the combo the self-tests grab. It is unlikely to collide with a
// desktop shortcut and can be synthesized on every platform.
var probe = keys.MustCombo(keys.KeyF9, keys.ModControl|keys.ModAlt|keys.ModShift)

type checker struct {
	out        io.Writer
	backend    string
	newBackend func() (hotkey.Backend, error)
	// press makes the OS (or fake) report one press of c.
	press func(b hotkey.Backend, c keys.Combo) error
	// interactive enables the check that waits for a human key press.
	interactive bool
	timeout     time.Duration

	mu     sync.Mutex
	active *hotkey.Registry
}

// Run executes the checks against the named backend and returns an exit
// code (0=all pass, 1=any fail).
func Run(backend string) int {
	resetTerminal()
	c := &checker{
		out:     os.Stdout,
		backend: backend,
		newBackend: func() (hotkey.Backend, error) {
			return hotkey.NewBackend(backend)
		},
		press: func(_ hotkey.Backend, combo keys.Combo) error {
			return clipboard.Tap(combo)
		},
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		timeout:     3 * time.Second,
	}
	onInterrupt(c.cleanup)
	return c.run()
}

// onInterrupt runs cleanup and exits when the user aborts the checks, so a
// half-finished check does not leave a hotkey grabbed.
func onInterrupt(cleanup func()) {
	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		cleanup()
		resetTerminal()
		fmt.Fprintln(os.Stderr, "\nInterrupted")
		os.Exit(1)
	}()
}

func (c *checker) run() int {
	c.printf("hotkeyd doctor - hotkey diagnostics\n")
	c.printf("===================================\n")

	checks := []func(step string) bool{
		c.checkBackend,
		c.checkRegisterCycle,
		c.checkSynthesizedPress,
		c.checkClipboard,
		c.checkManualPress,
	}

	allPass := true
	for i, check := range checks {
		if !check(fmt.Sprintf("[%d/%d]", i+1, len(checks))) {
			allPass = false
		}
	}

	c.printf("\n")
	if allPass {
		c.printf("All checks passed!\n")
		return 0
	}
	c.printf("Some checks failed. See details above.\n")
	return 1
}

func (c *checker) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *checker) pass(msg string, args ...any) bool {
	c.printf("  PASS: "+msg+"\n", args...)
	return true
}

func (c *checker) fail(msg string, args ...any) bool {
	c.printf("  FAIL: "+msg+"\n", args...)
	return false
}

func (c *checker) skip(msg string) bool {
	c.printf("  SKIP: %s\n", msg)
	return true
}

func (c *checker) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		c.active.UnregisterAll()
		c.active = nil
	}
}

// registry builds a fresh registry and tracks it for interrupt cleanup.
func (c *checker) registry() (*hotkey.Registry, error) {
	b, err := c.newBackend()
	if err != nil {
		return nil, err
	}
	r := hotkey.NewRegistry(b)
	c.mu.Lock()
	c.active = r
	c.mu.Unlock()
	return r, nil
}

func (c *checker) release(r *hotkey.Registry) error {
	c.mu.Lock()
	if c.active == r {
		c.active = nil
	}
	c.mu.Unlock()
	return r.UnregisterAll()
}

func (c *checker) checkBackend(step string) bool {
	c.printf("\n%s Hotkey backend\n", step)
	msg, err := hotkey.Diagnose(c.backend)
	if err != nil {
		return c.fail("%v", err)
	}
	return c.pass("%s", msg)
}

func (c *checker) checkRegisterCycle(step string) bool {
	c.printf("\n%s Register / unregister %s\n", step, probe)

	r, err := c.registry()
	if err != nil {
		return c.fail("%v", err)
	}
	// Twice, so a handle leaked by the first cycle shows up as a failure
	// in the second.
	for i := range 2 {
		if err := r.Register(1, probe, func(hotkey.ID, any) {}, nil); err != nil {
			c.release(r)
			return c.fail("cycle %d register: %v", i+1, err)
		}
		if err := r.Unregister(1); err != nil {
			c.release(r)
			return c.fail("cycle %d unregister: %v", i+1, err)
		}
	}
	if r.HandlerInstalled() {
		return c.fail("dispatch handler still installed after last unregister")
	}
	return c.pass("registered and released %s twice", probe)
}

func (c *checker) checkSynthesizedPress(step string) bool {
	c.printf("\n%s Synthesized press of %s\n", step, probe)

	r, err := c.registry()
	if err != nil {
		return c.fail("%v", err)
	}
	defer c.release(r)

	fired := make(chan struct{}, 1)
	err = r.Register(1, probe, func(hotkey.ID, any) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, nil)
	if err != nil {
		return c.fail("register: %v", err)
	}

	if err := c.press(r.Backend(), probe); err != nil {
		return c.fail("could not synthesize key press: %v", err)
	}

	select {
	case <-fired:
		return c.pass("press delivered to callback")
	case <-time.After(c.timeout):
		return c.fail("timeout waiting for synthesized press")
	}
}

func (c *checker) checkClipboard(step string) bool {
	c.printf("\n%s Clipboard copy\n", step)

	testStr := fmt.Sprintf("hotkeyd-doctor-%d", time.Now().UnixNano())

	type cbResult struct {
		readback string
		err      error
		phase    string
	}
	ch := make(chan cbResult, 1)
	go func() {
		if err := clipboard.Copy(testStr); err != nil {
			ch <- cbResult{err: err, phase: "write"}
			return
		}
		got, err := clipboard.Read()
		if err != nil {
			ch <- cbResult{err: err, phase: "read"}
			return
		}
		ch <- cbResult{readback: got}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return c.fail("clipboard %s failed: %v", res.phase, res.err)
		}
		if res.readback != testStr {
			return c.fail("clipboard mismatch: wrote %q, got %q", testStr, res.readback)
		}
		return c.pass("clipboard write/read verified")
	case <-time.After(c.timeout):
		return c.fail("clipboard timed out (clipboard tool hung - compositor not accessible?)")
	}
}

func (c *checker) checkManualPress(step string) bool {
	c.printf("\n%s Manual press\n", step)
	if !c.interactive {
		return c.skip("stdin is not a terminal")
	}

	r, err := c.registry()
	if err != nil {
		return c.fail("%v", err)
	}
	defer c.release(r)

	combo := keys.MustCombo(keys.KeySpace, keys.ModControl|keys.ModShift)
	fired := make(chan struct{}, 1)
	err = r.Register(2, combo, func(hotkey.ID, any) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, nil)
	if errors.Is(err, hotkey.ErrBackend) {
		return c.fail("%s is taken by another application: %v", combo, err)
	}
	if err != nil {
		return c.fail("register: %v", err)
	}

	c.printf("Press %s...\n", combo)
	select {
	case <-fired:
		resetTerminal()
		return c.pass("hotkey detected")
	case <-time.After(10 * time.Second):
		return c.fail("timeout waiting for hotkey")
	}
}

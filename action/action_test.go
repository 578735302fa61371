package action

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"hotkeyd/config"
)

type recorded struct {
	mu     sync.Mutex
	calls  []string
	failed int
}

func (r *recorded) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorded) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

func testOps(rec *recorded) Ops {
	return Ops{
		Exec:  func(argv []string) error { rec.add("exec:" + argv[0]); return nil },
		Copy:  func(s string) error { rec.add("copy:" + s); return nil },
		Paste: func(s string) error { rec.add("paste:" + s); return errors.New("no display") },
		Beep:  func() { rec.add("beep") },
		Failed: func() {
			rec.mu.Lock()
			rec.failed++
			rec.mu.Unlock()
		},
	}
}

func bindings(t *testing.T, doc string) []config.Binding {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Bindings
}

const doc = `
bindings:
  - {id: 1, hotkey: Ctrl+Alt+T, exec: [xterm, -e, top]}
  - {id: 2, hotkey: Ctrl+Alt+C, copy: snippet}
  - {id: 3, hotkey: Ctrl+Alt+V, paste: pasted}
  - {id: 4, hotkey: Ctrl+Alt+B, beep: true}
  - {id: 5, hotkey: Ctrl+Alt+P, print: hello}
`

func TestRunnerRunsInOrder(t *testing.T) {
	rec := &recorded{}
	var out bytes.Buffer
	r := New(8, &out, testOps(rec))

	results := make(chan Result, 8)
	r.OnResult(func(res Result) { results <- res })

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	for _, b := range bindings(t, doc) {
		if err := r.Submit(b); err != nil {
			t.Fatal(err)
		}
	}
	r.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	want := []string{"exec:xterm", "copy:snippet", "paste:pasted", "beep"}
	if got := rec.snapshot(); !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if out.String() != "hello\n" {
		t.Errorf("print output = %q", out.String())
	}

	s := r.Stats()
	if s.Ran != 5 || s.Failed != 1 || rec.failed != 1 {
		t.Errorf("Stats = %+v, failed cue %d", s, rec.failed)
	}

	close(results)
	var failed []uint32
	for res := range results {
		if res.Err != nil {
			failed = append(failed, res.ID)
		}
	}
	if !slices.Equal(failed, []uint32{3}) {
		t.Errorf("failed results = %v, want [3]", failed)
	}
}

func TestSubmitQueueFull(t *testing.T) {
	r := New(1, nil, testOps(&recorded{}))
	b := bindings(t, doc)[3]

	if err := r.Submit(b); err != nil {
		t.Fatal(err)
	}
	if err := r.Submit(b); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	if r.Stats().Dropped != 1 {
		t.Errorf("Dropped = %d", r.Stats().Dropped)
	}
}

func TestSubmitAfterClose(t *testing.T) {
	r := New(1, nil, testOps(&recorded{}))
	r.Close()
	r.Close()
	if err := r.Submit(bindings(t, doc)[0]); err == nil {
		t.Error("expected error after Close")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	r := New(1, nil, testOps(&recorded{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestRunDrainsQueueOnContextDone(t *testing.T) {
	rec := &recorded{}
	r := New(4, nil, testOps(rec))
	all := bindings(t, doc)
	for _, b := range []config.Binding{all[1], all[3]} {
		if err := r.Submit(b); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	want := []string{"copy:snippet", "beep"}
	if got := rec.snapshot(); !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if r.Stats().Ran != 2 {
		t.Errorf("Ran = %d, want 2", r.Stats().Ran)
	}
}

func TestMissingOpFails(t *testing.T) {
	r := New(1, nil, Ops{})
	results := make(chan Result, 1)
	r.OnResult(func(res Result) { results <- res })

	if err := r.Submit(bindings(t, doc)[1]); err != nil {
		t.Fatal(err)
	}
	r.Close()
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if res := <-results; res.Err == nil || res.Kind != config.KindCopy {
		t.Errorf("result = %+v, want copy failure", res)
	}
}

func TestPanickingOpRecovered(t *testing.T) {
	ops := Ops{Exec: func([]string) error { panic("exec blew up") }}
	r := New(1, nil, ops)
	results := make(chan Result, 1)
	r.OnResult(func(res Result) { results <- res })

	if err := r.Submit(bindings(t, doc)[0]); err != nil {
		t.Fatal(err)
	}
	r.Close()
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if res := <-results; res.Err == nil {
		t.Error("panic not reported as error")
	}
}

func TestStartCommandEmpty(t *testing.T) {
	if err := startCommand(nil); err == nil {
		t.Error("expected error for empty argv")
	}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"hotkeyd/action"
	"hotkeyd/config"
	"hotkeyd/hotkey"
)

type recSink struct {
	mu      sync.Mutex
	rows    []BindingRow
	notices []string
	fired   chan uint32
	done    chan action.Result
}

func newRecSink() *recSink {
	return &recSink{
		fired: make(chan uint32, 16),
		done:  make(chan action.Result, 16),
	}
}

func (s *recSink) Bindings(rows []BindingRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
}

func (s *recSink) Fired(id uint32, _ string, _ uint64) { s.fired <- id }
func (s *recSink) ActionDone(res action.Result)       { s.done <- res }

func (s *recSink) Notice(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, text)
}

func (s *recSink) lastRows() []BindingRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

func mustParse(t *testing.T, doc string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

type testDaemon struct {
	*daemon
	fb   *hotkey.FakeBackend
	sink *recSink
	out  *lockedWriter
	buf  *bytes.Buffer
}

func startDaemon(t *testing.T) *testDaemon {
	t.Helper()
	fb := hotkey.NewFake()
	reg := hotkey.NewRegistry(fb)
	buf := &bytes.Buffer{}
	out := &lockedWriter{w: buf}
	runner := action.New(8, out, action.Ops{})
	sink := newRecSink()
	d := newDaemon(reg, runner, sink)
	runner.OnResult(d.actionDone)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		reg.UnregisterAll()
		cancel()
		<-done
	})
	return &testDaemon{daemon: d, fb: fb, sink: sink, out: out, buf: buf}
}

func (td *testDaemon) output() string {
	td.out.mu.Lock()
	defer td.out.mu.Unlock()
	return td.buf.String()
}

const twoBindings = `
bindings:
  - {id: 1, hotkey: Ctrl+Alt+A, print: one}
  - {id: 2, hotkey: Ctrl+Alt+B, print: two}
`

func TestApplyRegistersBindings(t *testing.T) {
	td := startDaemon(t)
	if err := td.apply(mustParse(t, twoBindings)); err != nil {
		t.Fatal(err)
	}
	if td.reg.Len() != 2 || td.fb.Live() != 2 {
		t.Fatalf("Len = %d, Live = %d", td.reg.Len(), td.fb.Live())
	}
	rows := td.sink.lastRows()
	if len(rows) != 2 || rows[0].ID != 1 || rows[1].Hotkey != "Ctrl+Alt+B" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestApplyReconciles(t *testing.T) {
	td := startDaemon(t)
	if err := td.apply(mustParse(t, twoBindings)); err != nil {
		t.Fatal(err)
	}
	before, _ := td.reg.Lookup(1)

	next := mustParse(t, `
bindings:
  - {id: 1, hotkey: Ctrl+Alt+A, print: one}
  - {id: 3, hotkey: Ctrl+Alt+B, print: moved}
`)
	if err := td.apply(next); err != nil {
		t.Fatal(err)
	}
	if td.reg.IsRegistered(2) || !td.reg.IsRegistered(3) {
		t.Error("binding 2 should have moved to id 3")
	}
	after, _ := td.reg.Lookup(1)
	if after.NativeID != before.NativeID {
		t.Error("unchanged binding was re-grabbed")
	}
	if td.fb.Live() != 2 {
		t.Errorf("Live = %d, want 2", td.fb.Live())
	}

	if err := td.apply(mustParse(t, "bindings: []")); err != nil {
		t.Fatal(err)
	}
	if td.reg.Len() != 0 || td.reg.HandlerInstalled() {
		t.Error("empty config left hotkeys grabbed")
	}
}

func TestApplyRetriesFailedBinding(t *testing.T) {
	td := startDaemon(t)
	cfg := mustParse(t, twoBindings)

	td.fb.FailRegister(errors.New("grabbed elsewhere"))
	err := td.apply(cfg)
	if !errors.Is(err, hotkey.ErrBackend) {
		t.Fatalf("err = %v, want ErrBackend", err)
	}
	if td.reg.Len() != 0 {
		t.Fatalf("Len = %d after failed apply", td.reg.Len())
	}

	td.fb.FailRegister(nil)
	if err := td.apply(cfg); err != nil {
		t.Fatal(err)
	}
	if td.reg.Len() != 2 {
		t.Errorf("Len = %d, want 2 after retry", td.reg.Len())
	}
}

func TestFiredRunsAction(t *testing.T) {
	td := startDaemon(t)
	if err := td.apply(mustParse(t, twoBindings)); err != nil {
		t.Fatal(err)
	}
	r, _ := td.reg.Lookup(2)
	if !td.fb.FireCombo(r.Native) {
		t.Fatal("press not delivered")
	}

	select {
	case id := <-td.sink.fired:
		if id != 2 {
			t.Errorf("fired %d, want 2", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fire")
	}
	select {
	case res := <-td.sink.done:
		if res.ID != 2 || res.Err != nil {
			t.Errorf("result = %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for action")
	}
	if got := td.output(); got != "two\n" {
		t.Errorf("output = %q", got)
	}

	td.applyMu.Lock()
	rows := td.rows()
	td.applyMu.Unlock()
	if rows[1].Fires != 1 || rows[1].Last != "ok" {
		t.Errorf("row = %+v", rows[1])
	}
}

func TestReloadAfterCloseRegistersNothing(t *testing.T) {
	td := startDaemon(t)
	if err := td.apply(mustParse(t, twoBindings)); err != nil {
		t.Fatal(err)
	}
	if err := td.close(); err != nil {
		t.Fatal(err)
	}

	td.reload(mustParse(t, `
bindings:
  - {id: 1, hotkey: Ctrl+Alt+B, print: rebound}
`), nil)
	if td.reg.Len() != 0 || td.fb.Live() != 0 || td.reg.HandlerInstalled() {
		t.Errorf("after close and reload: len=%d live=%d handler=%v",
			td.reg.Len(), td.fb.Live(), td.reg.HandlerInstalled())
	}
	if err := td.apply(mustParse(t, twoBindings)); !errors.Is(err, errDaemonClosed) {
		t.Errorf("apply after close: err = %v", err)
	}
}

func TestReloadErrorIsNoticed(t *testing.T) {
	td := startDaemon(t)
	td.reload(nil, errors.New("yaml: line 3: bad indent"))

	td.sink.mu.Lock()
	defer td.sink.mu.Unlock()
	if len(td.sink.notices) != 1 || !strings.Contains(td.sink.notices[0], "bad indent") {
		t.Errorf("notices = %q", td.sink.notices)
	}
}

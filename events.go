package main

import (
	"fmt"
	"io"
	"sync"

	"hotkeyd/action"
)

// EventSink abstracts the display layer so both the Bubble Tea TUI
// and headless mode can receive the same binding/dispatch events.
type EventSink interface {
	Bindings(rows []BindingRow)
	Fired(id uint32, label string, count uint64)
	ActionDone(res action.Result)
	Notice(text string)
}

// printSink writes one line per event. Used when stdout is not a terminal.
type printSink struct {
	mu sync.Mutex
	w  io.Writer
}

func newPrintSink(w io.Writer) *printSink {
	return &printSink{w: w}
}

func (p *printSink) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printSink) Bindings(rows []BindingRow) {
	for _, r := range rows {
		p.printf("bound %-4d %-24s %s", r.ID, r.Hotkey, r.Label)
	}
}

func (p *printSink) Fired(id uint32, label string, count uint64) {
	p.printf("fired %d %s (#%d)", id, label, count)
}

func (p *printSink) ActionDone(res action.Result) {
	if res.Err != nil {
		p.printf("action %d %s failed: %v", res.ID, res.Kind, res.Err)
	}
}

func (p *printSink) Notice(text string) {
	p.printf("%s", text)
}

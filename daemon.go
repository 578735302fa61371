package main

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"hotkeyd/action"
	"hotkeyd/config"
	"hotkeyd/hotkey"
	"hotkeyd/log"
)

var errDaemonClosed = errors.New("daemon closed")

// daemon keeps the registry in step with the bindings file and hands fired
// hotkeys to the action runner.
type daemon struct {
	reg    *hotkey.Registry
	runner *action.Runner
	sink   EventSink

	// applyMu serializes reconciles. It is never taken on the dispatch path.
	applyMu sync.Mutex
	cfg     *config.Config
	closed  bool

	statsMu sync.Mutex
	fires   map[uint32]uint64
	last    map[uint32]string
}

func newDaemon(reg *hotkey.Registry, runner *action.Runner, sink EventSink) *daemon {
	return &daemon{
		reg:    reg,
		runner: runner,
		sink:   sink,
		fires:  make(map[uint32]uint64),
		last:   make(map[uint32]string),
	}
}

// apply reconciles live registrations with cfg. Unchanged bindings keep
// their grab; removed or edited ones are released before new ones are
// grabbed, so a hotkey can move between ids in one reload.
func (d *daemon) apply(cfg *config.Config) error {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()
	if d.closed {
		return errDaemonClosed
	}

	remove, add := config.Diff(d.cfg, cfg)
	var errs []error
	for _, id := range remove {
		err := d.reg.Unregister(hotkey.ID(id))
		if err != nil && !errors.Is(err, hotkey.ErrNotFound) {
			errs = append(errs, fmt.Errorf("release hotkey %d: %w", id, err))
		}
	}
	for _, b := range add {
		if err := d.reg.Register(hotkey.ID(b.ID), b.Combo(), d.fired, b); err != nil {
			errs = append(errs, fmt.Errorf("hotkey %d (%s): %w", b.ID, b.Hotkey, err))
		}
	}

	// Remember only what is live, so a binding that failed to grab is
	// retried on the next reload.
	applied := &config.Config{Backend: cfg.Backend, QueueSize: cfg.QueueSize}
	for _, b := range cfg.Bindings {
		if d.reg.IsRegistered(hotkey.ID(b.ID)) {
			applied.Bindings = append(applied.Bindings, b)
		}
	}
	d.cfg = applied

	d.statsMu.Lock()
	for id := range d.fires {
		if _, ok := applied.Lookup(id); !ok {
			delete(d.fires, id)
			delete(d.last, id)
		}
	}
	d.statsMu.Unlock()

	d.sink.Bindings(d.rows())
	return errors.Join(errs...)
}

// close releases every hotkey. It waits for a reconcile in progress, and
// every later apply fails with errDaemonClosed.
func (d *daemon) close() error {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()
	d.closed = true
	d.cfg = nil
	return d.reg.UnregisterAll()
}

// reload is the config.Watch callback.
func (d *daemon) reload(cfg *config.Config, err error) {
	if err != nil {
		log.Warnf("config reload: %v", err)
		d.sink.Notice("reload failed: " + err.Error())
		return
	}
	if err := d.apply(cfg); errors.Is(err, errDaemonClosed) {
		return
	} else if err != nil {
		log.Warnf("config reload: %v", err)
		d.sink.Notice(err.Error())
		return
	}
	log.Infof("config reloaded: %d bindings", d.reg.Len())
	d.sink.Notice(fmt.Sprintf("reloaded %d bindings", d.reg.Len()))
}

// fired runs on the dispatch goroutine.
func (d *daemon) fired(id hotkey.ID, userData any) {
	b, ok := userData.(config.Binding)
	if !ok {
		return
	}
	d.statsMu.Lock()
	d.fires[b.ID]++
	n := d.fires[b.ID]
	d.statsMu.Unlock()

	d.sink.Fired(b.ID, b.Label(), n)
	if err := d.runner.Submit(b); err != nil {
		d.sink.Notice(fmt.Sprintf("hotkey %d: %v", id, err))
	}
}

func (d *daemon) actionDone(res action.Result) {
	status := "ok"
	if res.Err != nil {
		status = res.Err.Error()
	}
	d.statsMu.Lock()
	if _, ok := d.fires[res.ID]; ok {
		d.last[res.ID] = status
	}
	d.statsMu.Unlock()
	d.sink.ActionDone(res)
}

// BindingRow is one line of the live bindings view.
type BindingRow struct {
	ID     uint32
	Hotkey string
	Kind   string
	Label  string
	Fires  uint64
	Last   string
}

// rows must be called with applyMu held.
func (d *daemon) rows() []BindingRow {
	if d.cfg == nil {
		return nil
	}
	d.statsMu.Lock()
	defer d.statsMu.Unlock()

	rows := make([]BindingRow, 0, len(d.cfg.Bindings))
	for _, b := range d.cfg.Bindings {
		rows = append(rows, BindingRow{
			ID:     b.ID,
			Hotkey: b.Combo().String(),
			Kind:   b.Kind(),
			Label:  b.Label(),
			Fires:  d.fires[b.ID],
			Last:   d.last[b.ID],
		})
	}
	slices.SortFunc(rows, func(a, b BindingRow) int { return cmp.Compare(a.ID, b.ID) })
	return rows
}

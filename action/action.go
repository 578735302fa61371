// Package action runs what a binding asks for when its hotkey fires.
//
// Hotkey callbacks execute on the dispatch goroutine and must return
// quickly, so they only Submit; a single worker drains the queue in order.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"hotkeyd/beep"
	"hotkeyd/clipboard"
	"hotkeyd/config"
	"hotkeyd/log"
)

var ErrQueueFull = errors.New("action queue full")

// Ops are the side effects an action can have.
type Ops struct {
	Exec  func(argv []string) error
	Copy  func(text string) error
	Paste func(text string) error
	Beep  func()

	// Failed runs after any action returns an error.
	Failed func()
}

func DefaultOps() Ops {
	return Ops{
		Exec:  startCommand,
		Copy:  clipboard.Copy,
		Paste: clipboard.CopyPaste,
		Beep:  beep.PlayTrigger,

		Failed: beep.PlayError,
	}
}

type Result struct {
	ID    uint32
	Kind  string
	Label string
	Err   error
	Took  time.Duration
}

type Stats struct {
	Ran     uint64
	Failed  uint64
	Dropped uint64
}

type Runner struct {
	queue    chan config.Binding
	out      io.Writer
	ops      Ops
	onResult func(Result)

	mu     sync.RWMutex
	closed bool

	ran     atomic.Uint64
	failed  atomic.Uint64
	dropped atomic.Uint64
}

// New returns a runner with room for size pending actions. print actions
// write to out.
func New(size int, out io.Writer, ops Ops) *Runner {
	if size <= 0 {
		size = config.DefaultQueueSize
	}
	return &Runner{
		queue: make(chan config.Binding, size),
		out:   out,
		ops:   ops,
	}
}

// OnResult registers fn to observe every finished action. Call it before Run.
func (r *Runner) OnResult(fn func(Result)) {
	r.onResult = fn
}

// Submit queues b without blocking. It fails when the queue is full or the
// runner is closed.
func (r *Runner) Submit(b config.Binding) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return errors.New("action runner closed")
	}
	select {
	case r.queue <- b:
		return nil
	default:
		r.dropped.Add(1)
		log.Warnf("action for hotkey %d dropped: queue full", b.ID)
		return ErrQueueFull
	}
}

// Close stops accepting work. Run finishes what is queued and returns.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
}

// Run executes queued actions until the runner is closed and drained, or
// until ctx is done. Actions already queued when ctx ends still run.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return nil
		case b, ok := <-r.queue:
			if !ok {
				return nil
			}
			r.runOne(b)
		}
	}
}

// drain runs what is queued right now without waiting for more.
func (r *Runner) drain() {
	for {
		select {
		case b, ok := <-r.queue:
			if !ok {
				return
			}
			r.runOne(b)
		default:
			return
		}
	}
}

func (r *Runner) Stats() Stats {
	return Stats{
		Ran:     r.ran.Load(),
		Failed:  r.failed.Load(),
		Dropped: r.dropped.Load(),
	}
}

func (r *Runner) runOne(b config.Binding) {
	start := time.Now()
	err := r.do(b)
	res := Result{ID: b.ID, Kind: b.Kind(), Label: b.Label(), Err: err, Took: time.Since(start)}

	r.ran.Add(1)
	if err != nil {
		r.failed.Add(1)
		log.ActionFailed(b.ID, res.Kind, err)
		if r.ops.Failed != nil {
			r.ops.Failed()
		}
	}
	if r.onResult != nil {
		r.onResult(res)
	}
}

func (r *Runner) do(b config.Binding) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("action panic: %v", p)
		}
	}()

	switch b.Kind() {
	case config.KindExec:
		if r.ops.Exec == nil {
			return errUnavailable(config.KindExec)
		}
		return r.ops.Exec(b.Exec)
	case config.KindCopy:
		if r.ops.Copy == nil {
			return errUnavailable(config.KindCopy)
		}
		return r.ops.Copy(b.Copy)
	case config.KindPaste:
		if r.ops.Paste == nil {
			return errUnavailable(config.KindPaste)
		}
		return r.ops.Paste(b.Paste)
	case config.KindBeep:
		if r.ops.Beep != nil {
			r.ops.Beep()
		}
		return nil
	case config.KindPrint:
		if r.out == nil {
			return nil
		}
		_, err := fmt.Fprintln(r.out, b.Print)
		return err
	default:
		return fmt.Errorf("hotkey %d has no runnable action", b.ID)
	}
}

func errUnavailable(kind string) error {
	return fmt.Errorf("%s actions are not available", kind)
}

// startCommand launches argv and reaps it in the background so long-lived
// programs do not hold up the queue.
func startCommand(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warnf("%s exited: %v", argv[0], err)
		}
	}()
	return nil
}

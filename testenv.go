package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"hotkeyd/action"
	"hotkeyd/beep"
	"hotkeyd/config"
	"hotkeyd/hotkey"
	"hotkeyd/log"
)

// lockedWriter serializes writes from the command loop and the action worker.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// runTestMode drives the registry over the fake backend from line commands:
//
//	REGISTER <id> <combo>   grab combo; a press prints "FIRED <id>"
//	UNREGISTER <id>
//	FIRE <id>               press the combo last grabbed for id
//	SLEEP <ms>
//	LIST
//	QUIT
//
// Every REGISTER/UNREGISTER answers OK or ERR. A STATS line is printed on
// exit after all hotkeys are released and queued actions have run.
func runTestMode(in io.Reader, w io.Writer) int {
	beep.Disable()
	out := &lockedWriter{w: w}

	fb := hotkey.NewFake()
	reg := hotkey.NewRegistry(fb)
	runner := action.New(config.DefaultQueueSize, out, action.Ops{})

	log.SessionStart(fb.Name(), fb.Platform().String(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	onFire := func(id hotkey.ID, userData any) {
		if err := runner.Submit(userData.(config.Binding)); err != nil {
			fmt.Fprintf(out, "ERR %d: %v\n", id, err)
		}
	}

	// natives outlive their registration so FIRE after UNREGISTER presses a
	// stale native id
	natives := make(map[hotkey.ID]hotkey.NativeID)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToUpper(fields[0]), fields[1:]
		if cmd == "QUIT" {
			break
		}

		switch cmd {
		case "REGISTER":
			if len(args) != 2 {
				fmt.Fprintln(out, "ERR usage: REGISTER <id> <combo>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(out, "ERR %v\n", err)
				continue
			}
			b := config.Binding{ID: uint32(id), Hotkey: args[1], Print: fmt.Sprintf("FIRED %d", id)}
			if err := reg.RegisterSpec(id, args[1], onFire, b); err != nil {
				fmt.Fprintf(out, "ERR %v\n", err)
				continue
			}
			r, _ := reg.Lookup(id)
			natives[id] = r.NativeID
			fmt.Fprintln(out, "OK")

		case "UNREGISTER":
			if len(args) != 1 {
				fmt.Fprintln(out, "ERR usage: UNREGISTER <id>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(out, "ERR %v\n", err)
				continue
			}
			if err := reg.Unregister(id); err != nil {
				fmt.Fprintf(out, "ERR %v\n", err)
				continue
			}
			fmt.Fprintln(out, "OK")

		case "FIRE":
			if len(args) != 1 {
				fmt.Fprintln(out, "ERR usage: FIRE <id>")
				continue
			}
			id, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(out, "ERR %v\n", err)
				continue
			}
			nid, ok := natives[id]
			if !ok {
				fmt.Fprintf(out, "ERR hotkey %d never registered\n", id)
				continue
			}
			fb.Fire(nid)

		case "SLEEP":
			if len(args) == 1 {
				if ms, err := strconv.Atoi(args[0]); err == nil {
					time.Sleep(time.Duration(ms) * time.Millisecond)
				}
			}

		case "LIST":
			for _, r := range reg.Registrations() {
				fmt.Fprintf(out, "%d %s %s\n", r.ID, r.Combo, r.Native)
			}

		default:
			fmt.Fprintf(out, "ERR unknown command %q\n", fields[0])
		}
	}

	code := 0
	if err := reg.UnregisterAll(); err != nil {
		fmt.Fprintf(out, "ERR %v\n", err)
		code = 1
	}
	runner.Close()
	if err := <-done; err != nil {
		fmt.Fprintf(out, "ERR %v\n", err)
		code = 1
	}

	s := reg.Stats()
	log.SessionEnd(s.Delivered, s.Dropped)
	fmt.Fprintf(out, "STATS delivered=%d dropped=%d ran=%d\n", s.Delivered, s.Dropped, runner.Stats().Ran)
	return code
}

func parseID(s string) (hotkey.ID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return hotkey.ID(n), nil
}

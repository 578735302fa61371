package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"hotkeyd/action"
	"hotkeyd/beep"
	"hotkeyd/clipboard"
	"hotkeyd/config"
	"hotkeyd/doctor"
	"hotkeyd/hotkey"
	"hotkeyd/log"
	"hotkeyd/login"
	"hotkeyd/shutdown"
)

var version = "dev"

type options struct {
	configPath string
	backend    string
	tui        bool
	watch      bool
}

func run() {
	configFlag := flag.String("config", "", "bindings file (default: $HOTKEYD_CONFIG or the OS config dir)")
	backendFlag := flag.String("backend", "", "hotkey backend: auto, xhotkey, evdev or fake (default: config value, then auto)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	tuiFlag := flag.Bool("tui", term.IsTerminal(int(os.Stdout.Fd())), "Run with terminal UI")
	doctorFlag := flag.Bool("doctor", false, "Run hotkey diagnostics and exit")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven, fake backend)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	watchFlag := flag.Bool("watch", true, "Reload bindings when the config file changes")
	quietFlag := flag.Bool("quiet", false, "Disable audio cues")
	autostartFlag := flag.String("autostart", "", "on: start at login with the given -config and -backend, off: stop starting at login")
	flag.Parse()

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *versionFlag {
		fmt.Printf("hotkeyd %s\n", version)
		os.Exit(0)
	}

	if *doctorFlag {
		os.Exit(doctor.Run(*backendFlag))
	}

	if *autostartFlag != "" {
		os.Exit(setAutostart(*autostartFlag, *configFlag, *backendFlag))
	}

	if *quietFlag {
		beep.Disable()
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	var code int
	if *testFlag {
		code = runTestMode(os.Stdin, os.Stdout)
	} else {
		code = serve(options{
			configPath: *configFlag,
			backend:    *backendFlag,
			tui:        *tuiFlag,
			watch:      *watchFlag,
		})
	}
	log.Close()
	os.Exit(code)
}

// serve grabs the configured hotkeys and runs their actions until a signal
// arrives or the TUI quits.
func serve(o options) int {
	path, err := config.ResolvePath(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	name := o.backend
	if name == "" {
		name = cfg.Backend
	}
	backend, err := hotkey.NewBackend(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if needsPaste(cfg) {
		if err := clipboard.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: paste init failed: %v\n", err)
			fmt.Fprintln(os.Stderr, "Fix with: sudo chmod 660 /dev/uinput && sudo chgrp input /dev/uinput")
		}
	}

	ctx, stop := shutdown.Context(context.Background())
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	var (
		sink EventSink
		out  io.Writer = os.Stdout
	)
	var ui *tuiSink
	if o.tui {
		ui = newTUISink(backend.Name(), path)
		sink = ui
		// print actions would tear the alternate screen
		out = io.Discard
		g.Go(func() error {
			defer stop()
			if _, err := ui.program.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			ui.program.Quit()
			return nil
		})
		select {
		case <-ui.ready:
		case <-gctx.Done():
		}
	} else {
		sink = newPrintSink(os.Stderr)
	}

	reg := hotkey.NewRegistry(backend)
	defer reg.UnregisterAll()
	runner := action.New(cfg.QueueSize, out, action.DefaultOps())
	d := newDaemon(reg, runner, sink)
	runner.OnResult(d.actionDone)

	if err := d.apply(cfg); err != nil {
		log.Errorf("register bindings: %v", err)
		sink.Notice(err.Error())
	}
	log.SessionStart(backend.Name(), backend.Platform().String(), reg.Len())

	g.Go(func() error { return runner.Run(gctx) })
	if o.watch {
		g.Go(func() error { return config.Watch(gctx, path, d.reload) })
	}

	<-gctx.Done()

	// A reload racing shutdown is refused once the daemon is closed.
	if err := d.close(); err != nil {
		log.Errorf("release hotkeys: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	runner.Close()
	err = g.Wait()

	s := reg.Stats()
	log.SessionEnd(s.Delivered, s.Dropped)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func needsPaste(cfg *config.Config) bool {
	for _, b := range cfg.Bindings {
		if b.Kind() == config.KindPaste {
			return true
		}
	}
	return false
}

func setAutostart(mode, configPath, backend string) int {
	switch mode {
	case "on":
		args := []string{"-tui=false"}
		if configPath != "" {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			args = append(args, "-config", abs)
		}
		if backend != "" {
			args = append(args, "-backend", backend)
		}
		if err := login.Enable(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println("hotkeyd will start at login")
	case "off":
		if err := login.Disable(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println("hotkeyd will no longer start at login")
	default:
		fmt.Fprintf(os.Stderr, "Error: -autostart must be on or off, got %q\n", mode)
		return 2
	}
	return 0
}

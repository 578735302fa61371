package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hotkeyd/keys"
)

const sample = `
backend: fake
bindings:
  - id: 1
    name: terminal
    hotkey: Ctrl+Alt+T
    exec: [xterm]
  - id: 2
    hotkey: cmd+shift+v
    paste: "hello"
  - id: 3
    hotkey: Ctrl+F12
    beep: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "fake" || cfg.QueueSize != DefaultQueueSize {
		t.Errorf("Backend=%q QueueSize=%d", cfg.Backend, cfg.QueueSize)
	}
	if len(cfg.Bindings) != 3 {
		t.Fatalf("got %d bindings", len(cfg.Bindings))
	}

	b := cfg.Bindings[1]
	if b.Kind() != KindPaste {
		t.Errorf("Kind = %q", b.Kind())
	}
	want := keys.MustCombo(keys.KeyV, keys.ModSuper|keys.ModShift)
	if b.Combo() != want {
		t.Errorf("Combo = %s, want %s", b.Combo(), want)
	}
	if cfg.Bindings[0].Label() != "terminal" || b.Label() != "Shift+Super+V" {
		t.Errorf("labels = %q, %q", cfg.Bindings[0].Label(), b.Label())
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Bindings) != 0 {
		t.Errorf("got %d bindings", len(cfg.Bindings))
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{
			name:    "duplicate id",
			doc:     "bindings:\n  - {id: 1, hotkey: Ctrl+A, beep: true}\n  - {id: 1, hotkey: Ctrl+B, beep: true}\n",
			wantSub: "already used",
		},
		{
			name:    "duplicate combo",
			doc:     "bindings:\n  - {id: 1, hotkey: Ctrl+A, beep: true}\n  - {id: 2, hotkey: control+a, beep: true}\n",
			wantSub: "already bound",
		},
		{
			name:    "bad hotkey",
			doc:     "bindings:\n  - {id: 1, hotkey: Hyper+A, beep: true}\n",
			wantSub: "unknown modifier",
		},
		{
			name:    "no action",
			doc:     "bindings:\n  - {id: 1, hotkey: Ctrl+A}\n",
			wantSub: "exactly one",
		},
		{
			name:    "two actions",
			doc:     "bindings:\n  - {id: 1, hotkey: Ctrl+A, beep: true, print: hi}\n",
			wantSub: "exactly one",
		},
		{
			name:    "unknown field",
			doc:     "bindings:\n  - {id: 1, hotkey: Ctrl+A, shout: hi}\n",
			wantSub: "shout",
		},
		{
			name:    "negative queue",
			doc:     "queue_size: -1\n",
			wantSub: "queue_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("HOTKEYD_CONFIG", "/tmp/env.yaml")

	got, err := ResolvePath("/tmp/flag.yaml")
	if err != nil || got != "/tmp/flag.yaml" {
		t.Errorf("flag: got %q, %v", got, err)
	}
	got, err = ResolvePath("")
	if err != nil || got != "/tmp/env.yaml" {
		t.Errorf("env: got %q, %v", got, err)
	}

	t.Setenv("HOTKEYD_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	got, err = ResolvePath("")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "hotkeys.yaml" || filepath.Base(filepath.Dir(got)) != "hotkeyd" {
		t.Errorf("default: got %q", got)
	}
}

func TestDiff(t *testing.T) {
	old, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	next, err := Parse([]byte(`
bindings:
  - id: 1
    name: terminal
    hotkey: Ctrl+Alt+T
    exec: [xterm]
  - id: 2
    hotkey: cmd+shift+v
    paste: "changed"
  - id: 4
    hotkey: Alt+P
    print: pressed
`))
	if err != nil {
		t.Fatal(err)
	}

	remove, add := Diff(old, next)
	if len(remove) != 2 || remove[0] != 2 || remove[1] != 3 {
		t.Errorf("remove = %v, want [2 3]", remove)
	}
	if len(add) != 2 || add[0].ID != 2 || add[1].ID != 4 {
		t.Errorf("add = %+v, want ids 2 and 4", add)
	}

	remove, add = Diff(nil, old)
	if len(remove) != 0 || len(add) != 3 {
		t.Errorf("from nil: remove=%v add=%d", remove, len(add))
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotkeys.yaml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config, err error) {
			if err == nil {
				got <- c
			}
		})
	}()

	next := "bindings:\n  - {id: 9, hotkey: Alt+F9, print: reloaded}\n"
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		// Rewrite until the watcher has been set up and reports the change.
		if err := os.WriteFile(path, []byte(next), 0644); err != nil {
			t.Fatal(err)
		}
		select {
		case c := <-got:
			if _, ok := c.Lookup(9); !ok {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatal(err)
			}
			return
		case <-tick.C:
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

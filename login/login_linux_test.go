package login

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableDisable(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if Enabled() {
		t.Fatal("enabled before Enable")
	}
	if err := Enable([]string{"-tui=false", "-config", "/home/me/my hotkeys.yaml"}); err != nil {
		t.Fatal(err)
	}
	if !Enabled() {
		t.Fatal("not enabled after Enable")
	}

	data, err := os.ReadFile(filepath.Join(dir, "autostart", desktopName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `-tui=false -config "/home/me/my hotkeys.yaml"`) {
		t.Errorf("entry:\n%s", data)
	}

	if err := Disable(); err != nil {
		t.Fatal(err)
	}
	if Enabled() {
		t.Error("still enabled after Disable")
	}
	if err := Disable(); err != nil {
		t.Errorf("second Disable: %v", err)
	}
}

func TestQuoteExec(t *testing.T) {
	for in, want := range map[string]string{
		"-watch":   "-watch",
		"a b":      `"a b"`,
		`say "hi"`: `"say \"hi\""`,
		"$HOME":    `"\$HOME"`,
		"":         `""`,
	} {
		if got := quoteExec(in); got != want {
			t.Errorf("quoteExec(%q) = %q, want %q", in, got, want)
		}
	}
}

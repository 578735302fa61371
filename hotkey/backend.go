package hotkey

import (
	"fmt"
	"runtime"
)

// BackendNames lists the values NewBackend accepts besides "auto".
var BackendNames = []string{"evdev", "xhotkey", "fake"}

// DefaultBackend is what "auto" resolves to on this OS.
func DefaultBackend() string {
	if runtime.GOOS == "linux" {
		return "evdev"
	}
	return "xhotkey"
}

func NewBackend(name string) (Backend, error) {
	if name == "" || name == "auto" {
		name = DefaultBackend()
	}
	switch name {
	case "evdev":
		return newEvdev()
	case "xhotkey":
		return newXHotkey()
	case "fake":
		return NewFake(), nil
	default:
		return nil, fmt.Errorf("unknown hotkey backend %q", name)
	}
}

// Diagnose checks that the named backend can reach the OS.
func Diagnose(name string) (string, error) {
	if name == "" || name == "auto" {
		name = DefaultBackend()
	}
	switch name {
	case "evdev":
		return diagnoseEvdev()
	case "xhotkey":
		return diagnoseXHotkey()
	case "fake":
		return "in-memory backend, no OS access", nil
	default:
		return "", fmt.Errorf("unknown hotkey backend %q", name)
	}
}

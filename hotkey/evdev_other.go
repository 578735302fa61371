//go:build !linux

package hotkey

import "errors"

var errNoEvdev = errors.New("evdev backend is only available on linux")

func newEvdev() (Backend, error) { return nil, errNoEvdev }

func diagnoseEvdev() (string, error) { return "", errNoEvdev }

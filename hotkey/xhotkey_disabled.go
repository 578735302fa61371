//go:build linux && !x11

package hotkey

import "errors"

func newXHotkey() (Backend, error) {
	return nil, errors.New("xhotkey backend not compiled in (rebuild with -tags x11)")
}

func diagnoseXHotkey() (string, error) {
	return "", errors.New("xhotkey backend not compiled in (rebuild with -tags x11)")
}

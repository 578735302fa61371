//go:build !darwin && !linux

package login

import "errors"

var errUnsupported = errors.New("autostart is not supported on this platform")

func Enabled() bool { return false }

func Enable([]string) error { return errUnsupported }

func Disable() error { return nil }

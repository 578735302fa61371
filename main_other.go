//go:build !linux

package main

import (
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

// The native hotkey APIs on macOS and Windows must be driven from the main
// thread.
func main() {
	mainthread.Init(run)
}

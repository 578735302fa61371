//go:build windows

package doctor

// The Windows console is not left in a modified mode by the checks.
func resetTerminal() {}

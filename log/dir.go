package log

import (
	"os"
	"path/filepath"
	"runtime"
)

// getDefaultDir is where logs go without -logpath or HOTKEYD_LOG_PATH:
// ~/Library/Logs/hotkeyd on macOS, %LOCALAPPDATA%\hotkeyd\logs on Windows and
// $XDG_STATE_HOME/hotkeyd elsewhere.
func getDefaultDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "hotkeyd", "logs"), nil
		}
	case "darwin":
	default:
		if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
			return filepath.Join(dir, "hotkeyd"), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "hotkeyd", "logs"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "hotkeyd"), nil
	default:
		return filepath.Join(home, ".local", "state", "hotkeyd"), nil
	}
}

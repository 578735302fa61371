//go:build linux

package login

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const desktopName = "hotkeyd.desktop"

// desktopPath follows the XDG autostart spec.
func desktopPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", desktopName), nil
}

func Enabled() bool {
	path, err := desktopPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Enable writes an autostart entry that runs this executable with args.
func Enable(args []string) error {
	cmd, err := command(args)
	if err != nil {
		return err
	}
	path, err := desktopPath()
	if err != nil {
		return fmt.Errorf("resolve autostart dir: %w", err)
	}

	argv := make([]string, 0, len(cmd))
	for _, a := range cmd {
		argv = append(argv, quoteExec(a))
	}
	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=hotkeyd
Comment=Global hotkey daemon
Exec=%s
Terminal=false
X-GNOME-Autostart-enabled=true
`, strings.Join(argv, " "))

	return writeFile(path, []byte(entry), 0644)
}

func Disable() error {
	path, err := desktopPath()
	if err != nil {
		return fmt.Errorf("resolve autostart dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove autostart entry: %w", err)
	}
	return nil
}

// quoteExec quotes an Exec= argument when it holds characters the desktop
// entry format treats as reserved.
func quoteExec(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\><~|&;$*?#()`") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}

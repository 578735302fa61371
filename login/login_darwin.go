//go:build darwin

package login

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
)

const agentLabel = "com.hotkeyd.agent"

var plistTmpl = template.Must(template.New("plist").Funcs(template.FuncMap{
	"xml": func(s string) string {
		var b bytes.Buffer
		template.HTMLEscape(&b, []byte(s))
		return b.String()
	},
}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
{{- range .Argv}}
		<string>{{xml .}}</string>
{{- end}}
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>LimitLoadToSessionType</key>
	<string>Aqua</string>
{{- if .Env}}
	<key>EnvironmentVariables</key>
	<dict>
{{- range $k, $v := .Env}}
		<key>{{$k}}</key>
		<string>{{xml $v}}</string>
{{- end}}
	</dict>
{{- end}}
</dict>
</plist>
`))

func plistPath() string {
	return filepath.Join(os.Getenv("HOME"), "Library", "LaunchAgents", agentLabel+".plist")
}

func Enabled() bool {
	_, err := os.Stat(plistPath())
	return err == nil
}

// Enable installs and loads a launch agent that runs this executable with
// args. HOTKEYD_* variables set now are carried into the agent.
func Enable(args []string) error {
	argv, err := command(args)
	if err != nil {
		return err
	}
	env := make(map[string]string)
	for _, key := range []string{"HOTKEYD_CONFIG", "HOTKEYD_LOG_PATH"} {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}

	var buf bytes.Buffer
	err = plistTmpl.Execute(&buf, struct {
		Label string
		Argv  []string
		Env   map[string]string
	}{agentLabel, argv, env})
	if err != nil {
		return fmt.Errorf("render plist: %w", err)
	}

	path := plistPath()
	if err := writeFile(path, buf.Bytes(), 0600); err != nil {
		return err
	}

	domain := fmt.Sprintf("gui/%d", os.Getuid())
	// Bootout first in case the agent is already loaded
	exec.Command("launchctl", "bootout", domain, path).Run()
	if out, err := exec.Command("launchctl", "bootstrap", domain, path).CombinedOutput(); err != nil {
		return fmt.Errorf("launchctl bootstrap: %w (%s)", err, out)
	}
	return nil
}

func Disable() error {
	path := plistPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	domain := fmt.Sprintf("gui/%d", os.Getuid())
	exec.Command("launchctl", "bootout", domain, path).Run()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove plist: %w", err)
	}
	return nil
}

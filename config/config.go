// Package config loads the hotkey bindings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"hotkeyd/keys"
)

const DefaultQueueSize = 16

// Action kinds a binding can carry. Exactly one is set per binding.
const (
	KindExec  = "exec"
	KindCopy  = "copy"
	KindPaste = "paste"
	KindBeep  = "beep"
	KindPrint = "print"
)

type Binding struct {
	ID     uint32   `yaml:"id"`
	Name   string   `yaml:"name,omitempty"`
	Hotkey string   `yaml:"hotkey"`
	Exec   []string `yaml:"exec,omitempty"`
	Copy   string   `yaml:"copy,omitempty"`
	Paste  string   `yaml:"paste,omitempty"`
	Beep   bool     `yaml:"beep,omitempty"`
	Print  string   `yaml:"print,omitempty"`

	combo keys.Combo
}

type Config struct {
	Backend   string    `yaml:"backend,omitempty"`
	QueueSize int       `yaml:"queue_size,omitempty"`
	Bindings  []Binding `yaml:"bindings"`
}

// Combo is the parsed hotkey. It is zero until the config has been
// validated.
func (b Binding) Combo() keys.Combo { return b.combo }

// Kind names the action the binding runs, or "" when none or several are set.
func (b Binding) Kind() string {
	var kinds []string
	if len(b.Exec) > 0 {
		kinds = append(kinds, KindExec)
	}
	if b.Copy != "" {
		kinds = append(kinds, KindCopy)
	}
	if b.Paste != "" {
		kinds = append(kinds, KindPaste)
	}
	if b.Beep {
		kinds = append(kinds, KindBeep)
	}
	if b.Print != "" {
		kinds = append(kinds, KindPrint)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Label is Name when set, else the hotkey text.
func (b Binding) Label() string {
	if b.Name != "" {
		return b.Name
	}
	if !b.combo.IsZero() {
		return b.combo.String()
	}
	return b.Hotkey
}

// Equal reports whether a and b would register and act identically.
func (b Binding) Equal(o Binding) bool {
	return b.ID == o.ID &&
		b.combo == o.combo &&
		b.Name == o.Name &&
		slices.Equal(b.Exec, o.Exec) &&
		b.Copy == o.Copy &&
		b.Paste == o.Paste &&
		b.Beep == o.Beep &&
		b.Print == o.Print
}

// ResolvePath picks the bindings file: -config flag, then HOTKEYD_CONFIG,
// then hotkeyd/hotkeys.yaml under the user config directory.
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return filepath.Abs(flagPath)
	}
	if envPath := os.Getenv("HOTKEYD_CONFIG"); envPath != "" {
		return filepath.Abs(envPath)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "hotkeyd", "hotkeys.yaml"), nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a bindings document. Unknown fields are
// rejected so a typo in an action name does not silently drop the action.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate parses every hotkey and checks ids, combos and actions. All
// problems are reported together.
func (c *Config) Validate() error {
	if c.QueueSize < 0 {
		return fmt.Errorf("queue_size must not be negative, got %d", c.QueueSize)
	}
	if c.QueueSize == 0 {
		c.QueueSize = DefaultQueueSize
	}

	var errs []error
	ids := make(map[uint32]int)
	combos := make(map[keys.Combo]uint32)
	for i := range c.Bindings {
		b := &c.Bindings[i]
		if prev, dup := ids[b.ID]; dup {
			errs = append(errs, fmt.Errorf("binding %d: id %d already used by binding %d", i, b.ID, prev))
		}
		ids[b.ID] = i

		combo, err := keys.Parse(b.Hotkey)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %d (id %d): %w", i, b.ID, err))
		} else {
			b.combo = combo
			if other, dup := combos[combo]; dup {
				errs = append(errs, fmt.Errorf("binding %d (id %d): %s already bound by id %d", i, b.ID, combo, other))
			}
			combos[combo] = b.ID
		}

		if b.Kind() == "" {
			errs = append(errs, fmt.Errorf("binding %d (id %d): exactly one of exec, copy, paste, beep, print is required", i, b.ID))
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the binding with the given id.
func (c *Config) Lookup(id uint32) (Binding, bool) {
	for _, b := range c.Bindings {
		if b.ID == id {
			return b, true
		}
	}
	return Binding{}, false
}

// Diff lists what must change to go from old to next: ids to unregister and
// bindings to register. A binding whose hotkey or action changed appears in
// both.
func Diff(old, next *Config) (remove []uint32, add []Binding) {
	if old == nil {
		old = &Config{}
	}
	if next == nil {
		next = &Config{}
	}
	for _, b := range old.Bindings {
		nb, ok := next.Lookup(b.ID)
		if !ok || !nb.Equal(b) {
			remove = append(remove, b.ID)
		}
	}
	for _, nb := range next.Bindings {
		b, ok := old.Lookup(nb.ID)
		if !ok || !nb.Equal(b) {
			add = append(add, nb)
		}
	}
	return remove, add
}

package keys

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper

	modMask = ModShift | ModControl | ModAlt | ModSuper
)

// modifierOrder is the canonical order used by Combo.String.
var modifierOrder = []Modifier{ModControl, ModAlt, ModShift, ModSuper}

var modifierByName = map[string]Modifier{
	"CTRL":    ModControl,
	"CONTROL": ModControl,
	"SHIFT":   ModShift,
	"ALT":     ModAlt,
	"OPTION":  ModAlt,
	"OPT":     ModAlt,
	"SUPER":   ModSuper,
	"WIN":     ModSuper,
	"CMD":     ModSuper,
	"COMMAND": ModSuper,
	"META":    ModSuper,
}

// Has reports whether every modifier in o is set in m.
func (m Modifier) Has(o Modifier) bool {
	return m&o == o
}

// Valid reports whether m only contains known modifier bits.
func (m Modifier) Valid() bool {
	return m&^modMask == 0
}

func (m Modifier) String() string {
	var parts []string
	for _, mod := range modifierOrder {
		if m.Has(mod) {
			parts = append(parts, modifierName(mod))
		}
	}
	if rest := m &^ modMask; rest != 0 {
		parts = append(parts, "Mod?")
	}
	return strings.Join(parts, "+")
}

func modifierName(mod Modifier) string {
	switch mod {
	case ModControl:
		return "Ctrl"
	case ModShift:
		return "Shift"
	case ModAlt:
		return "Alt"
	case ModSuper:
		return "Super"
	default:
		return "Mod?"
	}
}

// LookupModifier resolves a modifier name or alias case-insensitively.
func LookupModifier(name string) (Modifier, bool) {
	m, ok := modifierByName[strings.ToUpper(strings.TrimSpace(name))]
	return m, ok
}

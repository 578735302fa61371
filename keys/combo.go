package keys

import (
	"fmt"
	"strings"
)

// Combo is a base key plus a modifier set.
// Construct via NewCombo or Parse; the zero value is not a valid combo.
type Combo struct {
	key  Key
	mods Modifier
}

// NewCombo validates and builds a combo.
func NewCombo(key Key, mods Modifier) (Combo, error) {
	if !key.Valid() {
		return Combo{}, fmt.Errorf("%w: unknown key %d", ErrUnsupportedCombo, key)
	}
	if !mods.Valid() {
		return Combo{}, fmt.Errorf("%w: unknown modifier bits 0x%X", ErrUnsupportedCombo, uint8(mods&^modMask))
	}
	return Combo{key: key, mods: mods}, nil
}

// MustCombo is NewCombo for package-level tables and tests.
func MustCombo(key Key, mods Modifier) Combo {
	c, err := NewCombo(key, mods)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Combo) Key() Key            { return c.key }
func (c Combo) Modifiers() Modifier { return c.mods }

// IsZero reports whether c is the zero value.
func (c Combo) IsZero() bool { return c == Combo{} }

// String returns the canonical form, e.g. "Ctrl+Shift+A".
func (c Combo) String() string {
	if c.mods == 0 {
		return c.key.String()
	}
	return c.mods.String() + "+" + c.key.String()
}

// Parse parses a binding like "Ctrl+Shift+F12". At least one modifier is
// required; modifier names are case-insensitive and duplicates collapse.
func Parse(spec string) (Combo, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Combo{}, fmt.Errorf("hotkey spec is empty")
	}

	parts := strings.Split(raw, "+")
	if len(parts) < 2 {
		return Combo{}, fmt.Errorf("hotkey must include modifiers and key: %s", raw)
	}

	var mods Modifier
	for _, token := range parts[:len(parts)-1] {
		mod, ok := LookupModifier(token)
		if !ok {
			return Combo{}, fmt.Errorf("unknown modifier %q in hotkey %q", token, raw)
		}
		mods |= mod
	}

	keyToken := strings.TrimSpace(parts[len(parts)-1])
	if keyToken == "" {
		return Combo{}, fmt.Errorf("missing hotkey key token in %q", raw)
	}
	key, ok := LookupKey(keyToken)
	if !ok {
		return Combo{}, fmt.Errorf("unknown key %q in hotkey %q", keyToken, raw)
	}

	return NewCombo(key, mods)
}

// MarshalText implements encoding.TextMarshaler.
func (c Combo) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("cannot marshal zero combo")
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Combo) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

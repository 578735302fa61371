package keys

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCombo is returned when a key or modifier set has no native
// representation on the target platform.
var ErrUnsupportedCombo = errors.New("unsupported key combination")

// Platform identifies a native key encoding.
type Platform uint8

const (
	PlatformCarbon Platform = iota + 1 // macOS virtual key codes, Carbon modifier masks
	PlatformWin32                      // virtual-key codes, MOD_* flags
	PlatformX11                        // keysyms, X11 modifier masks
	PlatformEvdev                      // linux input-event codes
)

func (p Platform) String() string {
	switch p {
	case PlatformCarbon:
		return "carbon"
	case PlatformWin32:
		return "win32"
	case PlatformX11:
		return "x11"
	case PlatformEvdev:
		return "evdev"
	default:
		return fmt.Sprintf("platform(%d)", uint8(p))
	}
}

// Native is the OS-level form of a Combo.
type Native struct {
	Platform Platform
	Key      uint32
	Mods     uint32
}

func (n Native) String() string {
	return fmt.Sprintf("%s key=0x%X mods=0x%X", n.Platform, n.Key, n.Mods)
}

type table struct {
	keys    map[Key]uint32
	mods    [4]uint32 // indexed like modifierBits
	keyBack map[uint32]Key
}

// modifierBits fixes the index order of table.mods.
var modifierBits = [4]Modifier{ModShift, ModControl, ModAlt, ModSuper}

func newTable(keys map[Key]uint32, shift, control, alt, super uint32) *table {
	t := &table{
		keys:    keys,
		mods:    [4]uint32{shift, control, alt, super},
		keyBack: make(map[uint32]Key, len(keys)),
	}
	for k, code := range keys {
		if prev, dup := t.keyBack[code]; dup {
			panic(fmt.Sprintf("keys: native code 0x%X mapped twice (%s, %s)", code, prev, k))
		}
		t.keyBack[code] = k
	}
	return t
}

var tables = map[Platform]*table{
	PlatformCarbon: carbonTable,
	PlatformWin32:  win32Table,
	PlatformX11:    x11Table,
	PlatformEvdev:  evdevTable,
}

// Encode translates c into the native form of platform p.
func Encode(p Platform, c Combo) (Native, error) {
	t, ok := tables[p]
	if !ok {
		return Native{}, fmt.Errorf("%w: unknown platform %s", ErrUnsupportedCombo, p)
	}
	if !c.mods.Valid() {
		return Native{}, fmt.Errorf("%w: unknown modifier bits in %s", ErrUnsupportedCombo, c)
	}
	code, ok := t.keys[c.key]
	if !ok {
		return Native{}, fmt.Errorf("%w: %s has no %s key code", ErrUnsupportedCombo, c.key, p)
	}

	var mods uint32
	for i, bit := range modifierBits {
		if c.mods.Has(bit) {
			mods |= t.mods[i]
		}
	}
	return Native{Platform: p, Key: code, Mods: mods}, nil
}

// Decode is the inverse of Encode.
func Decode(n Native) (Combo, error) {
	t, ok := tables[n.Platform]
	if !ok {
		return Combo{}, fmt.Errorf("%w: unknown platform %s", ErrUnsupportedCombo, n.Platform)
	}
	key, ok := t.keyBack[n.Key]
	if !ok {
		return Combo{}, fmt.Errorf("%w: unmapped %s key code 0x%X", ErrUnsupportedCombo, n.Platform, n.Key)
	}

	var mods Modifier
	rest := n.Mods
	for i, bit := range modifierBits {
		if n.Mods&t.mods[i] != 0 {
			mods |= bit
			rest &^= t.mods[i]
		}
	}
	if rest != 0 {
		return Combo{}, fmt.Errorf("%w: unmapped %s modifier bits 0x%X", ErrUnsupportedCombo, n.Platform, rest)
	}
	return Combo{key: key, mods: mods}, nil
}

// Supported reports whether k has a native code on p.
func Supported(p Platform, k Key) bool {
	t, ok := tables[p]
	if !ok {
		return false
	}
	_, ok = t.keys[k]
	return ok
}

// Package keys models platform-neutral key combinations and encodes them
// into the native form each hotkey backend registers with the OS.
package keys

import "strings"

// Key is a platform-independent key code.
type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20

	KeySpace
	KeyReturn
	KeyEscape
	KeyTab
	KeyDelete
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	KeyMinus
	KeyEqual
	KeyBracketLeft
	KeyBracketRight
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyComma
	KeyPeriod
	KeySlash
	KeyBackquote

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "Unknown",

	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F",
	KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R",
	KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W", KeyX: "X",
	KeyY: "Y", KeyZ: "Z",

	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10",
	KeyF11: "F11", KeyF12: "F12", KeyF13: "F13", KeyF14: "F14", KeyF15: "F15",
	KeyF16: "F16", KeyF17: "F17", KeyF18: "F18", KeyF19: "F19", KeyF20: "F20",

	KeySpace:     "Space",
	KeyReturn:    "Enter",
	KeyEscape:    "Esc",
	KeyTab:       "Tab",
	KeyDelete:    "Delete",
	KeyBackspace: "Backspace",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyInsert:    "Insert",

	KeyMinus:        "-",
	KeyEqual:        "=",
	KeyBracketLeft:  "[",
	KeyBracketRight: "]",
	KeyBackslash:    "\\",
	KeySemicolon:    ";",
	KeyQuote:        "'",
	KeyComma:        ",",
	KeyPeriod:       ".",
	KeySlash:        "/",
	KeyBackquote:    "`",
}

// keyAliases maps additional upper-cased spellings accepted by Parse.
var keyAliases = map[string]Key{
	"RETURN":       KeyReturn,
	"ESCAPE":       KeyEscape,
	"DEL":          KeyDelete,
	"BACK":         KeyBackspace,
	"PGUP":         KeyPageUp,
	"PGDN":         KeyPageDown,
	"PAGEDN":       KeyPageDown,
	"INS":          KeyInsert,
	"MINUS":        KeyMinus,
	"EQUAL":        KeyEqual,
	"EQUALS":       KeyEqual,
	"BRACKETLEFT":  KeyBracketLeft,
	"BRACKETRIGHT": KeyBracketRight,
	"BACKSLASH":    KeyBackslash,
	"SEMICOLON":    KeySemicolon,
	"QUOTE":        KeyQuote,
	"APOSTROPHE":   KeyQuote,
	"COMMA":        KeyComma,
	"PERIOD":       KeyPeriod,
	"DOT":          KeyPeriod,
	"SLASH":        KeySlash,
	"BACKQUOTE":    KeyBackquote,
	"GRAVE":        KeyBackquote,
}

var keyByName = func() map[string]Key {
	m := make(map[string]Key, int(keyCount)+len(keyAliases))
	for k := KeyUnknown + 1; k < keyCount; k++ {
		m[strings.ToUpper(keyNames[k])] = k
	}
	for name, k := range keyAliases {
		m[name] = k
	}
	return m
}()

// Valid reports whether k is one of the enumerated keys.
func (k Key) Valid() bool {
	return k > KeyUnknown && k < keyCount
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// LookupKey resolves a key name case-insensitively.
func LookupKey(name string) (Key, bool) {
	k, ok := keyByName[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// AllKeys returns every enumerated key in declaration order.
func AllKeys() []Key {
	out := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

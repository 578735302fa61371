package keys

// Linux input-event codes (input-event-codes.h). Modifiers have no native
// mask on evdev: the reader tracks held modifier keys itself and builds the
// same logical bitset, so the mask values are the Modifier bits.
var evdevTable = newTable(map[Key]uint32{
	KeyEscape: 1,
	Key1:      2, Key2: 3, Key3: 4, Key4: 5, Key5: 6,
	Key6: 7, Key7: 8, Key8: 9, Key9: 10, Key0: 11,
	KeyMinus:     12,
	KeyEqual:     13,
	KeyBackspace: 14,
	KeyTab:       15,

	KeyQ: 16, KeyW: 17, KeyE: 18, KeyR: 19, KeyT: 20,
	KeyY: 21, KeyU: 22, KeyI: 23, KeyO: 24, KeyP: 25,
	KeyBracketLeft:  26,
	KeyBracketRight: 27,
	KeyReturn:       28,

	KeyA: 30, KeyS: 31, KeyD: 32, KeyF: 33, KeyG: 34,
	KeyH: 35, KeyJ: 36, KeyK: 37, KeyL: 38,
	KeySemicolon: 39,
	KeyQuote:     40,
	KeyBackquote: 41,
	KeyBackslash: 43,

	KeyZ: 44, KeyX: 45, KeyC: 46, KeyV: 47, KeyB: 48, KeyN: 49, KeyM: 50,
	KeyComma:  51,
	KeyPeriod: 52,
	KeySlash:  53,
	KeySpace:  57,

	KeyF1: 59, KeyF2: 60, KeyF3: 61, KeyF4: 62, KeyF5: 63,
	KeyF6: 64, KeyF7: 65, KeyF8: 66, KeyF9: 67, KeyF10: 68,
	KeyF11: 87, KeyF12: 88,
	KeyF13: 183, KeyF14: 184, KeyF15: 185, KeyF16: 186,
	KeyF17: 187, KeyF18: 188, KeyF19: 189, KeyF20: 190,

	KeyHome:     102,
	KeyUp:       103,
	KeyPageUp:   104,
	KeyLeft:     105,
	KeyRight:    106,
	KeyEnd:      107,
	KeyDown:     108,
	KeyPageDown: 109,
	KeyInsert:   110,
	KeyDelete:   111,
},
	uint32(ModShift),
	uint32(ModControl),
	uint32(ModAlt),
	uint32(ModSuper),
)

// Evdev modifier key codes, left and right.
const (
	EvdevLeftCtrl   = 29
	EvdevLeftShift  = 42
	EvdevRightShift = 54
	EvdevLeftAlt    = 56
	EvdevRightCtrl  = 97
	EvdevRightAlt   = 100
	EvdevLeftMeta   = 125
	EvdevRightMeta  = 126
)

// EvdevModifier maps an evdev key code to the logical modifier it holds.
func EvdevModifier(code uint16) (Modifier, bool) {
	switch code {
	case EvdevLeftCtrl, EvdevRightCtrl:
		return ModControl, true
	case EvdevLeftShift, EvdevRightShift:
		return ModShift, true
	case EvdevLeftAlt, EvdevRightAlt:
		return ModAlt, true
	case EvdevLeftMeta, EvdevRightMeta:
		return ModSuper, true
	}
	return 0, false
}

package keys

// macOS virtual key codes (HIToolbox Events.h). There is no Insert key on
// Apple keyboards; its position carries Help, which Carbon does not accept
// as a hotkey.
var carbonTable = newTable(map[Key]uint32{
	KeyA: 0x00, KeyS: 0x01, KeyD: 0x02, KeyF: 0x03, KeyH: 0x04, KeyG: 0x05,
	KeyZ: 0x06, KeyX: 0x07, KeyC: 0x08, KeyV: 0x09, KeyB: 0x0B, KeyQ: 0x0C,
	KeyW: 0x0D, KeyE: 0x0E, KeyR: 0x0F, KeyY: 0x10, KeyT: 0x11, KeyO: 0x1F,
	KeyU: 0x20, KeyI: 0x22, KeyP: 0x23, KeyL: 0x25, KeyJ: 0x26, KeyK: 0x28,
	KeyN: 0x2D, KeyM: 0x2E,

	Key1: 0x12, Key2: 0x13, Key3: 0x14, Key4: 0x15, Key6: 0x16,
	Key5: 0x17, Key9: 0x19, Key7: 0x1A, Key8: 0x1C, Key0: 0x1D,

	KeyF1: 0x7A, KeyF2: 0x78, KeyF3: 0x63, KeyF4: 0x76, KeyF5: 0x60,
	KeyF6: 0x61, KeyF7: 0x62, KeyF8: 0x64, KeyF9: 0x65, KeyF10: 0x6D,
	KeyF11: 0x67, KeyF12: 0x6F, KeyF13: 0x69, KeyF14: 0x6B, KeyF15: 0x71,
	KeyF16: 0x6A, KeyF17: 0x40, KeyF18: 0x4F, KeyF19: 0x50, KeyF20: 0x5A,

	KeyReturn:    0x24,
	KeyTab:       0x30,
	KeySpace:     0x31,
	KeyBackspace: 0x33,
	KeyEscape:    0x35,
	KeyHome:      0x73,
	KeyPageUp:    0x74,
	KeyDelete:    0x75,
	KeyEnd:       0x77,
	KeyPageDown:  0x79,
	KeyLeft:      0x7B,
	KeyRight:     0x7C,
	KeyDown:      0x7D,
	KeyUp:        0x7E,

	KeyEqual:        0x18,
	KeyMinus:        0x1B,
	KeyBracketRight: 0x1E,
	KeyBracketLeft:  0x21,
	KeyQuote:        0x27,
	KeySemicolon:    0x29,
	KeyBackslash:    0x2A,
	KeyComma:        0x2B,
	KeySlash:        0x2C,
	KeyPeriod:       0x2F,
	KeyBackquote:    0x32,
},
	0x0200, // shiftKey
	0x1000, // controlKey
	0x0800, // optionKey
	0x0100, // cmdKey
)

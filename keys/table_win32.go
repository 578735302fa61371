package keys

var win32Table = newTable(map[Key]uint32{
	KeyA: 0x41, KeyB: 0x42, KeyC: 0x43, KeyD: 0x44, KeyE: 0x45, KeyF: 0x46,
	KeyG: 0x47, KeyH: 0x48, KeyI: 0x49, KeyJ: 0x4A, KeyK: 0x4B, KeyL: 0x4C,
	KeyM: 0x4D, KeyN: 0x4E, KeyO: 0x4F, KeyP: 0x50, KeyQ: 0x51, KeyR: 0x52,
	KeyS: 0x53, KeyT: 0x54, KeyU: 0x55, KeyV: 0x56, KeyW: 0x57, KeyX: 0x58,
	KeyY: 0x59, KeyZ: 0x5A,

	Key0: 0x30, Key1: 0x31, Key2: 0x32, Key3: 0x33, Key4: 0x34,
	Key5: 0x35, Key6: 0x36, Key7: 0x37, Key8: 0x38, Key9: 0x39,

	KeyF1: 0x70, KeyF2: 0x71, KeyF3: 0x72, KeyF4: 0x73, KeyF5: 0x74,
	KeyF6: 0x75, KeyF7: 0x76, KeyF8: 0x77, KeyF9: 0x78, KeyF10: 0x79,
	KeyF11: 0x7A, KeyF12: 0x7B, KeyF13: 0x7C, KeyF14: 0x7D, KeyF15: 0x7E,
	KeyF16: 0x7F, KeyF17: 0x80, KeyF18: 0x81, KeyF19: 0x82, KeyF20: 0x83,

	KeyBackspace: 0x08,
	KeyTab:       0x09,
	KeyReturn:    0x0D,
	KeyEscape:    0x1B,
	KeySpace:     0x20,
	KeyPageUp:    0x21,
	KeyPageDown:  0x22,
	KeyEnd:       0x23,
	KeyHome:      0x24,
	KeyLeft:      0x25,
	KeyUp:        0x26,
	KeyRight:     0x27,
	KeyDown:      0x28,
	KeyInsert:    0x2D,
	KeyDelete:    0x2E,

	KeySemicolon:    0xBA, // VK_OEM_1
	KeyEqual:        0xBB, // VK_OEM_PLUS
	KeyComma:        0xBC,
	KeyMinus:        0xBD,
	KeyPeriod:       0xBE,
	KeySlash:        0xBF, // VK_OEM_2
	KeyBackquote:    0xC0, // VK_OEM_3
	KeyBracketLeft:  0xDB, // VK_OEM_4
	KeyBackslash:    0xDC, // VK_OEM_5
	KeyBracketRight: 0xDD, // VK_OEM_6
	KeyQuote:        0xDE, // VK_OEM_7
},
	0x0004, // MOD_SHIFT
	0x0002, // MOD_CONTROL
	0x0001, // MOD_ALT
	0x0008, // MOD_WIN
)

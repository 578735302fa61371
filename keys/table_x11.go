package keys

// X11 keysyms (keysymdef.h). Letters use the lowercase keysym, which is what
// XKeysymToKeycode expects for unshifted grabs.
var x11Table = newTable(map[Key]uint32{
	KeyA: 0x61, KeyB: 0x62, KeyC: 0x63, KeyD: 0x64, KeyE: 0x65, KeyF: 0x66,
	KeyG: 0x67, KeyH: 0x68, KeyI: 0x69, KeyJ: 0x6A, KeyK: 0x6B, KeyL: 0x6C,
	KeyM: 0x6D, KeyN: 0x6E, KeyO: 0x6F, KeyP: 0x70, KeyQ: 0x71, KeyR: 0x72,
	KeyS: 0x73, KeyT: 0x74, KeyU: 0x75, KeyV: 0x76, KeyW: 0x77, KeyX: 0x78,
	KeyY: 0x79, KeyZ: 0x7A,

	Key0: 0x30, Key1: 0x31, Key2: 0x32, Key3: 0x33, Key4: 0x34,
	Key5: 0x35, Key6: 0x36, Key7: 0x37, Key8: 0x38, Key9: 0x39,

	KeyF1: 0xFFBE, KeyF2: 0xFFBF, KeyF3: 0xFFC0, KeyF4: 0xFFC1, KeyF5: 0xFFC2,
	KeyF6: 0xFFC3, KeyF7: 0xFFC4, KeyF8: 0xFFC5, KeyF9: 0xFFC6, KeyF10: 0xFFC7,
	KeyF11: 0xFFC8, KeyF12: 0xFFC9, KeyF13: 0xFFCA, KeyF14: 0xFFCB, KeyF15: 0xFFCC,
	KeyF16: 0xFFCD, KeyF17: 0xFFCE, KeyF18: 0xFFCF, KeyF19: 0xFFD0, KeyF20: 0xFFD1,

	KeySpace:     0x0020,
	KeyBackspace: 0xFF08,
	KeyTab:       0xFF09,
	KeyReturn:    0xFF0D,
	KeyEscape:    0xFF1B,
	KeyHome:      0xFF50,
	KeyLeft:      0xFF51,
	KeyUp:        0xFF52,
	KeyRight:     0xFF53,
	KeyDown:      0xFF54,
	KeyPageUp:    0xFF55,
	KeyPageDown:  0xFF56,
	KeyEnd:       0xFF57,
	KeyInsert:    0xFF63,
	KeyDelete:    0xFFFF,

	KeyQuote:        0x27,
	KeyComma:        0x2C,
	KeyMinus:        0x2D,
	KeyPeriod:       0x2E,
	KeySlash:        0x2F,
	KeySemicolon:    0x3B,
	KeyEqual:        0x3D,
	KeyBracketLeft:  0x5B,
	KeyBackslash:    0x5C,
	KeyBracketRight: 0x5D,
	KeyBackquote:    0x60,
},
	1<<0, // ShiftMask
	1<<2, // ControlMask
	1<<3, // Mod1Mask
	1<<6, // Mod4Mask
)

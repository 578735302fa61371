package clipboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"

	"hotkeyd/keys"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
	kbMu   sync.Mutex
)

func Init() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
		if kbErr == nil && deviceSettle > 0 {
			// The virtual keyboard must be picked up by the input stack
			// before its first event.
			time.Sleep(deviceSettle)
		}
	})
	return kbErr
}

// Paste sends the platform paste shortcut.
func Paste() error {
	if err := Init(); err != nil {
		return err
	}
	kbMu.Lock()
	defer kbMu.Unlock()
	kb.Clear()
	kb.SetKeys(keybd_event.VK_V)
	setPasteModifier(&kb)
	return kb.Launching()
}

// Tap synthesizes one press and release of c. Only letters, digits, F1-F12
// and Space can be synthesized.
func Tap(c keys.Combo) error {
	vk, ok := tapKeys[c.Key()]
	if !ok {
		return fmt.Errorf("cannot synthesize %s", c.Key())
	}
	if err := Init(); err != nil {
		return err
	}

	kbMu.Lock()
	defer kbMu.Unlock()
	kb.Clear()
	kb.SetKeys(vk)
	mods := c.Modifiers()
	kb.HasCTRL(mods.Has(keys.ModControl))
	kb.HasSHIFT(mods.Has(keys.ModShift))
	kb.HasALT(mods.Has(keys.ModAlt))
	kb.HasSuper(mods.Has(keys.ModSuper))
	return kb.Launching()
}

// CanTap reports whether Tap supports k.
func CanTap(k keys.Key) bool {
	_, ok := tapKeys[k]
	return ok
}

// Verify checks that the keyboard event binding can be created.
func Verify() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	return fmt.Sprintf("keyboard event binding OK (%s)", pasteLabel), nil
}

var tapKeys = map[keys.Key]int{
	keys.KeyA: keybd_event.VK_A, keys.KeyB: keybd_event.VK_B, keys.KeyC: keybd_event.VK_C,
	keys.KeyD: keybd_event.VK_D, keys.KeyE: keybd_event.VK_E, keys.KeyF: keybd_event.VK_F,
	keys.KeyG: keybd_event.VK_G, keys.KeyH: keybd_event.VK_H, keys.KeyI: keybd_event.VK_I,
	keys.KeyJ: keybd_event.VK_J, keys.KeyK: keybd_event.VK_K, keys.KeyL: keybd_event.VK_L,
	keys.KeyM: keybd_event.VK_M, keys.KeyN: keybd_event.VK_N, keys.KeyO: keybd_event.VK_O,
	keys.KeyP: keybd_event.VK_P, keys.KeyQ: keybd_event.VK_Q, keys.KeyR: keybd_event.VK_R,
	keys.KeyS: keybd_event.VK_S, keys.KeyT: keybd_event.VK_T, keys.KeyU: keybd_event.VK_U,
	keys.KeyV: keybd_event.VK_V, keys.KeyW: keybd_event.VK_W, keys.KeyX: keybd_event.VK_X,
	keys.KeyY: keybd_event.VK_Y, keys.KeyZ: keybd_event.VK_Z,

	keys.Key0: keybd_event.VK_0, keys.Key1: keybd_event.VK_1, keys.Key2: keybd_event.VK_2,
	keys.Key3: keybd_event.VK_3, keys.Key4: keybd_event.VK_4, keys.Key5: keybd_event.VK_5,
	keys.Key6: keybd_event.VK_6, keys.Key7: keybd_event.VK_7, keys.Key8: keybd_event.VK_8,
	keys.Key9: keybd_event.VK_9,

	keys.KeyF1: keybd_event.VK_F1, keys.KeyF2: keybd_event.VK_F2, keys.KeyF3: keybd_event.VK_F3,
	keys.KeyF4: keybd_event.VK_F4, keys.KeyF5: keybd_event.VK_F5, keys.KeyF6: keybd_event.VK_F6,
	keys.KeyF7: keybd_event.VK_F7, keys.KeyF8: keybd_event.VK_F8, keys.KeyF9: keybd_event.VK_F9,
	keys.KeyF10: keybd_event.VK_F10, keys.KeyF11: keybd_event.VK_F11, keys.KeyF12: keybd_event.VK_F12,

	keys.KeySpace: keybd_event.VK_SPACE,
}

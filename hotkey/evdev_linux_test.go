//go:build linux

package hotkey

import (
	"encoding/binary"
	"testing"

	"hotkeyd/keys"
)

func rawEvent(typ, code uint16, value int32) []byte {
	b := make([]byte, inputEventSize)
	binary.LittleEndian.PutUint16(b[16:], typ)
	binary.LittleEndian.PutUint16(b[18:], code)
	binary.LittleEndian.PutUint32(b[20:], uint32(value))
	return b
}

func TestDecodeEvent(t *testing.T) {
	ev := decodeEvent(rawEvent(evKey, 57, keyPress))
	if ev.typ != evKey || ev.code != 57 || ev.value != keyPress {
		t.Errorf("decodeEvent = %+v", ev)
	}
}

func TestKeyTracker(t *testing.T) {
	const keyK = 37

	tests := []struct {
		name     string
		events   []inputEvent
		wantMods keys.Modifier
		wantFire bool
	}{
		{
			name:     "plain press",
			events:   []inputEvent{{evKey, keyK, keyPress}},
			wantFire: true,
		},
		{
			name: "ctrl+shift held",
			events: []inputEvent{
				{evKey, keys.EvdevLeftCtrl, keyPress},
				{evKey, keys.EvdevRightShift, keyPress},
				{evKey, keyK, keyPress},
			},
			wantMods: keys.ModControl | keys.ModShift,
			wantFire: true,
		},
		{
			name: "modifier released before key",
			events: []inputEvent{
				{evKey, keys.EvdevLeftAlt, keyPress},
				{evKey, keys.EvdevLeftAlt, keyRelease},
				{evKey, keyK, keyPress},
			},
			wantFire: true,
		},
		{
			name: "left and right ctrl, one released",
			events: []inputEvent{
				{evKey, keys.EvdevLeftCtrl, keyPress},
				{evKey, keys.EvdevRightCtrl, keyPress},
				{evKey, keys.EvdevLeftCtrl, keyRelease},
				{evKey, keyK, keyPress},
			},
			wantMods: keys.ModControl,
			wantFire: true,
		},
		{
			name: "autorepeat ignored",
			events: []inputEvent{
				{evKey, keyK, keyRepeat},
			},
		},
		{
			name: "release ignored",
			events: []inputEvent{
				{evKey, keyK, keyRelease},
			},
		},
		{
			name: "non-key event",
			events: []inputEvent{
				{0, 0, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr keyTracker
			var (
				code  uint16
				mods  keys.Modifier
				fired bool
			)
			for _, ev := range tt.events {
				code, mods, fired = tr.feed(ev)
			}
			if fired != tt.wantFire {
				t.Fatalf("fired = %v, want %v", fired, tt.wantFire)
			}
			if fired && (code != keyK || mods != tt.wantMods) {
				t.Errorf("got code=%d mods=%s, want %d %s", code, mods, keyK, tt.wantMods)
			}
		})
	}
}

func TestEvdevRegisterLookup(t *testing.T) {
	b := &evdevBackend{combos: make(map[evdevCombo]NativeID), events: make(chan NativeID)}
	n, err := keys.Encode(keys.PlatformEvdev, keys.MustCombo(keys.KeySpace, keys.ModControl|keys.ModShift))
	if err != nil {
		t.Fatal(err)
	}

	h, err := b.RegisterNative(n, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.RegisterNative(n, 5); err == nil {
		t.Error("expected duplicate combo to fail")
	}
	if nid, ok := b.lookup(57, keys.ModControl|keys.ModShift); !ok || nid != 4 {
		t.Errorf("lookup = %d, %v", nid, ok)
	}
	if _, ok := b.lookup(57, keys.ModControl); ok {
		t.Error("matched with a modifier missing")
	}

	if err := h.Release(); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.lookup(57, keys.ModControl|keys.ModShift); ok {
		t.Error("combo still matched after release")
	}
}

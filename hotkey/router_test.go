package hotkey

import "testing"

func TestRouterDropsWhenUninstalled(t *testing.T) {
	var r router
	calls := 0
	r.install(NewHandlerHandle(nil))
	r.add(7, route{id: 1, cb: func(ID, any) { calls++ }})

	r.dispatch(7)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	h := r.uninstall()
	if h == nil {
		t.Fatal("uninstall returned no handler")
	}
	r.dispatch(7)
	if calls != 1 {
		t.Errorf("callback ran after uninstall")
	}
	if r.has(7) {
		t.Error("routes survived uninstall")
	}
	if r.delivered.Load() != 1 || r.dropped.Load() != 1 {
		t.Errorf("delivered=%d dropped=%d", r.delivered.Load(), r.dropped.Load())
	}
}

func TestRouterDropsUnknownNativeID(t *testing.T) {
	var r router
	r.install(NewHandlerHandle(nil))
	r.dispatch(0xBEEF)
	if r.dropped.Load() != 1 {
		t.Errorf("dropped = %d, want 1", r.dropped.Load())
	}
}

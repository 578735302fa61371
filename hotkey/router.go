package hotkey

import (
	"runtime/debug"
	"sync"
	"sync/atomic"

	"hotkeyd/log"
)

type route struct {
	id       ID
	combo    string
	cb       Callback
	userData any
}

// router maps native ids to callbacks. Its state is copied under mu and the
// callback runs after mu is released, so a callback may call back into the
// Registry.
type router struct {
	mu        sync.Mutex
	installed bool
	handler   *HandlerHandle
	routes    map[NativeID]route

	delivered atomic.Uint64
	dropped   atomic.Uint64
}

func (r *router) dispatch(nid NativeID) {
	r.mu.Lock()
	rt, ok := r.routes[nid]
	ok = ok && r.installed
	r.mu.Unlock()

	if !ok {
		r.dropped.Add(1)
		log.Dropped(uint32(nid))
		return
	}
	r.delivered.Add(1)
	log.Dispatched(uint32(rt.id), rt.combo)
	invoke(rt)
}

func invoke(rt route) {
	defer func() {
		if p := recover(); p != nil {
			log.Errorf("hotkey %d callback panic: %v\n%s", rt.id, p, debug.Stack())
		}
	}()
	rt.cb(rt.id, rt.userData)
}

func (r *router) isInstalled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installed
}

func (r *router) install(h *HandlerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.installed = true
	r.handler = h
	if r.routes == nil {
		r.routes = make(map[NativeID]route)
	}
}

// uninstall clears the routing state in one step and hands back the handler
// for the caller to release.
func (r *router) uninstall() *HandlerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.handler
	r.installed = false
	r.handler = nil
	clear(r.routes)
	return h
}

func (r *router) add(nid NativeID, rt route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[nid] = rt
}

func (r *router) remove(nid NativeID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.routes, nid)
}

func (r *router) has(nid NativeID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.routes[nid]
	return ok
}

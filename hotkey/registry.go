package hotkey

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"hotkeyd/keys"
	"hotkeyd/log"
)

// Native ids stay inside the range Win32 reserves for applications.
const (
	minNativeID NativeID = 0x0001
	maxNativeID NativeID = 0xBFFF
)

type registration struct {
	id       ID
	combo    keys.Combo
	native   keys.Native
	nativeID NativeID
	handle   *NativeHandle
}

// Registration is a read-only view of one live binding.
type Registration struct {
	ID       ID
	Combo    keys.Combo
	Native   keys.Native
	NativeID NativeID
}

// Stats counts presses seen by the dispatch handler.
type Stats struct {
	Delivered uint64
	Dropped   uint64
}

// Registry is safe for concurrent use. Register, Unregister and
// UnregisterAll are serialized; dispatch only takes the router's lock.
type Registry struct {
	mu         sync.Mutex
	backend    Backend
	regs       map[ID]*registration
	combos     map[keys.Combo]ID
	router     router
	lastNative NativeID
}

func NewRegistry(b Backend) *Registry {
	return &Registry{
		backend: b,
		regs:    make(map[ID]*registration),
		combos:  make(map[keys.Combo]ID),
	}
}

func (r *Registry) Backend() Backend { return r.backend }

// Register binds combo to cb under id. Both the id and the combo must be
// free. The dispatch handler is installed
// first if this is the only registration. On any failure nothing is left
// behind: no registration, no native hotkey and no handler that this call
// installed.
func (r *Registry) Register(id ID, combo keys.Combo, cb Callback, userData any) error {
	if cb == nil {
		return fmt.Errorf("register hotkey %d: %w", id, ErrNilCallback)
	}
	native, err := keys.Encode(r.backend.Platform(), combo)
	if err != nil {
		return fmt.Errorf("register hotkey %d: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.regs[id]; exists {
		return fmt.Errorf("register hotkey %d: %w", id, ErrAlreadyRegistered)
	}
	if owner, taken := r.combos[combo]; taken {
		return fmt.Errorf("register hotkey %d: %s is bound to hotkey %d: %w", id, combo, owner, ErrAlreadyRegistered)
	}

	installedHere := false
	if !r.router.isInstalled() {
		if err := r.installLocked(); err != nil {
			return fmt.Errorf("register hotkey %d: %w", id, err)
		}
		installedHere = true
	}

	nid, err := r.allocNativeIDLocked()
	if err != nil {
		r.abandonLocked(installedHere)
		return fmt.Errorf("register hotkey %d: %w", id, err)
	}

	// Route before the OS registration so the first press cannot race it.
	r.router.add(nid, route{id: id, combo: combo.String(), cb: cb, userData: userData})

	h, err := r.backend.RegisterNative(native, nid)
	if err != nil {
		r.router.remove(nid)
		r.abandonLocked(installedHere)
		return fmt.Errorf("register hotkey %d (%s): %w", id, combo, asBackendError(r.backend.Name(), "register", err))
	}

	r.regs[id] = &registration{id: id, combo: combo, native: native, nativeID: nid, handle: h}
	r.combos[combo] = id
	r.lastNative = nid
	log.Registered(uint32(id), combo.String(), native.String(), uint32(nid))
	return nil
}

// RegisterSpec parses spec with keys.Parse and registers the result.
func (r *Registry) RegisterSpec(id ID, spec string, cb Callback, userData any) error {
	combo, err := keys.Parse(spec)
	if err != nil {
		return fmt.Errorf("register hotkey %d: %w", id, err)
	}
	return r.Register(id, combo, cb, userData)
}

// Unregister removes id. When it was the last registration the dispatch
// handler is removed too.
func (r *Registry) Unregister(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.regs[id]
	if !ok {
		return fmt.Errorf("unregister hotkey %d: %w", id, ErrNotFound)
	}
	if err := r.releaseLocked(reg); err != nil {
		return err
	}
	if len(r.regs) == 0 {
		if err := r.uninstallLocked(); err != nil {
			return fmt.Errorf("unregister hotkey %d: %w", id, err)
		}
	}
	return nil
}

// UnregisterAll releases every registration and then the handler. It keeps
// going past failures and reports all of them.
func (r *Registry) UnregisterAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, id := range r.sortedIDsLocked() {
		if err := r.releaseLocked(r.regs[id]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(r.regs) == 0 && r.router.isInstalled() {
		if err := r.uninstallLocked(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close is UnregisterAll.
func (r *Registry) Close() error {
	return r.UnregisterAll()
}

func (r *Registry) IsRegistered(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.regs[id]
	return ok
}

// IsComboRegistered reports whether combo is bound to any id.
func (r *Registry) IsComboRegistered(combo keys.Combo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.combos[combo]
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}

func (r *Registry) Lookup(id ID) (Registration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[id]
	if !ok {
		return Registration{}, false
	}
	return reg.view(), true
}

// Registrations returns every live binding ordered by ID.
func (r *Registry) Registrations() []Registration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Registration, 0, len(r.regs))
	for _, id := range r.sortedIDsLocked() {
		out = append(out, r.regs[id].view())
	}
	return out
}

// HandlerInstalled reports whether the dispatch handler is live.
func (r *Registry) HandlerInstalled() bool {
	return r.router.isInstalled()
}

func (r *Registry) Stats() Stats {
	return Stats{
		Delivered: r.router.delivered.Load(),
		Dropped:   r.router.dropped.Load(),
	}
}

func (reg *registration) view() Registration {
	return Registration{ID: reg.id, Combo: reg.combo, Native: reg.native, NativeID: reg.nativeID}
}

func (r *Registry) sortedIDsLocked() []ID {
	ids := make([]ID, 0, len(r.regs))
	for id := range r.regs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) installLocked() error {
	h, err := r.backend.InstallHandler(r.router.dispatch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandlerInstallFailed, asBackendError(r.backend.Name(), "install handler", err))
	}
	r.router.install(h)
	log.HandlerInstalled(r.backend.Name())
	return nil
}

func (r *Registry) uninstallLocked() error {
	h := r.router.uninstall()
	if err := h.Release(); err != nil && !errors.Is(err, ErrHandleReleased) {
		r.router.install(h)
		return asBackendError(r.backend.Name(), "remove handler", err)
	}
	log.HandlerRemoved(r.backend.Name())
	return nil
}

// abandonLocked undoes a handler install made by a Register that failed.
func (r *Registry) abandonLocked(installedHere bool) {
	if !installedHere {
		return
	}
	if err := r.uninstallLocked(); err != nil {
		log.Warnf("rollback: %v", err)
	}
}

// releaseLocked drops reg. The OS registration goes first; the route stays
// until it is gone so a press racing the unregister still finds a callback.
// On failure reg stays registered.
func (r *Registry) releaseLocked(reg *registration) error {
	if err := reg.handle.Release(); err != nil && !errors.Is(err, ErrHandleReleased) {
		return fmt.Errorf("unregister hotkey %d (%s): %w", reg.id, reg.combo, asBackendError(r.backend.Name(), "unregister", err))
	}
	r.router.remove(reg.nativeID)
	delete(r.regs, reg.id)
	delete(r.combos, reg.combo)
	log.Unregistered(uint32(reg.id), reg.combo.String())
	return nil
}

// allocNativeIDLocked hands out ids in increasing order, wrapping at the top
// of the range and skipping ids that are still live.
func (r *Registry) allocNativeIDLocked() (NativeID, error) {
	next := r.lastNative
	for range int(maxNativeID - minNativeID + 1) {
		next++
		if next < minNativeID || next > maxNativeID {
			next = minNativeID
		}
		if !r.router.has(next) {
			return next, nil
		}
	}
	return 0, ErrNativeIDsExhausted
}

package session

import (
	"strconv"
	"sync"
)

// SlotRegistry tracks the save slots held by live connections so that two
// connections never write the same slot. Thread-safe for concurrent access.
type SlotRegistry struct {
	mu    sync.Mutex
	slots map[string]struct{}
}

// NewSlotRegistry creates an empty registry.
func NewSlotRegistry() *SlotRegistry {
	return &SlotRegistry{slots: make(map[string]struct{})}
}

// Claim reserves base, or the first free of base#2, base#3 and so on when
// it is already held. release frees the slot and may be called more than once.
func (r *SlotRegistry) Claim(base string) (slot string, release func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot = base
	for n := 2; ; n++ {
		if _, held := r.slots[slot]; !held {
			break
		}
		slot = base + "#" + strconv.Itoa(n)
	}
	r.slots[slot] = struct{}{}

	var once sync.Once
	return slot, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.slots, slot)
		})
	}
}

// Held reports whether slot is claimed.
func (r *SlotRegistry) Held(slot string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.slots[slot]
	return ok
}

// Count returns the number of claimed slots.
func (r *SlotRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

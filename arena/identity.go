package arena

import "sync"

// freeSlot is a released (index, epoch) pair available for reuse.
type freeSlot struct {
	index Index
	epoch Epoch
}

// IdentityManager allocates and recycles generational IDs for one entity
// kind. Thread-safe: the device's disposal thread releases IDs concurrently
// with allocation requests from frame-producing goroutines.
type IdentityManager[T Marker] struct {
	mu        sync.Mutex
	free      []freeSlot
	nextIndex Index
	count     uint64
}

// NewIdentityManager creates an empty identity manager.
func NewIdentityManager[T Marker]() *IdentityManager[T] {
	return &IdentityManager[T]{free: make([]freeSlot, 0, 64)}
}

// Alloc returns a fresh ID. Epochs start at 1 so the zero ID is always
// invalid and can be used as a "no handle" sentinel.
func (m *IdentityManager[T]) Alloc() ID[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count++
	if n := len(m.free); n > 0 {
		slot := m.free[n-1]
		m.free = m.free[:n-1]
		return NewID[T](slot.index, slot.epoch+1)
	}
	index := m.nextIndex
	m.nextIndex++
	return NewID[T](index, 1)
}

// Release invalidates id: its index becomes available for reuse with a
// higher epoch, so any ID captured before this call reads as not-found.
func (m *IdentityManager[T]) Release(id ID[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free = append(m.free, freeSlot{index: id.Index(), epoch: id.Epoch()})
	m.count--
}

// Count returns the number of currently live IDs.
func (m *IdentityManager[T]) Count() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

package snapshot

import "sync/atomic"

// Holder publishes the current snapshot. Readers always observe either the
// old or the new snapshot in full.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder returns a holder seeded with s, or with an empty snapshot when
// s is nil.
func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	h.Swap(s)
	return h
}

// Snapshot returns the current snapshot.
func (h *Holder) Snapshot() *Snapshot {
	return h.current.Load()
}

// Swap replaces the current snapshot and returns the previous one.
func (h *Holder) Swap(s *Snapshot) *Snapshot {
	if s == nil {
		s = Empty()
	}
	return h.current.Swap(s)
}

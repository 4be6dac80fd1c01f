package monitor

import "sync/atomic"

// atomicSnapshot is a lock-free single-slot store for the latest
// Snapshot, so a monitoring HTTP request can never block a round.
type atomicSnapshot struct {
	v atomic.Value
}

func (a *atomicSnapshot) store(s Snapshot) { a.v.Store(s) }

func (a *atomicSnapshot) load() Snapshot {
	v := a.v.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

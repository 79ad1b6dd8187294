package nav

import "sync"

// Slot names a region that shows the result of one in-flight fetch at a time.
type Slot int

const (
	HomeGenreSlot Slot = iota
	GenresSlot
	SearchSlot
	DetailSlot
)

// Ticket tags an outgoing fetch. Only the most recent ticket for a slot is current.
type Ticket struct {
	Slot Slot
	Seq  uint64
}

// Tracker hands out tickets and reports which ones are stale. The zero value is ready to use.
type Tracker struct {
	mu     sync.Mutex
	latest map[Slot]uint64
}

func NewTracker() *Tracker {
	return &Tracker{latest: make(map[Slot]uint64)}
}

// Begin issues a ticket for slot, making every earlier ticket for that slot stale.
func (t *Tracker) Begin(slot Slot) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		t.latest = make(map[Slot]uint64)
	}
	t.latest[slot]++
	return Ticket{Slot: slot, Seq: t.latest[slot]}
}

// Current reports whether tk is still the latest ticket for its slot.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk.Seq != 0 && t.latest[tk.Slot] == tk.Seq
}

// Invalidate makes every outstanding ticket for slot stale.
func (t *Tracker) Invalidate(slot Slot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		t.latest = make(map[Slot]uint64)
	}
	t.latest[slot]++
}

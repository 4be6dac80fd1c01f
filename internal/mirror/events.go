package mirror

import (
	"container/heap"
	"sync/atomic"

	"rotablekit/internal/catalog"
)

// MovementKind is the type of a pending kit movement tracked by the
// mirror while it is not sitting in an airport's inventory.
type MovementKind int

const (
	// MovementInTransit is kits loaded onto a flight, airborne until the
	// flight's effective arrival hour.
	MovementInTransit MovementKind = iota
	// MovementProcessing is kits that landed and are being turned around
	// (cleaned/restocked) before they re-enter inventory.
	MovementProcessing
	// MovementPurchaseDelivery is a purchased batch of one class in transit
	// from the vendor to the hub.
	MovementPurchaseDelivery
)

// Priority mirrors the teacher's EventType.Priority: lower runs first when
// two movements complete at the same hour. Deliveries land before landings
// resolve, which land before processing completes, so a kit that both
// lands and finishes processing in the same hour is available for the
// same hour's outbound loads in a single deterministic pass.
func (k MovementKind) Priority() int {
	switch k {
	case MovementPurchaseDelivery:
		return 0
	case MovementInTransit:
		return 1
	case MovementProcessing:
		return 2
	default:
		return 99
	}
}

func (k MovementKind) String() string {
	switch k {
	case MovementInTransit:
		return "IN_TRANSIT"
	case MovementProcessing:
		return "PROCESSING"
	case MovementPurchaseDelivery:
		return "PURCHASE_DELIVERY"
	default:
		return "UNKNOWN"
	}
}

// Movement is a single completion event: at CompletesAt hour, Quantity
// kits of Class reach Airport. Processing and PurchaseDelivery movements
// add to inventory on completion; an InTransit movement adds nothing and
// is requeued as a Processing movement (see State.AdvanceTo).
type Movement struct {
	Kind        MovementKind
	FlightID    string // empty for purchase deliveries
	Airport     string
	Class       catalog.Class
	Quantity    int
	CompletesAt int
	Sequence    int64
}

var movementSequence int64

type movementHeap []Movement

func (h movementHeap) Len() int { return len(h) }

func (h movementHeap) Less(i, j int) bool {
	if h[i].CompletesAt != h[j].CompletesAt {
		return h[i].CompletesAt < h[j].CompletesAt
	}
	if h[i].Kind.Priority() != h[j].Kind.Priority() {
		return h[i].Kind.Priority() < h[j].Kind.Priority()
	}
	return h[i].Sequence < h[j].Sequence
}

func (h movementHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *movementHeap) Push(x any) {
	*h = append(*h, x.(Movement))
}

func (h *movementHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// MovementQueue orders pending kit movements by (CompletesAt, Priority,
// Sequence), the same deterministic tiebreak the teacher's EventQueue
// uses for simulation events.
type MovementQueue struct {
	h movementHeap
}

func NewMovementQueue() *MovementQueue {
	q := &MovementQueue{h: make(movementHeap, 0)}
	heap.Init(&q.h)
	return q
}

func (q *MovementQueue) Push(m Movement) {
	m.Sequence = atomic.AddInt64(&movementSequence, 1)
	heap.Push(&q.h, m)
}

func (q *MovementQueue) Peek() (Movement, bool) {
	if len(q.h) == 0 {
		return Movement{}, false
	}
	return q.h[0], true
}

func (q *MovementQueue) Pop() (Movement, bool) {
	if len(q.h) == 0 {
		return Movement{}, false
	}
	return heap.Pop(&q.h).(Movement), true
}

func (q *MovementQueue) Len() int { return len(q.h) }

// Snapshot returns every pending movement without removing them, sorted by
// completion order. Used for horizon forecasting and monitoring.
func (q *MovementQueue) Snapshot() []Movement {
	out := make([]Movement, len(q.h))
	copy(out, q.h)
	sorted := movementHeap(out)
	heap.Init(&sorted)
	result := make([]Movement, 0, len(sorted))
	for sorted.Len() > 0 {
		result = append(result, heap.Pop(&sorted).(Movement))
	}
	return result
}

package orchestration

import (
	"sync"

	"github.com/vfirsov/kernel/contracts"
)

// readyOrder is a FIFO arrival tracker used by the scheduler to break
// priority ties deterministically: among nodes with equal tool/non-tool
// category and equal budget, the one that became ready first goes first.
//
// Adapted from the teacher's queueManager (an in-memory FIFO queue);
// repurposed here from a standalone ready-queue into an ordering helper,
// since the scheduler computes readiness directly from the TaskGraph on
// every tick rather than draining an enqueue/dequeue queue.
type readyOrder struct {
	mu    sync.Mutex
	order map[contracts.NodeID]int
	next  int
}

// newReadyOrder creates an empty FIFO arrival tracker.
func newReadyOrder() *readyOrder {
	return &readyOrder{order: make(map[contracts.NodeID]int)}
}

// Seen records the first time id is observed ready; subsequent calls are no-ops.
func (q *readyOrder) Seen(id contracts.NodeID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.order[id]; ok {
		return
	}
	q.order[id] = q.next
	q.next++
}

// Index returns id's arrival order, or the count of known ids if unseen.
func (q *readyOrder) Index(id contracts.NodeID) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if idx, ok := q.order[id]; ok {
		return idx
	}
	return q.next
}

// Forget clears tracking for id, e.g. once it has been spawned.
func (q *readyOrder) Forget(id contracts.NodeID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.order, id)
}

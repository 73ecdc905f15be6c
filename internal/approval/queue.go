// Package approval implements the process-wide Approval Queue that
// holds pending HIGH-risk requests awaiting a human decision.
package approval

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/vfirsov/kernel/contracts"
)

const defaultTimeout = 30 * time.Minute

// queue implements contracts.ApprovalQueue. Pending requests live both
// in an ordered map (for GetPending) and in a go-cache instance whose
// per-item TTL drives the implicit-reject-on-timeout behavior; the
// cache's eviction callback resolves any in-flight Await the moment a
// request times out, mirroring the teacher's store.go pattern of a
// mutex-guarded map as the system of record.
type queue struct {
	mu      sync.Mutex
	pending map[contracts.ApprovalID]*contracts.ApprovalRequest
	waiters map[contracts.ApprovalID][]chan contracts.ApprovalStatus
	timeout time.Duration
	expiry  *gocache.Cache
}

// NewApprovalQueue creates an ApprovalQueue whose requests implicitly
// reject after timeout (default 30 minutes when timeout <= 0).
func NewApprovalQueue(timeout time.Duration) contracts.ApprovalQueue {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cleanupInterval := timeout / 2
	if cleanupInterval <= 0 {
		cleanupInterval = time.Second
	}
	q := &queue{
		pending: make(map[contracts.ApprovalID]*contracts.ApprovalRequest),
		waiters: make(map[contracts.ApprovalID][]chan contracts.ApprovalStatus),
		timeout: timeout,
		expiry:  gocache.New(timeout, cleanupInterval),
	}
	q.expiry.OnEvicted(func(key string, _ interface{}) {
		q.resolve(contracts.ApprovalID(key), contracts.ApprovalRejected, true)
	})
	return q
}

func (q *queue) Enqueue(req contracts.ApprovalRequest) contracts.ApprovalID {
	if req.ID == "" {
		req.ID = contracts.ApprovalID(uuid.NewString())
	}
	req.Status = contracts.ApprovalPending

	q.mu.Lock()
	q.pending[req.ID] = &req
	q.mu.Unlock()

	q.expiry.Set(string(req.ID), struct{}{}, q.timeout)
	return req.ID
}

func (q *queue) GetPending() []contracts.ApprovalRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]contracts.ApprovalRequest, 0, len(q.pending))
	for _, r := range q.pending {
		if r.Status == contracts.ApprovalPending {
			out = append(out, *r)
		}
	}
	return out
}

func (q *queue) Approve(id contracts.ApprovalID) bool {
	return q.resolve(id, contracts.ApprovalApproved, false)
}

func (q *queue) Reject(id contracts.ApprovalID) bool {
	return q.resolve(id, contracts.ApprovalRejected, false)
}

// resolve transitions id to status if it is still pending. fromTimeout
// distinguishes the cache-eviction path (where the entry is already
// gone from q.expiry) from an explicit caller-driven Approve/Reject
// (which must also clear the now-redundant cache entry).
func (q *queue) resolve(id contracts.ApprovalID, status contracts.ApprovalStatus, fromTimeout bool) bool {
	q.mu.Lock()
	req, ok := q.pending[id]
	if !ok || req.Status != contracts.ApprovalPending {
		q.mu.Unlock()
		return false
	}
	req.Status = status
	waiters := q.waiters[id]
	delete(q.waiters, id)
	q.mu.Unlock()

	if !fromTimeout {
		q.expiry.Delete(string(id))
	}
	for _, ch := range waiters {
		ch <- status
		close(ch)
	}
	return true
}

func (q *queue) Await(ctx context.Context, id contracts.ApprovalID) contracts.ApprovalStatus {
	q.mu.Lock()
	req, ok := q.pending[id]
	if !ok {
		q.mu.Unlock()
		return contracts.ApprovalRejected
	}
	if req.Status != contracts.ApprovalPending {
		status := req.Status
		q.mu.Unlock()
		return status
	}
	ch := make(chan contracts.ApprovalStatus, 1)
	q.waiters[id] = append(q.waiters[id], ch)
	q.mu.Unlock()

	select {
	case status := <-ch:
		return status
	case <-ctx.Done():
		return contracts.ApprovalRejected
	}
}

package approval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfirsov/kernel/contracts"
)

func TestApprovalQueue_ApproveResolvesAwait(t *testing.T) {
	q := NewApprovalQueue(time.Minute)
	id := q.Enqueue(contracts.ApprovalRequest{Operation: "deploy", Target: "production"})

	done := make(chan contracts.ApprovalStatus, 1)
	go func() { done <- q.Await(context.Background(), id) }()

	time.Sleep(10 * time.Millisecond)
	assert.True(t, q.Approve(id))

	select {
	case status := <-done:
		assert.Equal(t, contracts.ApprovalApproved, status)
	case <-time.After(time.Second):
		t.Fatal("Await did not resolve")
	}
}

func TestApprovalQueue_RejectIsIdempotentOnTerminalState(t *testing.T) {
	q := NewApprovalQueue(time.Minute)
	id := q.Enqueue(contracts.ApprovalRequest{Operation: "delete"})

	require.True(t, q.Reject(id))
	assert.False(t, q.Reject(id))
	assert.False(t, q.Approve(id))
}

func TestApprovalQueue_UnknownIDReturnsFalse(t *testing.T) {
	q := NewApprovalQueue(time.Minute)
	assert.False(t, q.Approve("nonexistent"))
	assert.False(t, q.Reject("nonexistent"))
}

func TestApprovalQueue_GetPendingExcludesResolved(t *testing.T) {
	q := NewApprovalQueue(time.Minute)
	idA := q.Enqueue(contracts.ApprovalRequest{Operation: "a"})
	_ = q.Enqueue(contracts.ApprovalRequest{Operation: "b"})
	q.Approve(idA)

	pending := q.GetPending()
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].Operation)
}

func TestApprovalQueue_AwaitTimesOutToImplicitReject(t *testing.T) {
	q := NewApprovalQueue(20 * time.Millisecond)
	id := q.Enqueue(contracts.ApprovalRequest{Operation: "install"})

	status := q.Await(context.Background(), id)
	assert.Equal(t, contracts.ApprovalRejected, status)
}

func TestApprovalQueue_AwaitRespectsContextCancellation(t *testing.T) {
	q := NewApprovalQueue(time.Minute)
	id := q.Enqueue(contracts.ApprovalRequest{Operation: "install"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	status := q.Await(ctx, id)
	assert.Equal(t, contracts.ApprovalRejected, status)
}

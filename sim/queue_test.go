package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitQueue_Peek_Empty_ReturnsNil(t *testing.T) {
	// GIVEN an empty queue
	wq := &WaitQueue{}

	// WHEN Peek() and PopHead() are called
	// THEN both return nil
	assert.Nil(t, wq.Peek())
	assert.Nil(t, wq.PopHead())
	assert.Equal(t, 0, wq.Len())
}

func TestWaitQueue_Insert_KeepsRankOrder(t *testing.T) {
	// GIVEN customers inserted in an arbitrary order
	wq := &WaitQueue{}
	wq.Insert(NewCustomer(1, 5, 10, 1))
	wq.Insert(NewCustomer(2, 0, 10, 3))
	wq.Insert(NewCustomer(3, 0, 4, 1))
	wq.Insert(NewCustomer(4, 5, 10, 1))
	wq.Insert(NewCustomer(5, 0, 10, 1))

	// THEN they are ordered by priority, arrival, service, ID
	assert.Equal(t, []int{2, 3, 5, 1, 4}, wq.IDs())
	assert.True(t, wq.IsSorted())
}

func TestWaitQueue_Peek_NonEmpty_ReturnsHeadWithoutRemoving(t *testing.T) {
	wq := &WaitQueue{}
	a := NewCustomer(1, 0, 5, 1)
	b := NewCustomer(2, 0, 5, 2)
	wq.Insert(a)
	wq.Insert(b)

	assert.Same(t, b, wq.Peek())
	assert.Equal(t, 2, wq.Len())
}

func TestWaitQueue_PopHead_PreservesRemainingOrder(t *testing.T) {
	// GIVEN a queue [A, B, C]
	wq := &WaitQueue{}
	wq.Insert(NewCustomer(1, 0, 1, 3))
	wq.Insert(NewCustomer(2, 0, 1, 2))
	wq.Insert(NewCustomer(3, 0, 1, 1))

	// WHEN the head is popped
	head := wq.PopHead()

	// THEN A is returned and [B, C] remain in order
	require.NotNil(t, head)
	assert.Equal(t, 1, head.ID)
	assert.Equal(t, []int{2, 3}, wq.IDs())

	// AND popping drains exactly the live elements
	assert.Equal(t, 2, wq.PopHead().ID)
	assert.Equal(t, 3, wq.PopHead().ID)
	assert.Nil(t, wq.PopHead())
}

func TestWaitQueue_EqualRank_FirstInFirstServed(t *testing.T) {
	// GIVEN two distinct customers with identical comparator rank
	wq := &WaitQueue{}
	first := NewCustomer(7, 1, 2, 3)
	second := NewCustomer(7, 1, 2, 3)
	other := NewCustomer(8, 0, 1, 9)

	// WHEN they are inserted first, second (with an unrelated customer in between)
	wq.Insert(first)
	wq.Insert(other)
	wq.Insert(second)

	// THEN they leave in enqueue order
	assert.Same(t, other, wq.PopHead())
	assert.Same(t, first, wq.PopHead())
	assert.Same(t, second, wq.PopHead())
}

func TestWaitQueue_RandomInsertRemove_AlwaysSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	wq := &WaitQueue{}
	nextID := 0
	for i := 0; i < 500; i++ {
		if wq.Len() > 0 && rng.Intn(3) == 0 {
			wq.PopHead()
		} else {
			nextID++
			wq.Insert(NewCustomer(nextID, int64(rng.Intn(5)), int64(rng.Intn(5)), rng.Intn(4)))
		}
		if !wq.IsSorted() {
			t.Fatalf("queue out of order after step %d: %s", i, wq)
		}
	}
}

func TestWaitQueue_Insert_ManyCustomers_StaysSorted(t *testing.T) {
	wq := &WaitQueue{}
	for i := 0; i < 250; i++ {
		wq.Insert(NewCustomer(i, int64(i%7), 1, i%3))
	}
	assert.Equal(t, 250, wq.Len())
	assert.True(t, wq.IsSorted())
}

func TestWaitQueue_String(t *testing.T) {
	wq := &WaitQueue{}
	wq.Insert(NewCustomer(1, 0, 2, 3))
	assert.Equal(t, "[#1(p=3, a=0, s=2)]", wq.String())
}

func TestWaitQueue_Remove_KeepsOrderOfTheRest(t *testing.T) {
	// GIVEN three queued customers
	wq := &WaitQueue{}
	a, b, c := NewCustomer(1, 0, 1, 3), NewCustomer(2, 0, 1, 2), NewCustomer(3, 0, 1, 1)
	wq.Insert(c)
	wq.Insert(a)
	wq.Insert(b)

	// WHEN the middle one is removed
	removed := wq.Remove(b)

	// THEN the others keep their order and a second removal finds nothing
	assert.True(t, removed)
	assert.Equal(t, []int{1, 3}, wq.IDs())
	assert.False(t, wq.Remove(b))
	assert.True(t, wq.IsSorted())
}

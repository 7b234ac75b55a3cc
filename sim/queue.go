// Implements the WaitQueue, which holds customers waiting for the clerk.
// Customers are inserted at their ranked position, so the head is always next.

package sim

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// WaitQueue is a ranked queue of customers waiting to be admitted.
// Order is descending by Outranks; customers of equal rank keep their enqueue order.
// All methods must be called with the owning ClerkMonitor's lock held.
type WaitQueue struct {
	queue []*Customer
}

// Insert places c after every queued customer that c does not outrank.
func (wq *WaitQueue) Insert(c *Customer) {
	if c == nil {
		panic("Insert: customer must not be nil")
	}
	r := c.Rank()
	i := sort.Search(len(wq.queue), func(i int) bool {
		return Outranks(r, wq.queue[i].Rank())
	})
	wq.queue = slices.Insert(wq.queue, i, c)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(val.Rank().String())
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of customers in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the customer at the head of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Customer {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// PopHead removes and returns the head of the queue, preserving the order of the rest.
// Returns nil if the queue is empty.
func (wq *WaitQueue) PopHead() *Customer {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}

// Remove takes c out of the queue wherever it is, preserving the order of the
// rest. Reports whether c was queued.
func (wq *WaitQueue) Remove(c *Customer) bool {
	for i, q := range wq.queue {
		if q == c {
			wq.queue = slices.Delete(wq.queue, i, i+1)
			return true
		}
	}
	return false
}

// IDs returns the queued customer IDs in service order.
func (wq *WaitQueue) IDs() []int {
	ids := make([]int, len(wq.queue))
	for i, c := range wq.queue {
		ids[i] = c.ID
	}
	return ids
}

// IsSorted reports whether no customer is queued behind one it outranks.
func (wq *WaitQueue) IsSorted() bool {
	for i := 1; i < len(wq.queue); i++ {
		if Outranks(wq.queue[i].Rank(), wq.queue[i-1].Rank()) {
			return false
		}
	}
	return true
}

// validate panics if the ordering invariant is broken.
func (wq *WaitQueue) validate() {
	if !wq.IsSorted() {
		panic(fmt.Sprintf("wait queue out of order: %s", wq))
	}
}

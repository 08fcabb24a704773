package reminder

import (
	"container/heap"
	"time"
)

// entry is one pending wake-up: evaluate this user's category at time at.
type entry struct {
	at       time.Time // UTC
	user     string
	category string
}

func (e *entry) key() string {
	return e.user + "/" + e.category
}

type sendQueue struct {
	backingArray []*entry          // heap order
	entries      map[string]*entry // actual entries, one per user+category
}

func newSendQueue() *sendQueue {
	q := &sendQueue{
		backingArray: []*entry{},
		entries:      make(map[string]*entry),
	}
	heap.Init(q)
	return q
}

func (q sendQueue) Len() int {
	return len(q.backingArray)
}

func (q sendQueue) Less(i, j int) bool {
	return q.backingArray[i].at.Before(q.backingArray[j].at)
}

func (q sendQueue) Swap(i, j int) {
	q.backingArray[j], q.backingArray[i] = q.backingArray[i], q.backingArray[j]
}

func (q *sendQueue) Push(x any) {
	e, ok := x.(*entry)
	if !ok {
		return
	}

	// only one pending wake-up per user+category
	if old, ok := q.entries[e.key()]; ok && old != e {
		q.remove(old)
	}
	q.entries[e.key()] = e
	q.backingArray = append(q.backingArray, e)
}

func (q *sendQueue) Pop() any {
	if len(q.backingArray) == 0 {
		return nil
	}

	ba := q.backingArray
	n := len(ba)
	q.backingArray = ba[:n-1]
	popped := ba[n-1]
	delete(q.entries, popped.key())

	return popped
}

func (q *sendQueue) Peek() *entry {
	if len(q.backingArray) == 0 {
		return nil
	}
	return q.backingArray[0]
}

func (q *sendQueue) remove(e *entry) {
	for i, x := range q.backingArray {
		if x == e {
			heap.Remove(q, i)
			return
		}
	}
}

// Delete drops the pending wake-up for one user+category, if any.
func (q *sendQueue) Delete(user, category string) {
	if e, ok := q.entries[user+"/"+category]; ok {
		q.remove(e)
	}
}

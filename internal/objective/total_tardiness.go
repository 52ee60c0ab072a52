package objective

import (
	"container/heap"
	"math"

	"rseclp/internal/model"
)

// TotalTardiness is objVal = Σ max(0, completion_i - due_i). Smaller is
// better.
type TotalTardiness struct{}

func (TotalTardiness) WorstValue() float64 { return math.MaxFloat64 }

func (TotalTardiness) IsBetter(a, b float64) bool { return a < b }

// ComputeForOperation returns the tardiness of a single operation under st.
func (TotalTardiness) ComputeForOperation(st model.StartTimes, op model.Operation) int {
	return op.Tardiness(st[op.Index])
}

func (t TotalTardiness) Compute(ins *model.Instance, st model.StartTimes) float64 {
	objVal := 0
	for _, op := range ins.Operations() {
		objVal += t.ComputeForOperation(st, op)
	}
	return float64(objVal)
}

// ComputeUpToPosition sums tardiness over ordered[0..upToPosition], inclusive.
// upToPosition == -1 means the empty prefix (returns 0).
func (t TotalTardiness) ComputeUpToPosition(st model.StartTimes, ordered []model.Operation, upToPosition int) float64 {
	objVal := 0
	for position := 0; position <= upToPosition; position++ {
		objVal += t.ComputeForOperation(st, ordered[position])
	}
	return float64(objVal)
}

// ComputeLowerBoundChu computes an admissible lower bound on the total
// tardiness of an Instance given a fixed prefix (positions
// 0..NumOperations()-len(remaining)-1 already scheduled in st) and the set of
// remaining operation indices still to be placed.
//
// It preemptively simulates the remaining operations on a single machine by
// shortest-remaining-processing-time among released operations, completing
// each finished operation against the smallest outstanding due date. This is
// the Chu bound (Chu, "A branch-and-bound algorithm to minimize total
// tardiness with different release dates", Naval Research Logistics, 1992).
func (t TotalTardiness) ComputeLowerBoundChu(
	ins *model.Instance,
	ordered []model.Operation,
	st model.StartTimes,
	remainingOperationIndices map[int]struct{},
) float64 {
	forPosition := ins.NumOperations() - len(remainingOperationIndices)

	remainingProcessingTimes := make([]int, ins.NumOperations())
	ready := &operationHeap{less: func(a, b model.Operation) bool {
		return remainingProcessingTimes[a.Index] < remainingProcessingTimes[b.Index]
	}}
	notReady := &operationHeap{less: func(a, b model.Operation) bool {
		return a.ReleaseTime < b.ReleaseTime
	}}
	dueDates := &intHeap{}

	for idx := range remainingOperationIndices {
		op := ins.Operation(idx)
		remainingProcessingTimes[op.Index] = op.ProcessingTime
		heap.Push(notReady, op)
		heap.Push(dueDates, op.DueDate)
	}

	t0 := 0
	if forPosition > 0 {
		prev := ordered[forPosition-1]
		t0 = st[prev.Index] + prev.ProcessingTime
	}
	now := t0
	objVal := 0

	for ready.Len()+notReady.Len() > 0 {
		if ready.Len() == 0 {
			next := heap.Pop(notReady).(model.Operation)
			now = next.ReleaseTime
			heap.Push(ready, next)
		}

		for notReady.Len() > 0 && notReady.peek().ReleaseTime <= now {
			heap.Push(ready, heap.Pop(notReady).(model.Operation))
		}

		toSchedule := heap.Pop(ready).(model.Operation)
		tBound := now + remainingProcessingTimes[toSchedule.Index]
		if notReady.Len() > 0 {
			if r := notReady.peek().ReleaseTime; r < tBound {
				tBound = r
			}
		}

		remainingProcessingTimes[toSchedule.Index] -= tBound - now
		if remainingProcessingTimes[toSchedule.Index] > 0 {
			heap.Push(ready, toSchedule)
		} else {
			tard := tBound - dueDates.peek()
			if tard > 0 {
				objVal += tard
			}
			heap.Pop(dueDates)
		}

		now = tBound
	}

	return t.ComputeUpToPosition(st, ordered, forPosition-1) + float64(objVal)
}

// operationHeap is a container/heap.Interface over model.Operation with a
// caller-supplied ordering; used for the ready-by-remaining-processing-time
// and not-ready-by-release-time priority queues in the Chu bound.
type operationHeap struct {
	items []model.Operation
	less  func(a, b model.Operation) bool
}

func (h *operationHeap) Len() int            { return len(h.items) }
func (h *operationHeap) Less(i, j int) bool  { return h.less(h.items[i], h.items[j]) }
func (h *operationHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *operationHeap) Push(x interface{})  { h.items = append(h.items, x.(model.Operation)) }
func (h *operationHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
func (h *operationHeap) peek() model.Operation { return h.items[0] }

// intHeap is a stdlib min-heap of due dates.
type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
func (h intHeap) peek() int { return h[0] }

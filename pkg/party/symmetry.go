package party

import "sort"

// partitionByShape groups boat positions by identical (crew, capacity).
// Such boats are interchangeable: swapping two of them maps any feasible
// schedule to another feasible schedule, so both host-set enumeration and
// in-search value ordering treat each group as one shape.
//
// The fleet is already in ascending identifier order, so groups come out
// sorted by (crew, capacity) with members ascending.
func partitionByShape(fleet []Boat) (classes [][]int, classOf []int) {
	order := make([]int, len(fleet))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := fleet[order[i]], fleet[order[j]]
		if a.Crew != b.Crew {
			return a.Crew < b.Crew
		}
		if a.Capacity != b.Capacity {
			return a.Capacity < b.Capacity
		}
		return a.ID < b.ID
	})

	classOf = make([]int, len(fleet))
	for _, pos := range order {
		b := fleet[pos]
		if len(classes) == 0 || !sameShape(fleet[classes[len(classes)-1][0]], b) {
			classes = append(classes, nil)
		}
		ci := len(classes) - 1
		classes[ci] = append(classes[ci], pos)
		classOf[pos] = ci
	}
	return classes, classOf
}

func sameShape(a, b Boat) bool {
	return a.Crew == b.Crew && a.Capacity == b.Capacity
}

// hostSetIterator enumerates candidate host sets of size k, one canonical
// set per per-class count vector: choosing how many hosts each shape
// contributes and then taking that shape's lowest-ID boats makes every
// vector's representative unique. The enumeration is exhaustive over
// interchangeability classes and never repeats a set.
//
// Vectors advance in reverse lexicographic order: find the rightmost
// donor position that can shift one unit into the tail, then refill the
// tail greedily.
type hostSetIterator struct {
	classes [][]int
	counts  []int
	tailCap []int // tailCap[i] = total members in classes[i:]
	k       int
	started bool
	done    bool
}

func newHostSetIterator(classes [][]int, k int) *hostSetIterator {
	it := &hostSetIterator{
		classes: classes,
		counts:  make([]int, len(classes)),
		tailCap: make([]int, len(classes)+1),
		k:       k,
	}
	for i := len(classes) - 1; i >= 0; i-- {
		it.tailCap[i] = it.tailCap[i+1] + len(classes[i])
	}
	return it
}

// next advances to the following count vector; false means exhausted.
func (it *hostSetIterator) next() bool {
	if it.done {
		return false
	}
	m := len(it.counts)
	if !it.started {
		it.started = true
		if it.k <= it.tailCap[0] {
			it.fill(0, it.k)
			return true
		}
		it.done = true
		return false
	}
	tail := 0
	for j := m - 2; j >= 0; j-- {
		tail += it.counts[j+1]
		if it.counts[j] == 0 || tail+1 > it.tailCap[j+1] {
			continue
		}
		it.counts[j]--
		it.fill(j+1, tail+1)
		return true
	}
	it.done = true
	return false
}

// fill writes the greedy (leftmost-heavy) distribution of rem units into
// counts[from:]. Callers guarantee the tail capacity suffices.
func (it *hostSetIterator) fill(from, rem int) {
	for i := from; i < len(it.counts); i++ {
		c := rem
		if s := len(it.classes[i]); c > s {
			c = s
		}
		it.counts[i] = c
		rem -= c
	}
}

// hostPositions materializes the current vector as a fresh ascending slice
// of boat positions: each class contributes its lowest-ID members.
func (it *hostSetIterator) hostPositions() []int {
	pos := make([]int, 0, it.k)
	for i, c := range it.counts {
		pos = append(pos, it.classes[i][:c]...)
	}
	sort.Ints(pos)
	return pos
}

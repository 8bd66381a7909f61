package party

import "math/bits"

// domain is the set of host positions a variable may still take, as a
// little-endian word array. Domains mutate in place; the trail records
// individual removals, so undo re-sets bits one at a time.
type domain []uint64

func newFullDomain(k int) domain {
	d := make(domain, (k+63)/64)
	for i := range d {
		d[i] = ^uint64(0)
	}
	if r := k % 64; r != 0 {
		d[len(d)-1] = 1<<uint(r) - 1
	}
	return d
}

func (d domain) has(v int) bool { return d[v/64]&(1<<uint(v%64)) != 0 }

func (d domain) set(v int) { d[v/64] |= 1 << uint(v%64) }

func (d domain) clear(v int) { d[v/64] &^= 1 << uint(v%64) }

func (d domain) count() int {
	c := 0
	for _, w := range d {
		c += bits.OnesCount64(w)
	}
	return c
}

// first returns the smallest member, or -1 when empty.
func (d domain) first() int {
	for i, w := range d {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// forEach visits members in ascending order until f returns false.
func (d domain) forEach(f func(v int) bool) {
	for i, w := range d {
		base := i * 64
		for w != 0 {
			t := w & -w
			if !f(base + bits.TrailingZeros64(w)) {
				return
			}
			w &^= t
		}
	}
}

// values lists the members in ascending order.
func (d domain) values() []int {
	out := make([]int, 0, d.count())
	d.forEach(func(v int) bool {
		out = append(out, v)
		return true
	})
	return out
}

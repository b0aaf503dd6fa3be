// Package ordered implements an insertion-ordered associative container with
// stable positions.
//
// Entries live in an arena of slots. A Pos names a slot together with the
// generation it was created in, so a Pos to an erased entry never aliases an
// entry inserted later into the same slot. Display order is kept in a doubly
// linked list threaded through the slots, which makes Splice and MoveBefore
// O(1) and leaves every other Pos valid.
//
// Lookups go through a normalizer: two keys are equivalent when their
// normalized forms are equal. The original key is kept for display.
package ordered

import "iter"

const none = -1

// Pos identifies an entry of a Map. The zero value is not a valid position;
// use End for "no entry".
type Pos struct {
	slot int32
	gen  uint32
}

// End is the past-the-end position returned when no entry matches.
var End = Pos{slot: none}

// IsEnd reports whether p is the End sentinel.
func (p Pos) IsEnd() bool { return p.slot == none }

type slot[K comparable, V any] struct {
	key        K
	val        V
	prev, next int32
	gen        uint32
	live       bool
}

// Map is an insertion-ordered map. It is not safe for concurrent use.
type Map[K comparable, V any] struct {
	norm  func(K) K
	slots []slot[K, V]
	free  []int32
	index map[K]int32
	head  int32
	tail  int32
	n     int
}

// New returns an empty Map that compares keys through norm. A nil norm
// compares keys as they are.
func New[K comparable, V any](norm func(K) K) *Map[K, V] {
	if norm == nil {
		norm = func(k K) K { return k }
	}
	return &Map[K, V]{
		norm:  norm,
		index: make(map[K]int32),
		head:  none,
		tail:  none,
	}
}

// NewFold returns an empty Map with ASCII case-insensitive string keys.
func NewFold[V any]() *Map[string, V] {
	return New[string, V](FoldASCII)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.n }

// Clear removes every entry. All positions become invalid.
func (m *Map[K, V]) Clear() {
	var zk K
	var zv V
	m.free = m.free[:0]
	for i := len(m.slots) - 1; i >= 0; i-- {
		s := &m.slots[i]
		if s.live {
			s.key, s.val = zk, zv
			s.live = false
			s.gen++
		}
		m.free = append(m.free, int32(i))
	}
	clear(m.index)
	m.head, m.tail = none, none
	m.n = 0
}

// Valid reports whether p names a live entry of m.
func (m *Map[K, V]) Valid(p Pos) bool {
	if p.slot < 0 || int(p.slot) >= len(m.slots) {
		return false
	}
	s := &m.slots[p.slot]
	return s.live && s.gen == p.gen
}

// Find returns the position of the entry equivalent to key, or End.
func (m *Map[K, V]) Find(key K) Pos {
	i, ok := m.index[m.norm(key)]
	if !ok {
		return End
	}
	return m.pos(i)
}

// Contains reports whether an entry equivalent to key exists.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.index[m.norm(key)]
	return ok
}

// Insert appends (key, val) unless an equivalent key exists. It returns the
// position of the new or existing entry and whether an insertion happened.
func (m *Map[K, V]) Insert(key K, val V) (Pos, bool) {
	return m.InsertHint(End, key, val)
}

// InsertHint is Insert, but places a new entry immediately before hint. An
// invalid hint or End appends.
func (m *Map[K, V]) InsertHint(hint Pos, key K, val V) (Pos, bool) {
	nk := m.norm(key)
	if i, ok := m.index[nk]; ok {
		return m.pos(i), false
	}
	i := m.alloc(key, val)
	m.index[nk] = i
	m.n++
	if m.Valid(hint) {
		m.linkBefore(i, hint.slot)
	} else {
		m.linkBack(i)
	}
	return m.pos(i), true
}

// Erase removes the entry at p and returns the position of the entry that
// followed it. Erasing an invalid position is a no-op that returns End.
func (m *Map[K, V]) Erase(p Pos) Pos {
	if !m.Valid(p) {
		return End
	}
	s := &m.slots[p.slot]
	next := s.next
	m.unlink(p.slot)
	delete(m.index, m.norm(s.key))
	var zk K
	var zv V
	s.key, s.val = zk, zv
	s.live = false
	s.gen++
	m.free = append(m.free, p.slot)
	m.n--
	if next == none {
		return End
	}
	return m.pos(next)
}

// Delete erases the entry equivalent to key and reports whether one existed.
func (m *Map[K, V]) Delete(key K) bool {
	p := m.Find(key)
	if p.IsEnd() {
		return false
	}
	m.Erase(p)
	return true
}

// Splice relocates the entry at src to sit immediately after dst. No other
// entry moves and no position is invalidated. Passing End as dst moves src to
// the front.
func (m *Map[K, V]) Splice(src, dst Pos) {
	if !m.Valid(src) || src == dst {
		return
	}
	if dst.IsEnd() {
		if m.head == src.slot {
			return
		}
		m.unlink(src.slot)
		m.linkFront(src.slot)
		return
	}
	if !m.Valid(dst) || m.slots[dst.slot].next == src.slot {
		return
	}
	m.unlink(src.slot)
	if next := m.slots[dst.slot].next; next == none {
		m.linkBack(src.slot)
	} else {
		m.linkBefore(src.slot, next)
	}
}

// MoveBefore relocates the entry at src to sit immediately before dst. End as
// dst moves src to the back.
func (m *Map[K, V]) MoveBefore(src, dst Pos) {
	if !m.Valid(src) || src == dst {
		return
	}
	if dst.IsEnd() {
		if m.tail == src.slot {
			return
		}
		m.unlink(src.slot)
		m.linkBack(src.slot)
		return
	}
	if !m.Valid(dst) || m.slots[dst.slot].prev == src.slot {
		return
	}
	m.unlink(src.slot)
	m.linkBefore(src.slot, dst.slot)
}

// First returns the position of the first entry, or End.
func (m *Map[K, V]) First() Pos { return m.pos(m.head) }

// Last returns the position of the last entry, or End.
func (m *Map[K, V]) Last() Pos { return m.pos(m.tail) }

// Next returns the entry after p, or End.
func (m *Map[K, V]) Next(p Pos) Pos {
	if !m.Valid(p) {
		return End
	}
	return m.pos(m.slots[p.slot].next)
}

// Prev returns the entry before p, or End.
func (m *Map[K, V]) Prev(p Pos) Pos {
	if !m.Valid(p) {
		return End
	}
	return m.pos(m.slots[p.slot].prev)
}

// Key returns the display key stored at p. It panics if p is not valid.
func (m *Map[K, V]) Key(p Pos) K {
	m.mustValid(p)
	return m.slots[p.slot].key
}

// Value returns a pointer to the value stored at p. The pointer is only
// good until the next insertion, which may grow the arena. It panics if p is
// not valid.
func (m *Map[K, V]) Value(p Pos) *V {
	m.mustValid(p)
	return &m.slots[p.slot].val
}

// Get returns the value of the entry equivalent to key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	p := m.Find(key)
	if p.IsEnd() {
		var zero V
		return zero, false
	}
	return m.slots[p.slot].val, true
}

// All iterates entries in display order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := m.head; i != none; {
			s := &m.slots[i]
			next := s.next
			if !yield(s.key, s.val) {
				return
			}
			i = next
		}
	}
}

// Positions iterates entry positions in display order. Erasing the yielded
// position during iteration is allowed.
func (m *Map[K, V]) Positions() iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for i := m.head; i != none; {
			next := m.slots[i].next
			if !yield(m.pos(i)) {
				return
			}
			i = next
		}
	}
}

// Keys returns the display keys in order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.n)
	for i := m.head; i != none; i = m.slots[i].next {
		keys = append(keys, m.slots[i].key)
	}
	return keys
}

func (m *Map[K, V]) pos(i int32) Pos {
	if i == none {
		return End
	}
	return Pos{slot: i, gen: m.slots[i].gen}
}

func (m *Map[K, V]) mustValid(p Pos) {
	if !m.Valid(p) {
		panic("ordered: invalid position")
	}
}

func (m *Map[K, V]) alloc(key K, val V) int32 {
	var i int32
	if n := len(m.free); n > 0 {
		i = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		m.slots = append(m.slots, slot[K, V]{})
		i = int32(len(m.slots) - 1)
	}
	s := &m.slots[i]
	s.key, s.val = key, val
	s.prev, s.next = none, none
	s.live = true
	return i
}

func (m *Map[K, V]) unlink(i int32) {
	s := &m.slots[i]
	if s.prev != none {
		m.slots[s.prev].next = s.next
	} else {
		m.head = s.next
	}
	if s.next != none {
		m.slots[s.next].prev = s.prev
	} else {
		m.tail = s.prev
	}
	s.prev, s.next = none, none
}

func (m *Map[K, V]) linkBack(i int32) {
	s := &m.slots[i]
	s.prev, s.next = m.tail, none
	if m.tail != none {
		m.slots[m.tail].next = i
	} else {
		m.head = i
	}
	m.tail = i
}

func (m *Map[K, V]) linkFront(i int32) {
	s := &m.slots[i]
	s.prev, s.next = none, m.head
	if m.head != none {
		m.slots[m.head].prev = i
	} else {
		m.tail = i
	}
	m.head = i
}

func (m *Map[K, V]) linkBefore(i, at int32) {
	prev := m.slots[at].prev
	s := &m.slots[i]
	s.prev, s.next = prev, at
	m.slots[at].prev = i
	if prev != none {
		m.slots[prev].next = i
	} else {
		m.head = i
	}
}

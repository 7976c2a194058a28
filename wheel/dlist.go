// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wheel

// node is an intrusive doubly-linked list node. Event embeds two of
// these (slotNode and waitlistNode) so a single Event can live on a ring
// slot's list and, at a different point in its lifetime, on the
// waitlist, without any extra allocation.
//
// This replaces the C ancestor's offsetof-based member-to-owner pointer
// arithmetic (glthread_t embedded at a known byte offset, recovered via
// a cast) with an explicit owner back-pointer.
type node struct {
	next, prev *node
	owner      *Event
}

func (n *node) detached() bool {
	return n.next == nil && n.prev == nil
}

// nodeSelector extracts the node embedded in e that belongs to a given
// dlist (slotNode for ring-slot lists, waitlistNode for the waitlist).
type nodeSelector func(e *Event) *node

// dlist is a circular intrusive doubly-linked list of Events. It backs
// both a Wheel's ring slots and its waitlist.
type dlist struct {
	head node
	sel  nodeSelector
}

// init initializes an empty list bound to the given node selector.
func (l *dlist) init(sel nodeSelector) {
	l.head.next = &l.head
	l.head.prev = &l.head
	l.sel = sel
}

// isEmpty reports whether the list has no elements. "Empty" means
// head.next == head, the circular-list idiom.
func (l *dlist) isEmpty() bool {
	return l.head.next == &l.head
}

// size counts the elements in the list (O(n), debugging/test use).
func (l *dlist) size() int {
	n := 0
	l.forEach(func(*Event) bool { n++; return true })
	return n
}

// push inserts e at the head of the list. Used for reschedule/unregister
// intents, so the tick thread services the most recent intent first.
func (l *dlist) push(e *Event) {
	n := l.sel(e)
	n.next = l.head.next
	n.prev = &l.head
	n.next.prev = n
	l.head.next = n
}

// append inserts e at the tail of the list.
func (l *dlist) append(e *Event) {
	n := l.sel(e)
	n.prev = l.head.prev
	n.next = &l.head
	n.prev.next = n
	l.head.prev = n
}

// insertSorted performs a priority insert: e is placed so the list
// stays ascending by less(a, b). Ties preserve insertion order (e is
// placed after all existing elements it's not less than).
func (l *dlist) insertSorted(e *Event, less func(a, b *Event) bool) {
	n := l.sel(e)
	v := l.head.next
	for v != &l.head && !less(e, v.owner) {
		v = v.next
	}
	n.next = v
	n.prev = v.prev
	n.prev.next = n
	v.prev = n
}

// rm detaches e from the list.
func (l *dlist) rm(e *Event) {
	n := l.sel(e)
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
}

// dequeue removes and returns the first element, or nil if the list is
// empty.
func (l *dlist) dequeue() *Event {
	if l.isEmpty() {
		return nil
	}
	e := l.head.next.owner
	l.rm(e)
	return e
}

// forEach iterates the list in order, invoking f(e) for each element. It
// stops as soon as f returns false. It does not tolerate removing the
// current element from f; use forEachSafeRm for that.
func (l *dlist) forEach(f func(e *Event) bool) {
	for v := l.head.next; v != &l.head; v = v.next {
		if !f(v.owner) {
			return
		}
	}
}

// forEachSafeRm iterates the list caching the next pointer before
// running f, so f may remove the current element (but not any other).
func (l *dlist) forEachSafeRm(f func(e *Event) bool) {
	v := l.head.next
	for v != &l.head {
		nxt := v.next
		if !f(v.owner) {
			return
		}
		v = nxt
	}
}

// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package wheel provides a hierarchical-timer-wheel-style event
// scheduler: a bounded-memory ring of slots, hashed by due revolution,
// serviced by a single dedicated tick thread. Registration, reschedule
// and unregister requests from arbitrary caller goroutines are deferred
// onto a waitlist and applied by the tick thread at the next tick
// boundary, so ring slot mutation never needs per-slot locking.
package wheel

import (
	"sync"
	"time"
)

// Wheel is a ring-based event scheduler.
type Wheel struct {
	ringSize     int
	tickInterval time.Duration

	// mu guards currentTick, nRevolutions, nSlots and every Event's
	// (r, slot, slotHead) while it is reachable from a ring slot. It is
	// held by the tick thread for the duration of a tick (slot walk +
	// waitlist drain) and briefly by GetTimeRemaining for a consistent
	// read. RegisterEv/RescheduleEv/UnregisterEv never hold it; they only
	// ever touch the waitlist under waitlist.mu.
	mu            sync.RWMutex
	currentTick   int
	nRevolutions  Revolution
	nSlots        int
	slots         []Slot
	waitlist      Slot

	wg     sync.WaitGroup
	cancel chan struct{}
	stats  tickStats
}

// Init allocates a Wheel with the given ring size and tick duration.
// No events are dispatched until Start is called.
func Init(ringSize int, tickInterval time.Duration) (*Wheel, error) {
	if ringSize < 1 {
		return nil, ErrRingSizeTooSmall
	}
	if tickInterval < time.Microsecond {
		return nil, ErrTickDurationTooSmall
	}
	if tickInterval > 24*time.Hour {
		return nil, ErrTickDurationTooHigh
	}
	w := &Wheel{
		ringSize:     ringSize,
		tickInterval: tickInterval,
		slots:        make([]Slot, ringSize),
	}
	for i := range w.slots {
		w.slots[i].init(i, slotSelector)
	}
	w.waitlist.init(-1, waitlistSelector)
	return w, nil
}

func slotSelector(e *Event) *node     { return &e.slotNode }
func waitlistSelector(e *Event) *node { return &e.waitlistNode }

// RingSize returns the number of slots in the ring.
func (w *Wheel) RingSize() int { return w.ringSize }

// TickInterval returns the wall-clock duration of one tick.
func (w *Wheel) TickInterval() time.Duration { return w.tickInterval }

// CurrentTick returns the current position of the ring pointer.
func (w *Wheel) CurrentTick() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentTick
}

// Revolutions returns the number of full laps completed.
func (w *Wheel) Revolutions() Revolution {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.nRevolutions
}

// NSlots returns the wheel's event counter: it goes up by one when a
// CREATE is promoted from the waitlist and down by one when a DELETE is
// drained. Events still waiting for their first promotion are not
// counted; a non-recurring event that has fired stays counted until it
// is unregistered, and an event unregistered before its first promotion
// is still subtracted.
func (w *Wheel) NSlots() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.nSlots
}

// ticksFor converts a duration to a whole number of ticks, rounding
// down to match the tick routine's own integer division of interval by
// tick_interval.
func (w *Wheel) ticksFor(d time.Duration) uint64 {
	if w.tickInterval <= 0 || d <= 0 {
		return 0
	}
	return uint64(d / w.tickInterval)
}

// absSlot returns n_revolutions*ring_size + current_tick, the wheel's
// monotonic logical clock. Callers must hold mu.
func (w *Wheel) absSlot() uint64 {
	return w.nRevolutions.Val()*uint64(w.ringSize) + uint64(w.currentTick)
}

// RegisterEv schedules a new event. It returns ErrNilCallback if cb is
// nil. The event is appended to the waitlist with opcode CREATE and
// promoted into its ring slot at the next tick boundary.
func (w *Wheel) RegisterEv(cb Callback, arg interface{}, argSize int,
	interval time.Duration, isRecurring bool) (*Event, error) {
	if w == nil {
		return nil, ErrNilWheel
	}
	if cb == nil {
		if ERRon() {
			ERR("RegisterEv called with a nil callback\n")
		}
		return nil, ErrNilCallback
	}
	e := newEvent(cb, arg, argSize, interval, isRecurring)
	w.waitlist.mu.Lock()
	w.waitlist.events.append(e)
	w.waitlist.mu.Unlock()
	return e, nil
}

// RescheduleEv marks ev RESCHEDULED with the given interval and moves it
// to the head of the waitlist; the tick thread re-places it at the next
// tick boundary.
func (w *Wheel) RescheduleEv(ev *Event, nextInterval time.Duration) error {
	if ev == nil {
		return ErrInvalidEvent
	}
	w.waitlist.mu.Lock()
	defer w.waitlist.mu.Unlock()
	ev.op = opRescheduled
	ev.newInterval = nextInterval
	if !ev.waitlistNode.detached() {
		w.waitlist.events.rm(ev)
	}
	w.waitlist.events.push(ev)
	return nil
}

// UnregisterEv marks ev DELETE and moves it to the head of the
// waitlist; the tick thread removes it at the next tick boundary. ev
// may still fire once more if the tick thread had already reached it in
// the current slot walk before this call's drain takes effect.
func (w *Wheel) UnregisterEv(ev *Event) error {
	if ev == nil {
		return ErrInvalidEvent
	}
	w.waitlist.mu.Lock()
	defer w.waitlist.mu.Unlock()
	ev.op = opDelete
	if !ev.waitlistNode.detached() {
		w.waitlist.events.rm(ev)
	}
	w.waitlist.events.push(ev)
	return nil
}

// Reset zeroes current_tick and n_revolutions without touching any
// registered events. It is intended for tests; it is racy against a
// live tick thread.
func (w *Wheel) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.currentTick = 0
	w.nRevolutions = 0
}

// GetTimeRemaining returns how long until ev next fires. It returns 0
// if ev is still on the waitlist (not yet scheduled into a ring slot).
func (w *Wheel) GetTimeRemaining(ev *Event) time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if ev == nil || !ev.Scheduled() {
		return 0
	}
	revDiff := ev.r.Diff(w.nRevolutions)
	slotDiff := int64(ev.slot - w.currentTick)
	absTicks := revDiff*int64(w.ringSize) + slotDiff
	if absTicks < 0 {
		absTicks = 0
	}
	return time.Duration(absTicks) * w.tickInterval
}

// place inserts e into the ring slot corresponding to nextAbs (an
// absolute-slot value), updating its r/slot/slotHead/nScheduled
// bookkeeping. Callers must hold mu.
func (w *Wheel) place(e *Event, nextAbs uint64) {
	nextRev := nextAbs / uint64(w.ringSize)
	nextSlotIdx := int(nextAbs % uint64(w.ringSize))
	e.r = NewRevolution(nextRev)
	e.slot = nextSlotIdx
	dst := &w.slots[nextSlotIdx]
	dst.events.insertSorted(e, lessByRevolution)
	e.slotHead = dst
	e.nScheduled++
}

// tick advances the ring by one position, fires every event due at the
// new revolution, reschedules recurring ones, then drains the waitlist.
// It must never run concurrently with itself.
func (w *Wheel) tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.currentTick++
	if w.currentTick == w.ringSize {
		w.currentTick = 0
		w.nRevolutions = w.nRevolutions.Add(1)
	}

	slot := &w.slots[w.currentTick]
	abs := w.absSlot()

	slot.events.forEachSafeRm(func(e *Event) bool {
		if e.r.Val() != w.nRevolutions.Val() {
			// list is sorted ascending by r: nothing further is due.
			return false
		}
		e.callback(e.arg, e.argSize)
		slot.events.rm(e)
		e.slotHead = nil
		if e.isRecurring {
			nextAbs := abs + w.ticksFor(e.interval)
			w.place(e, nextAbs)
		}
		return true
	})

	w.drainWaitlist()
}

// drainWaitlist applies every deferred CREATE/RESCHEDULED/DELETE intent
// queued on the waitlist. Callers must hold mu; it takes the waitlist's
// own mutex internally.
func (w *Wheel) drainWaitlist() {
	w.waitlist.mu.Lock()
	defer w.waitlist.mu.Unlock()

	abs := w.absSlot()
	w.waitlist.events.forEachSafeRm(func(e *Event) bool {
		switch e.op {
		case opCreate, opRescheduled:
			if e.slotHead != nil {
				e.slotHead.events.rm(e)
				e.slotHead = nil
			}
			e.interval = e.newInterval
			w.place(e, abs+w.ticksFor(e.interval))
			if e.op == opCreate {
				w.nSlots++
			}
			e.op = opScheduled
			w.waitlist.events.rm(e)
		case opDelete:
			if e.slotHead != nil {
				e.slotHead.events.rm(e)
				e.slotHead = nil
			}
			w.waitlist.events.rm(e)
			w.nSlots--
		default:
			BUG("event on waitlist with unexpected opcode %s\n", e.op)
			w.waitlist.events.rm(e)
		}
		return true
	})
}

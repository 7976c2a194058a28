// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package timer implements a single-shot/interval/exponential-backoff
// timer with full lifecycle control (start, pause, resume, restart,
// reschedule, cancel, delete), built on top of the host's
// high-resolution timer facility via time.AfterFunc.
package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Callback is invoked on every OS fire that survives the threshold
// check, with the Timer and the opaque arg passed to Init.
type Callback func(t *Timer, arg interface{})

// Timer is a lifecycle state machine over one OS timer. Its public API
// is meant to be driven by a single owner, but the callback wrapper
// runs on whatever goroutine time.AfterFunc dispatches, so mutable
// fields other than state are guarded by mu.
type Timer struct {
	mu sync.Mutex

	os *osAdapter

	callback Callback
	arg      interface{}

	expMs      int64
	intervalMs int64
	threshold  int64
	isExp      bool

	timeRemainingMs      int64
	invocationCount      int64
	exponentialBackoffMs int64

	state stateBox
}

// Init allocates a Timer in state INIT. For a non-exponential timer,
// interval_ms is installed as-is and backoff starts at 0. For an
// exponential timer, the OS interval field is 0 (the wrapper re-arms
// itself on every fire) and exponential_backoff_ms starts at
// expiry_ms.
func Init(cb Callback, arg interface{}, expiryMs, intervalMs, maxExpirations int64, isExponential bool) (*Timer, error) {
	if cb == nil {
		if ERRon() {
			ERR("timer.Init called with a nil callback\n")
		}
		return nil, ErrNilCallback
	}
	t := &Timer{
		callback:   cb,
		arg:        arg,
		expMs:      expiryMs,
		intervalMs: intervalMs,
		threshold:  maxExpirations,
		isExp:      isExponential,
	}
	if isExponential {
		t.intervalMs = 0
		t.exponentialBackoffMs = expiryMs
	}
	t.state.store(StateInit)

	os, err := createOSTimer(t.onFire)
	if err != nil {
		if ERRon() {
			ERR("timer.Init: os timer create failed: %s\n", err)
		}
		return nil, ErrCreateFailed
	}
	t.os = os
	return t, nil
}

// State returns the Timer's current lifecycle state.
func (t *Timer) State() State { return t.state.load() }

// InvocationCount returns how many times the user callback has fired.
func (t *Timer) InvocationCount() int64 {
	return atomic.LoadInt64(&t.invocationCount)
}

// currentSpec returns the (initial, interval) pair that should be
// armed for the Timer's present configuration. Callers must hold mu.
func (t *Timer) currentSpec() (time.Duration, time.Duration) {
	if t.isExp {
		return durationFromMs(t.exponentialBackoffMs), 0
	}
	return durationFromMs(t.expMs), durationFromMs(t.intervalMs)
}

// Start arms the timer using the current spec and transitions to
// RUNNING. Legal from any non-terminal, non-deleted state.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.load() == StateDeleted {
		return ErrDeleted
	}
	initial, interval := t.currentSpec()
	if err := t.os.arm(initial, interval); err != nil {
		return ErrArmFailed
	}
	t.state.store(StateRunning)
	return nil
}

// Toggle writes the current spec to the OS timer; an all-zero spec
// disarms it.
func (t *Timer) Toggle() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.load() == StateDeleted {
		return ErrDeleted
	}
	initial, interval := t.currentSpec()
	if err := t.os.arm(initial, interval); err != nil {
		return ErrArmFailed
	}
	return nil
}

// Pause saves the OS timer's residual into time_remaining_ms, disarms
// it and transitions to PAUSED. Refused if already PAUSED or DELETED.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state.load() {
	case StatePaused, StateDeleted:
		return ErrRefused
	}
	t.timeRemainingMs = msFromDuration(t.os.remaining())
	if err := t.os.arm(0, 0); err != nil {
		return ErrArmFailed
	}
	t.state.store(StatePaused)
	return nil
}

// Resume arms the timer with the residue saved by Pause, clears it,
// and transitions to RESUMED. Refused if already RESUMED or DELETED.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state.load() {
	case StateResumed, StateDeleted:
		return ErrRefused
	}
	initial := durationFromMs(t.timeRemainingMs)
	interval := durationFromMs(t.intervalMs)
	if t.isExp {
		interval = 0
	}
	if err := t.os.arm(initial, interval); err != nil {
		return ErrArmFailed
	}
	t.timeRemainingMs = 0
	t.state.store(StateResumed)
	return nil
}

// Restart cancels the timer, reloads its original expiry/interval,
// resets invocation_count and time_remaining_ms, restores
// exponential_backoff_ms to exp_time_ms, re-arms and transitions to
// RUNNING. Refused if DELETED.
func (t *Timer) Restart() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.load() == StateDeleted {
		return ErrDeleted
	}
	if err := t.os.arm(0, 0); err != nil {
		return ErrArmFailed
	}
	t.state.store(StateCancelled)

	atomic.StoreInt64(&t.invocationCount, 0)
	t.timeRemainingMs = 0
	if t.isExp {
		t.exponentialBackoffMs = t.expMs
	}
	initial, interval := t.currentSpec()
	if err := t.os.arm(initial, interval); err != nil {
		return ErrArmFailed
	}
	t.state.store(StateRunning)
	return nil
}

// Cancel disarms the timer, resets its counters and transitions to
// CANCELLED. Returns ErrRefused in INIT or when already CANCELLED, and
// ErrDeleted once DELETED.
func (t *Timer) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state.load() {
	case StateInit, StateCancelled:
		return ErrRefused
	case StateDeleted:
		return ErrDeleted
	}
	if err := t.os.arm(0, 0); err != nil {
		return ErrArmFailed
	}
	atomic.StoreInt64(&t.invocationCount, 0)
	t.timeRemainingMs = 0
	t.state.store(StateCancelled)
	return nil
}

// Reschedule cancels (if not already CANCELLED), preserving
// invocation_count across the cancel, installs the new expiry/interval
// (interval forced to 0 and exponential_backoff_ms reloaded when the
// Timer is exponential), arms, and transitions to RUNNING. Refused if
// DELETED.
func (t *Timer) Reschedule(expMs, intervalMs int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.load() == StateDeleted {
		return ErrDeleted
	}

	savedCount := atomic.LoadInt64(&t.invocationCount)
	if t.state.load() != StateCancelled {
		if err := t.os.arm(0, 0); err != nil {
			return ErrArmFailed
		}
		t.state.store(StateCancelled)
	}
	atomic.StoreInt64(&t.invocationCount, savedCount)

	t.expMs = expMs
	t.intervalMs = intervalMs
	if t.isExp {
		t.intervalMs = 0
		t.exponentialBackoffMs = expMs
	}
	initial, interval := t.currentSpec()
	if err := t.os.arm(initial, interval); err != nil {
		return ErrArmFailed
	}
	t.state.store(StateRunning)
	return nil
}

// Delete destroys the OS timer, drops the arg reference (the caller
// owns and frees it) and transitions to the terminal DELETED state.
func (t *Timer) Delete() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.load() == StateDeleted {
		return ErrDeleted
	}
	t.os.destroy()
	t.arg = nil
	t.state.store(StateDeleted)
	return nil
}

// GetMsRemaining returns the OS timer's residual in milliseconds. It
// returns ok == false for CANCELLED/DELETED rather than a sentinel
// value.
func (t *Timer) GetMsRemaining() (ms int64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state.load() {
	case StateCancelled, StateDeleted:
		return 0, false
	}
	return msFromDuration(t.os.remaining()), true
}

// onFire is installed as the OS adapter's callback; it implements the
// threshold check, callback invocation, and exponential-backoff/resume
// rescheduling that must run on every OS fire.
func (t *Timer) onFire() {
	t.mu.Lock()

	atomic.AddInt64(&t.invocationCount, 1)
	count := atomic.LoadInt64(&t.invocationCount)

	if t.threshold > 0 && count > t.threshold {
		t.mu.Unlock()
		if DBGon() {
			DBG("timer: invocation threshold %d exceeded, cancelling\n", t.threshold)
		}
		t.Cancel()
		return
	}

	arg := t.arg
	t.mu.Unlock()

	t.callback(t, arg)

	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case t.isExp && t.exponentialBackoffMs != 0:
		t.exponentialBackoffMs *= 2
		initial := durationFromMs(t.exponentialBackoffMs)
		if err := t.os.arm(initial, 0); err != nil && ERRon() {
			ERR("timer: exponential re-arm failed: %s\n", err)
		}
	case t.state.load() == StateResumed:
		if t.expMs != 0 {
			initial, interval := durationFromMs(t.expMs), durationFromMs(t.intervalMs)
			if t.isExp {
				interval = 0
			}
			if err := t.os.arm(initial, interval); err != nil && ERRon() {
				ERR("timer: resume re-arm failed: %s\n", err)
			}
			t.state.store(StateRunning)
		}
	}
}

// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"sync/atomic"
)

// State is a Timer's lifecycle state.
//
// A Timer's public API is meant to be driven by a single owner, but the
// OS-timer callback wrapper runs on a goroutine dispatched by
// time.AfterFunc and also transitions state (RESUMED -> RUNNING,
// RUNNING -> CANCELLED on threshold overrun). State is therefore stored
// behind atomic ops rather than a plain field.
type State int32

const (
	StateInit State = iota
	StateRunning
	StateCancelled
	StateDeleted
	StatePaused
	StateResumed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateRunning:
		return "RUNNING"
	case StateCancelled:
		return "CANCELLED"
	case StateDeleted:
		return "DELETED"
	case StatePaused:
		return "PAUSED"
	case StateResumed:
		return "RESUMED"
	default:
		return "UNKNOWN"
	}
}

// stateBox holds a Timer's state behind atomic load/store/CAS.
type stateBox struct {
	v int32
}

func (b *stateBox) load() State {
	return State(atomic.LoadInt32(&b.v))
}

func (b *stateBox) store(s State) {
	atomic.StoreInt32(&b.v, int32(s))
}

// cas attempts to move the state from "from" to "to" and reports
// whether it succeeded.
func (b *stateBox) cas(from, to State) bool {
	return atomic.CompareAndSwapInt32(&b.v, int32(from), int32(to))
}

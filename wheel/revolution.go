// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wheel

import (
	"strconv"
)

// Revolution counts full laps of the ring's current-tick pointer through
// [0, ringSize). It has no zero/reference meaning on its own: an event's
// due time is only meaningful relative to a Wheel's n_revolutions.
//
// Ring sizes are runtime-configured (not a compile-time bit split, as in
// the multi-wheel ancestor this type started from), so there is no need
// for wraparound-safe masked arithmetic: a plain monotonically
// increasing uint64 cannot realistically overflow over a process
// lifetime at any sane tick interval.
type Revolution uint64

// NewRevolution builds a Revolution from a raw counter value.
func NewRevolution(r uint64) Revolution { return Revolution(r) }

// Val returns the revolution as a plain uint64.
func (r Revolution) Val() uint64 { return uint64(r) }

// EQ reports whether r == u.
func (r Revolution) EQ(u Revolution) bool { return r == u }

// LT reports whether r < u.
func (r Revolution) LT(u Revolution) bool { return r < u }

// GT reports whether r > u.
func (r Revolution) GT(u Revolution) bool { return r > u }

// GE reports whether r >= u.
func (r Revolution) GE(u Revolution) bool { return r >= u }

// Add returns r + d.
func (r Revolution) Add(d uint64) Revolution { return r + Revolution(d) }

// Sub returns r - d, clamped to 0 (revolutions never go negative).
func (r Revolution) Sub(d uint64) Revolution {
	if uint64(r) < d {
		return 0
	}
	return r - Revolution(d)
}

// Diff returns r - u as a signed number of revolutions.
func (r Revolution) Diff(u Revolution) int64 {
	return int64(r) - int64(u)
}

func (r Revolution) String() string {
	return strconv.FormatUint(uint64(r), 10)
}

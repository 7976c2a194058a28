// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wheel

import (
	"github.com/intuitivelabs/timestamp"
)

// tickStats tracks wall-clock drift of the tick thread against the
// nominal tick_interval cadence, for logging only -- it never changes
// how many times tick() runs per wake: one ring advance per
// tick_interval wake, no catch-up ticks.
type tickStats struct {
	lastTickT timestamp.TS
	badTime   int
}

func (w *Wheel) initTickStats() {
	w.mu.Lock()
	w.stats.lastTickT = timestamp.Now()
	w.stats.badTime = 0
	w.mu.Unlock()
}

// onTick is the tick thread's per-wake entry point: it records drift
// observability, then performs exactly one ring advance via tick().
func (w *Wheel) onTick() {
	w.mu.Lock()
	now := timestamp.Now()
	st := &w.stats
	switch {
	case now.Before(st.lastTickT):
		st.badTime++
		if st.badTime > 10 {
			if ERRon() {
				ERR("wheel: recovering after time going backward %d times"+
					" with %s\n", st.badTime, st.lastTickT.Sub(now))
			}
		} else if DBGon() {
			DBG("wheel: tick thread observed time going backward by %s"+
				" (%d times)\n", st.lastTickT.Sub(now), st.badTime)
		}
	default:
		st.badTime = 0
		if drift := now.Sub(st.lastTickT) - w.tickInterval; drift > w.tickInterval {
			if DBGon() {
				DBG("wheel: tick thread running behind by %s\n", drift)
			}
		}
	}
	st.lastTickT = now
	w.mu.Unlock()

	w.tick()
}

// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wheel

import (
	"time"
)

// Start launches the dedicated tick thread. No event fires before Start
// is called; it is a no-op to Start a Wheel twice (returns
// ErrAlreadyStarted).
//
// Unlike the ancestor wheel this package started from, Start spawns a
// single goroutine only: the tick thread both walks the due slot and
// invokes callbacks directly, so there is no separate run-queue worker
// pool to fan callbacks out to.
func (w *Wheel) Start() error {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.cancel = make(chan struct{})
	w.mu.Unlock()

	w.initTickStats()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if DBGon() {
			DBG("starting ticker with %s at %s\n", w.tickInterval, time.Now())
		}
		ticker := time.NewTicker(w.tickInterval)
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-w.cancel:
				DBG("wheel tick thread canceled\n")
				break loop
			case _, ok := <-ticker.C:
				if !ok {
					break loop
				}
				w.onTick()
			}
		}
	}()
	return nil
}

// Shutdown signals the tick thread to stop and waits for it to exit. It
// is safe to call on a Wheel that was never Started.
func (w *Wheel) Shutdown() {
	w.mu.Lock()
	c := w.cancel
	w.mu.Unlock()
	if c == nil {
		return
	}
	close(c)
	w.wg.Wait()
}

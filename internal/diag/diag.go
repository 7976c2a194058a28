// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package diag wraps github.com/intuitivelabs/slog behind the
// DBG/WARN/ERR/BUG/PANIC call convention used throughout this module's
// wheel and timer packages (guarded by the matching *on() predicates,
// e.g. "if DBGon() { DBG(...) }"), so neither package pays for building
// a log line's arguments when that level is disabled.
package diag

import (
	"github.com/intuitivelabs/slog"
)

// Diag is a component-scoped logging handle.
type Diag struct {
	log slog.Log
}

// New creates a Diag for component name, defaulting to the NOTICE level.
func New(name string) *Diag {
	d := &Diag{}
	d.log.Init(name, slog.LNOTICE, slog.LStdErr)
	return d
}

// SetLevel changes the reporting threshold (test/debug use).
func (d *Diag) SetLevel(lvl slog.Level) {
	slog.SetLevel(&d.log, lvl)
}

func (d *Diag) DBGon() bool  { return d.log.DBGon() }
func (d *Diag) WARNon() bool { return d.log.WARNon() }
func (d *Diag) ERRon() bool  { return d.log.ERRon() }

func (d *Diag) DBG(f string, args ...interface{})  { d.log.DBG(f, args...) }
func (d *Diag) WARN(f string, args ...interface{}) { d.log.WARN(f, args...) }
func (d *Diag) ERR(f string, args ...interface{})  { d.log.ERR(f, args...) }

// BUG logs an invariant-violation report but lets the caller continue;
// use for conditions that indicate a library bug but are locally
// recoverable.
func (d *Diag) BUG(f string, args ...interface{}) { d.log.BUG(f, args...) }

// PANIC logs then panics; use only for conditions where continuing
// would corrupt wheel/timer state beyond recovery.
func (d *Diag) PANIC(f string, args ...interface{}) { d.log.PANIC(f, args...) }

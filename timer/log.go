// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"github.com/intuitivelabs/slog"

	"github.com/kelvinlabs/chrontimer/internal/diag"
)

// NAME identifies this package in log output.
const NAME = "timer"

var Log = diag.New(NAME)

// SetLogLevel changes the package's logging threshold.
func SetLogLevel(lvl slog.Level) { Log.SetLevel(lvl) }

func DBGon() bool  { return Log.DBGon() }
func WARNon() bool { return Log.WARNon() }
func ERRon() bool  { return Log.ERRon() }

func DBG(f string, args ...interface{})   { Log.DBG(f, args...) }
func WARN(f string, args ...interface{})  { Log.WARN(f, args...) }
func ERR(f string, args ...interface{})   { Log.ERR(f, args...) }
func BUG(f string, args ...interface{})   { Log.BUG(f, args...) }
func PANIC(f string, args ...interface{}) { Log.PANIC(f, args...) }

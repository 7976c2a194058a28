// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command timerdemo starts a one-second interval Timer that prints a
// fixed argument on every fire, and waits for SIGINT/SIGTERM to exit.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelvinlabs/chrontimer/timer"
)

func main() {
	str := "demo"

	tm, err := timer.Init(func(t *timer.Timer, arg interface{}) {
		fmt.Printf("data = %s\n", arg.(string))
	}, str, 1000, 1000, 0, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "timer init failed: %s\n", err)
		os.Exit(1)
	}

	if err := tm.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "timer start failed: %s\n", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	tm.Delete()
}

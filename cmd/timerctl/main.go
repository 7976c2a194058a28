// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command timerctl drives a single Timer interactively: it reads an
// integer selector from standard input in a loop and maps it onto the
// Timer's lifecycle operations.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kelvinlabs/chrontimer/timer"
)

func printMenu() {
	fmt.Print("\t\tTimer Demo\n\n")
	fmt.Print("(1) pause\n(2) resume\n(3) restart\n(4) reschedule\n" +
		"(5) delete\n(6) cancel\n(7) show time remaining\n(8) show timer state\n")
}

func main() {
	str := "demo"
	expMs := int64(1000)
	intervalMs := int64(1000)

	tm, err := timer.Init(func(t *timer.Timer, arg interface{}) {
		fmt.Printf("data = %s\n", arg.(string))
	}, str, expMs, intervalMs, 0, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "timer init failed: %s\n", err)
		os.Exit(1)
	}

	if err := tm.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "timer start failed: %s\n", err)
		os.Exit(1)
	}

	printMenu()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var selection int
		if _, err := fmt.Sscanf(scanner.Text(), "%d", &selection); err != nil {
			continue
		}

		switch selection {
		case 1:
			if err := tm.Pause(); err != nil {
				fmt.Printf("pause failed: %s\n", err)
			}
		case 2:
			if err := tm.Resume(); err != nil {
				fmt.Printf("resume failed: %s\n", err)
			}
		case 3:
			if err := tm.Restart(); err != nil {
				fmt.Printf("restart failed: %s\n", err)
			}
		case 4:
			if err := tm.Reschedule(expMs, intervalMs); err != nil {
				fmt.Printf("reschedule failed: %s\n", err)
			}
		case 5:
			if err := tm.Delete(); err != nil {
				fmt.Printf("delete failed: %s\n", err)
			}
		case 6:
			if err := tm.Cancel(); err != nil {
				fmt.Printf("cancel failed: %s\n", err)
			}
		case 7:
			if ms, ok := tm.GetMsRemaining(); ok {
				fmt.Printf("Time remaining = %d\n", ms)
			} else {
				fmt.Println("Time remaining = n/a (not running)")
			}
		case 8:
			fmt.Printf("state = %s\n", tm.State())
		default:
			continue
		}
	}
}

// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wheel

import (
	"math/rand"
	"os"
	"testing"
	"time"
)

var seed int64

func TestMain(m *testing.M) {
	seed = time.Now().UnixNano()
	rand.Seed(seed)
	res := m.Run()
	os.Exit(res)
}

func tstRevOp(t *testing.T, p string, v1, v2 uint64) {
	r1 := NewRevolution(v1)
	r2 := NewRevolution(v2)

	if r1.Val() != v1 || r2.Val() != v2 {
		t.Errorf(p+"Val roundtrip failed for 0x%x, 0x%x\n", v1, v2)
	}
	if r1.EQ(r2) != (v1 == v2) {
		t.Errorf(p+"EQ for 0x%x <> 0x%x failed\n", v1, v2)
	}
	if r1.LT(r2) != (v1 < v2) {
		t.Errorf(p+"LT for 0x%x <> 0x%x failed\n", v1, v2)
	}
	if r1.GT(r2) != (v1 > v2) {
		t.Errorf(p+"GT for 0x%x <> 0x%x failed\n", v1, v2)
	}
	if r1.GE(r2) != (v1 >= v2) {
		t.Errorf(p+"GE for 0x%x <> 0x%x failed\n", v1, v2)
	}
	if r1.Diff(r2) != int64(v1)-int64(v2) {
		t.Errorf(p+"Diff for 0x%x <> 0x%x failed\n", v1, v2)
	}
}

func TestRevolutionOps(t *testing.T) {
	const iterations = 10000
	tstRevOp(t, "", 1, 2)
	tstRevOp(t, "", 4, 3)
	tstRevOp(t, "", 0, 0)
	tstRevOp(t, "", 1<<40, 1<<40+1)

	for i := 0; i < iterations; i++ {
		v1 := uint64(rand.Int63())
		v2 := uint64(rand.Int63())
		tstRevOp(t, "rand: ", v1, v2)
	}
}

func TestRevolutionAddSub(t *testing.T) {
	r := NewRevolution(5)
	if r.Add(3).Val() != 8 {
		t.Fatalf("Add failed: got %d, want 8", r.Add(3).Val())
	}
	if r.Sub(3).Val() != 2 {
		t.Fatalf("Sub failed: got %d, want 2", r.Sub(3).Val())
	}
	if r.Sub(10).Val() != 0 {
		t.Fatalf("Sub below zero should clamp: got %d, want 0", r.Sub(10).Val())
	}
}

func TestRevolutionString(t *testing.T) {
	if NewRevolution(42).String() != "42" {
		t.Fatalf("String() = %q, want \"42\"", NewRevolution(42).String())
	}
}

// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package wheel

import (
	"errors"
)

var ErrNilWheel = errors.New("called on a nil wheel")
var ErrNilCallback = errors.New("register called with a nil callback")
var ErrTickDurationTooSmall = errors.New("tick duration too small")
var ErrTickDurationTooHigh = errors.New("tick duration too high")
var ErrRingSizeTooSmall = errors.New("ring size must be at least 1")
var ErrAlreadyStarted = errors.New("wheel already started")
var ErrInvalidEvent = errors.New("called on an invalid/unregistered event")

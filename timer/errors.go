// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"errors"
)

var ErrCreateFailed = errors.New("os timer create failed")
var ErrArmFailed = errors.New("os timer arm failed")
var ErrNilCallback = errors.New("init called with a nil callback")
var ErrDeleted = errors.New("called on a deleted timer")
var ErrRefused = errors.New("operation refused in current state")

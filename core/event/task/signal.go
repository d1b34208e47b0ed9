// Copyright (C) 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package task

import "context"

// Signal is closed once an event has happened. Nothing is ever sent on it.
type Signal <-chan struct{}

// FiredSignal is a Signal that has already fired.
var FiredSignal = func() Signal {
	c := make(chan struct{})
	close(c)
	return c
}()

// NewSignal returns a Signal and the Task that fires it. The Task must be
// called at most once.
func NewSignal() (Signal, Task) {
	c := make(chan struct{})
	return c, func(context.Context) error {
		close(c)
		return nil
	}
}

// Fired returns true if s has fired.
func (s Signal) Fired() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}

// Wait blocks until s fires or ctx is stopped, returning true if s fired.
func (s Signal) Wait(ctx context.Context) bool {
	select {
	case <-s:
		return true
	case <-ctx.Done():
		return false
	}
}

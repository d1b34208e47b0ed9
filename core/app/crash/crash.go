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

// Package crash reports panics on goroutines started by the layer before they
// take down the traced process.
package crash

import (
	"runtime/debug"
	"sync"
)

// Reporter is told about a panic that is about to crash the process.
type Reporter func(e interface{}, stack []byte)

var (
	mutex     sync.Mutex
	reporters = map[int]Reporter{}
	nextID    int
	once      sync.Once
)

// Register adds r to the reporters called on an uncaught panic. The returned
// function removes it again.
func Register(r Reporter) (unregister func()) {
	mutex.Lock()
	defer mutex.Unlock()
	id := nextID
	nextID++
	reporters[id] = r
	return func() {
		mutex.Lock()
		defer mutex.Unlock()
		delete(reporters, id)
	}
}

// Go calls f on a new goroutine, passing any panic it raises to Crash.
func Go(f func()) {
	go func() {
		defer func() {
			if e := recover(); e != nil {
				Crash(e)
			}
		}()
		f()
	}()
}

// Crash calls each registered reporter with e and then panics with e. Only
// the first crash is reported.
func Crash(e interface{}) {
	stack := debug.Stack()
	once.Do(func() {
		mutex.Lock()
		list := make([]Reporter, 0, len(reporters))
		for _, r := range reporters {
			list = append(list, r)
		}
		mutex.Unlock()
		for _, r := range list {
			r(e, stack)
		}
		panic(e)
	})
}

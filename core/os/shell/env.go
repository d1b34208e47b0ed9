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

// Package shell holds the environment of a process about to be traced.
package shell

import (
	"os"
	"sort"
	"strings"
)

// Env is an ordered set of environment variables for a new process.
// Keys are matched case insensitively, but keep the case they were set with.
type Env struct {
	PathListSeparator rune
	entries           []entry
}

type entry struct {
	key, value string
}

func (e entry) String() string {
	if e.value == "" {
		return e.key
	}
	return e.key + "=" + e.value
}

// NewEnv returns a new, empty environment.
func NewEnv() *Env {
	return &Env{PathListSeparator: os.PathListSeparator}
}

// CloneEnv returns the environment of the current process.
func CloneEnv() *Env {
	out := NewEnv()
	for _, v := range os.Environ() {
		key, value, _ := strings.Cut(v, "=")
		out.Set(key, value)
	}
	return out
}

func (e *Env) find(key string) int {
	for i, v := range e.entries {
		if strings.EqualFold(v.key, key) {
			return i
		}
	}
	return -1
}

// Vars returns the variables in the order they were first set, each as
// "key=value", or just "key" when the value is empty.
func (e *Env) Vars() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.entries))
	for i, v := range e.entries {
		out[i] = v.String()
	}
	return out
}

// Map returns the variables keyed by name.
func (e *Env) Map() map[string]string {
	if e == nil {
		return nil
	}
	out := make(map[string]string, len(e.entries))
	for _, v := range e.entries {
		out[v.key] = v.value
	}
	return out
}

// Keys returns the sorted variable names.
func (e *Env) Keys() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.entries))
	for i, v := range e.entries {
		out[i] = v.key
	}
	sort.Strings(out)
	return out
}

// Exists returns true if key is set, even to an empty value.
func (e *Env) Exists(key string) bool { return e.find(key) >= 0 }

// Get returns the value of key, or an empty string if it is not set.
func (e *Env) Get(key string) string {
	if i := e.find(key); i >= 0 {
		return e.entries[i].value
	}
	return ""
}

// Set assigns value to key, keeping the position of an existing variable.
func (e *Env) Set(key, value string) *Env {
	if i := e.find(key); i >= 0 {
		e.entries[i].value = value
		return e
	}
	e.entries = append(e.entries, entry{key, value})
	return e
}

// Unset removes key.
func (e *Env) Unset(key string) *Env {
	if i := e.find(key); i >= 0 {
		e.entries = append(e.entries[:i], e.entries[i+1:]...)
	}
	return e
}

// AddPathStart prepends paths to the list held by key.
func (e *Env) AddPathStart(key string, paths ...string) *Env {
	return e.Set(key, e.join(append(append([]string{}, paths...), e.Get(key))))
}

// AddPathEnd appends paths to the list held by key.
func (e *Env) AddPathEnd(key string, paths ...string) *Env {
	return e.Set(key, e.join(append([]string{e.Get(key)}, paths...)))
}

func (e *Env) join(paths []string) string {
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, string(e.PathListSeparator))
}

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

// Package dispatch associates dispatchable Vulkan objects with the real
// function tables of the layer below.
package dispatch

import (
	"sync"
	"unsafe"

	"github.com/google/vktrace/core/fault"
)

// ErrUnknownDispatchKey is the panic value raised when a handle is looked up before
// its record was created.
const ErrUnknownDispatchKey = fault.Const("Unknown dispatch key")

// Key identifies the dispatch table shared by a dispatchable object and all
// objects created from it.
type Key uintptr

// KeyFunc derives the Key of a dispatchable handle.
type KeyFunc func(handle uintptr) Key

// LoaderKey returns the loader dispatch pointer stored in the first word of
// the object the handle points at. The handle is an address owned by the
// loader, so the conversion go vet's unsafeptr check reports is intended.
func LoaderKey(handle uintptr) Key {
	return Key(*(*uintptr)(unsafe.Pointer(handle)))
}

// Registry maps dispatch keys to records of type R.
// Records are created once and never removed.
type Registry[R any] struct {
	mutex   sync.Mutex
	key     KeyFunc
	records map[Key]*R
}

// NewRegistry returns an empty registry using key to derive dispatch keys.
// A nil key uses LoaderKey.
func NewRegistry[R any](key KeyFunc) *Registry[R] {
	if key == nil {
		key = LoaderKey
	}
	return &Registry[R]{key: key, records: map[Key]*R{}}
}

// LookupOrCreate returns the record for handle. If there is no record, one is
// allocated, populated by init and inserted while holding the registry lock,
// so concurrent callers racing on a new key all observe the same record.
// created is true for the single caller that ran init.
func (r *Registry[R]) LookupOrCreate(handle uintptr, init func(*R)) (record *R, created bool) {
	key := r.key(handle)
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if existing, ok := r.records[key]; ok {
		return existing, false
	}
	record = new(R)
	if init != nil {
		init(record)
	}
	r.records[key] = record
	return record, true
}

// Lookup returns the record for handle. It panics with ErrUnknownDispatchKey if no
// record exists.
func (r *Registry[R]) Lookup(handle uintptr) *R {
	record, ok := r.Find(handle)
	if !ok {
		panic(ErrUnknownDispatchKey)
	}
	return record
}

// Find returns the record for handle, if one exists.
func (r *Registry[R]) Find(handle uintptr) (*R, bool) {
	key := r.key(handle)
	r.mutex.Lock()
	defer r.mutex.Unlock()
	record, ok := r.records[key]
	return record, ok
}

// Len returns the number of records.
func (r *Registry[R]) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.records)
}

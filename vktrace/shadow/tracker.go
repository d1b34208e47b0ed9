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

// Package shadow tracks host mappings of device memory so that the bytes an
// application writes through a mapped pointer can be captured when it flushes
// or unmaps the memory.
package shadow

import (
	"context"
	"sync"
	"unsafe"

	"github.com/google/vktrace/core/fault"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/math/interval"
	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/pkg/errors"
)

const (
	ErrAlreadyMapped   = fault.Const("Memory is already mapped")
	ErrNotMapped       = fault.Const("Memory is not mapped")
	ErrUnknownMemory   = fault.Const("Memory allocation is unknown")
	ErrBadRange        = fault.Const("Range lies outside the allocation")
	ErrPointerMismatch = fault.Const("Host pointer does not match the mapping")
)

// Entry describes one active host mapping. Spans are in memory object
// coordinates.
type Entry struct {
	Memory  vk.DeviceMemory
	Pointer unsafe.Pointer   // Host address of Mapping.Start.
	Mapping interval.U64Span // The mapped range.
	Dirty   interval.U64Span // The range the application may have written.
	// Flushed is set once any part of the mapping was flushed. Unmapping a
	// flushed mapping captures nothing.
	Flushed bool

	declared bool
}

// read returns a copy of the current host bytes of span, which must lie within
// the mapping.
func (e *Entry) read(span interval.U64Span) []byte {
	if span.Empty() {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Add(e.Pointer, span.Start-e.Mapping.Start)), span.Len())
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

// Tracker holds the allocations and active mappings of device memory.
// All methods are safe for concurrent use.
type Tracker struct {
	mutex       sync.Mutex
	allocations map[vk.DeviceMemory]uint64
	mappings    map[vk.DeviceMemory]*Entry
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{
		allocations: map[vk.DeviceMemory]uint64{},
		mappings:    map[vk.DeviceMemory]*Entry{},
	}
}

// OnAllocate records the size of a new allocation.
func (t *Tracker) OnAllocate(mem vk.DeviceMemory, size vk.DeviceSize) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.allocations[mem] = uint64(size)
}

// OnMap records that [offset, offset+size) of mem is mapped at ptr.
// A size of vk.WholeSize maps the remainder of the allocation.
// Mapping memory that is already mapped is logged and ignored.
func (t *Tracker) OnMap(ctx context.Context, mem vk.DeviceMemory, ptr unsafe.Pointer, offset, size vk.DeviceSize) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	ctx = log.V{"memory": mem}.Bind(ctx)
	if _, dup := t.mappings[mem]; dup {
		log.W(ctx, "Memory mapped again without an unmap")
		return ErrAlreadyMapped
	}
	span, err := t.resolve(mem, offset, size)
	if err != nil {
		log.W(ctx, "Cannot shadow mapping: %v", err)
		return err
	}
	t.mappings[mem] = &Entry{
		Memory:  mem,
		Pointer: ptr,
		Mapping: span,
		Dirty:   span,
	}
	return nil
}

// OnRangeWritten narrows the dirty range of mem to the ranges the
// application declared it writes. The first declaration replaces the default
// of the whole mapping; later declarations extend it. ptr, if not nil, must be
// the host address of offset.
func (t *Tracker) OnRangeWritten(ctx context.Context, mem vk.DeviceMemory, offset, length vk.DeviceSize, ptr unsafe.Pointer) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	e, ok := t.mappings[mem]
	if !ok {
		log.W(ctx, "Write declared on unmapped memory %v", mem)
		return ErrNotMapped
	}
	span := e.clip(offset, length)
	if span.Empty() && length != 0 {
		log.W(ctx, "Write declared outside the mapping of memory %v", mem)
		return errors.Wrapf(ErrBadRange, "memory %v write [%#x, +%#x) outside %v", mem, uint64(offset), uint64(length), e.Mapping)
	}
	if ptr != nil && uint64(offset) >= e.Mapping.Start &&
		uintptr(ptr) != uintptr(e.Pointer)+uintptr(uint64(offset)-e.Mapping.Start) {
		return errors.Wrapf(ErrPointerMismatch, "memory %v offset %#x", mem, uint64(offset))
	}
	if !e.declared {
		e.Dirty, e.declared = span, true
		return nil
	}
	if span.Empty() {
		return nil
	}
	if e.Dirty.Empty() {
		e.Dirty = span
		return nil
	}
	if span.Start < e.Dirty.Start {
		e.Dirty.Start = span.Start
	}
	if span.End > e.Dirty.End {
		e.Dirty.End = span.End
	}
	return nil
}

// OnFlush returns a copy of the current host bytes of [offset, offset+length)
// clipped to the mapping, and marks the mapping as flushed. A range that
// misses the mapping entirely leaves the mapping unflushed.
func (t *Tracker) OnFlush(ctx context.Context, mem vk.DeviceMemory, offset, length vk.DeviceSize) ([]byte, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	e, ok := t.mappings[mem]
	if !ok {
		log.W(ctx, "Flush of unmapped memory %v", mem)
		return nil, ErrNotMapped
	}
	span := e.clip(offset, length)
	if span.Empty() {
		if length == 0 {
			return nil, nil
		}
		log.W(ctx, "Flush outside the mapping of memory %v", mem)
		return nil, errors.Wrapf(ErrBadRange, "memory %v flush [%#x, +%#x) outside %v", mem, uint64(offset), uint64(length), e.Mapping)
	}
	e.Flushed = true
	return e.read(span), nil
}

// OnUnmap removes the mapping of mem. If the mapping was never flushed it
// returns a copy of the current bytes of the dirty range and the memory
// offset they start at.
func (t *Tracker) OnUnmap(ctx context.Context, mem vk.DeviceMemory) ([]byte, uint64, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	e, ok := t.mappings[mem]
	if !ok {
		log.W(ctx, "Unmap of unmapped memory %v", mem)
		return nil, 0, ErrNotMapped
	}
	delete(t.mappings, mem)
	if e.Flushed {
		return nil, e.Dirty.Start, nil
	}
	return e.read(e.Dirty), e.Dirty.Start, nil
}

// OnFree forgets mem and any mapping of it.
func (t *Tracker) OnFree(ctx context.Context, mem vk.DeviceMemory) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, mapped := t.mappings[mem]; mapped {
		log.D(ctx, "Memory %v freed while mapped", mem)
	}
	delete(t.mappings, mem)
	delete(t.allocations, mem)
}

// Mapped returns a copy of the mapping entry of mem.
func (t *Tracker) Mapped(mem vk.DeviceMemory) (Entry, bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if e, ok := t.mappings[mem]; ok {
		return *e, true
	}
	return Entry{}, false
}

// Len returns the number of active mappings.
func (t *Tracker) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.mappings)
}

// resolve returns the span of a map request. Callers hold the lock.
func (t *Tracker) resolve(mem vk.DeviceMemory, offset, size vk.DeviceSize) (interval.U64Span, error) {
	total, known := t.allocations[mem]
	start := uint64(offset)
	if size == vk.WholeSize {
		if !known {
			return interval.U64Span{}, ErrUnknownMemory
		}
		if start > total {
			return interval.U64Span{}, errors.Wrapf(ErrBadRange, "offset %#x in %#x bytes", start, total)
		}
		return interval.U64Span{Start: start, End: total}, nil
	}
	end := start + uint64(size)
	if end < start || (known && end > total) {
		return interval.U64Span{}, errors.Wrapf(ErrBadRange, "[%#x, %#x) in %#x bytes", start, end, total)
	}
	return interval.U64Span{Start: start, End: end}, nil
}

// clip returns [offset, offset+length) clipped to the mapping. A length of
// vk.WholeSize extends to the end of the mapping.
func (e *Entry) clip(offset, length vk.DeviceSize) interval.U64Span {
	start := uint64(offset)
	end := e.Mapping.End
	if length != vk.WholeSize && start+uint64(length) >= start && start+uint64(length) < end {
		end = start + uint64(length)
	}
	return e.Mapping.Intersect(interval.U64Span{Start: start, End: end})
}

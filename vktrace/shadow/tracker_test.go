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

//go:build unix

package shadow_test

import (
	"testing"
	"unsafe"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/math/interval"
	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/shadow"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const pageSize = 4096

// hostMemory returns an anonymous host mapping standing in for the memory a
// driver hands out from vkMapMemory.
func hostMemory(t *testing.T, size int) []byte {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		t.Fatalf("mmap failed: %v", err)
	}
	t.Cleanup(func() { unix.Munmap(b) })
	return b
}

func ptr(b []byte) unsafe.Pointer { return unsafe.Pointer(&b[0]) }

func TestUnmapCapturesDirtyRange(t *testing.T) {
	ctx := log.Testing(t)
	host := hostMemory(t, pageSize)
	tracker := shadow.New()
	tracker.OnAllocate(1, 2*pageSize)

	// Map the second half of the first page.
	mapped := host[2048:]
	assert.For(ctx, "map").ThatError(tracker.OnMap(ctx, 1, ptr(mapped), 2048, 2048)).Succeeded()
	e, ok := tracker.Mapped(1)
	assert.For(ctx, "mapped").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "span").That(e.Mapping).Equals(interval.U64Span{Start: 2048, End: 4096})
	assert.For(ctx, "default dirty").That(e.Dirty).Equals(e.Mapping)

	copy(mapped[16:], []byte("written"))
	assert.For(ctx, "declare").ThatError(tracker.OnRangeWritten(ctx, 1, 2048+16, 7, ptr(mapped[16:]))).Succeeded()

	data, offset, err := tracker.OnUnmap(ctx, 1)
	assert.For(ctx, "unmap").ThatError(err).Succeeded()
	assert.For(ctx, "offset").That(offset).Equals(uint64(2048 + 16))
	assert.For(ctx, "data").ThatString(data).Equals("written")
	assert.For(ctx, "removed").ThatInteger(tracker.Len()).Equals(0)
}

func TestUnmapWithoutDeclarationCapturesMapping(t *testing.T) {
	ctx := log.Testing(t)
	host := hostMemory(t, pageSize)
	tracker := shadow.New()
	tracker.OnAllocate(5, 64)
	assert.For(ctx, "map").ThatError(tracker.OnMap(ctx, 5, ptr(host), 0, vk.WholeSize)).Succeeded()
	host[0], host[63] = 0xaa, 0xbb
	data, offset, err := tracker.OnUnmap(ctx, 5)
	assert.For(ctx, "unmap").ThatError(err).Succeeded()
	assert.For(ctx, "offset").That(offset).Equals(uint64(0))
	assert.For(ctx, "length").ThatSlice(data).IsLength(64)
	assert.For(ctx, "first").That(data[0]).Equals(byte(0xaa))
	assert.For(ctx, "last").That(data[63]).Equals(byte(0xbb))
}

func TestFlushThenUnmapCapturesNothing(t *testing.T) {
	ctx := log.Testing(t)
	host := hostMemory(t, pageSize)
	tracker := shadow.New()
	tracker.OnAllocate(2, pageSize)
	assert.For(ctx, "map").ThatError(tracker.OnMap(ctx, 2, ptr(host), 0, pageSize)).Succeeded()

	copy(host[100:], []byte{1, 2, 3, 4})
	flushed, err := tracker.OnFlush(ctx, 2, 100, 4)
	assert.For(ctx, "flush").ThatError(err).Succeeded()
	assert.For(ctx, "flushed").ThatSlice(flushed).Equals([]byte{1, 2, 3, 4})

	// The copy is taken at flush time.
	host[100] = 9
	assert.For(ctx, "snapshot").That(flushed[0]).Equals(byte(1))

	tail, err := tracker.OnFlush(ctx, 2, pageSize-2, vk.WholeSize)
	assert.For(ctx, "whole size flush").ThatError(err).Succeeded()
	assert.For(ctx, "tail").ThatSlice(tail).IsLength(2)
	clipped, _ := tracker.OnFlush(ctx, 2, pageSize-2, 100)
	assert.For(ctx, "clipped").ThatSlice(clipped).IsLength(2)

	data, _, err := tracker.OnUnmap(ctx, 2)
	assert.For(ctx, "unmap").ThatError(err).Succeeded()
	assert.For(ctx, "nothing").That(data).IsNil()
}

func TestMapErrors(t *testing.T) {
	ctx := log.Testing(t)
	host := hostMemory(t, pageSize)
	tracker := shadow.New()
	tracker.OnAllocate(3, 256)

	assert.For(ctx, "map").ThatError(tracker.OnMap(ctx, 3, ptr(host), 0, 128)).Succeeded()
	assert.For(ctx, "remap").ThatError(tracker.OnMap(ctx, 3, ptr(host[8:]), 8, 16)).Equals(shadow.ErrAlreadyMapped)
	e, _ := tracker.Mapped(3)
	assert.For(ctx, "unchanged").That(e.Mapping).Equals(interval.U64Span{Start: 0, End: 128})

	assert.For(ctx, "unknown whole size").ThatError(tracker.OnMap(ctx, 4, ptr(host), 0, vk.WholeSize)).Equals(shadow.ErrUnknownMemory)
	tracker.OnAllocate(6, 256)
	assert.For(ctx, "too large").ThatError(tracker.OnMap(ctx, 6, ptr(host), 128, 256)).HasCause(shadow.ErrBadRange)

	_, err := tracker.OnFlush(ctx, 7, 0, 1)
	assert.For(ctx, "flush unmapped").ThatError(err).Equals(shadow.ErrNotMapped)
	_, _, err = tracker.OnUnmap(ctx, 7)
	assert.For(ctx, "unmap unmapped").ThatError(err).Equals(shadow.ErrNotMapped)
	assert.For(ctx, "write unmapped").ThatError(tracker.OnRangeWritten(ctx, 7, 0, 1, nil)).Equals(shadow.ErrNotMapped)
	assert.For(ctx, "bad pointer").ThatError(tracker.OnRangeWritten(ctx, 3, 4, 4, ptr(host[5:]))).HasCause(shadow.ErrPointerMismatch)
}

func TestDeclaredRangesExtend(t *testing.T) {
	ctx := log.Testing(t)
	host := hostMemory(t, pageSize)
	tracker := shadow.New()
	tracker.OnAllocate(1, pageSize)
	tracker.OnMap(ctx, 1, ptr(host), 0, pageSize)
	tracker.OnRangeWritten(ctx, 1, 64, 16, nil)
	tracker.OnRangeWritten(ctx, 1, 32, 8, nil)
	tracker.OnRangeWritten(ctx, 1, 8000, 8, nil)
	e, _ := tracker.Mapped(1)
	assert.For(ctx, "dirty").That(e.Dirty).Equals(interval.U64Span{Start: 32, End: 80})
}

func TestOutOfRangeKeepsWrites(t *testing.T) {
	ctx := log.Testing(t)
	host := hostMemory(t, pageSize)
	tracker := shadow.New()

	tracker.OnAllocate(1, pageSize)
	tracker.OnMap(ctx, 1, ptr(host), 0, 256)
	host[10] = 0x5a
	assert.For(ctx, "declare outside").ThatError(tracker.OnRangeWritten(ctx, 1, pageSize, 16, nil)).HasCause(shadow.ErrBadRange)
	e, _ := tracker.Mapped(1)
	assert.For(ctx, "dirty kept").That(e.Dirty).Equals(interval.U64Span{Start: 0, End: 256})
	data, _, err := tracker.OnUnmap(ctx, 1)
	assert.For(ctx, "unmap").ThatError(err).Succeeded()
	assert.For(ctx, "captured").ThatSlice(data).IsLength(256)
	assert.For(ctx, "write").That(data[10]).Equals(byte(0x5a))

	tracker.OnAllocate(2, pageSize)
	mapped := host[64:]
	tracker.OnMap(ctx, 2, ptr(mapped), 64, 128)
	mapped[0] = 0xa5
	flushed, err := tracker.OnFlush(ctx, 2, 0, 32)
	assert.For(ctx, "flush outside").ThatError(err).HasCause(shadow.ErrBadRange)
	assert.For(ctx, "flush data").That(flushed).IsNil()
	e, _ = tracker.Mapped(2)
	assert.For(ctx, "not flushed").ThatBoolean(e.Flushed).IsFalse()
	data, offset, err := tracker.OnUnmap(ctx, 2)
	assert.For(ctx, "unmap flushed outside").ThatError(err).Succeeded()
	assert.For(ctx, "offset").That(offset).Equals(uint64(64))
	assert.For(ctx, "captured after flush").ThatSlice(data).IsLength(128)
	assert.For(ctx, "first byte").That(data[0]).Equals(byte(0xa5))
}

func TestFreeWhileMapped(t *testing.T) {
	ctx := log.Testing(t)
	host := hostMemory(t, pageSize)
	tracker := shadow.New()
	tracker.OnAllocate(9, pageSize)
	tracker.OnMap(ctx, 9, ptr(host), 0, vk.WholeSize)
	tracker.OnFree(ctx, 9)
	assert.For(ctx, "removed").ThatInteger(tracker.Len()).Equals(0)
	tracker.OnFree(ctx, 9)
	assert.For(ctx, "whole size after free").ThatError(tracker.OnMap(ctx, 9, ptr(host), 0, vk.WholeSize)).Equals(shadow.ErrUnknownMemory)
}

func TestConcurrentMappings(t *testing.T) {
	ctx := log.Testing(t)
	const workers = 16
	host := hostMemory(t, workers*pageSize)
	tracker := shadow.New()
	results := make([][]byte, workers)

	g := errgroup.Group{}
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			mem := vk.DeviceMemory(i + 1)
			page := host[i*pageSize : (i+1)*pageSize]
			tracker.OnAllocate(mem, pageSize)
			for round := 0; round < 50; round++ {
				if err := tracker.OnMap(ctx, mem, ptr(page), 0, vk.WholeSize); err != nil {
					return err
				}
				page[0] = byte(i)
				page[1] = byte(round)
				if err := tracker.OnRangeWritten(ctx, mem, 0, 2, nil); err != nil {
					return err
				}
				data, _, err := tracker.OnUnmap(ctx, mem)
				if err != nil {
					return err
				}
				results[i] = data
			}
			tracker.OnFree(ctx, mem)
			return nil
		})
	}
	assert.For(ctx, "wait").ThatError(g.Wait()).Succeeded()
	assert.For(ctx, "len").ThatInteger(tracker.Len()).Equals(0)
	for i, data := range results {
		assert.For(ctx, "result %d", i).ThatSlice(data).Equals([]byte{byte(i), 49})
	}
}

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

package trace

import (
	"unsafe"

	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/packet"
)

// AllocateMemory is the capture wrapper of vkAllocateMemory.
func (l *Layer) AllocateMemory(device vk.Device, info *vk.MemoryAllocateInfo, memory *vk.DeviceMemory) vk.Result {
	p := l.reserve(packet.CallAllocateMemory, PacketAllocateMemory{}, l.builder.Chains().Size(info)+8)
	res := l.device(uintptr(device)).Table.AllocateMemory(device, info, memory)
	p.SetCallEnd()
	if res == vk.Success && info != nil && memory != nil {
		l.memory.OnAllocate(*memory, info.AllocationSize)
	}
	body := p.Body()
	body.Uint64(uint64(device))
	allocateInfo := body.Pointer()
	handle := body.Pointer()
	writeResult(body, res)
	p.AttachChain(l.ctx, allocateInfo, info)
	attachHandle(p, handle, memory)
	l.send(p)
	return res
}

// FreeMemory is the capture wrapper of vkFreeMemory. Freeing mapped memory
// drops its mapping without capturing it.
func (l *Layer) FreeMemory(device vk.Device, memory vk.DeviceMemory) {
	p := l.reserve(packet.CallFreeMemory, PacketFreeMemory{}, 0)
	l.device(uintptr(device)).Table.FreeMemory(device, memory)
	p.SetCallEnd()
	l.memory.OnFree(l.ctx, memory)
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(memory))
	l.send(p)
}

// MapMemory is the capture wrapper of vkMapMemory. The returned mapping is
// shadowed until it is unmapped.
func (l *Layer) MapMemory(device vk.Device, memory vk.DeviceMemory, offset, size vk.DeviceSize, flags uint32, data *unsafe.Pointer) vk.Result {
	p := l.reserve(packet.CallMapMemory, PacketMapMemory{}, 0)
	res := l.device(uintptr(device)).Table.MapMemory(device, memory, offset, size, flags, data)
	p.SetCallEnd()
	var address unsafe.Pointer
	if res == vk.Success && data != nil && *data != nil {
		address = *data
		l.memory.OnMap(l.ctx, memory, address, offset, size)
	}
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(memory))
	body.Uint64(uint64(offset))
	body.Uint64(uint64(size))
	body.Uint32(flags)
	body.Uint32(0)
	body.Uint64(uint64(uintptr(address)))
	writeResult(body, res)
	l.send(p)
	return res
}

// UnmapMemory is the capture wrapper of vkUnmapMemory. The bytes written
// since the mapping was created are captured before the real unmap
// invalidates the pointer, unless part of the mapping was flushed.
func (l *Layer) UnmapMemory(device vk.Device, memory vk.DeviceMemory) {
	data, offset, _ := l.memory.OnUnmap(l.ctx, memory)
	p := l.reserve(packet.CallUnmapMemory, PacketUnmapMemory{}, packet.Extra(uint64(len(data))))
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(memory))
	body.Uint64(offset)
	body.Uint64(uint64(len(data)))
	dataSlot := body.Pointer()
	p.Attach(dataSlot, data)
	p.Finalize(dataSlot)
	l.device(uintptr(device)).Table.UnmapMemory(device, memory)
	p.SetCallEnd()
	l.send(p)
}

// FlushMappedMemoryRanges is the capture wrapper of
// vkFlushMappedMemoryRanges. The bytes of each range are captured before the
// real flush.
func (l *Layer) FlushMappedMemoryRanges(device vk.Device, ranges []vk.MappedMemoryRange) vk.Result {
	data := make([][]byte, len(ranges))
	extra := structsSize(l.builder.Chains(), ranges, WireMappedMemoryRangeSize, nil) +
		packet.ArraySize(len(ranges), packet.PointerSize)
	for i, r := range ranges {
		data[i], _ = l.memory.OnFlush(l.ctx, r.Memory, r.Offset, r.Size)
		extra += packet.Extra(uint64(len(data[i])))
	}
	p := l.reserve(packet.CallFlushMappedMemoryRanges, PacketFlushMappedMemoryRanges{}, extra)
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint32(uint32(len(ranges)))
	body.Uint32(0)
	rangesSlot := body.Pointer()
	dataSlot := body.Pointer()
	attachStructs(l.ctx, p, rangesSlot, ranges, WireMappedMemoryRangeSize, encodeMappedMemoryRange)
	array := p.AttachStruct(dataSlot, uint64(len(ranges))*packet.PointerSize)
	for _, d := range data {
		slot := array.Pointer()
		p.Attach(slot, d)
		p.Finalize(slot)
	}
	p.Finalize(dataSlot)

	res := l.device(uintptr(device)).Table.FlushMappedMemoryRanges(device, ranges)
	p.SetCallEnd()
	writeResult(body, res)
	l.send(p)
	return res
}

// RangeWritten declares that the application wrote length bytes at offset
// of the mapped memory mem, so that only the declared ranges are captured on
// unmap. ptr, if not nil, must be the host address of offset.
func (l *Layer) RangeWritten(mem vk.DeviceMemory, offset, length vk.DeviceSize, ptr unsafe.Pointer) error {
	return l.memory.OnRangeWritten(l.ctx, mem, offset, length, ptr)
}

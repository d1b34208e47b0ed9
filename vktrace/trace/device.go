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
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/packet"
)

// CreateDevice is the capture wrapper of vkCreateDevice. device must hold the
// handle the loader allocated for the new device.
func (l *Layer) CreateDevice(physicalDevice vk.PhysicalDevice, info *vk.DeviceCreateInfo, device *vk.Device) vk.Result {
	record := l.device(uintptr(*device))
	p := l.reserve(packet.CallCreateDevice, PacketCreateDevice{}, l.builder.Chains().Size(info)+8)
	res := record.Table.CreateDevice(physicalDevice, info, device)
	p.SetCallEnd()
	if res == vk.Success && info != nil {
		record.EnableExtensions(info.EnabledExtensionNames)
		log.I(l.ctx, "Created device %#x with extensions %v", uintptr(*device), record.Flags())
	}
	body := p.Body()
	body.Uint64(uint64(physicalDevice))
	createInfo := body.Pointer()
	handle := body.Pointer()
	writeResult(body, res)
	p.AttachChain(l.ctx, createInfo, info)
	attachHandle(p, handle, device)
	l.send(p)
	return res
}

// DestroyDevice is the capture wrapper of vkDestroyDevice. The device record
// is kept.
func (l *Layer) DestroyDevice(device vk.Device) {
	p := l.reserve(packet.CallDestroyDevice, PacketDestroyDevice{}, 0)
	l.device(uintptr(device)).Table.DestroyDevice(device)
	p.SetCallEnd()
	p.Body().Uint64(uint64(device))
	l.send(p)
}

// GetDeviceQueue is the capture wrapper of vkGetDeviceQueue.
func (l *Layer) GetDeviceQueue(device vk.Device, queueFamilyIndex, queueIndex uint32, queue *vk.Queue) {
	p := l.reserve(packet.CallGetDeviceQueue, PacketGetDeviceQueue{}, 8)
	l.device(uintptr(device)).Table.GetDeviceQueue(device, queueFamilyIndex, queueIndex, queue)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint32(queueFamilyIndex)
	body.Uint32(queueIndex)
	handle := body.Pointer()
	attachHandle(p, handle, queue)
	l.send(p)
}

// QueueSubmit is the capture wrapper of vkQueueSubmit.
func (l *Layer) QueueSubmit(queue vk.Queue, submits []vk.SubmitInfo, fence vk.Fence) vk.Result {
	extra := structsSize(l.builder.Chains(), submits, WireSubmitInfoSize, submitInfoExtra)
	p := l.reserve(packet.CallQueueSubmit, PacketQueueSubmit{}, extra)
	res := l.device(uintptr(queue)).Table.QueueSubmit(queue, submits, fence)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(queue))
	body.Uint32(uint32(len(submits)))
	body.Uint32(0)
	submitsSlot := body.Pointer()
	body.Uint64(uint64(fence))
	writeResult(body, res)
	attachStructs(l.ctx, p, submitsSlot, submits, WireSubmitInfoSize, encodeSubmitInfo)
	l.send(p)
	return res
}

// QueueWaitIdle is the capture wrapper of vkQueueWaitIdle.
func (l *Layer) QueueWaitIdle(queue vk.Queue) vk.Result {
	p := l.reserve(packet.CallQueueWaitIdle, PacketWaitIdle{}, 0)
	res := l.device(uintptr(queue)).Table.QueueWaitIdle(queue)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(queue))
	writeResult(body, res)
	l.send(p)
	return res
}

// DeviceWaitIdle is the capture wrapper of vkDeviceWaitIdle.
func (l *Layer) DeviceWaitIdle(device vk.Device) vk.Result {
	p := l.reserve(packet.CallDeviceWaitIdle, PacketWaitIdle{}, 0)
	res := l.device(uintptr(device)).Table.DeviceWaitIdle(device)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	writeResult(body, res)
	l.send(p)
	return res
}

// createObject captures a vkCreate* command that takes a create info chain
// and returns one handle through object.
func createObject[H ~uint64](l *Layer, call packet.CallID, device vk.Device, info vk.Chained, object *H, create func() vk.Result) vk.Result {
	p := l.reserve(call, PacketCreateObject{}, l.builder.Chains().Size(info)+8)
	res := create()
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	createInfo := body.Pointer()
	handle := body.Pointer()
	writeResult(body, res)
	p.AttachChain(l.ctx, createInfo, info)
	attachHandle(p, handle, object)
	l.send(p)
	return res
}

// CreateDescriptorPool is the capture wrapper of vkCreateDescriptorPool.
func (l *Layer) CreateDescriptorPool(device vk.Device, info *vk.DescriptorPoolCreateInfo, pool *vk.DescriptorPool) vk.Result {
	return createObject(l, packet.CallCreateDescriptorPool, device, info, pool, func() vk.Result {
		return l.device(uintptr(device)).Table.CreateDescriptorPool(device, info, pool)
	})
}

// CreateFramebuffer is the capture wrapper of vkCreateFramebuffer.
func (l *Layer) CreateFramebuffer(device vk.Device, info *vk.FramebufferCreateInfo, framebuffer *vk.Framebuffer) vk.Result {
	return createObject(l, packet.CallCreateFramebuffer, device, info, framebuffer, func() vk.Result {
		return l.device(uintptr(device)).Table.CreateFramebuffer(device, info, framebuffer)
	})
}

// CreateRenderPass is the capture wrapper of vkCreateRenderPass.
func (l *Layer) CreateRenderPass(device vk.Device, info *vk.RenderPassCreateInfo, renderPass *vk.RenderPass) vk.Result {
	return createObject(l, packet.CallCreateRenderPass, device, info, renderPass, func() vk.Result {
		return l.device(uintptr(device)).Table.CreateRenderPass(device, info, renderPass)
	})
}

// GetQueryPoolResults is the capture wrapper of vkGetQueryPoolResults.
func (l *Layer) GetQueryPoolResults(device vk.Device, pool vk.QueryPool, firstQuery, queryCount uint32, data []byte, stride vk.DeviceSize, flags uint32) vk.Result {
	p := l.reserve(packet.CallGetQueryPoolResults, PacketGetQueryPoolResults{}, packet.Extra(uint64(len(data))))
	res := l.device(uintptr(device)).Table.GetQueryPoolResults(device, pool, firstQuery, queryCount, data, stride, flags)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(pool))
	body.Uint32(firstQuery)
	body.Uint32(queryCount)
	body.Uint64(uint64(len(data)))
	dataSlot := body.Pointer()
	body.Uint64(uint64(stride))
	body.Uint32(flags)
	body.Int32(int32(res))
	p.Attach(dataSlot, data)
	p.Finalize(dataSlot)
	l.send(p)
	return res
}

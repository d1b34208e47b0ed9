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
	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/packet"
)

// CreateSwapchainKHR is the capture wrapper of vkCreateSwapchainKHR.
func (l *Layer) CreateSwapchainKHR(device vk.Device, info *vk.SwapchainCreateInfoKHR, swapchain *vk.SwapchainKHR) vk.Result {
	return createObject(l, packet.CallCreateSwapchainKHR, device, info, swapchain, func() vk.Result {
		return l.device(uintptr(device)).Table.CreateSwapchainKHR(device, info, swapchain)
	})
}

// DestroySwapchainKHR is the capture wrapper of vkDestroySwapchainKHR.
func (l *Layer) DestroySwapchainKHR(device vk.Device, swapchain vk.SwapchainKHR) {
	p := l.reserve(packet.CallDestroySwapchainKHR, PacketDestroySwapchainKHR{}, 0)
	l.device(uintptr(device)).Table.DestroySwapchainKHR(device, swapchain)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(swapchain))
	l.send(p)
}

// GetSwapchainImagesKHR is the capture wrapper of vkGetSwapchainImagesKHR.
func (l *Layer) GetSwapchainImagesKHR(device vk.Device, swapchain vk.SwapchainKHR, count *uint32, images []vk.Image) vk.Result {
	p := l.reserve(packet.CallGetSwapchainImagesKHR, PacketGetSwapchainImagesKHR{},
		packet.Extra(4)+packet.ArraySize(len(images), 8))
	res := l.device(uintptr(device)).Table.GetSwapchainImagesKHR(device, swapchain, count, images)
	p.SetCallEnd()
	images = written(images, count)
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(swapchain))
	countSlot := body.Pointer()
	imagesSlot := body.Pointer()
	writeResult(body, res)
	attachUint32(p, countSlot, count)
	p.AttachUint64s(imagesSlot, handleSlice(images))
	l.send(p)
	return res
}

// AcquireNextImageKHR is the capture wrapper of vkAcquireNextImageKHR.
func (l *Layer) AcquireNextImageKHR(device vk.Device, swapchain vk.SwapchainKHR, timeout uint64, semaphore vk.Semaphore, fence vk.Fence, index *uint32) vk.Result {
	p := l.reserve(packet.CallAcquireNextImageKHR, PacketAcquireNextImageKHR{}, packet.Extra(4))
	res := l.device(uintptr(device)).Table.AcquireNextImageKHR(device, swapchain, timeout, semaphore, fence, index)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(swapchain))
	body.Uint64(timeout)
	body.Uint64(uint64(semaphore))
	body.Uint64(uint64(fence))
	indexSlot := body.Pointer()
	writeResult(body, res)
	attachUint32(p, indexSlot, index)
	l.send(p)
	return res
}

// QueuePresentKHR is the capture wrapper of vkQueuePresentKHR. The per
// swapchain results are captured after the real call filled them in.
func (l *Layer) QueuePresentKHR(queue vk.Queue, info *vk.PresentInfoKHR) vk.Result {
	p := l.reserve(packet.CallQueuePresentKHR, PacketQueuePresentKHR{}, l.builder.Chains().Size(info))
	res := l.device(uintptr(queue)).Table.QueuePresentKHR(queue, info)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(queue))
	presentInfo := body.Pointer()
	writeResult(body, res)
	p.AttachChain(l.ctx, presentInfo, info)
	l.send(p)
	return res
}

// CmdDebugMarkerBeginEXT is the capture wrapper of vkCmdDebugMarkerBeginEXT.
func (l *Layer) CmdDebugMarkerBeginEXT(commandBuffer vk.CommandBuffer, info *vk.DebugMarkerMarkerInfoEXT) {
	p := l.reserve(packet.CallCmdDebugMarkerBeginEXT, PacketCmdDebugMarkerBeginEXT{}, l.builder.Chains().Size(info))
	l.device(uintptr(commandBuffer)).Table.CmdDebugMarkerBeginEXT(commandBuffer, info)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(commandBuffer))
	markerInfo := body.Pointer()
	p.AttachChain(l.ctx, markerInfo, info)
	l.send(p)
}

// CmdDebugMarkerEndEXT is the capture wrapper of vkCmdDebugMarkerEndEXT.
func (l *Layer) CmdDebugMarkerEndEXT(commandBuffer vk.CommandBuffer) {
	p := l.reserve(packet.CallCmdDebugMarkerEndEXT, PacketCmdDebugMarkerEndEXT{}, 0)
	l.device(uintptr(commandBuffer)).Table.CmdDebugMarkerEndEXT(commandBuffer)
	p.SetCallEnd()
	p.Body().Uint64(uint64(commandBuffer))
	l.send(p)
}

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
	eb "encoding/binary"

	"github.com/google/vktrace/core/vulkan/vk"
)

// The fixed bodies of the packets, in wire order. Fields documented as
// offsets hold packet relative offsets of attached buffers, or packet.Null.
// Bodies can be decoded with encoding/binary in little endian.

// PacketCreateInstance is the body of a vkCreateInstance packet.
type PacketCreateInstance struct {
	CreateInfo uint64 // Offset of a WireInstanceCreateInfo chain.
	Instance   uint64 // Offset of the created handle.
	Result     vk.Result
	_          uint32
}

// PacketDestroyInstance is the body of a vkDestroyInstance packet.
type PacketDestroyInstance struct {
	Instance uint64
}

// PacketEnumeratePhysicalDevices is the body of a vkEnumeratePhysicalDevices
// packet.
type PacketEnumeratePhysicalDevices struct {
	Instance        uint64
	Count           uint64 // Offset of the uint32 count.
	PhysicalDevices uint64 // Offset of Count handles.
	Result          vk.Result
	_               uint32
}

// PacketGetPhysicalDeviceQueueFamilyProperties is the body of a
// vkGetPhysicalDeviceQueueFamilyProperties packet.
type PacketGetPhysicalDeviceQueueFamilyProperties struct {
	PhysicalDevice uint64
	Count          uint64
	Properties     uint64
}

// PacketEnumerateDeviceExtensionProperties is the body of a
// vkEnumerateDeviceExtensionProperties packet.
type PacketEnumerateDeviceExtensionProperties struct {
	PhysicalDevice uint64
	LayerName      uint64
	Count          uint64
	Properties     uint64
	Result         vk.Result
	_              uint32
}

// PacketEnumerateDeviceLayerProperties is the body of a
// vkEnumerateDeviceLayerProperties packet.
type PacketEnumerateDeviceLayerProperties struct {
	PhysicalDevice uint64
	Count          uint64
	Properties     uint64
	Result         vk.Result
	_              uint32
}

// PacketGetPhysicalDeviceSurfaceSupportKHR is the body of a
// vkGetPhysicalDeviceSurfaceSupportKHR packet.
type PacketGetPhysicalDeviceSurfaceSupportKHR struct {
	PhysicalDevice   uint64
	QueueFamilyIndex uint32
	_                uint32
	Surface          uint64
	Supported        uint64
	Result           vk.Result
	_                uint32
}

// PacketCreateDebugReportCallbackEXT is the body of a
// vkCreateDebugReportCallbackEXT packet.
type PacketCreateDebugReportCallbackEXT struct {
	Instance   uint64
	CreateInfo uint64
	Callback   uint64
	Result     vk.Result
	_          uint32
}

// PacketDestroyDebugReportCallbackEXT is the body of a
// vkDestroyDebugReportCallbackEXT packet.
type PacketDestroyDebugReportCallbackEXT struct {
	Instance uint64
	Callback uint64
}

// PacketGetProcAddr is the body of vkGetInstanceProcAddr and
// vkGetDeviceProcAddr packets.
type PacketGetProcAddr struct {
	Object uint64
	Name   uint64
	Found  vk.Bool32
	_      uint32
}

// PacketCreateDevice is the body of a vkCreateDevice packet.
type PacketCreateDevice struct {
	PhysicalDevice uint64
	CreateInfo     uint64
	Device         uint64
	Result         vk.Result
	_              uint32
}

// PacketDestroyDevice is the body of a vkDestroyDevice packet.
type PacketDestroyDevice struct {
	Device uint64
}

// PacketGetDeviceQueue is the body of a vkGetDeviceQueue packet.
type PacketGetDeviceQueue struct {
	Device           uint64
	QueueFamilyIndex uint32
	QueueIndex       uint32
	Queue            uint64
}

// PacketQueueSubmit is the body of a vkQueueSubmit packet.
type PacketQueueSubmit struct {
	Queue       uint64
	SubmitCount uint32
	_           uint32
	Submits     uint64
	Fence       uint64
	Result      vk.Result
	_           uint32
}

// PacketWaitIdle is the body of vkQueueWaitIdle and vkDeviceWaitIdle
// packets.
type PacketWaitIdle struct {
	Object uint64
	Result vk.Result
	_      uint32
}

// PacketAllocateMemory is the body of a vkAllocateMemory packet.
type PacketAllocateMemory struct {
	Device       uint64
	AllocateInfo uint64
	Memory       uint64
	Result       vk.Result
	_            uint32
}

// PacketFreeMemory is the body of a vkFreeMemory packet.
type PacketFreeMemory struct {
	Device uint64
	Memory uint64
}

// PacketMapMemory is the body of a vkMapMemory packet.
type PacketMapMemory struct {
	Device  uint64
	Memory  uint64
	Offset  uint64
	Size    uint64
	Flags   uint32
	_       uint32
	// Address is the host address of the mapping in the traced process. It
	// is only meaningful in that process and decoders must treat it as an
	// opaque value, never as a packet offset or a pointer to dereference.
	Address uint64
	Result  vk.Result
	_       uint32
}

// PacketUnmapMemory is the body of a vkUnmapMemory packet. Data holds the
// bytes the application wrote to the mapping that were not flushed.
type PacketUnmapMemory struct {
	Device     uint64
	Memory     uint64
	DataOffset uint64 // Offset of the data in the memory object.
	DataSize   uint64
	Data       uint64
}

// PacketFlushMappedMemoryRanges is the body of a vkFlushMappedMemoryRanges
// packet. Data points at RangeCount offsets, one per range, each of which
// points at the bytes flushed for that range.
type PacketFlushMappedMemoryRanges struct {
	Device     uint64
	RangeCount uint32
	_          uint32
	Ranges     uint64
	Data       uint64
	Result     vk.Result
	_          uint32
}

// PacketCreateObject is the body of the packets of the vkCreate* commands
// that take a device, a create info chain and return a single handle.
type PacketCreateObject struct {
	Device     uint64
	CreateInfo uint64
	Object     uint64
	Result     vk.Result
	_          uint32
}

// PacketGetQueryPoolResults is the body of a vkGetQueryPoolResults packet.
type PacketGetQueryPoolResults struct {
	Device     uint64
	QueryPool  uint64
	FirstQuery uint32
	QueryCount uint32
	DataSize   uint64
	Data       uint64
	Stride     uint64
	Flags      uint32
	Result     vk.Result
}

// PacketDestroySwapchainKHR is the body of a vkDestroySwapchainKHR packet.
type PacketDestroySwapchainKHR struct {
	Device    uint64
	Swapchain uint64
}

// PacketGetSwapchainImagesKHR is the body of a vkGetSwapchainImagesKHR
// packet.
type PacketGetSwapchainImagesKHR struct {
	Device    uint64
	Swapchain uint64
	Count     uint64
	Images    uint64
	Result    vk.Result
	_         uint32
}

// PacketAcquireNextImageKHR is the body of a vkAcquireNextImageKHR packet.
type PacketAcquireNextImageKHR struct {
	Device     uint64
	Swapchain  uint64
	Timeout    uint64
	Semaphore  uint64
	Fence      uint64
	ImageIndex uint64
	Result     vk.Result
	_          uint32
}

// PacketQueuePresentKHR is the body of a vkQueuePresentKHR packet.
type PacketQueuePresentKHR struct {
	Queue       uint64
	PresentInfo uint64
	Result      vk.Result
	_           uint32
}

// PacketCmdDebugMarkerBeginEXT is the body of a vkCmdDebugMarkerBeginEXT
// packet.
type PacketCmdDebugMarkerBeginEXT struct {
	CommandBuffer uint64
	MarkerInfo    uint64
}

// PacketCmdDebugMarkerEndEXT is the body of a vkCmdDebugMarkerEndEXT packet.
type PacketCmdDebugMarkerEndEXT struct {
	CommandBuffer uint64
}

// PacketCmdPipelineBarrier is the body of a vkCmdPipelineBarrier packet.
// Barriers points at BarrierCount offsets, each of a memory, buffer or image
// barrier told apart by its leading type tag.
type PacketCmdPipelineBarrier struct {
	CommandBuffer   uint64
	SrcStageMask    uint32
	DstStageMask    uint32
	DependencyFlags uint32
	BarrierCount    uint32
	Barriers        uint64
}

// PacketCmdWaitEvents is the body of a vkCmdWaitEvents packet. Barriers is
// encoded as in PacketCmdPipelineBarrier.
type PacketCmdWaitEvents struct {
	CommandBuffer uint64
	EventCount    uint32
	_             uint32
	Events        uint64
	SrcStageMask  uint32
	DstStageMask  uint32
	BarrierCount  uint32
	_             uint32
	Barriers      uint64
}

// PacketUpdateDescriptorSets is the body of a vkUpdateDescriptorSets packet.
type PacketUpdateDescriptorSets struct {
	Device     uint64
	WriteCount uint32
	CopyCount  uint32
	Writes     uint64 // Offset of WriteCount WireWriteDescriptorSet.
	Copies     uint64 // Offset of CopyCount WireCopyDescriptorSet.
}

// PacketCreatePipelines is the body of vkCreateGraphicsPipelines and
// vkCreateComputePipelines packets.
type PacketCreatePipelines struct {
	Device          uint64
	PipelineCache   uint64
	CreateInfoCount uint32
	_               uint32
	CreateInfos     uint64
	Pipelines       uint64 // Offset of CreateInfoCount handles.
	Result          vk.Result
	_               uint32
}

// BodySize returns the encoded size of the packet body v.
func BodySize(v interface{}) uint64 { return uint64(eb.Size(v)) }

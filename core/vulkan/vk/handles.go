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

// Package vk models the subset of the Vulkan API seen by the capture layer.
//
// Counted arrays are Go slices, strings are Go strings and extension
// structures hang off a Next field as Chained values. Arrays whose elements
// are told apart by their type tag are slices of Chained. Dispatchable
// handles are addresses of objects whose first machine word is the loader's
// dispatch pointer. Non-dispatchable handles are opaque 64 bit values.
package vk

// Dispatchable is the constraint satisfied by every dispatchable handle type.
type Dispatchable interface {
	~uintptr
}

type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
	Queue          uintptr
	CommandBuffer  uintptr
)

type (
	DeviceMemory           uint64
	Buffer                 uint64
	Image                  uint64
	ImageView              uint64
	Fence                  uint64
	Semaphore              uint64
	RenderPass             uint64
	Framebuffer            uint64
	DescriptorPool         uint64
	QueryPool              uint64
	SurfaceKHR             uint64
	SwapchainKHR           uint64
	DebugReportCallbackEXT uint64
	Event                  uint64
	Sampler                uint64
	BufferView             uint64
	DescriptorSet          uint64
	ShaderModule           uint64
	PipelineCache          uint64
	PipelineLayout         uint64
	Pipeline               uint64
)

// DeviceSize is a size or offset within device memory.
type DeviceSize uint64

// WholeSize requests the remainder of an allocation from the given offset.
const WholeSize = DeviceSize(^uint64(0))

// Bool32 is the 32 bit boolean used in Vulkan structures.
type Bool32 uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)

// Result is the status code returned by most Vulkan commands.
type Result int32

const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	Incomplete                Result = 5
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorOutOfDateKHR         Result = -1000001004
)

func (r Result) Failed() bool { return r < 0 }

// Extension names understood by the capture layer.
const (
	KHRSurfaceExtensionName     = "VK_KHR_surface"
	KHRSwapchainExtensionName   = "VK_KHR_swapchain"
	EXTDebugReportExtensionName = "VK_EXT_debug_report"
	EXTDebugMarkerExtensionName = "VK_EXT_debug_marker"
)

// MaxExtensionNameSize is the fixed size of name arrays in property structures.
const (
	MaxExtensionNameSize = 256
	MaxDescriptionSize   = 256
)

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

package vk

import "unsafe"

// ProcAddr is the result of a GetInstanceProcAddr or GetDeviceProcAddr query.
// It holds one of the PFN function types below, or nil.
type ProcAddr interface{}

type (
	PFNGetInstanceProcAddr func(instance Instance, name string) ProcAddr
	PFNGetDeviceProcAddr   func(device Device, name string) ProcAddr

	PFNCreateInstance                         func(info *InstanceCreateInfo, instance *Instance) Result
	PFNDestroyInstance                        func(instance Instance)
	PFNEnumeratePhysicalDevices               func(instance Instance, count *uint32, devices []PhysicalDevice) Result
	PFNGetPhysicalDeviceQueueFamilyProperties func(physicalDevice PhysicalDevice, count *uint32, properties []QueueFamilyProperties)
	PFNEnumerateDeviceExtensionProperties     func(physicalDevice PhysicalDevice, layerName string, count *uint32, properties []ExtensionProperties) Result
	PFNEnumerateDeviceLayerProperties         func(physicalDevice PhysicalDevice, count *uint32, properties []LayerProperties) Result
	PFNGetPhysicalDeviceSurfaceSupportKHR     func(physicalDevice PhysicalDevice, queueFamilyIndex uint32, surface SurfaceKHR, supported *Bool32) Result
	PFNCreateDebugReportCallbackEXT           func(instance Instance, info *DebugReportCallbackCreateInfoEXT, callback *DebugReportCallbackEXT) Result
	PFNDestroyDebugReportCallbackEXT          func(instance Instance, callback DebugReportCallbackEXT)

	PFNCreateDevice            func(physicalDevice PhysicalDevice, info *DeviceCreateInfo, device *Device) Result
	PFNDestroyDevice           func(device Device)
	PFNGetDeviceQueue          func(device Device, queueFamilyIndex, queueIndex uint32, queue *Queue)
	PFNQueueSubmit             func(queue Queue, submits []SubmitInfo, fence Fence) Result
	PFNQueueWaitIdle           func(queue Queue) Result
	PFNDeviceWaitIdle          func(device Device) Result
	PFNAllocateMemory          func(device Device, info *MemoryAllocateInfo, memory *DeviceMemory) Result
	PFNFreeMemory              func(device Device, memory DeviceMemory)
	PFNMapMemory               func(device Device, memory DeviceMemory, offset, size DeviceSize, flags uint32, data *unsafe.Pointer) Result
	PFNUnmapMemory             func(device Device, memory DeviceMemory)
	PFNFlushMappedMemoryRanges func(device Device, ranges []MappedMemoryRange) Result
	PFNCreateDescriptorPool    func(device Device, info *DescriptorPoolCreateInfo, pool *DescriptorPool) Result
	PFNCreateFramebuffer       func(device Device, info *FramebufferCreateInfo, framebuffer *Framebuffer) Result
	PFNCreateRenderPass        func(device Device, info *RenderPassCreateInfo, renderPass *RenderPass) Result
	PFNGetQueryPoolResults     func(device Device, pool QueryPool, firstQuery, queryCount uint32, data []byte, stride DeviceSize, flags uint32) Result
	PFNCreateSwapchainKHR      func(device Device, info *SwapchainCreateInfoKHR, swapchain *SwapchainKHR) Result
	PFNDestroySwapchainKHR     func(device Device, swapchain SwapchainKHR)
	PFNGetSwapchainImagesKHR   func(device Device, swapchain SwapchainKHR, count *uint32, images []Image) Result
	PFNAcquireNextImageKHR     func(device Device, swapchain SwapchainKHR, timeout uint64, semaphore Semaphore, fence Fence, index *uint32) Result
	PFNQueuePresentKHR         func(queue Queue, info *PresentInfoKHR) Result
	PFNCmdDebugMarkerBeginEXT  func(commandBuffer CommandBuffer, info *DebugMarkerMarkerInfoEXT)
	PFNCmdDebugMarkerEndEXT    func(commandBuffer CommandBuffer)

	// Barriers hold MemoryBarrier, BufferMemoryBarrier and ImageMemoryBarrier
	// elements in any order.
	PFNCmdPipelineBarrier      func(commandBuffer CommandBuffer, srcStageMask, dstStageMask, dependencyFlags uint32, barriers []Chained)
	PFNCmdWaitEvents           func(commandBuffer CommandBuffer, events []Event, srcStageMask, dstStageMask uint32, barriers []Chained)
	PFNUpdateDescriptorSets    func(device Device, writes []WriteDescriptorSet, copies []CopyDescriptorSet)
	PFNCreateGraphicsPipelines func(device Device, cache PipelineCache, infos []GraphicsPipelineCreateInfo, pipelines []Pipeline) Result
	PFNCreateComputePipelines  func(device Device, cache PipelineCache, infos []ComputePipelineCreateInfo, pipelines []Pipeline) Result
)

// InstanceTable is the set of instance level commands provided by the next
// layer down.
type InstanceTable struct {
	GetInstanceProcAddr                    PFNGetInstanceProcAddr
	CreateInstance                         PFNCreateInstance
	DestroyInstance                        PFNDestroyInstance
	EnumeratePhysicalDevices               PFNEnumeratePhysicalDevices
	GetPhysicalDeviceQueueFamilyProperties PFNGetPhysicalDeviceQueueFamilyProperties
	EnumerateDeviceExtensionProperties     PFNEnumerateDeviceExtensionProperties
	EnumerateDeviceLayerProperties         PFNEnumerateDeviceLayerProperties
	GetPhysicalDeviceSurfaceSupportKHR     PFNGetPhysicalDeviceSurfaceSupportKHR
	CreateDebugReportCallbackEXT           PFNCreateDebugReportCallbackEXT
	DestroyDebugReportCallbackEXT          PFNDestroyDebugReportCallbackEXT
}

// Init populates the table by querying gpa for each command by name.
// Commands the next layer does not provide are left nil.
func (t *InstanceTable) Init(gpa func(name string) ProcAddr) {
	t.GetInstanceProcAddr, _ = gpa("vkGetInstanceProcAddr").(PFNGetInstanceProcAddr)
	t.CreateInstance, _ = gpa("vkCreateInstance").(PFNCreateInstance)
	t.DestroyInstance, _ = gpa("vkDestroyInstance").(PFNDestroyInstance)
	t.EnumeratePhysicalDevices, _ = gpa("vkEnumeratePhysicalDevices").(PFNEnumeratePhysicalDevices)
	t.GetPhysicalDeviceQueueFamilyProperties, _ = gpa("vkGetPhysicalDeviceQueueFamilyProperties").(PFNGetPhysicalDeviceQueueFamilyProperties)
	t.EnumerateDeviceExtensionProperties, _ = gpa("vkEnumerateDeviceExtensionProperties").(PFNEnumerateDeviceExtensionProperties)
	t.EnumerateDeviceLayerProperties, _ = gpa("vkEnumerateDeviceLayerProperties").(PFNEnumerateDeviceLayerProperties)
	t.GetPhysicalDeviceSurfaceSupportKHR, _ = gpa("vkGetPhysicalDeviceSurfaceSupportKHR").(PFNGetPhysicalDeviceSurfaceSupportKHR)
	t.CreateDebugReportCallbackEXT, _ = gpa("vkCreateDebugReportCallbackEXT").(PFNCreateDebugReportCallbackEXT)
	t.DestroyDebugReportCallbackEXT, _ = gpa("vkDestroyDebugReportCallbackEXT").(PFNDestroyDebugReportCallbackEXT)
}

// DeviceTable is the set of device level commands provided by the next layer
// down.
type DeviceTable struct {
	GetDeviceProcAddr       PFNGetDeviceProcAddr
	CreateDevice            PFNCreateDevice
	DestroyDevice           PFNDestroyDevice
	GetDeviceQueue          PFNGetDeviceQueue
	QueueSubmit             PFNQueueSubmit
	QueueWaitIdle           PFNQueueWaitIdle
	DeviceWaitIdle          PFNDeviceWaitIdle
	AllocateMemory          PFNAllocateMemory
	FreeMemory              PFNFreeMemory
	MapMemory               PFNMapMemory
	UnmapMemory             PFNUnmapMemory
	FlushMappedMemoryRanges PFNFlushMappedMemoryRanges
	CreateDescriptorPool    PFNCreateDescriptorPool
	CreateFramebuffer       PFNCreateFramebuffer
	CreateRenderPass        PFNCreateRenderPass
	GetQueryPoolResults     PFNGetQueryPoolResults
	CreateSwapchainKHR      PFNCreateSwapchainKHR
	DestroySwapchainKHR     PFNDestroySwapchainKHR
	GetSwapchainImagesKHR   PFNGetSwapchainImagesKHR
	AcquireNextImageKHR     PFNAcquireNextImageKHR
	QueuePresentKHR         PFNQueuePresentKHR
	CmdDebugMarkerBeginEXT  PFNCmdDebugMarkerBeginEXT
	CmdDebugMarkerEndEXT    PFNCmdDebugMarkerEndEXT
	CmdPipelineBarrier      PFNCmdPipelineBarrier
	CmdWaitEvents           PFNCmdWaitEvents
	UpdateDescriptorSets    PFNUpdateDescriptorSets
	CreateGraphicsPipelines PFNCreateGraphicsPipelines
	CreateComputePipelines  PFNCreateComputePipelines
}

// Init populates the table by querying gpa for each command by name.
// Commands the next layer does not provide are left nil.
func (t *DeviceTable) Init(gpa func(name string) ProcAddr) {
	t.GetDeviceProcAddr, _ = gpa("vkGetDeviceProcAddr").(PFNGetDeviceProcAddr)
	t.CreateDevice, _ = gpa("vkCreateDevice").(PFNCreateDevice)
	t.DestroyDevice, _ = gpa("vkDestroyDevice").(PFNDestroyDevice)
	t.GetDeviceQueue, _ = gpa("vkGetDeviceQueue").(PFNGetDeviceQueue)
	t.QueueSubmit, _ = gpa("vkQueueSubmit").(PFNQueueSubmit)
	t.QueueWaitIdle, _ = gpa("vkQueueWaitIdle").(PFNQueueWaitIdle)
	t.DeviceWaitIdle, _ = gpa("vkDeviceWaitIdle").(PFNDeviceWaitIdle)
	t.AllocateMemory, _ = gpa("vkAllocateMemory").(PFNAllocateMemory)
	t.FreeMemory, _ = gpa("vkFreeMemory").(PFNFreeMemory)
	t.MapMemory, _ = gpa("vkMapMemory").(PFNMapMemory)
	t.UnmapMemory, _ = gpa("vkUnmapMemory").(PFNUnmapMemory)
	t.FlushMappedMemoryRanges, _ = gpa("vkFlushMappedMemoryRanges").(PFNFlushMappedMemoryRanges)
	t.CreateDescriptorPool, _ = gpa("vkCreateDescriptorPool").(PFNCreateDescriptorPool)
	t.CreateFramebuffer, _ = gpa("vkCreateFramebuffer").(PFNCreateFramebuffer)
	t.CreateRenderPass, _ = gpa("vkCreateRenderPass").(PFNCreateRenderPass)
	t.GetQueryPoolResults, _ = gpa("vkGetQueryPoolResults").(PFNGetQueryPoolResults)
	t.CreateSwapchainKHR, _ = gpa("vkCreateSwapchainKHR").(PFNCreateSwapchainKHR)
	t.DestroySwapchainKHR, _ = gpa("vkDestroySwapchainKHR").(PFNDestroySwapchainKHR)
	t.GetSwapchainImagesKHR, _ = gpa("vkGetSwapchainImagesKHR").(PFNGetSwapchainImagesKHR)
	t.AcquireNextImageKHR, _ = gpa("vkAcquireNextImageKHR").(PFNAcquireNextImageKHR)
	t.QueuePresentKHR, _ = gpa("vkQueuePresentKHR").(PFNQueuePresentKHR)
	t.CmdDebugMarkerBeginEXT, _ = gpa("vkCmdDebugMarkerBeginEXT").(PFNCmdDebugMarkerBeginEXT)
	t.CmdDebugMarkerEndEXT, _ = gpa("vkCmdDebugMarkerEndEXT").(PFNCmdDebugMarkerEndEXT)
	t.CmdPipelineBarrier, _ = gpa("vkCmdPipelineBarrier").(PFNCmdPipelineBarrier)
	t.CmdWaitEvents, _ = gpa("vkCmdWaitEvents").(PFNCmdWaitEvents)
	t.UpdateDescriptorSets, _ = gpa("vkUpdateDescriptorSets").(PFNUpdateDescriptorSets)
	t.CreateGraphicsPipelines, _ = gpa("vkCreateGraphicsPipelines").(PFNCreateGraphicsPipelines)
	t.CreateComputePipelines, _ = gpa("vkCreateComputePipelines").(PFNCreateComputePipelines)
}

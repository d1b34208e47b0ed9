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
	"github.com/google/vktrace/vktrace/dispatch"
	"github.com/google/vktrace/vktrace/router"
)

func (l *Layer) instanceProcs() *router.Table {
	return router.NewTable(
		router.Entry{Name: "vkCreateInstance", Proc: vk.PFNCreateInstance(l.CreateInstance)},
		router.Entry{Name: "vkDestroyInstance", Proc: vk.PFNDestroyInstance(l.DestroyInstance)},
		router.Entry{Name: "vkEnumeratePhysicalDevices", Proc: vk.PFNEnumeratePhysicalDevices(l.EnumeratePhysicalDevices)},
		router.Entry{Name: "vkGetPhysicalDeviceQueueFamilyProperties", Proc: vk.PFNGetPhysicalDeviceQueueFamilyProperties(l.GetPhysicalDeviceQueueFamilyProperties)},
		router.Entry{Name: "vkEnumerateDeviceExtensionProperties", Proc: vk.PFNEnumerateDeviceExtensionProperties(l.EnumerateDeviceExtensionProperties)},
		router.Entry{Name: "vkEnumerateDeviceLayerProperties", Proc: vk.PFNEnumerateDeviceLayerProperties(l.EnumerateDeviceLayerProperties)},
		router.Entry{Name: "vkCreateDevice", Proc: vk.PFNCreateDevice(l.CreateDevice)},
		router.Entry{
			Name:     "vkGetPhysicalDeviceSurfaceSupportKHR",
			Requires: dispatch.KHRSurface,
			Proc:     vk.PFNGetPhysicalDeviceSurfaceSupportKHR(l.GetPhysicalDeviceSurfaceSupportKHR),
		},
		router.Entry{
			Name:     "vkCreateDebugReportCallbackEXT",
			Requires: dispatch.EXTDebugReport,
			Proc:     vk.PFNCreateDebugReportCallbackEXT(l.CreateDebugReportCallbackEXT),
		},
		router.Entry{
			Name:     "vkDestroyDebugReportCallbackEXT",
			Requires: dispatch.EXTDebugReport,
			Proc:     vk.PFNDestroyDebugReportCallbackEXT(l.DestroyDebugReportCallbackEXT),
		},
	)
}

func (l *Layer) deviceProcs() *router.Table {
	return router.NewTable(
		router.Entry{Name: "vkDestroyDevice", Proc: vk.PFNDestroyDevice(l.DestroyDevice)},
		router.Entry{Name: "vkGetDeviceQueue", Proc: vk.PFNGetDeviceQueue(l.GetDeviceQueue)},
		router.Entry{Name: "vkQueueSubmit", Proc: vk.PFNQueueSubmit(l.QueueSubmit)},
		router.Entry{Name: "vkQueueWaitIdle", Proc: vk.PFNQueueWaitIdle(l.QueueWaitIdle)},
		router.Entry{Name: "vkDeviceWaitIdle", Proc: vk.PFNDeviceWaitIdle(l.DeviceWaitIdle)},
		router.Entry{Name: "vkAllocateMemory", Proc: vk.PFNAllocateMemory(l.AllocateMemory)},
		router.Entry{Name: "vkFreeMemory", Proc: vk.PFNFreeMemory(l.FreeMemory)},
		router.Entry{Name: "vkMapMemory", Proc: vk.PFNMapMemory(l.MapMemory)},
		router.Entry{Name: "vkUnmapMemory", Proc: vk.PFNUnmapMemory(l.UnmapMemory)},
		router.Entry{Name: "vkFlushMappedMemoryRanges", Proc: vk.PFNFlushMappedMemoryRanges(l.FlushMappedMemoryRanges)},
		router.Entry{Name: "vkCreateDescriptorPool", Proc: vk.PFNCreateDescriptorPool(l.CreateDescriptorPool)},
		router.Entry{Name: "vkCreateFramebuffer", Proc: vk.PFNCreateFramebuffer(l.CreateFramebuffer)},
		router.Entry{Name: "vkCreateRenderPass", Proc: vk.PFNCreateRenderPass(l.CreateRenderPass)},
		router.Entry{Name: "vkGetQueryPoolResults", Proc: vk.PFNGetQueryPoolResults(l.GetQueryPoolResults)},
		router.Entry{Name: "vkUpdateDescriptorSets", Proc: vk.PFNUpdateDescriptorSets(l.UpdateDescriptorSets)},
		router.Entry{Name: "vkCreateGraphicsPipelines", Proc: vk.PFNCreateGraphicsPipelines(l.CreateGraphicsPipelines)},
		router.Entry{Name: "vkCreateComputePipelines", Proc: vk.PFNCreateComputePipelines(l.CreateComputePipelines)},
		router.Entry{Name: "vkCmdPipelineBarrier", Proc: vk.PFNCmdPipelineBarrier(l.CmdPipelineBarrier)},
		router.Entry{Name: "vkCmdWaitEvents", Proc: vk.PFNCmdWaitEvents(l.CmdWaitEvents)},
		router.Entry{Name: "vkCreateSwapchainKHR", Requires: dispatch.KHRSwapchain, Proc: vk.PFNCreateSwapchainKHR(l.CreateSwapchainKHR)},
		router.Entry{Name: "vkDestroySwapchainKHR", Requires: dispatch.KHRSwapchain, Proc: vk.PFNDestroySwapchainKHR(l.DestroySwapchainKHR)},
		router.Entry{Name: "vkGetSwapchainImagesKHR", Requires: dispatch.KHRSwapchain, Proc: vk.PFNGetSwapchainImagesKHR(l.GetSwapchainImagesKHR)},
		router.Entry{Name: "vkAcquireNextImageKHR", Requires: dispatch.KHRSwapchain, Proc: vk.PFNAcquireNextImageKHR(l.AcquireNextImageKHR)},
		router.Entry{Name: "vkQueuePresentKHR", Requires: dispatch.KHRSwapchain, Proc: vk.PFNQueuePresentKHR(l.QueuePresentKHR)},
		router.Entry{Name: "vkCmdDebugMarkerBeginEXT", Requires: dispatch.EXTDebugMarker, Proc: vk.PFNCmdDebugMarkerBeginEXT(l.CmdDebugMarkerBeginEXT)},
		router.Entry{Name: "vkCmdDebugMarkerEndEXT", Requires: dispatch.EXTDebugMarker, Proc: vk.PFNCmdDebugMarkerEndEXT(l.CmdDebugMarkerEndEXT)},
	)
}

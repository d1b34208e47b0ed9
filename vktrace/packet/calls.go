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

package packet

import "fmt"

// CallID identifies the command a packet records.
type CallID uint16

const (
	CallInvalid CallID = iota
	CallCreateInstance
	CallDestroyInstance
	CallEnumeratePhysicalDevices
	CallGetPhysicalDeviceQueueFamilyProperties
	CallEnumerateDeviceExtensionProperties
	CallEnumerateDeviceLayerProperties
	CallGetPhysicalDeviceSurfaceSupportKHR
	CallCreateDebugReportCallbackEXT
	CallDestroyDebugReportCallbackEXT
	CallCreateDevice
	CallDestroyDevice
	CallGetDeviceQueue
	CallQueueSubmit
	CallQueueWaitIdle
	CallDeviceWaitIdle
	CallAllocateMemory
	CallFreeMemory
	CallMapMemory
	CallUnmapMemory
	CallFlushMappedMemoryRanges
	CallCreateDescriptorPool
	CallCreateFramebuffer
	CallCreateRenderPass
	CallGetQueryPoolResults
	CallCreateSwapchainKHR
	CallDestroySwapchainKHR
	CallGetSwapchainImagesKHR
	CallAcquireNextImageKHR
	CallQueuePresentKHR
	CallCmdDebugMarkerBeginEXT
	CallCmdDebugMarkerEndEXT
	CallGetInstanceProcAddr
	CallGetDeviceProcAddr
	CallCmdPipelineBarrier
	CallCmdWaitEvents
	CallUpdateDescriptorSets
	CallCreateGraphicsPipelines
	CallCreateComputePipelines
	callCount
)

var callNames = [callCount]string{
	CallInvalid:                                "invalid",
	CallCreateInstance:                         "vkCreateInstance",
	CallDestroyInstance:                        "vkDestroyInstance",
	CallEnumeratePhysicalDevices:               "vkEnumeratePhysicalDevices",
	CallGetPhysicalDeviceQueueFamilyProperties: "vkGetPhysicalDeviceQueueFamilyProperties",
	CallEnumerateDeviceExtensionProperties:     "vkEnumerateDeviceExtensionProperties",
	CallEnumerateDeviceLayerProperties:         "vkEnumerateDeviceLayerProperties",
	CallGetPhysicalDeviceSurfaceSupportKHR:     "vkGetPhysicalDeviceSurfaceSupportKHR",
	CallCreateDebugReportCallbackEXT:           "vkCreateDebugReportCallbackEXT",
	CallDestroyDebugReportCallbackEXT:          "vkDestroyDebugReportCallbackEXT",
	CallCreateDevice:                           "vkCreateDevice",
	CallDestroyDevice:                          "vkDestroyDevice",
	CallGetDeviceQueue:                         "vkGetDeviceQueue",
	CallQueueSubmit:                            "vkQueueSubmit",
	CallQueueWaitIdle:                          "vkQueueWaitIdle",
	CallDeviceWaitIdle:                         "vkDeviceWaitIdle",
	CallAllocateMemory:                         "vkAllocateMemory",
	CallFreeMemory:                             "vkFreeMemory",
	CallMapMemory:                              "vkMapMemory",
	CallUnmapMemory:                            "vkUnmapMemory",
	CallFlushMappedMemoryRanges:                "vkFlushMappedMemoryRanges",
	CallCreateDescriptorPool:                   "vkCreateDescriptorPool",
	CallCreateFramebuffer:                      "vkCreateFramebuffer",
	CallCreateRenderPass:                       "vkCreateRenderPass",
	CallGetQueryPoolResults:                    "vkGetQueryPoolResults",
	CallCreateSwapchainKHR:                     "vkCreateSwapchainKHR",
	CallDestroySwapchainKHR:                    "vkDestroySwapchainKHR",
	CallGetSwapchainImagesKHR:                  "vkGetSwapchainImagesKHR",
	CallAcquireNextImageKHR:                    "vkAcquireNextImageKHR",
	CallQueuePresentKHR:                        "vkQueuePresentKHR",
	CallCmdDebugMarkerBeginEXT:                 "vkCmdDebugMarkerBeginEXT",
	CallCmdDebugMarkerEndEXT:                   "vkCmdDebugMarkerEndEXT",
	CallGetInstanceProcAddr:                    "vkGetInstanceProcAddr",
	CallGetDeviceProcAddr:                      "vkGetDeviceProcAddr",
	CallCmdPipelineBarrier:                     "vkCmdPipelineBarrier",
	CallCmdWaitEvents:                          "vkCmdWaitEvents",
	CallUpdateDescriptorSets:                   "vkUpdateDescriptorSets",
	CallCreateGraphicsPipelines:                "vkCreateGraphicsPipelines",
	CallCreateComputePipelines:                 "vkCreateComputePipelines",
}

func (c CallID) String() string {
	if c < callCount {
		return callNames[c]
	}
	return fmt.Sprintf("CallID(%d)", uint16(c))
}

// Valid returns true if c is a known call.
func (c CallID) Valid() bool { return c > CallInvalid && c < callCount }

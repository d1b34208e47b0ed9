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

// attachHandle attaches the handle h points at, or null if h is nil.
func attachHandle[H ~uint64 | ~uintptr](p *packet.Packet, slot packet.Slot, h *H) {
	if h == nil {
		p.Attach(slot, nil)
	} else {
		p.AttachStruct(slot, 8).Uint64(uint64(*h))
	}
	p.Finalize(slot)
}

// attachUint32 attaches the value v points at, or null if v is nil.
func attachUint32[T ~uint32](p *packet.Packet, slot packet.Slot, v *T) {
	if v == nil {
		p.Attach(slot, nil)
	} else {
		p.AttachStruct(slot, 4).Uint32(uint32(*v))
	}
	p.Finalize(slot)
}

// written returns the elements of s that a command reported in count.
// Drivers may write fewer elements than the capacity of s.
func written[T any](s []T, count *uint32) []T {
	if s == nil || count == nil {
		return nil
	}
	if n := int(*count); n < len(s) {
		return s[:n]
	}
	return s
}

func writeResult(r *packet.Region, res vk.Result) {
	r.Int32(int32(res))
	r.Uint32(0)
}

// CreateInstance is the capture wrapper of vkCreateInstance. instance must
// hold the handle the loader allocated for the new instance.
func (l *Layer) CreateInstance(info *vk.InstanceCreateInfo, instance *vk.Instance) vk.Result {
	record := l.instance(uintptr(*instance))
	p := l.reserve(packet.CallCreateInstance, PacketCreateInstance{}, l.builder.Chains().Size(info)+8)
	res := record.Table.CreateInstance(info, instance)
	p.SetCallEnd()
	if res == vk.Success && info != nil {
		record.EnableExtensions(info.EnabledExtensionNames)
		log.I(l.ctx, "Created instance %#x with extensions %v", uintptr(*instance), record.Flags())
	}
	body := p.Body()
	createInfo := body.Pointer()
	handle := body.Pointer()
	writeResult(body, res)
	p.AttachChain(l.ctx, createInfo, info)
	attachHandle(p, handle, instance)
	l.send(p)
	return res
}

// DestroyInstance is the capture wrapper of vkDestroyInstance. The instance
// record is kept.
func (l *Layer) DestroyInstance(instance vk.Instance) {
	p := l.reserve(packet.CallDestroyInstance, PacketDestroyInstance{}, 0)
	l.instance(uintptr(instance)).Table.DestroyInstance(instance)
	p.SetCallEnd()
	p.Body().Uint64(uint64(instance))
	l.send(p)
}

// EnumeratePhysicalDevices is the capture wrapper of
// vkEnumeratePhysicalDevices.
func (l *Layer) EnumeratePhysicalDevices(instance vk.Instance, count *uint32, devices []vk.PhysicalDevice) vk.Result {
	p := l.reserve(packet.CallEnumeratePhysicalDevices, PacketEnumeratePhysicalDevices{},
		packet.Extra(4)+packet.ArraySize(len(devices), 8))
	res := l.instance(uintptr(instance)).Table.EnumeratePhysicalDevices(instance, count, devices)
	p.SetCallEnd()
	devices = written(devices, count)
	body := p.Body()
	body.Uint64(uint64(instance))
	countSlot := body.Pointer()
	devicesSlot := body.Pointer()
	writeResult(body, res)
	attachUint32(p, countSlot, count)
	p.AttachUint64s(devicesSlot, handleSlice(devices))
	l.send(p)
	return res
}

// GetPhysicalDeviceQueueFamilyProperties is the capture wrapper of
// vkGetPhysicalDeviceQueueFamilyProperties.
func (l *Layer) GetPhysicalDeviceQueueFamilyProperties(physicalDevice vk.PhysicalDevice, count *uint32, properties []vk.QueueFamilyProperties) {
	p := l.reserve(packet.CallGetPhysicalDeviceQueueFamilyProperties, PacketGetPhysicalDeviceQueueFamilyProperties{},
		packet.Extra(4)+packet.ArraySize(len(properties), WireQueueFamilyPropertiesSize))
	l.instance(uintptr(physicalDevice)).Table.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, count, properties)
	p.SetCallEnd()
	properties = written(properties, count)
	body := p.Body()
	body.Uint64(uint64(physicalDevice))
	countSlot := body.Pointer()
	propertiesSlot := body.Pointer()
	attachUint32(p, countSlot, count)
	packet.AttachArray(p, propertiesSlot, len(properties), WireQueueFamilyPropertiesSize, func(r *packet.Region, i int) {
		q := properties[i]
		r.Uint32(q.QueueFlags)
		r.Uint32(q.QueueCount)
		r.Uint32(q.TimestampValidBits)
		r.Uint32(q.MinImageTransferGranularity.Width)
		r.Uint32(q.MinImageTransferGranularity.Height)
		r.Uint32(q.MinImageTransferGranularity.Depth)
	})
	l.send(p)
}

// EnumerateDeviceExtensionProperties is the capture wrapper of
// vkEnumerateDeviceExtensionProperties.
func (l *Layer) EnumerateDeviceExtensionProperties(physicalDevice vk.PhysicalDevice, layerName string, count *uint32, properties []vk.ExtensionProperties) vk.Result {
	p := l.reserve(packet.CallEnumerateDeviceExtensionProperties, PacketEnumerateDeviceExtensionProperties{},
		packet.StringSize(layerName)+packet.Extra(4)+packet.ArraySize(len(properties), WireExtensionPropertiesSize))
	res := l.instance(uintptr(physicalDevice)).Table.EnumerateDeviceExtensionProperties(physicalDevice, layerName, count, properties)
	p.SetCallEnd()
	properties = written(properties, count)
	body := p.Body()
	body.Uint64(uint64(physicalDevice))
	layerSlot := body.Pointer()
	countSlot := body.Pointer()
	propertiesSlot := body.Pointer()
	writeResult(body, res)
	p.AttachString(layerSlot, layerName)
	attachUint32(p, countSlot, count)
	packet.AttachArray(p, propertiesSlot, len(properties), WireExtensionPropertiesSize, func(r *packet.Region, i int) {
		r.Fixed(properties[i].ExtensionName, vk.MaxExtensionNameSize)
		r.Uint32(properties[i].SpecVersion)
	})
	l.send(p)
	return res
}

// EnumerateDeviceLayerProperties is the capture wrapper of
// vkEnumerateDeviceLayerProperties.
func (l *Layer) EnumerateDeviceLayerProperties(physicalDevice vk.PhysicalDevice, count *uint32, properties []vk.LayerProperties) vk.Result {
	p := l.reserve(packet.CallEnumerateDeviceLayerProperties, PacketEnumerateDeviceLayerProperties{},
		packet.Extra(4)+packet.ArraySize(len(properties), WireLayerPropertiesSize))
	res := l.instance(uintptr(physicalDevice)).Table.EnumerateDeviceLayerProperties(physicalDevice, count, properties)
	p.SetCallEnd()
	properties = written(properties, count)
	body := p.Body()
	body.Uint64(uint64(physicalDevice))
	countSlot := body.Pointer()
	propertiesSlot := body.Pointer()
	writeResult(body, res)
	attachUint32(p, countSlot, count)
	packet.AttachArray(p, propertiesSlot, len(properties), WireLayerPropertiesSize, func(r *packet.Region, i int) {
		r.Fixed(properties[i].LayerName, vk.MaxExtensionNameSize)
		r.Uint32(properties[i].SpecVersion)
		r.Uint32(properties[i].ImplementationVersion)
		r.Fixed(properties[i].Description, vk.MaxDescriptionSize)
	})
	l.send(p)
	return res
}

// GetPhysicalDeviceSurfaceSupportKHR is the capture wrapper of
// vkGetPhysicalDeviceSurfaceSupportKHR.
func (l *Layer) GetPhysicalDeviceSurfaceSupportKHR(physicalDevice vk.PhysicalDevice, queueFamilyIndex uint32, surface vk.SurfaceKHR, supported *vk.Bool32) vk.Result {
	p := l.reserve(packet.CallGetPhysicalDeviceSurfaceSupportKHR, PacketGetPhysicalDeviceSurfaceSupportKHR{}, packet.Extra(4))
	res := l.instance(uintptr(physicalDevice)).Table.GetPhysicalDeviceSurfaceSupportKHR(physicalDevice, queueFamilyIndex, surface, supported)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(physicalDevice))
	body.Uint32(queueFamilyIndex)
	body.Uint32(0)
	body.Uint64(uint64(surface))
	supportedSlot := body.Pointer()
	writeResult(body, res)
	attachUint32(p, supportedSlot, supported)
	l.send(p)
	return res
}

// CreateDebugReportCallbackEXT is the capture wrapper of
// vkCreateDebugReportCallbackEXT.
func (l *Layer) CreateDebugReportCallbackEXT(instance vk.Instance, info *vk.DebugReportCallbackCreateInfoEXT, callback *vk.DebugReportCallbackEXT) vk.Result {
	p := l.reserve(packet.CallCreateDebugReportCallbackEXT, PacketCreateDebugReportCallbackEXT{}, l.builder.Chains().Size(info)+8)
	res := l.instance(uintptr(instance)).Table.CreateDebugReportCallbackEXT(instance, info, callback)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(instance))
	createInfo := body.Pointer()
	handle := body.Pointer()
	writeResult(body, res)
	p.AttachChain(l.ctx, createInfo, info)
	attachHandle(p, handle, callback)
	l.send(p)
	return res
}

// DestroyDebugReportCallbackEXT is the capture wrapper of
// vkDestroyDebugReportCallbackEXT.
func (l *Layer) DestroyDebugReportCallbackEXT(instance vk.Instance, callback vk.DebugReportCallbackEXT) {
	p := l.reserve(packet.CallDestroyDebugReportCallbackEXT, PacketDestroyDebugReportCallbackEXT{}, 0)
	l.instance(uintptr(instance)).Table.DestroyDebugReportCallbackEXT(instance, callback)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(instance))
	body.Uint64(uint64(callback))
	l.send(p)
}

func (l *Layer) tracedGetInstanceProcAddr(instance vk.Instance, name string) vk.ProcAddr {
	p := l.reserve(packet.CallGetInstanceProcAddr, PacketGetProcAddr{}, packet.StringSize(name))
	proc := l.router.GetInstanceProcAddr(instance, name)
	p.SetCallEnd()
	l.sendGetProcAddr(p, uint64(instance), name, proc)
	return proc
}

func (l *Layer) tracedGetDeviceProcAddr(device vk.Device, name string) vk.ProcAddr {
	p := l.reserve(packet.CallGetDeviceProcAddr, PacketGetProcAddr{}, packet.StringSize(name))
	proc := l.router.GetDeviceProcAddr(device, name)
	p.SetCallEnd()
	l.sendGetProcAddr(p, uint64(device), name, proc)
	return proc
}

func (l *Layer) sendGetProcAddr(p *packet.Packet, object uint64, name string, proc vk.ProcAddr) {
	body := p.Body()
	body.Uint64(object)
	nameSlot := body.Pointer()
	if proc != nil {
		body.Uint32(uint32(vk.True))
	} else {
		body.Uint32(uint32(vk.False))
	}
	body.Uint32(0)
	p.AttachString(nameSlot, name)
	l.send(p)
}

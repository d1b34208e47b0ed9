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

package router

import (
	"strings"

	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/dispatch"
)

const (
	getInstanceProcAddr = "vkGetInstanceProcAddr"
	getDeviceProcAddr   = "vkGetDeviceProcAddr"
)

// Router implements the layer's GetInstanceProcAddr and GetDeviceProcAddr.
type Router struct {
	Instances *dispatch.Registry[dispatch.InstanceRecord]
	Devices   *dispatch.Registry[dispatch.DeviceRecord]
	// InstanceProcs and DeviceProcs hold the capture wrappers.
	InstanceProcs *Table
	DeviceProcs   *Table
	// TracedGetInstanceProcAddr and TracedGetDeviceProcAddr are returned for
	// the proc address queries themselves while capturing.
	TracedGetInstanceProcAddr vk.PFNGetInstanceProcAddr
	TracedGetDeviceProcAddr   vk.PFNGetDeviceProcAddr
	// Capturing reports whether wrappers should be returned. nil means
	// always.
	Capturing func() bool
}

func (r *Router) capturing() bool { return r.Capturing == nil || r.Capturing() }

// GetInstanceProcAddr resolves name for instance.
//
// The query for vkGetInstanceProcAddr itself is how the loader initialises
// the layer: instance is then a wrapped dispatch.BaseLayerObject, and the
// instance record is created from it.
func (r *Router) GetInstanceProcAddr(instance vk.Instance, name string) vk.ProcAddr {
	if instance == 0 || !strings.HasPrefix(name, "vk") {
		return nil
	}
	if name == getInstanceProcAddr {
		dispatch.InitInstance(r.Instances, dispatch.Unwrap(uintptr(instance)))
		if r.capturing() && r.TracedGetInstanceProcAddr != nil {
			return r.TracedGetInstanceProcAddr
		}
		return vk.PFNGetInstanceProcAddr(r.GetInstanceProcAddr)
	}
	record := r.Instances.Lookup(uintptr(instance))
	if r.capturing() {
		if proc := r.InstanceProcs.Lookup(name, record.Flags()); proc != nil {
			return proc
		}
	}
	if record.Table.GetInstanceProcAddr == nil {
		return nil
	}
	return record.Table.GetInstanceProcAddr(instance, name)
}

// GetDeviceProcAddr resolves name for device.
//
// As with GetInstanceProcAddr, the query for vkGetDeviceProcAddr itself
// carries a wrapped dispatch.BaseLayerObject and creates the device record.
func (r *Router) GetDeviceProcAddr(device vk.Device, name string) vk.ProcAddr {
	if device == 0 || !strings.HasPrefix(name, "vk") {
		return nil
	}
	if name == getDeviceProcAddr {
		dispatch.InitDevice(r.Devices, dispatch.Unwrap(uintptr(device)))
		if r.capturing() && r.TracedGetDeviceProcAddr != nil {
			return r.TracedGetDeviceProcAddr
		}
		return vk.PFNGetDeviceProcAddr(r.GetDeviceProcAddr)
	}
	record := r.Devices.Lookup(uintptr(device))
	if r.capturing() {
		if proc := r.DeviceProcs.Lookup(name, record.Flags()); proc != nil {
			return proc
		}
	}
	if record.Table.GetDeviceProcAddr == nil {
		return nil
	}
	return record.Table.GetDeviceProcAddr(device, name)
}

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

package dispatch

import (
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/google/vktrace/core/vulkan/vk"
)

// Capability is a set of optional extensions enabled on an object.
type Capability uint32

const (
	KHRSurface Capability = 1 << iota
	KHRSwapchain
	EXTDebugReport
	EXTDebugMarker
)

var capabilityNames = []struct {
	capability Capability
	extension  string
}{
	{KHRSurface, vk.KHRSurfaceExtensionName},
	{KHRSwapchain, vk.KHRSwapchainExtensionName},
	{EXTDebugReport, vk.EXTDebugReportExtensionName},
	{EXTDebugMarker, vk.EXTDebugMarkerExtensionName},
}

// CapabilitiesOf returns the capabilities named by the enabled extension
// names. Unrecognised names are ignored.
func CapabilitiesOf(extensions []string) Capability {
	var out Capability
	for _, name := range extensions {
		for _, c := range capabilityNames {
			if name == c.extension {
				out |= c.capability
			}
		}
	}
	return out
}

// Has returns true if every capability in o is also in c.
func (c Capability) Has(o Capability) bool { return c&o == o }

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	names := []string{}
	for _, n := range capabilityNames {
		if c.Has(n.capability) {
			names = append(names, n.extension)
		}
	}
	return strings.Join(names, "|")
}

// Capabilities holds the capability flags of a record. It is written once
// when the object is created and read on every proc address query.
type Capabilities struct {
	bits atomic.Uint32
}

// EnableExtensions adds the capabilities named by extensions.
func (c *Capabilities) EnableExtensions(extensions []string) {
	add := uint32(CapabilitiesOf(extensions))
	for {
		old := c.bits.Load()
		if c.bits.CompareAndSwap(old, old|add) {
			return
		}
	}
}

// Flags returns the current capability flags.
func (c *Capabilities) Flags() Capability { return Capability(c.bits.Load()) }

// Enabled returns true if all of the capabilities in o are set.
func (c *Capabilities) Enabled(o Capability) bool { return c.Flags().Has(o) }

// InstanceRecord holds the real instance table of one instance.
type InstanceRecord struct {
	Table vk.InstanceTable
	Capabilities
}

// DeviceRecord holds the real device table of one device.
type DeviceRecord struct {
	Table vk.DeviceTable
	Capabilities
}

// BaseLayerObject is what the loader passes, in place of a real handle, to the
// GetProcAddr query that forces a layer to initialise.
type BaseLayerObject struct {
	// NextGPA queries the layer below for a command.
	NextGPA func(object uintptr, name string) vk.ProcAddr
	// NextObject is the object to pass to NextGPA.
	NextObject uintptr
	// BaseObject is the dispatchable handle the application sees.
	BaseObject uintptr
}

// Dispatchable handles are object addresses carried as integers, as the
// loader passes them. The uintptr and unsafe.Pointer conversions in Wrap and
// Unwrap are intended and are reported by go vet's unsafeptr check.

// Wrap returns the handle form of o. o must be kept alive by the caller until
// Unwrap has been called.
func Wrap(o *BaseLayerObject) uintptr { return uintptr(unsafe.Pointer(o)) }

// Unwrap returns the BaseLayerObject addressed by a handle created with Wrap.
func Unwrap(handle uintptr) *BaseLayerObject { return (*BaseLayerObject)(unsafe.Pointer(handle)) }

// Next returns a function that queries the layer below for named commands.
func (o *BaseLayerObject) Next() func(name string) vk.ProcAddr {
	return func(name string) vk.ProcAddr { return o.NextGPA(o.NextObject, name) }
}

// InitInstance returns the record for the instance wrapped by o, creating it
// and populating its table from the layer below if needed.
func InitInstance(r *Registry[InstanceRecord], o *BaseLayerObject) *InstanceRecord {
	record, _ := r.LookupOrCreate(o.BaseObject, func(rec *InstanceRecord) {
		rec.Table.Init(o.Next())
	})
	return record
}

// InitDevice returns the record for the device wrapped by o, creating it and
// populating its table from the layer below if needed.
func InitDevice(r *Registry[DeviceRecord], o *BaseLayerObject) *DeviceRecord {
	record, _ := r.LookupOrCreate(o.BaseObject, func(rec *DeviceRecord) {
		rec.Table.Init(o.Next())
	})
	return record
}

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

//go:build unix

package trace_test

import (
	"bytes"
	"context"
	eb "encoding/binary"
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/dispatch"
	"github.com/google/vktrace/vktrace/packet"
	"github.com/google/vktrace/vktrace/trace"
	"github.com/google/vktrace/vktrace/transport"
	"golang.org/x/sys/unix"
)

// loaderTable stands in for the loader's dispatch table. Only its address
// matters.
type loaderTable struct{ _ [2]uintptr }

// object is a dispatchable object whose first word is its loader table.
type object struct{ table *loaderTable }

func (o *object) handle() uintptr { return uintptr(unsafe.Pointer(o)) }

const (
	physicalDeviceCount = 2
	swapchainImageCount = 3
	scribble            = 0xff
)

// driver is the fake layer below the capture layer. Every object created
// from an instance or device shares its loader table, as in a real loader.
type driver struct {
	t        *testing.T
	instance *object
	physical [physicalDeviceCount]*object
	device   *object
	queue    *object
	cmdBuf   *object

	handles atomic.Uint64

	mutex  sync.Mutex
	calls  []string
	memory map[vk.DeviceMemory][]byte
	during map[string]func()
}

func newDriver(t *testing.T) *driver {
	instanceTable, deviceTable := &loaderTable{}, &loaderTable{}
	d := &driver{
		t:        t,
		instance: &object{instanceTable},
		device:   &object{deviceTable},
		queue:    &object{deviceTable},
		cmdBuf:   &object{deviceTable},
		memory:   map[vk.DeviceMemory][]byte{},
	}
	for i := range d.physical {
		d.physical[i] = &object{instanceTable}
	}
	d.handles.Store(0x100)
	t.Cleanup(func() {
		d.mutex.Lock()
		defer d.mutex.Unlock()
		for _, b := range d.memory {
			unix.Munmap(b)
		}
	})
	return d
}

// called records that name reached the driver, then runs the hook set for
// name with duringCall, if any.
func (d *driver) called(name string) {
	d.mutex.Lock()
	d.calls = append(d.calls, name)
	hook := d.during[name]
	d.mutex.Unlock()
	if hook != nil {
		hook()
	}
}

// duringCall makes the driver run hook each time name reaches it.
func (d *driver) duringCall(name string, hook func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.during == nil {
		d.during = map[string]func(){}
	}
	d.during[name] = hook
}

// count returns the number of times name reached the driver.
func (d *driver) count(name string) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	n := 0
	for _, c := range d.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (d *driver) newHandle() uint64 { return d.handles.Add(1) }

// host returns the host memory backing mem.
func (d *driver) host(mem vk.DeviceMemory) []byte {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.memory[mem]
}

// enumerate implements the two call idiom of the enumeration commands.
func enumerate[T any](all []T, count *uint32, out []T) vk.Result {
	if out == nil {
		*count = uint32(len(all))
		return vk.Success
	}
	n := copy(out[:min(int(*count), len(out))], all)
	*count = uint32(n)
	if n < len(all) {
		return vk.Incomplete
	}
	return vk.Success
}

func (d *driver) instanceProcs() map[string]vk.ProcAddr {
	return map[string]vk.ProcAddr{
		"vkGetInstanceProcAddr": vk.PFNGetInstanceProcAddr(d.getInstanceProcAddr),
		"vkCreateInstance": vk.PFNCreateInstance(func(info *vk.InstanceCreateInfo, instance *vk.Instance) vk.Result {
			d.called("vkCreateInstance")
			return vk.Success
		}),
		"vkDestroyInstance": vk.PFNDestroyInstance(func(vk.Instance) { d.called("vkDestroyInstance") }),
		"vkCreateDevice":    d.deviceProcs()["vkCreateDevice"],
		"vkEnumeratePhysicalDevices": vk.PFNEnumeratePhysicalDevices(func(_ vk.Instance, count *uint32, out []vk.PhysicalDevice) vk.Result {
			d.called("vkEnumeratePhysicalDevices")
			all := make([]vk.PhysicalDevice, len(d.physical))
			for i, p := range d.physical {
				all[i] = vk.PhysicalDevice(p.handle())
			}
			return enumerate(all, count, out)
		}),
		"vkGetPhysicalDeviceQueueFamilyProperties": vk.PFNGetPhysicalDeviceQueueFamilyProperties(func(_ vk.PhysicalDevice, count *uint32, out []vk.QueueFamilyProperties) {
			d.called("vkGetPhysicalDeviceQueueFamilyProperties")
			enumerate([]vk.QueueFamilyProperties{{
				QueueFlags:                  7,
				QueueCount:                  2,
				TimestampValidBits:          64,
				MinImageTransferGranularity: vk.Extent3D{Width: 1, Height: 1, Depth: 1},
			}}, count, out)
		}),
		"vkEnumerateDeviceExtensionProperties": vk.PFNEnumerateDeviceExtensionProperties(func(_ vk.PhysicalDevice, _ string, count *uint32, out []vk.ExtensionProperties) vk.Result {
			d.called("vkEnumerateDeviceExtensionProperties")
			return enumerate([]vk.ExtensionProperties{
				{ExtensionName: vk.KHRSwapchainExtensionName, SpecVersion: 70},
				{ExtensionName: vk.EXTDebugMarkerExtensionName, SpecVersion: 4},
			}, count, out)
		}),
		"vkEnumerateDeviceLayerProperties": vk.PFNEnumerateDeviceLayerProperties(func(_ vk.PhysicalDevice, count *uint32, out []vk.LayerProperties) vk.Result {
			d.called("vkEnumerateDeviceLayerProperties")
			return enumerate([]vk.LayerProperties{}, count, out)
		}),
		"vkGetPhysicalDeviceSurfaceSupportKHR": vk.PFNGetPhysicalDeviceSurfaceSupportKHR(func(_ vk.PhysicalDevice, _ uint32, _ vk.SurfaceKHR, supported *vk.Bool32) vk.Result {
			d.called("vkGetPhysicalDeviceSurfaceSupportKHR")
			*supported = vk.True
			return vk.Success
		}),
		"vkCreateDebugReportCallbackEXT": vk.PFNCreateDebugReportCallbackEXT(func(_ vk.Instance, _ *vk.DebugReportCallbackCreateInfoEXT, callback *vk.DebugReportCallbackEXT) vk.Result {
			d.called("vkCreateDebugReportCallbackEXT")
			*callback = vk.DebugReportCallbackEXT(d.newHandle())
			return vk.Success
		}),
		"vkDestroyDebugReportCallbackEXT": vk.PFNDestroyDebugReportCallbackEXT(func(vk.Instance, vk.DebugReportCallbackEXT) {
			d.called("vkDestroyDebugReportCallbackEXT")
		}),
	}
}

func (d *driver) deviceProcs() map[string]vk.ProcAddr {
	return map[string]vk.ProcAddr{
		"vkGetDeviceProcAddr": vk.PFNGetDeviceProcAddr(d.getDeviceProcAddr),
		"vkCreateDevice": vk.PFNCreateDevice(func(_ vk.PhysicalDevice, _ *vk.DeviceCreateInfo, _ *vk.Device) vk.Result {
			d.called("vkCreateDevice")
			return vk.Success
		}),
		"vkDestroyDevice": vk.PFNDestroyDevice(func(vk.Device) { d.called("vkDestroyDevice") }),
		"vkGetDeviceQueue": vk.PFNGetDeviceQueue(func(_ vk.Device, _, _ uint32, queue *vk.Queue) {
			d.called("vkGetDeviceQueue")
			*queue = vk.Queue(d.queue.handle())
		}),
		"vkQueueSubmit": vk.PFNQueueSubmit(func(vk.Queue, []vk.SubmitInfo, vk.Fence) vk.Result {
			d.called("vkQueueSubmit")
			return vk.Success
		}),
		"vkQueueWaitIdle": vk.PFNQueueWaitIdle(func(vk.Queue) vk.Result {
			d.called("vkQueueWaitIdle")
			return vk.Success
		}),
		"vkDeviceWaitIdle": vk.PFNDeviceWaitIdle(func(vk.Device) vk.Result {
			d.called("vkDeviceWaitIdle")
			return vk.Success
		}),
		"vkAllocateMemory": vk.PFNAllocateMemory(d.allocateMemory),
		"vkFreeMemory": vk.PFNFreeMemory(func(_ vk.Device, mem vk.DeviceMemory) {
			d.called("vkFreeMemory")
			d.mutex.Lock()
			defer d.mutex.Unlock()
			if b, ok := d.memory[mem]; ok {
				unix.Munmap(b)
				delete(d.memory, mem)
			}
		}),
		"vkMapMemory": vk.PFNMapMemory(func(_ vk.Device, mem vk.DeviceMemory, offset, _ vk.DeviceSize, _ uint32, data *unsafe.Pointer) vk.Result {
			d.called("vkMapMemory")
			b := d.host(mem)
			if b == nil || uint64(offset) >= uint64(len(b)) {
				return vk.ErrorMemoryMapFailed
			}
			*data = unsafe.Pointer(&b[offset])
			return vk.Success
		}),
		"vkUnmapMemory": vk.PFNUnmapMemory(func(_ vk.Device, mem vk.DeviceMemory) {
			d.called("vkUnmapMemory")
			// Anything read from the mapping after this point is wrong.
			b := d.host(mem)
			for i := range b {
				b[i] = scribble
			}
		}),
		"vkFlushMappedMemoryRanges": vk.PFNFlushMappedMemoryRanges(func(vk.Device, []vk.MappedMemoryRange) vk.Result {
			d.called("vkFlushMappedMemoryRanges")
			return vk.Success
		}),
		"vkCreateDescriptorPool": vk.PFNCreateDescriptorPool(func(_ vk.Device, _ *vk.DescriptorPoolCreateInfo, pool *vk.DescriptorPool) vk.Result {
			d.called("vkCreateDescriptorPool")
			*pool = vk.DescriptorPool(d.newHandle())
			return vk.Success
		}),
		"vkCreateFramebuffer": vk.PFNCreateFramebuffer(func(_ vk.Device, _ *vk.FramebufferCreateInfo, fb *vk.Framebuffer) vk.Result {
			d.called("vkCreateFramebuffer")
			*fb = vk.Framebuffer(d.newHandle())
			return vk.Success
		}),
		"vkCreateRenderPass": vk.PFNCreateRenderPass(func(_ vk.Device, _ *vk.RenderPassCreateInfo, rp *vk.RenderPass) vk.Result {
			d.called("vkCreateRenderPass")
			*rp = vk.RenderPass(d.newHandle())
			return vk.Success
		}),
		"vkGetQueryPoolResults": vk.PFNGetQueryPoolResults(func(_ vk.Device, _ vk.QueryPool, first, _ uint32, data []byte, _ vk.DeviceSize, _ uint32) vk.Result {
			d.called("vkGetQueryPoolResults")
			for i := range data {
				data[i] = byte(first) + byte(i)
			}
			return vk.Success
		}),
		"vkCreateSwapchainKHR": vk.PFNCreateSwapchainKHR(func(_ vk.Device, _ *vk.SwapchainCreateInfoKHR, sc *vk.SwapchainKHR) vk.Result {
			d.called("vkCreateSwapchainKHR")
			*sc = vk.SwapchainKHR(d.newHandle())
			return vk.Success
		}),
		"vkDestroySwapchainKHR": vk.PFNDestroySwapchainKHR(func(vk.Device, vk.SwapchainKHR) { d.called("vkDestroySwapchainKHR") }),
		"vkGetSwapchainImagesKHR": vk.PFNGetSwapchainImagesKHR(func(_ vk.Device, _ vk.SwapchainKHR, count *uint32, out []vk.Image) vk.Result {
			d.called("vkGetSwapchainImagesKHR")
			all := make([]vk.Image, swapchainImageCount)
			for i := range all {
				all[i] = vk.Image(0x1000 + i)
			}
			return enumerate(all, count, out)
		}),
		"vkAcquireNextImageKHR": vk.PFNAcquireNextImageKHR(func(_ vk.Device, _ vk.SwapchainKHR, _ uint64, _ vk.Semaphore, _ vk.Fence, index *uint32) vk.Result {
			d.called("vkAcquireNextImageKHR")
			*index = 1
			return vk.Success
		}),
		"vkQueuePresentKHR": vk.PFNQueuePresentKHR(func(_ vk.Queue, info *vk.PresentInfoKHR) vk.Result {
			d.called("vkQueuePresentKHR")
			for i := range info.Results {
				info.Results[i] = vk.ErrorOutOfDateKHR
			}
			return vk.ErrorOutOfDateKHR
		}),
		"vkCmdDebugMarkerBeginEXT": vk.PFNCmdDebugMarkerBeginEXT(func(vk.CommandBuffer, *vk.DebugMarkerMarkerInfoEXT) {
			d.called("vkCmdDebugMarkerBeginEXT")
		}),
		"vkCmdDebugMarkerEndEXT": vk.PFNCmdDebugMarkerEndEXT(func(vk.CommandBuffer) { d.called("vkCmdDebugMarkerEndEXT") }),
		"vkCmdPipelineBarrier": vk.PFNCmdPipelineBarrier(func(vk.CommandBuffer, uint32, uint32, uint32, []vk.Chained) {
			d.called("vkCmdPipelineBarrier")
		}),
		"vkCmdWaitEvents": vk.PFNCmdWaitEvents(func(vk.CommandBuffer, []vk.Event, uint32, uint32, []vk.Chained) {
			d.called("vkCmdWaitEvents")
		}),
		"vkUpdateDescriptorSets": vk.PFNUpdateDescriptorSets(func(vk.Device, []vk.WriteDescriptorSet, []vk.CopyDescriptorSet) {
			d.called("vkUpdateDescriptorSets")
		}),
		"vkCreateGraphicsPipelines": vk.PFNCreateGraphicsPipelines(func(_ vk.Device, _ vk.PipelineCache, _ []vk.GraphicsPipelineCreateInfo, pipelines []vk.Pipeline) vk.Result {
			d.called("vkCreateGraphicsPipelines")
			for i := range pipelines {
				pipelines[i] = vk.Pipeline(d.newHandle())
			}
			return vk.Success
		}),
		"vkCreateComputePipelines": vk.PFNCreateComputePipelines(func(_ vk.Device, _ vk.PipelineCache, _ []vk.ComputePipelineCreateInfo, pipelines []vk.Pipeline) vk.Result {
			d.called("vkCreateComputePipelines")
			for i := range pipelines {
				pipelines[i] = vk.Pipeline(d.newHandle())
			}
			return vk.Success
		}),
	}
}

func (d *driver) allocateMemory(_ vk.Device, info *vk.MemoryAllocateInfo, mem *vk.DeviceMemory) vk.Result {
	d.called("vkAllocateMemory")
	if info.AllocationSize == 0 {
		return vk.ErrorOutOfDeviceMemory
	}
	b, err := unix.Mmap(-1, 0, int(info.AllocationSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		d.t.Errorf("mmap failed: %v", err)
		return vk.ErrorOutOfHostMemory
	}
	*mem = vk.DeviceMemory(d.newHandle())
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.memory[*mem] = b
	return vk.Success
}

func (d *driver) getInstanceProcAddr(_ vk.Instance, name string) vk.ProcAddr {
	return d.instanceProcs()[name]
}

func (d *driver) getDeviceProcAddr(_ vk.Device, name string) vk.ProcAddr {
	return d.deviceProcs()[name]
}

// failingSink rejects every packet.
type failingSink struct{ sent atomic.Int32 }

func (s *failingSink) Send(context.Context, []byte) error {
	s.sent.Add(1)
	return transport.ErrClosed
}

func (s *failingSink) Close() error { return nil }

// fixture is a capture layer sitting between a test and a fake driver.
type fixture struct {
	t      *testing.T
	ctx    context.Context
	driver *driver
	sink   *transport.Memory
	layer  *trace.Layer

	// The loader keeps these alive while the layer uses them.
	instanceBase *dispatch.BaseLayerObject
	deviceBase   *dispatch.BaseLayerObject
}

func newFixture(t *testing.T) *fixture {
	sink := &transport.Memory{}
	return newFixtureWithSink(t, sink, sink)
}

// newFixtureWithSink returns a fixture whose layer sends to s. memory, if
// not nil, is where the packets can be found.
func newFixtureWithSink(t *testing.T, s transport.Sink, memory *transport.Memory) *fixture {
	ctx := log.Testing(t)
	f := &fixture{t: t, ctx: ctx, driver: newDriver(t), sink: memory}
	f.layer = trace.New(ctx, s, trace.Options{Clock: tickClock()})
	f.instanceBase = &dispatch.BaseLayerObject{
		NextGPA: func(_ uintptr, name string) vk.ProcAddr {
			return f.driver.getInstanceProcAddr(0, name)
		},
		BaseObject: f.driver.instance.handle(),
	}
	f.deviceBase = &dispatch.BaseLayerObject{
		NextGPA: func(_ uintptr, name string) vk.ProcAddr {
			return f.driver.getDeviceProcAddr(0, name)
		},
		BaseObject: f.driver.device.handle(),
	}
	return f
}

// initInstance makes the query the loader uses to initialise the layer for
// the instance, and returns the layer's vkGetInstanceProcAddr.
func (f *fixture) initInstance() vk.PFNGetInstanceProcAddr {
	gipa, ok := f.layer.GetInstanceProcAddr(vk.Instance(dispatch.Wrap(f.instanceBase)), "vkGetInstanceProcAddr").(vk.PFNGetInstanceProcAddr)
	if !ok {
		f.t.Fatalf("vkGetInstanceProcAddr did not resolve")
	}
	return gipa
}

func (f *fixture) initDevice() vk.PFNGetDeviceProcAddr {
	gdpa, ok := f.layer.GetDeviceProcAddr(vk.Device(dispatch.Wrap(f.deviceBase)), "vkGetDeviceProcAddr").(vk.PFNGetDeviceProcAddr)
	if !ok {
		f.t.Fatalf("vkGetDeviceProcAddr did not resolve")
	}
	return gdpa
}

func (f *fixture) instance() vk.Instance             { return vk.Instance(f.driver.instance.handle()) }
func (f *fixture) physicalDevice() vk.PhysicalDevice { return vk.PhysicalDevice(f.driver.physical[0].handle()) }
func (f *fixture) device() vk.Device                 { return vk.Device(f.driver.device.handle()) }
func (f *fixture) queue() vk.Queue                   { return vk.Queue(f.driver.queue.handle()) }
func (f *fixture) commandBuffer() vk.CommandBuffer   { return vk.CommandBuffer(f.driver.cmdBuf.handle()) }

// createInstance initialises the layer and creates the instance with the
// given extensions enabled.
func (f *fixture) createInstance(extensions ...string) {
	f.initInstance()
	create := instanceProc[vk.PFNCreateInstance](f, "vkCreateInstance")
	instance := f.instance()
	info := &vk.InstanceCreateInfo{
		ApplicationInfo:       &vk.ApplicationInfo{ApplicationName: "test", EngineName: "engine", APIVersion: 1 << 22},
		EnabledExtensionNames: extensions,
	}
	if res := create(info, &instance); res != vk.Success {
		f.t.Fatalf("vkCreateInstance failed: %v", res)
	}
}

// createDevice creates the device with the given extensions enabled. The
// instance must have been created.
func (f *fixture) createDevice(extensions ...string) {
	f.initDevice()
	create := instanceProc[vk.PFNCreateDevice](f, "vkCreateDevice")
	device := f.device()
	info := &vk.DeviceCreateInfo{
		QueueCreateInfos:      []vk.DeviceQueueCreateInfo{{QueueFamilyIndex: 0, QueuePriorities: []float32{1, 0.5}}},
		EnabledExtensionNames: extensions,
	}
	if res := create(f.physicalDevice(), info, &device); res != vk.Success {
		f.t.Fatalf("vkCreateDevice failed: %v", res)
	}
}

// instanceProc resolves name through the layer without tracing the query.
func instanceProc[T any](f *fixture, name string) T {
	proc, ok := f.layer.GetInstanceProcAddr(f.instance(), name).(T)
	if !ok {
		f.t.Fatalf("%s did not resolve to %T", name, proc)
	}
	return proc
}

func deviceProc[T any](f *fixture, name string) T {
	proc, ok := f.layer.GetDeviceProcAddr(f.device(), name).(T)
	if !ok {
		f.t.Fatalf("%s did not resolve to %T", name, proc)
	}
	return proc
}

// packets returns the decoded packets of call sent so far.
func (f *fixture) packets(call packet.CallID) []*packet.Decoded {
	out := []*packet.Decoded{}
	if f.sink == nil {
		return out
	}
	for _, data := range f.sink.Packets() {
		d, err := packet.Decode(data)
		if err != nil {
			f.t.Fatalf("Bad packet: %v", err)
		}
		if d.Header().Call == call {
			out = append(out, d)
		}
	}
	return out
}

// last returns the last packet of call.
func (f *fixture) last(call packet.CallID) *packet.Decoded {
	all := f.packets(call)
	if len(all) == 0 {
		f.t.Fatalf("No %v packet was sent", call)
	}
	return all[len(all)-1]
}

// body decodes the fixed body of d into a T.
func body[T any](t *testing.T, d *packet.Decoded) T {
	var out T
	if err := eb.Read(bytes.NewReader(d.Bytes()[packet.HeaderSize:]), eb.LittleEndian, &out); err != nil {
		t.Fatalf("Decoding %T: %v", out, err)
	}
	return out
}

func uint32At(t *testing.T, d *packet.Decoded, offset uint64) uint32 {
	b, err := d.Slice(offset, 4)
	if err != nil || b == nil {
		t.Fatalf("No uint32 at %#x: %v", offset, err)
	}
	return eb.LittleEndian.Uint32(b)
}

func uint64At(t *testing.T, d *packet.Decoded, offset uint64) uint64 {
	b, err := d.Slice(offset, 8)
	if err != nil || b == nil {
		t.Fatalf("No uint64 at %#x: %v", offset, err)
	}
	return eb.LittleEndian.Uint64(b)
}

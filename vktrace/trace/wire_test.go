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

package trace_test

import (
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/packet"
	"github.com/google/vktrace/vktrace/trace"
)

func tickClock() packet.Clock {
	var now atomic.Uint64
	now.Store(1000)
	return packet.ClockFunc(func() uint64 { return now.Add(10) })
}

// unknownStruct is an extension structure the layer has no layout for.
type unknownStruct struct{ next vk.Chained }

func (*unknownStruct) StructureType() vk.StructureType { return 0x7fff0000 }
func (u *unknownStruct) NextInChain() vk.Chained      { return u.next }

type generator struct {
	name string
	make func(r *rand.Rand) vk.Chained
}

func randString(r *rand.Rand) string {
	b := make([]byte, r.Intn(12))
	for i := range b {
		b[i] = byte('a' + r.Intn(26))
	}
	return string(b)
}

func randStrings(r *rand.Rand) []string {
	out := make([]string, r.Intn(4))
	for i := range out {
		out[i] = randString(r)
	}
	return out
}

func randUint32s(r *rand.Rand) []uint32 {
	out := make([]uint32, r.Intn(5))
	for i := range out {
		out[i] = r.Uint32()
	}
	return out
}

func randHandles[H ~uint64 | ~uintptr](r *rand.Rand) []H {
	out := make([]H, r.Intn(5))
	for i := range out {
		out[i] = H(r.Uint32())
	}
	return out
}

// randChain returns a chain of up to depth extension structures.
func randChain(r *rand.Rand, depth int) vk.Chained {
	if depth == 0 {
		return nil
	}
	next := randChain(r, depth-1)
	switch r.Intn(6) {
	case 0:
		return &vk.ValidationFlagsEXT{Next: next, DisabledValidationChecks: randUint32s(r)}
	case 1:
		return &vk.DeviceGroupDeviceCreateInfo{Next: next, PhysicalDevices: randHandles[vk.PhysicalDevice](r)}
	case 2:
		return &vk.ExportMemoryAllocateInfo{Next: next, HandleTypes: r.Uint32()}
	case 3:
		return &vk.MemoryDedicatedAllocateInfo{Next: next, Image: vk.Image(r.Uint64())}
	case 4:
		return &unknownStruct{next: next}
	default:
		return nil
	}
}

func randReferences(r *rand.Rand) []vk.AttachmentReference {
	out := make([]vk.AttachmentReference, r.Intn(3))
	for i := range out {
		out[i] = vk.AttachmentReference{Attachment: uint32(i), Layout: r.Uint32()}
	}
	return out
}

var generators = []generator{
	{"InstanceCreateInfo", func(r *rand.Rand) vk.Chained {
		info := &vk.InstanceCreateInfo{
			Next:                  randChain(r, 2),
			EnabledLayerNames:     randStrings(r),
			EnabledExtensionNames: randStrings(r),
		}
		if r.Intn(2) == 0 {
			info.ApplicationInfo = &vk.ApplicationInfo{
				Next:            randChain(r, 1),
				ApplicationName: randString(r),
				EngineName:      randString(r),
			}
		}
		return info
	}},
	{"DeviceCreateInfo", func(r *rand.Rand) vk.Chained {
		queues := make([]vk.DeviceQueueCreateInfo, r.Intn(3))
		for i := range queues {
			queues[i] = vk.DeviceQueueCreateInfo{
				Next:             randChain(r, 2),
				QueueFamilyIndex: uint32(i),
				QueuePriorities:  make([]float32, r.Intn(4)),
			}
		}
		return &vk.DeviceCreateInfo{
			Next:                  randChain(r, 3),
			QueueCreateInfos:      queues,
			EnabledLayerNames:     randStrings(r),
			EnabledExtensionNames: randStrings(r),
		}
	}},
	{"MemoryAllocateInfo", func(r *rand.Rand) vk.Chained {
		return &vk.MemoryAllocateInfo{Next: randChain(r, 3), AllocationSize: vk.DeviceSize(r.Uint32())}
	}},
	{"SubmitInfo", func(r *rand.Rand) vk.Chained {
		return &vk.SubmitInfo{
			Next:             randChain(r, 1),
			WaitSemaphores:   randHandles[vk.Semaphore](r),
			WaitDstStageMask: randUint32s(r),
			CommandBuffers:   randHandles[vk.CommandBuffer](r),
			SignalSemaphores: randHandles[vk.Semaphore](r),
		}
	}},
	{"DescriptorPoolCreateInfo", func(r *rand.Rand) vk.Chained {
		return &vk.DescriptorPoolCreateInfo{
			MaxSets:   r.Uint32(),
			PoolSizes: make([]vk.DescriptorPoolSize, r.Intn(4)),
		}
	}},
	{"FramebufferCreateInfo", func(r *rand.Rand) vk.Chained {
		return &vk.FramebufferCreateInfo{Attachments: randHandles[vk.ImageView](r), Width: 64, Height: 64, Layers: 1}
	}},
	{"RenderPassCreateInfo", func(r *rand.Rand) vk.Chained {
		subpasses := make([]vk.SubpassDescription, r.Intn(3))
		for i := range subpasses {
			subpasses[i] = vk.SubpassDescription{
				InputAttachments:    randReferences(r),
				ColorAttachments:    randReferences(r),
				ResolveAttachments:  randReferences(r),
				PreserveAttachments: randUint32s(r),
			}
			if r.Intn(2) == 0 {
				subpasses[i].DepthStencilAttachment = &vk.AttachmentReference{Attachment: 9}
			}
		}
		return &vk.RenderPassCreateInfo{
			Next:         randChain(r, 1),
			Attachments:  make([]vk.AttachmentDescription, r.Intn(3)),
			Subpasses:    subpasses,
			Dependencies: make([]vk.SubpassDependency, r.Intn(3)),
		}
	}},
	{"SwapchainCreateInfoKHR", func(r *rand.Rand) vk.Chained {
		return &vk.SwapchainCreateInfoKHR{Next: randChain(r, 2), QueueFamilyIndices: randUint32s(r)}
	}},
	{"PresentInfoKHR", func(r *rand.Rand) vk.Chained {
		swapchains := randHandles[vk.SwapchainKHR](r)
		info := &vk.PresentInfoKHR{
			WaitSemaphores: randHandles[vk.Semaphore](r),
			Swapchains:     swapchains,
			ImageIndices:   make([]uint32, len(swapchains)),
		}
		if r.Intn(2) == 0 {
			info.Results = make([]vk.Result, len(swapchains))
		}
		return info
	}},
	{"DebugReportCallbackCreateInfoEXT", func(r *rand.Rand) vk.Chained {
		return &vk.DebugReportCallbackCreateInfoEXT{Next: randChain(r, 1), Flags: r.Uint32()}
	}},
	{"DebugMarkerMarkerInfoEXT", func(r *rand.Rand) vk.Chained {
		return &vk.DebugMarkerMarkerInfoEXT{MarkerName: randString(r), Color: [4]float32{1, 0, 0, 1}}
	}},
	{"WriteDescriptorSet", func(r *rand.Rand) vk.Chained {
		return &vk.WriteDescriptorSet{
			Next:            randChain(r, 1),
			DstSet:          vk.DescriptorSet(r.Uint32()),
			DescriptorType:  vk.DescriptorType(r.Intn(12)),
			ImageInfo:       make([]vk.DescriptorImageInfo, r.Intn(3)),
			BufferInfo:      make([]vk.DescriptorBufferInfo, r.Intn(3)),
			TexelBufferView: randHandles[vk.BufferView](r),
		}
	}},
	{"CopyDescriptorSet", func(r *rand.Rand) vk.Chained {
		return &vk.CopyDescriptorSet{Next: randChain(r, 2), DescriptorCount: r.Uint32()}
	}},
	{"GraphicsPipelineCreateInfo", func(r *rand.Rand) vk.Chained {
		info := &vk.GraphicsPipelineCreateInfo{
			Next:   randChain(r, 1),
			Stages: randStages(r),
		}
		if r.Intn(2) == 0 {
			info.VertexInputState = &vk.PipelineVertexInputStateCreateInfo{
				Bindings:   make([]vk.VertexInputBindingDescription, r.Intn(3)),
				Attributes: make([]vk.VertexInputAttributeDescription, r.Intn(4)),
			}
		}
		if r.Intn(2) == 0 {
			info.InputAssemblyState = &vk.PipelineInputAssemblyStateCreateInfo{Next: randChain(r, 1)}
		}
		if r.Intn(2) == 0 {
			info.TessellationState = &vk.PipelineTessellationStateCreateInfo{PatchControlPoints: 3}
		}
		if r.Intn(2) == 0 {
			info.ViewportState = &vk.PipelineViewportStateCreateInfo{
				Viewports: make([]vk.Viewport, r.Intn(3)),
				Scissors:  make([]vk.Rect2D, r.Intn(3)),
			}
		}
		if r.Intn(2) == 0 {
			info.RasterizationState = &vk.PipelineRasterizationStateCreateInfo{LineWidth: 1}
		}
		if r.Intn(2) == 0 {
			info.MultisampleState = &vk.PipelineMultisampleStateCreateInfo{SampleMask: randUint32s(r)}
		}
		if r.Intn(2) == 0 {
			info.DepthStencilState = &vk.PipelineDepthStencilStateCreateInfo{Next: randChain(r, 2)}
		}
		if r.Intn(2) == 0 {
			info.ColorBlendState = &vk.PipelineColorBlendStateCreateInfo{
				Attachments: make([]vk.PipelineColorBlendAttachmentState, r.Intn(3)),
			}
		}
		if r.Intn(2) == 0 {
			info.DynamicState = &vk.PipelineDynamicStateCreateInfo{DynamicStates: randUint32s(r)}
		}
		return info
	}},
	{"ComputePipelineCreateInfo", func(r *rand.Rand) vk.Chained {
		stage := randStage(r)
		return &vk.ComputePipelineCreateInfo{Next: randChain(r, 1), Stage: stage}
	}},
}

func randStage(r *rand.Rand) vk.PipelineShaderStageCreateInfo {
	stage := vk.PipelineShaderStageCreateInfo{
		Next:   randChain(r, 1),
		Module: vk.ShaderModule(r.Uint32()),
		Name:   randString(r),
	}
	if r.Intn(2) == 0 {
		data := make([]byte, r.Intn(20))
		r.Read(data)
		stage.SpecializationInfo = &vk.SpecializationInfo{
			MapEntries: make([]vk.SpecializationMapEntry, r.Intn(3)),
			Data:       data,
		}
	}
	return stage
}

func randStages(r *rand.Rand) []vk.PipelineShaderStageCreateInfo {
	out := make([]vk.PipelineShaderStageCreateInfo, r.Intn(3))
	for i := range out {
		out[i] = randStage(r)
	}
	return out
}

// randBarriers returns an array of barriers of mixed types, with the
// occasional nil or unknown element.
func randBarriers(r *rand.Rand) []vk.Chained {
	out := make([]vk.Chained, r.Intn(6))
	for i := range out {
		switch r.Intn(5) {
		case 0:
			out[i] = &vk.MemoryBarrier{Next: randChain(r, 1), SrcAccessMask: r.Uint32()}
		case 1:
			out[i] = &vk.BufferMemoryBarrier{Next: randChain(r, 2), Buffer: vk.Buffer(r.Uint32())}
		case 2:
			out[i] = &vk.ImageMemoryBarrier{Image: vk.Image(r.Uint32()), NewLayout: r.Uint32()}
		case 3:
			out[i] = &unknownStruct{next: randChain(r, 1)}
		}
	}
	return out
}

func newChains() *packet.Chains {
	chains := packet.NewChains()
	trace.RegisterChains(chains)
	return chains
}

func TestDeclaredSizeIsExact(t *testing.T) {
	ctx := log.Testing(t)
	chains := newChains()
	b := packet.NewBuilder(tickClock(), chains)
	r := rand.New(rand.NewSource(7))
	for _, gen := range generators {
		for i := 0; i < 50; i++ {
			node := gen.make(r)
			size := chains.Size(node)
			p := b.Reserve(packet.CallQueueSubmit, 8, size)
			p.AttachChain(ctx, p.Body().Pointer(), node)
			assert.For(ctx, "%s %d attached", gen.name, i).ThatUint(p.Attached()).Equals(size)
			assert.For(ctx, "%s %d remaining", gen.name, i).ThatUint(p.Remaining()).Equals(0)
			assert.For(ctx, "%s %d aligned", gen.name, i).ThatUint(p.Size()).IsMultipleOf(packet.Alignment)
			p.Finish()
		}
	}
}

func TestInstanceCreateInfoEncoding(t *testing.T) {
	ctx := log.Testing(t)
	chains := newChains()
	info := &vk.InstanceCreateInfo{
		Next:                  &vk.ValidationFlagsEXT{DisabledValidationChecks: []uint32{3}},
		Flags:                 5,
		ApplicationInfo:       &vk.ApplicationInfo{ApplicationName: "app", ApplicationVersion: 2},
		EnabledLayerNames:     []string{"layer"},
		EnabledExtensionNames: []string{vk.KHRSurfaceExtensionName, ""},
	}
	p := packet.NewBuilder(tickClock(), chains).Reserve(packet.CallCreateInstance, 8, chains.Size(info))
	p.AttachChain(ctx, p.Body().Pointer(), info)
	d, err := packet.Decode(p.Finish())
	if !assert.For(ctx, "decode").ThatError(err).Succeeded() {
		return
	}

	at, _ := d.Pointer(packet.HeaderSize)
	r, _ := d.At(at)
	assert.For(ctx, "type").That(r.Uint32()).Equals(uint32(vk.StructureTypeInstanceCreateInfo))
	assert.For(ctx, "flags").That(r.Uint32()).Equals(uint32(5))
	next := r.Uint64()
	app := r.Uint64()
	assert.For(ctx, "layer count").That(r.Uint32()).Equals(uint32(1))
	assert.For(ctx, "extension count").That(r.Uint32()).Equals(uint32(2))
	layersAt := r.Uint64()
	extensionsAt := r.Uint64()

	layers, err := d.Strings(layersAt, 1)
	assert.For(ctx, "layers").ThatError(err).Succeeded()
	assert.For(ctx, "layers").ThatSlice(layers).Equals([]string{"layer"})
	extensions, err := d.Strings(extensionsAt, 2)
	assert.For(ctx, "extensions").ThatError(err).Succeeded()
	assert.For(ctx, "extensions").ThatSlice(extensions).Equals([]string{vk.KHRSurfaceExtensionName, ""})
	empty, _ := d.Pointer(extensionsAt + packet.PointerSize)
	assert.For(ctx, "empty string is null").That(empty).Equals(uint64(packet.Null))

	nameAt, _ := d.Pointer(app + 16)
	name, err := d.String(nameAt)
	assert.For(ctx, "app name").ThatError(err).Succeeded()
	assert.For(ctx, "app name").ThatString(name).Equals("app")

	nr, _ := d.At(next)
	assert.For(ctx, "next type").That(nr.Uint32()).Equals(uint32(vk.StructureTypeValidationFlagsEXT))
	assert.For(ctx, "next count").That(nr.Uint32()).Equals(uint32(1))
	assert.For(ctx, "end of chain").That(nr.Uint64()).Equals(uint64(packet.Null))
	checksAt := nr.Uint64()
	check, _ := d.Slice(checksAt, 4)
	assert.For(ctx, "check").ThatSlice(check).Equals([]byte{3, 0, 0, 0})
}

func TestUnknownStructuresAreSkipped(t *testing.T) {
	ctx := log.Testing(t)
	chains := newChains()
	known := &vk.ExportMemoryAllocateInfo{HandleTypes: 4}
	info := &vk.MemoryAllocateInfo{Next: &unknownStruct{next: known}, AllocationSize: 64}
	size := chains.Size(info)
	assert.For(ctx, "size").ThatUint(size).Equals(trace.WireMemoryAllocateInfoSize + trace.WireExportMemoryAllocateInfoSize)

	p := packet.NewBuilder(tickClock(), chains).Reserve(packet.CallAllocateMemory, 8, size)
	p.AttachChain(ctx, p.Body().Pointer(), info)
	d, err := packet.Decode(p.Finish())
	if !assert.For(ctx, "decode").ThatError(err).Succeeded() {
		return
	}
	at, _ := d.Pointer(packet.HeaderSize)
	next, _ := d.Pointer(at + 8)
	r, _ := d.At(next)
	assert.For(ctx, "linked past unknown").That(r.Uint32()).Equals(uint32(vk.StructureTypeExportMemoryAllocateInfo))
	assert.For(ctx, "handle types").That(r.Uint32()).Equals(uint32(4))
}

func TestTaggedDeclaredSizeIsExact(t *testing.T) {
	ctx := log.Testing(t)
	chains := newChains()
	b := packet.NewBuilder(tickClock(), chains)
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		barriers := randBarriers(r)
		size := chains.TaggedSize(barriers)
		p := b.Reserve(packet.CallCmdPipelineBarrier, 8, size)
		p.AttachTagged(ctx, p.Body().Pointer(), barriers)
		assert.For(ctx, "barriers %d attached", i).ThatUint(p.Attached()).Equals(size)
		assert.For(ctx, "barriers %d remaining", i).ThatUint(p.Remaining()).Equals(0)
		p.Finish()
	}
}

func TestPipelineBarrierSize(t *testing.T) {
	ctx := log.Testing(t)
	chains := newChains()
	barriers := []vk.Chained{
		&vk.MemoryBarrier{SrcAccessMask: 1, DstAccessMask: 2},
		&vk.BufferMemoryBarrier{Next: &vk.ExportMemoryAllocateInfo{HandleTypes: 8}, Buffer: 0x40, Size: 256},
		&unknownStruct{next: &vk.MemoryBarrier{}},
		nil,
		&vk.ImageMemoryBarrier{Image: 0x50, NewLayout: 7},
	}
	size := chains.TaggedSize(barriers)
	assert.For(ctx, "size").ThatUint(size).Equals(5*packet.PointerSize +
		trace.WireMemoryBarrierSize +
		trace.WireBufferMemoryBarrierSize + trace.WireExportMemoryAllocateInfoSize +
		trace.WireImageMemoryBarrierSize)

	p := packet.NewBuilder(tickClock(), chains).Reserve(packet.CallCmdPipelineBarrier, 8, size)
	p.AttachTagged(ctx, p.Body().Pointer(), barriers)
	assert.For(ctx, "attached").ThatUint(p.Attached()).Equals(size)
	d, err := packet.Decode(p.Finish())
	if !assert.For(ctx, "decode").ThatError(err).Succeeded() {
		return
	}
	array, _ := d.Pointer(packet.HeaderSize)
	tags := []vk.StructureType{}
	for i := range barriers {
		at, _ := d.Pointer(array + uint64(i)*packet.PointerSize)
		if at == packet.Null {
			tags = append(tags, 0)
			continue
		}
		r, _ := d.At(at)
		tags = append(tags, vk.StructureType(r.Uint32()))
	}
	assert.For(ctx, "tags").ThatSlice(tags).Equals([]vk.StructureType{
		vk.StructureTypeMemoryBarrier,
		vk.StructureTypeBufferMemoryBarrier,
		0,
		0,
		vk.StructureTypeImageMemoryBarrier,
	})

	buffer, _ := d.Pointer(array + packet.PointerSize)
	r, _ := d.At(buffer)
	r.Uint32()
	r.Uint32()
	next := r.Uint64()
	nr, _ := d.At(next)
	assert.For(ctx, "buffer barrier chain").That(vk.StructureType(nr.Uint32())).Equals(vk.StructureTypeExportMemoryAllocateInfo)

	image, _ := d.Pointer(array + 4*packet.PointerSize)
	handle, _ := d.Slice(image+40, 8)
	assert.For(ctx, "image").ThatSlice(handle).Equals([]byte{0x50, 0, 0, 0, 0, 0, 0, 0})
}

func TestWriteDescriptorSetSize(t *testing.T) {
	ctx := log.Testing(t)
	chains := newChains()
	write := &vk.WriteDescriptorSet{
		DstSet:         0x70,
		DstBinding:     2,
		DescriptorType: vk.DescriptorTypeUniformBuffer,
		BufferInfo:     []vk.DescriptorBufferInfo{{Buffer: 1, Range: 16}, {Buffer: 2, Range: 32}},
		// Ignored for uniform buffers.
		ImageInfo: make([]vk.DescriptorImageInfo, 3),
	}
	size := chains.Size(write)
	assert.For(ctx, "write size").ThatUint(size).Equals(trace.WireWriteDescriptorSetSize + 2*trace.WireDescriptorBufferInfoSize)
	copied := &vk.CopyDescriptorSet{SrcSet: 1, DstSet: 2, DescriptorCount: 4}
	assert.For(ctx, "copy size").ThatUint(chains.Size(copied)).Equals(trace.WireCopyDescriptorSetSize)

	p := packet.NewBuilder(tickClock(), chains).Reserve(packet.CallUpdateDescriptorSets, 8, size)
	p.AttachChain(ctx, p.Body().Pointer(), write)
	assert.For(ctx, "attached").ThatUint(p.Attached()).Equals(size)
	d, err := packet.Decode(p.Finish())
	if !assert.For(ctx, "decode").ThatError(err).Succeeded() {
		return
	}
	at, _ := d.Pointer(packet.HeaderSize)
	r, _ := d.At(at)
	assert.For(ctx, "type").That(vk.StructureType(r.Uint32())).Equals(vk.StructureTypeWriteDescriptorSet)
	assert.For(ctx, "binding").That(r.Uint32()).Equals(uint32(2))
	r.Uint64()
	assert.For(ctx, "set").That(r.Uint64()).Equals(uint64(0x70))
	r.Uint32()
	assert.For(ctx, "count").That(r.Uint32()).Equals(uint32(2))
	assert.For(ctx, "descriptor type").That(r.Uint32()).Equals(uint32(vk.DescriptorTypeUniformBuffer))
	r.Uint32()
	assert.For(ctx, "images").That(r.Uint64()).Equals(uint64(packet.Null))
	buffers := r.Uint64()
	assert.For(ctx, "texel views").That(r.Uint64()).Equals(uint64(packet.Null))
	second, _ := d.Slice(buffers+trace.WireDescriptorBufferInfoSize, 1)
	assert.For(ctx, "second buffer").ThatSlice(second).Equals([]byte{2})
}

func TestGraphicsPipelineSize(t *testing.T) {
	ctx := log.Testing(t)
	chains := newChains()
	info := &vk.GraphicsPipelineCreateInfo{
		Stages: []vk.PipelineShaderStageCreateInfo{
			{
				Module: 1,
				Name:   "main",
				SpecializationInfo: &vk.SpecializationInfo{
					MapEntries: make([]vk.SpecializationMapEntry, 2),
					Data:       make([]byte, 12),
				},
			},
			{Module: 2, Name: "main"},
		},
		VertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			Bindings:   make([]vk.VertexInputBindingDescription, 1),
			Attributes: make([]vk.VertexInputAttributeDescription, 3),
		},
		InputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{Topology: 3},
		ViewportState: &vk.PipelineViewportStateCreateInfo{
			Viewports: []vk.Viewport{{Width: 64, Height: 64, MaxDepth: 1}},
			Scissors:  []vk.Rect2D{{Extent: vk.Extent2D{Width: 64, Height: 64}}},
		},
		RasterizationState: &vk.PipelineRasterizationStateCreateInfo{LineWidth: 1},
		MultisampleState:   &vk.PipelineMultisampleStateCreateInfo{RasterizationSamples: 1, SampleMask: []uint32{1}},
		ColorBlendState:    &vk.PipelineColorBlendStateCreateInfo{Attachments: make([]vk.PipelineColorBlendAttachmentState, 2)},
		DynamicState:       &vk.PipelineDynamicStateCreateInfo{DynamicStates: []uint32{0, 1}},
		Subpass:            1,
	}
	size := chains.Size(info)
	stages := 2*trace.WirePipelineShaderStageCreateInfoSize +
		2*8 + // "main"
		trace.WireSpecializationInfoSize + 2*trace.WireSpecializationEntrySize + 16
	states := trace.WireVertexInputStateCreateInfoSize + 16 + 3*trace.WireVertexAttributeSize +
		trace.WireInputAssemblyStateCreateInfoSize +
		trace.WireViewportStateCreateInfoSize + trace.WireViewportSize + trace.WireRect2DSize +
		trace.WireRasterizationStateCreateInfoSize +
		trace.WireMultisampleStateCreateInfoSize + 8 +
		trace.WireColorBlendStateCreateInfoSize + 2*trace.WireColorBlendAttachmentSize +
		trace.WireDynamicStateCreateInfoSize + 8
	assert.For(ctx, "size").ThatUint(size).Equals(uint64(trace.WireGraphicsPipelineCreateInfoSize + stages + states))

	p := packet.NewBuilder(tickClock(), chains).Reserve(packet.CallCreateGraphicsPipelines, 8, size)
	p.AttachChain(ctx, p.Body().Pointer(), info)
	assert.For(ctx, "attached").ThatUint(p.Attached()).Equals(size)
	d, err := packet.Decode(p.Finish())
	if !assert.For(ctx, "decode").ThatError(err).Succeeded() {
		return
	}
	at, _ := d.Pointer(packet.HeaderSize)
	tessellation, _ := d.Pointer(at + 48)
	assert.For(ctx, "no tessellation").That(tessellation).Equals(uint64(packet.Null))
	depthStencil, _ := d.Pointer(at + 80)
	assert.For(ctx, "no depth stencil").That(depthStencil).Equals(uint64(packet.Null))
	viewport, _ := d.Pointer(at + 56)
	r, _ := d.At(viewport)
	assert.For(ctx, "viewport state").That(vk.StructureType(r.Uint32())).Equals(vk.StructureTypeViewportStateCreateInfo)

	stagesAt, _ := d.Pointer(at + 24)
	nameAt, _ := d.Pointer(stagesAt + trace.WirePipelineShaderStageCreateInfoSize + 32)
	name, err := d.String(nameAt)
	assert.For(ctx, "second stage name").ThatError(err).Succeeded()
	assert.For(ctx, "second stage name").ThatString(name).Equals("main")
	noSpecialization, _ := d.Pointer(stagesAt + trace.WirePipelineShaderStageCreateInfoSize + 40)
	assert.For(ctx, "no specialization").That(noSpecialization).Equals(uint64(packet.Null))
}

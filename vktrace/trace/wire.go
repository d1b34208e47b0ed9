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
	"context"

	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/packet"
)

// Encoded sizes of the structures that packets point at. Every structure
// starts with its type tag, a 32 bit field and the slot of its Next chain.
const (
	WireApplicationInfoSize                  = 48
	WireInstanceCreateInfoSize               = 48
	WireDeviceQueueCreateInfoSize            = 32
	WireDeviceCreateInfoSize                 = 56
	WireMemoryAllocateInfoSize               = 32
	WireMappedMemoryRangeSize                = 40
	WireSubmitInfoSize                       = 72
	WireDescriptorPoolCreateInfoSize         = 32
	WireFramebufferCreateInfoSize            = 56
	WireRenderPassCreateInfoSize             = 64
	WireSwapchainCreateInfoKHRSize           = 96
	WirePresentInfoKHRSize                   = 64
	WireDebugReportCallbackCreateInfoEXTSize = 32
	WireDebugMarkerMarkerInfoEXTSize         = 40
	WireMemoryDedicatedAllocateInfoSize      = 32
	WireExportMemoryAllocateInfoSize         = 16
	WireDeviceGroupDeviceCreateInfoSize      = 32
	WireValidationFlagsEXTSize               = 24
	WireMemoryBarrierSize                    = 24
	WireBufferMemoryBarrierSize              = 56
	WireImageMemoryBarrierSize               = 72
	WireWriteDescriptorSetSize               = 64
	WireCopyDescriptorSetSize                = 48
	WirePipelineShaderStageCreateInfoSize    = 48
	WireVertexInputStateCreateInfoSize       = 40
	WireInputAssemblyStateCreateInfoSize     = 24
	WireTessellationStateCreateInfoSize      = 24
	WireViewportStateCreateInfoSize          = 40
	WireRasterizationStateCreateInfoSize     = 56
	WireMultisampleStateCreateInfoSize       = 48
	WireDepthStencilStateCreateInfoSize      = 104
	WireColorBlendStateCreateInfoSize        = 56
	WireDynamicStateCreateInfoSize           = 32
	WireGraphicsPipelineCreateInfoSize       = 136
	WireComputePipelineCreateInfoSize        = 88

	// Elements of arrays that carry no chain.
	WireDescriptorPoolSizeSize    = 8
	WireAttachmentDescriptionSize = 36
	WireAttachmentReferenceSize   = 8
	WireSubpassDescriptionSize    = 72
	WireSubpassDependencySize     = 28
	WireQueueFamilyPropertiesSize = 24
	WireExtensionPropertiesSize   = vk.MaxExtensionNameSize + 4
	WireLayerPropertiesSize       = vk.MaxExtensionNameSize + 8 + vk.MaxDescriptionSize
	WireDescriptorImageInfoSize   = 24
	WireDescriptorBufferInfoSize  = 24
	WireSpecializationInfoSize    = 32
	WireSpecializationEntrySize   = 16
	WireVertexBindingSize         = 12
	WireVertexAttributeSize       = 16
	WireViewportSize              = 24
	WireRect2DSize                = 16
	WireColorBlendAttachmentSize  = 32
)

type encoder func(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot

type wireLayout struct {
	tag    vk.StructureType
	size   uint64
	extra  func(c *packet.Chains, node vk.Chained) uint64
	encode encoder
}

var wireLayouts = []wireLayout{
	{vk.StructureTypeApplicationInfo, WireApplicationInfoSize, applicationInfoExtra, encodeApplicationInfo},
	{vk.StructureTypeInstanceCreateInfo, WireInstanceCreateInfoSize, instanceCreateInfoExtra, encodeInstanceCreateInfo},
	{vk.StructureTypeDeviceQueueCreateInfo, WireDeviceQueueCreateInfoSize, deviceQueueCreateInfoExtra, encodeDeviceQueueCreateInfo},
	{vk.StructureTypeDeviceCreateInfo, WireDeviceCreateInfoSize, deviceCreateInfoExtra, encodeDeviceCreateInfo},
	{vk.StructureTypeMemoryAllocateInfo, WireMemoryAllocateInfoSize, nil, encodeMemoryAllocateInfo},
	{vk.StructureTypeMappedMemoryRange, WireMappedMemoryRangeSize, nil, encodeMappedMemoryRange},
	{vk.StructureTypeSubmitInfo, WireSubmitInfoSize, submitInfoExtra, encodeSubmitInfo},
	{vk.StructureTypeDescriptorPoolCreateInfo, WireDescriptorPoolCreateInfoSize, descriptorPoolCreateInfoExtra, encodeDescriptorPoolCreateInfo},
	{vk.StructureTypeFramebufferCreateInfo, WireFramebufferCreateInfoSize, framebufferCreateInfoExtra, encodeFramebufferCreateInfo},
	{vk.StructureTypeRenderPassCreateInfo, WireRenderPassCreateInfoSize, renderPassCreateInfoExtra, encodeRenderPassCreateInfo},
	{vk.StructureTypeSwapchainCreateInfoKHR, WireSwapchainCreateInfoKHRSize, swapchainCreateInfoExtra, encodeSwapchainCreateInfo},
	{vk.StructureTypePresentInfoKHR, WirePresentInfoKHRSize, presentInfoExtra, encodePresentInfo},
	{vk.StructureTypeDebugReportCallbackCreateInfoEXT, WireDebugReportCallbackCreateInfoEXTSize, nil, encodeDebugReportCallbackCreateInfo},
	{vk.StructureTypeDebugMarkerMarkerInfoEXT, WireDebugMarkerMarkerInfoEXTSize, debugMarkerInfoExtra, encodeDebugMarkerInfo},
	{vk.StructureTypeMemoryDedicatedAllocateInfo, WireMemoryDedicatedAllocateInfoSize, nil, encodeMemoryDedicatedAllocateInfo},
	{vk.StructureTypeExportMemoryAllocateInfo, WireExportMemoryAllocateInfoSize, nil, encodeExportMemoryAllocateInfo},
	{vk.StructureTypeDeviceGroupDeviceCreateInfo, WireDeviceGroupDeviceCreateInfoSize, deviceGroupExtra, encodeDeviceGroupDeviceCreateInfo},
	{vk.StructureTypeValidationFlagsEXT, WireValidationFlagsEXTSize, validationFlagsExtra, encodeValidationFlags},
	{vk.StructureTypeMemoryBarrier, WireMemoryBarrierSize, nil, encodeMemoryBarrier},
	{vk.StructureTypeBufferMemoryBarrier, WireBufferMemoryBarrierSize, nil, encodeBufferMemoryBarrier},
	{vk.StructureTypeImageMemoryBarrier, WireImageMemoryBarrierSize, nil, encodeImageMemoryBarrier},
	{vk.StructureTypeWriteDescriptorSet, WireWriteDescriptorSetSize, writeDescriptorSetExtra, encodeWriteDescriptorSet},
	{vk.StructureTypeCopyDescriptorSet, WireCopyDescriptorSetSize, nil, encodeCopyDescriptorSet},
	{vk.StructureTypePipelineShaderStageCreateInfo, WirePipelineShaderStageCreateInfoSize, shaderStageExtra, encodeShaderStage},
	{vk.StructureTypeVertexInputStateCreateInfo, WireVertexInputStateCreateInfoSize, vertexInputStateExtra, encodeVertexInputState},
	{vk.StructureTypeInputAssemblyStateCreateInfo, WireInputAssemblyStateCreateInfoSize, nil, encodeInputAssemblyState},
	{vk.StructureTypeTessellationStateCreateInfo, WireTessellationStateCreateInfoSize, nil, encodeTessellationState},
	{vk.StructureTypeViewportStateCreateInfo, WireViewportStateCreateInfoSize, viewportStateExtra, encodeViewportState},
	{vk.StructureTypeRasterizationStateCreateInfo, WireRasterizationStateCreateInfoSize, nil, encodeRasterizationState},
	{vk.StructureTypeMultisampleStateCreateInfo, WireMultisampleStateCreateInfoSize, multisampleStateExtra, encodeMultisampleState},
	{vk.StructureTypeDepthStencilStateCreateInfo, WireDepthStencilStateCreateInfoSize, nil, encodeDepthStencilState},
	{vk.StructureTypeColorBlendStateCreateInfo, WireColorBlendStateCreateInfoSize, colorBlendStateExtra, encodeColorBlendState},
	{vk.StructureTypeDynamicStateCreateInfo, WireDynamicStateCreateInfoSize, dynamicStateExtra, encodeDynamicState},
	{vk.StructureTypeGraphicsPipelineCreateInfo, WireGraphicsPipelineCreateInfoSize, graphicsPipelineCreateInfoExtra, encodeGraphicsPipelineCreateInfo},
	{vk.StructureTypeComputePipelineCreateInfo, WireComputePipelineCreateInfoSize, computePipelineCreateInfoExtra, encodeComputePipelineCreateInfo},
}

// RegisterChains registers the layout of every structure the capture
// wrappers encode with c.
func RegisterChains(c *packet.Chains) {
	for _, w := range wireLayouts {
		w := w
		l := packet.ChainLayout{Size: w.size, Encode: w.encode}
		if w.extra != nil {
			l.Extra = func(node vk.Chained) uint64 { return w.extra(c, node) }
		}
		c.Register(w.tag, l)
	}
}

func wireHeader(r *packet.Region, node vk.Chained, field uint32) packet.Slot {
	r.Uint32(uint32(node.StructureType()))
	r.Uint32(field)
	return r.Pointer()
}

type chainedPtr[T any] interface {
	*T
	vk.Chained
}

// structsSize returns the space needed to attach elems as an array of wire
// structures of the given size, including their chains.
func structsSize[T any, PT chainedPtr[T]](c *packet.Chains, elems []T, size uint64, extra func(*packet.Chains, vk.Chained) uint64) uint64 {
	total := packet.ArraySize(len(elems), size)
	for i := range elems {
		node := PT(&elems[i])
		total += c.Size(node.NextInChain())
		if extra != nil {
			total += extra(c, node)
		}
	}
	return total
}

// attachStructs attaches elems as an array of wire structures of the given
// size at slot, followed by their chains.
func attachStructs[T any, PT chainedPtr[T]](ctx context.Context, p *packet.Packet, slot packet.Slot, elems []T, size uint64, encode encoder) {
	r := p.AttachStruct(slot, uint64(len(elems))*size)
	for i := range elems {
		node := PT(&elems[i])
		next := encode(ctx, p, r, node)
		p.AttachChain(ctx, next, node.NextInChain())
	}
	p.Finalize(slot)
}

func handleSlice[H ~uint64 | ~uintptr](handles []H) []uint64 {
	out := make([]uint64, len(handles))
	for i, h := range handles {
		out[i] = uint64(h)
	}
	return out
}

func attachFloat32s(p *packet.Packet, slot packet.Slot, values []float32) {
	packet.AttachArray(p, slot, len(values), 4, func(r *packet.Region, i int) { r.Float32(values[i]) })
}

func attachResults(p *packet.Packet, slot packet.Slot, values []vk.Result) {
	packet.AttachArray(p, slot, len(values), 4, func(r *packet.Region, i int) { r.Int32(int32(values[i])) })
}

func applicationInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.ApplicationInfo)
	return packet.StringSize(n.ApplicationName) + packet.StringSize(n.EngineName)
}

func encodeApplicationInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.ApplicationInfo)
	next := wireHeader(r, n, 0)
	app := r.Pointer()
	r.Uint32(n.ApplicationVersion)
	r.Uint32(0)
	engine := r.Pointer()
	r.Uint32(n.EngineVersion)
	r.Uint32(n.APIVersion)
	p.AttachString(app, n.ApplicationName)
	p.AttachString(engine, n.EngineName)
	return next
}

func instanceCreateInfoExtra(c *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.InstanceCreateInfo)
	return c.Size(n.ApplicationInfo) +
		packet.StringsSize(n.EnabledLayerNames) +
		packet.StringsSize(n.EnabledExtensionNames)
}

func encodeInstanceCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.InstanceCreateInfo)
	next := wireHeader(r, n, n.Flags)
	app := r.Pointer()
	r.Uint32(uint32(len(n.EnabledLayerNames)))
	r.Uint32(uint32(len(n.EnabledExtensionNames)))
	layers := r.Pointer()
	extensions := r.Pointer()
	p.AttachChain(ctx, app, n.ApplicationInfo)
	p.AttachStrings(layers, n.EnabledLayerNames)
	p.AttachStrings(extensions, n.EnabledExtensionNames)
	return next
}

func deviceQueueCreateInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.DeviceQueueCreateInfo).QueuePriorities), 4)
}

func encodeDeviceQueueCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.DeviceQueueCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(n.QueueFamilyIndex)
	r.Uint32(uint32(len(n.QueuePriorities)))
	priorities := r.Pointer()
	attachFloat32s(p, priorities, n.QueuePriorities)
	return next
}

func deviceCreateInfoExtra(c *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.DeviceCreateInfo)
	return structsSize(c, n.QueueCreateInfos, WireDeviceQueueCreateInfoSize, deviceQueueCreateInfoExtra) +
		packet.StringsSize(n.EnabledLayerNames) +
		packet.StringsSize(n.EnabledExtensionNames)
}

func encodeDeviceCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.DeviceCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(len(n.QueueCreateInfos)))
	r.Uint32(uint32(len(n.EnabledLayerNames)))
	queues := r.Pointer()
	r.Uint32(uint32(len(n.EnabledExtensionNames)))
	r.Uint32(0)
	layers := r.Pointer()
	extensions := r.Pointer()
	attachStructs(ctx, p, queues, n.QueueCreateInfos, WireDeviceQueueCreateInfoSize, encodeDeviceQueueCreateInfo)
	p.AttachStrings(layers, n.EnabledLayerNames)
	p.AttachStrings(extensions, n.EnabledExtensionNames)
	return next
}

func encodeMemoryAllocateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.MemoryAllocateInfo)
	next := wireHeader(r, n, 0)
	r.Uint64(uint64(n.AllocationSize))
	r.Uint32(n.MemoryTypeIndex)
	r.Uint32(0)
	return next
}

func encodeMappedMemoryRange(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.MappedMemoryRange)
	next := wireHeader(r, n, 0)
	r.Uint64(uint64(n.Memory))
	r.Uint64(uint64(n.Offset))
	r.Uint64(uint64(n.Size))
	return next
}

func submitInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.SubmitInfo)
	return packet.ArraySize(len(n.WaitSemaphores), 8) +
		packet.ArraySize(len(n.WaitDstStageMask), 4) +
		packet.ArraySize(len(n.CommandBuffers), 8) +
		packet.ArraySize(len(n.SignalSemaphores), 8)
}

func encodeSubmitInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.SubmitInfo)
	next := wireHeader(r, n, 0)
	r.Uint32(uint32(len(n.WaitSemaphores)))
	r.Uint32(0)
	waits := r.Pointer()
	masks := r.Pointer()
	r.Uint32(uint32(len(n.CommandBuffers)))
	r.Uint32(0)
	commandBuffers := r.Pointer()
	r.Uint32(uint32(len(n.SignalSemaphores)))
	r.Uint32(0)
	signals := r.Pointer()
	p.AttachUint64s(waits, handleSlice(n.WaitSemaphores))
	p.AttachUint32s(masks, n.WaitDstStageMask)
	p.AttachUint64s(commandBuffers, handleSlice(n.CommandBuffers))
	p.AttachUint64s(signals, handleSlice(n.SignalSemaphores))
	return next
}

func descriptorPoolCreateInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.DescriptorPoolCreateInfo).PoolSizes), WireDescriptorPoolSizeSize)
}

func encodeDescriptorPoolCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.DescriptorPoolCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(n.MaxSets)
	r.Uint32(uint32(len(n.PoolSizes)))
	sizes := r.Pointer()
	packet.AttachArray(p, sizes, len(n.PoolSizes), WireDescriptorPoolSizeSize, func(r *packet.Region, i int) {
		r.Uint32(n.PoolSizes[i].Type)
		r.Uint32(n.PoolSizes[i].DescriptorCount)
	})
	return next
}

func framebufferCreateInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.FramebufferCreateInfo).Attachments), 8)
}

func encodeFramebufferCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.FramebufferCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint64(uint64(n.RenderPass))
	r.Uint32(uint32(len(n.Attachments)))
	r.Uint32(0)
	attachments := r.Pointer()
	r.Uint32(n.Width)
	r.Uint32(n.Height)
	r.Uint32(n.Layers)
	r.Uint32(0)
	p.AttachUint64s(attachments, handleSlice(n.Attachments))
	return next
}

func subpassExtra(s *vk.SubpassDescription) uint64 {
	total := packet.ArraySize(len(s.InputAttachments), WireAttachmentReferenceSize) +
		packet.ArraySize(len(s.ColorAttachments), WireAttachmentReferenceSize) +
		packet.ArraySize(len(s.ResolveAttachments), WireAttachmentReferenceSize) +
		packet.ArraySize(len(s.PreserveAttachments), 4)
	if s.DepthStencilAttachment != nil {
		total += packet.Align(WireAttachmentReferenceSize)
	}
	return total
}

func renderPassCreateInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.RenderPassCreateInfo)
	total := packet.ArraySize(len(n.Attachments), WireAttachmentDescriptionSize) +
		packet.ArraySize(len(n.Subpasses), WireSubpassDescriptionSize) +
		packet.ArraySize(len(n.Dependencies), WireSubpassDependencySize)
	for i := range n.Subpasses {
		total += subpassExtra(&n.Subpasses[i])
	}
	return total
}

func attachReferences(p *packet.Packet, slot packet.Slot, refs []vk.AttachmentReference) {
	packet.AttachArray(p, slot, len(refs), WireAttachmentReferenceSize, func(r *packet.Region, i int) {
		r.Uint32(refs[i].Attachment)
		r.Uint32(refs[i].Layout)
	})
}

func encodeRenderPassCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.RenderPassCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(len(n.Attachments)))
	r.Uint32(0)
	attachments := r.Pointer()
	r.Uint32(uint32(len(n.Subpasses)))
	r.Uint32(0)
	subpasses := r.Pointer()
	r.Uint32(uint32(len(n.Dependencies)))
	r.Uint32(0)
	dependencies := r.Pointer()

	packet.AttachArray(p, attachments, len(n.Attachments), WireAttachmentDescriptionSize, func(r *packet.Region, i int) {
		a := n.Attachments[i]
		r.Uint32(a.Flags)
		r.Uint32(a.Format)
		r.Uint32(a.Samples)
		r.Uint32(a.LoadOp)
		r.Uint32(a.StoreOp)
		r.Uint32(a.StencilLoadOp)
		r.Uint32(a.StencilStoreOp)
		r.Uint32(a.InitialLayout)
		r.Uint32(a.FinalLayout)
	})

	sr := p.AttachStruct(subpasses, uint64(len(n.Subpasses))*WireSubpassDescriptionSize)
	for i := range n.Subpasses {
		s := &n.Subpasses[i]
		sr.Uint32(s.Flags)
		sr.Uint32(s.PipelineBindPoint)
		sr.Uint32(uint32(len(s.InputAttachments)))
		sr.Uint32(0)
		inputs := sr.Pointer()
		sr.Uint32(uint32(len(s.ColorAttachments)))
		sr.Uint32(0)
		colors := sr.Pointer()
		resolves := sr.Pointer()
		depthStencil := sr.Pointer()
		sr.Uint32(uint32(len(s.PreserveAttachments)))
		sr.Uint32(0)
		preserves := sr.Pointer()
		attachReferences(p, inputs, s.InputAttachments)
		attachReferences(p, colors, s.ColorAttachments)
		attachReferences(p, resolves, s.ResolveAttachments)
		if s.DepthStencilAttachment != nil {
			attachReferences(p, depthStencil, []vk.AttachmentReference{*s.DepthStencilAttachment})
		} else {
			attachReferences(p, depthStencil, nil)
		}
		p.AttachUint32s(preserves, s.PreserveAttachments)
	}
	p.Finalize(subpasses)

	packet.AttachArray(p, dependencies, len(n.Dependencies), WireSubpassDependencySize, func(r *packet.Region, i int) {
		d := n.Dependencies[i]
		r.Uint32(d.SrcSubpass)
		r.Uint32(d.DstSubpass)
		r.Uint32(d.SrcStageMask)
		r.Uint32(d.DstStageMask)
		r.Uint32(d.SrcAccessMask)
		r.Uint32(d.DstAccessMask)
		r.Uint32(d.DependencyFlags)
	})
	return next
}

func swapchainCreateInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.SwapchainCreateInfoKHR).QueueFamilyIndices), 4)
}

func encodeSwapchainCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.SwapchainCreateInfoKHR)
	next := wireHeader(r, n, n.Flags)
	r.Uint64(uint64(n.Surface))
	r.Uint32(n.MinImageCount)
	r.Uint32(n.ImageFormat)
	r.Uint32(n.ImageColorSpace)
	r.Uint32(n.ImageExtent.Width)
	r.Uint32(n.ImageExtent.Height)
	r.Uint32(n.ImageArrayLayers)
	r.Uint32(n.ImageUsage)
	r.Uint32(n.ImageSharingMode)
	r.Uint32(uint32(len(n.QueueFamilyIndices)))
	r.Uint32(0)
	families := r.Pointer()
	r.Uint32(n.PreTransform)
	r.Uint32(n.CompositeAlpha)
	r.Uint32(n.PresentMode)
	r.Uint32(uint32(n.Clipped))
	r.Uint64(uint64(n.OldSwapchain))
	p.AttachUint32s(families, n.QueueFamilyIndices)
	return next
}

func presentInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.PresentInfoKHR)
	return packet.ArraySize(len(n.WaitSemaphores), 8) +
		packet.ArraySize(len(n.Swapchains), 8) +
		packet.ArraySize(len(n.ImageIndices), 4) +
		packet.ArraySize(len(n.Results), 4)
}

func encodePresentInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PresentInfoKHR)
	next := wireHeader(r, n, 0)
	r.Uint32(uint32(len(n.WaitSemaphores)))
	r.Uint32(0)
	waits := r.Pointer()
	r.Uint32(uint32(len(n.Swapchains)))
	r.Uint32(0)
	swapchains := r.Pointer()
	indices := r.Pointer()
	results := r.Pointer()
	p.AttachUint64s(waits, handleSlice(n.WaitSemaphores))
	p.AttachUint64s(swapchains, handleSlice(n.Swapchains))
	p.AttachUint32s(indices, n.ImageIndices)
	attachResults(p, results, n.Results)
	return next
}

func encodeDebugReportCallbackCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.DebugReportCallbackCreateInfoEXT)
	next := wireHeader(r, n, n.Flags)
	// Callbacks are process local, only their presence is recorded.
	if n.Callback != nil {
		r.Uint64(1)
	} else {
		r.Uint64(0)
	}
	r.Uint64(uint64(n.UserData))
	return next
}

func debugMarkerInfoExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.StringSize(node.(*vk.DebugMarkerMarkerInfoEXT).MarkerName)
}

func encodeDebugMarkerInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.DebugMarkerMarkerInfoEXT)
	next := wireHeader(r, n, 0)
	name := r.Pointer()
	for _, c := range n.Color {
		r.Float32(c)
	}
	p.AttachString(name, n.MarkerName)
	return next
}

func encodeMemoryDedicatedAllocateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.MemoryDedicatedAllocateInfo)
	next := wireHeader(r, n, 0)
	r.Uint64(uint64(n.Image))
	r.Uint64(uint64(n.Buffer))
	return next
}

func encodeExportMemoryAllocateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.ExportMemoryAllocateInfo)
	return wireHeader(r, n, n.HandleTypes)
}

func deviceGroupExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.DeviceGroupDeviceCreateInfo).PhysicalDevices), 8)
}

func encodeDeviceGroupDeviceCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.DeviceGroupDeviceCreateInfo)
	next := wireHeader(r, n, 0)
	r.Uint32(uint32(len(n.PhysicalDevices)))
	r.Uint32(0)
	devices := r.Pointer()
	p.AttachUint64s(devices, handleSlice(n.PhysicalDevices))
	return next
}

func validationFlagsExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.ValidationFlagsEXT).DisabledValidationChecks), 4)
}

func encodeValidationFlags(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.ValidationFlagsEXT)
	next := wireHeader(r, n, uint32(len(n.DisabledValidationChecks)))
	checks := r.Pointer()
	p.AttachUint32s(checks, n.DisabledValidationChecks)
	return next
}

func encodeMemoryBarrier(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.MemoryBarrier)
	next := wireHeader(r, n, n.SrcAccessMask)
	r.Uint32(n.DstAccessMask)
	r.Uint32(0)
	return next
}

func encodeBufferMemoryBarrier(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.BufferMemoryBarrier)
	next := wireHeader(r, n, n.SrcAccessMask)
	r.Uint32(n.DstAccessMask)
	r.Uint32(n.SrcQueueFamilyIndex)
	r.Uint32(n.DstQueueFamilyIndex)
	r.Uint32(0)
	r.Uint64(uint64(n.Buffer))
	r.Uint64(uint64(n.Offset))
	r.Uint64(uint64(n.Size))
	return next
}

func encodeImageMemoryBarrier(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.ImageMemoryBarrier)
	next := wireHeader(r, n, n.SrcAccessMask)
	r.Uint32(n.DstAccessMask)
	r.Uint32(n.OldLayout)
	r.Uint32(n.NewLayout)
	r.Uint32(n.SrcQueueFamilyIndex)
	r.Uint32(n.DstQueueFamilyIndex)
	r.Uint32(0)
	r.Uint64(uint64(n.Image))
	sr := n.SubresourceRange
	r.Uint32(sr.AspectMask)
	r.Uint32(sr.BaseMipLevel)
	r.Uint32(sr.LevelCount)
	r.Uint32(sr.BaseArrayLayer)
	r.Uint32(sr.LayerCount)
	r.Uint32(0)
	return next
}

// descriptorArrays returns the arrays of w read for its descriptor type.
// The others are recorded as null.
func descriptorArrays(w *vk.WriteDescriptorSet) ([]vk.DescriptorImageInfo, []vk.DescriptorBufferInfo, []vk.BufferView) {
	switch {
	case w.DescriptorType.UsesImages():
		return w.ImageInfo, nil, nil
	case w.DescriptorType.UsesBuffers():
		return nil, w.BufferInfo, nil
	case w.DescriptorType.UsesTexelBuffers():
		return nil, nil, w.TexelBufferView
	}
	return nil, nil, nil
}

func writeDescriptorSetExtra(_ *packet.Chains, node vk.Chained) uint64 {
	images, buffers, views := descriptorArrays(node.(*vk.WriteDescriptorSet))
	return packet.ArraySize(len(images), WireDescriptorImageInfoSize) +
		packet.ArraySize(len(buffers), WireDescriptorBufferInfoSize) +
		packet.ArraySize(len(views), 8)
}

func encodeWriteDescriptorSet(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.WriteDescriptorSet)
	next := wireHeader(r, n, n.DstBinding)
	r.Uint64(uint64(n.DstSet))
	r.Uint32(n.DstArrayElement)
	r.Uint32(n.DescriptorCount())
	r.Uint32(uint32(n.DescriptorType))
	r.Uint32(0)
	imagesSlot := r.Pointer()
	buffersSlot := r.Pointer()
	viewsSlot := r.Pointer()

	images, buffers, views := descriptorArrays(n)
	packet.AttachArray(p, imagesSlot, len(images), WireDescriptorImageInfoSize, func(r *packet.Region, i int) {
		r.Uint64(uint64(images[i].Sampler))
		r.Uint64(uint64(images[i].ImageView))
		r.Uint32(images[i].ImageLayout)
		r.Uint32(0)
	})
	packet.AttachArray(p, buffersSlot, len(buffers), WireDescriptorBufferInfoSize, func(r *packet.Region, i int) {
		r.Uint64(uint64(buffers[i].Buffer))
		r.Uint64(uint64(buffers[i].Offset))
		r.Uint64(uint64(buffers[i].Range))
	})
	p.AttachUint64s(viewsSlot, handleSlice(views))
	return next
}

func encodeCopyDescriptorSet(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.CopyDescriptorSet)
	next := wireHeader(r, n, n.SrcBinding)
	r.Uint64(uint64(n.SrcSet))
	r.Uint32(n.SrcArrayElement)
	r.Uint32(n.DstBinding)
	r.Uint64(uint64(n.DstSet))
	r.Uint32(n.DstArrayElement)
	r.Uint32(n.DescriptorCount)
	return next
}

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

func specializationSize(s *vk.SpecializationInfo) uint64 {
	if s == nil {
		return 0
	}
	return packet.Align(WireSpecializationInfoSize) +
		packet.ArraySize(len(s.MapEntries), WireSpecializationEntrySize) +
		packet.Extra(uint64(len(s.Data)))
}

func attachSpecialization(p *packet.Packet, slot packet.Slot, s *vk.SpecializationInfo) {
	if s == nil {
		p.Attach(slot, nil)
		p.Finalize(slot)
		return
	}
	r := p.AttachStruct(slot, WireSpecializationInfoSize)
	r.Uint32(uint32(len(s.MapEntries)))
	r.Uint32(0)
	entries := r.Pointer()
	r.Uint64(uint64(len(s.Data)))
	data := r.Pointer()
	packet.AttachArray(p, entries, len(s.MapEntries), WireSpecializationEntrySize, func(r *packet.Region, i int) {
		r.Uint32(s.MapEntries[i].ConstantID)
		r.Uint32(s.MapEntries[i].Offset)
		r.Uint64(s.MapEntries[i].Size)
	})
	p.Attach(data, s.Data)
	p.Finalize(data)
	p.Finalize(slot)
}

func shaderStageExtra(_ *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.PipelineShaderStageCreateInfo)
	return packet.StringSize(n.Name) + specializationSize(n.SpecializationInfo)
}

func encodeShaderStage(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineShaderStageCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(n.Stage)
	r.Uint32(0)
	r.Uint64(uint64(n.Module))
	name := r.Pointer()
	specialization := r.Pointer()
	p.AttachString(name, n.Name)
	attachSpecialization(p, specialization, n.SpecializationInfo)
	return next
}

func vertexInputStateExtra(_ *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.PipelineVertexInputStateCreateInfo)
	return packet.ArraySize(len(n.Bindings), WireVertexBindingSize) +
		packet.ArraySize(len(n.Attributes), WireVertexAttributeSize)
}

func encodeVertexInputState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineVertexInputStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(len(n.Bindings)))
	r.Uint32(uint32(len(n.Attributes)))
	bindings := r.Pointer()
	attributes := r.Pointer()
	packet.AttachArray(p, bindings, len(n.Bindings), WireVertexBindingSize, func(r *packet.Region, i int) {
		b := n.Bindings[i]
		r.Uint32(b.Binding)
		r.Uint32(b.Stride)
		r.Uint32(b.InputRate)
	})
	packet.AttachArray(p, attributes, len(n.Attributes), WireVertexAttributeSize, func(r *packet.Region, i int) {
		a := n.Attributes[i]
		r.Uint32(a.Location)
		r.Uint32(a.Binding)
		r.Uint32(a.Format)
		r.Uint32(a.Offset)
	})
	return next
}

func encodeInputAssemblyState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineInputAssemblyStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(n.Topology)
	r.Uint32(uint32(n.PrimitiveRestartEnable))
	return next
}

func encodeTessellationState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineTessellationStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(n.PatchControlPoints)
	r.Uint32(0)
	return next
}

func viewportStateExtra(_ *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.PipelineViewportStateCreateInfo)
	return packet.ArraySize(len(n.Viewports), WireViewportSize) +
		packet.ArraySize(len(n.Scissors), WireRect2DSize)
}

func encodeViewportState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineViewportStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(len(n.Viewports)))
	r.Uint32(uint32(len(n.Scissors)))
	viewports := r.Pointer()
	scissors := r.Pointer()
	packet.AttachArray(p, viewports, len(n.Viewports), WireViewportSize, func(r *packet.Region, i int) {
		v := n.Viewports[i]
		r.Float32(v.X)
		r.Float32(v.Y)
		r.Float32(v.Width)
		r.Float32(v.Height)
		r.Float32(v.MinDepth)
		r.Float32(v.MaxDepth)
	})
	packet.AttachArray(p, scissors, len(n.Scissors), WireRect2DSize, func(r *packet.Region, i int) {
		s := n.Scissors[i]
		r.Int32(s.Offset.X)
		r.Int32(s.Offset.Y)
		r.Uint32(s.Extent.Width)
		r.Uint32(s.Extent.Height)
	})
	return next
}

func encodeRasterizationState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineRasterizationStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(n.DepthClampEnable))
	r.Uint32(uint32(n.RasterizerDiscardEnable))
	r.Uint32(n.PolygonMode)
	r.Uint32(n.CullMode)
	r.Uint32(n.FrontFace)
	r.Uint32(uint32(n.DepthBiasEnable))
	r.Float32(n.DepthBiasConstantFactor)
	r.Float32(n.DepthBiasClamp)
	r.Float32(n.DepthBiasSlopeFactor)
	r.Float32(n.LineWidth)
	return next
}

func multisampleStateExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.PipelineMultisampleStateCreateInfo).SampleMask), 4)
}

func encodeMultisampleState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineMultisampleStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(n.RasterizationSamples)
	r.Uint32(uint32(n.SampleShadingEnable))
	r.Float32(n.MinSampleShading)
	r.Uint32(uint32(len(n.SampleMask)))
	mask := r.Pointer()
	r.Uint32(uint32(n.AlphaToCoverageEnable))
	r.Uint32(uint32(n.AlphaToOneEnable))
	p.AttachUint32s(mask, n.SampleMask)
	return next
}

func writeStencilOp(r *packet.Region, s vk.StencilOpState) {
	r.Uint32(s.FailOp)
	r.Uint32(s.PassOp)
	r.Uint32(s.DepthFailOp)
	r.Uint32(s.CompareOp)
	r.Uint32(s.CompareMask)
	r.Uint32(s.WriteMask)
	r.Uint32(s.Reference)
}

func encodeDepthStencilState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineDepthStencilStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(n.DepthTestEnable))
	r.Uint32(uint32(n.DepthWriteEnable))
	r.Uint32(n.DepthCompareOp)
	r.Uint32(uint32(n.DepthBoundsTestEnable))
	r.Uint32(uint32(n.StencilTestEnable))
	writeStencilOp(r, n.Front)
	writeStencilOp(r, n.Back)
	r.Float32(n.MinDepthBounds)
	r.Float32(n.MaxDepthBounds)
	r.Uint32(0)
	return next
}

func colorBlendStateExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.PipelineColorBlendStateCreateInfo).Attachments), WireColorBlendAttachmentSize)
}

func encodeColorBlendState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineColorBlendStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(n.LogicOpEnable))
	r.Uint32(n.LogicOp)
	r.Uint32(uint32(len(n.Attachments)))
	r.Uint32(0)
	attachments := r.Pointer()
	for _, c := range n.BlendConstants {
		r.Float32(c)
	}
	packet.AttachArray(p, attachments, len(n.Attachments), WireColorBlendAttachmentSize, func(r *packet.Region, i int) {
		a := n.Attachments[i]
		r.Uint32(uint32(a.BlendEnable))
		r.Uint32(a.SrcColorBlendFactor)
		r.Uint32(a.DstColorBlendFactor)
		r.Uint32(a.ColorBlendOp)
		r.Uint32(a.SrcAlphaBlendFactor)
		r.Uint32(a.DstAlphaBlendFactor)
		r.Uint32(a.AlphaBlendOp)
		r.Uint32(a.ColorWriteMask)
	})
	return next
}

func dynamicStateExtra(_ *packet.Chains, node vk.Chained) uint64 {
	return packet.ArraySize(len(node.(*vk.PipelineDynamicStateCreateInfo).DynamicStates), 4)
}

func encodeDynamicState(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.PipelineDynamicStateCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(len(n.DynamicStates)))
	r.Uint32(0)
	states := r.Pointer()
	p.AttachUint32s(states, n.DynamicStates)
	return next
}

// pipelineStates returns the fixed function states of n in wire order.
func pipelineStates(n *vk.GraphicsPipelineCreateInfo) []vk.Chained {
	return []vk.Chained{
		n.VertexInputState,
		n.InputAssemblyState,
		n.TessellationState,
		n.ViewportState,
		n.RasterizationState,
		n.MultisampleState,
		n.DepthStencilState,
		n.ColorBlendState,
		n.DynamicState,
	}
}

func graphicsPipelineCreateInfoExtra(c *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.GraphicsPipelineCreateInfo)
	total := structsSize(c, n.Stages, WirePipelineShaderStageCreateInfoSize, shaderStageExtra)
	for _, state := range pipelineStates(n) {
		total += c.Size(state)
	}
	return total
}

func encodeGraphicsPipelineCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.GraphicsPipelineCreateInfo)
	next := wireHeader(r, n, n.Flags)
	r.Uint32(uint32(len(n.Stages)))
	r.Uint32(0)
	stages := r.Pointer()
	states := pipelineStates(n)
	slots := make([]packet.Slot, len(states))
	for i := range states {
		slots[i] = r.Pointer()
	}
	r.Uint64(uint64(n.Layout))
	r.Uint64(uint64(n.RenderPass))
	r.Uint32(n.Subpass)
	r.Int32(n.BasePipelineIndex)
	r.Uint64(uint64(n.BasePipelineHandle))

	attachStructs(ctx, p, stages, n.Stages, WirePipelineShaderStageCreateInfoSize, encodeShaderStage)
	for i, state := range states {
		p.AttachChain(ctx, slots[i], state)
	}
	return next
}

func computePipelineCreateInfoExtra(c *packet.Chains, node vk.Chained) uint64 {
	n := node.(*vk.ComputePipelineCreateInfo)
	return shaderStageExtra(c, &n.Stage) + c.Size(n.Stage.Next)
}

// encodeComputePipelineCreateInfo writes the shader stage inline, as it is
// held by value.
func encodeComputePipelineCreateInfo(ctx context.Context, p *packet.Packet, r *packet.Region, node vk.Chained) packet.Slot {
	n := node.(*vk.ComputePipelineCreateInfo)
	next := wireHeader(r, n, n.Flags)
	stageNext := encodeShaderStage(ctx, p, r, &n.Stage)
	r.Uint64(uint64(n.Layout))
	r.Uint64(uint64(n.BasePipelineHandle))
	r.Int32(n.BasePipelineIndex)
	r.Uint32(0)
	p.AttachChain(ctx, stageNext, n.Stage.Next)
	return next
}

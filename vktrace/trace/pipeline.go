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
	"github.com/google/vktrace/vktrace/packet"
)

// CmdPipelineBarrier is the capture wrapper of vkCmdPipelineBarrier. Each
// barrier is recorded by the layout of its own type tag.
func (l *Layer) CmdPipelineBarrier(commandBuffer vk.CommandBuffer, srcStageMask, dstStageMask, dependencyFlags uint32, barriers []vk.Chained) {
	p := l.reserve(packet.CallCmdPipelineBarrier, PacketCmdPipelineBarrier{}, l.builder.Chains().TaggedSize(barriers))
	l.device(uintptr(commandBuffer)).Table.CmdPipelineBarrier(commandBuffer, srcStageMask, dstStageMask, dependencyFlags, barriers)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(commandBuffer))
	body.Uint32(srcStageMask)
	body.Uint32(dstStageMask)
	body.Uint32(dependencyFlags)
	body.Uint32(uint32(len(barriers)))
	barriersSlot := body.Pointer()
	p.AttachTagged(l.ctx, barriersSlot, barriers)
	l.send(p)
}

// CmdWaitEvents is the capture wrapper of vkCmdWaitEvents.
func (l *Layer) CmdWaitEvents(commandBuffer vk.CommandBuffer, events []vk.Event, srcStageMask, dstStageMask uint32, barriers []vk.Chained) {
	extra := packet.ArraySize(len(events), 8) + l.builder.Chains().TaggedSize(barriers)
	p := l.reserve(packet.CallCmdWaitEvents, PacketCmdWaitEvents{}, extra)
	l.device(uintptr(commandBuffer)).Table.CmdWaitEvents(commandBuffer, events, srcStageMask, dstStageMask, barriers)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(commandBuffer))
	body.Uint32(uint32(len(events)))
	body.Uint32(0)
	eventsSlot := body.Pointer()
	body.Uint32(srcStageMask)
	body.Uint32(dstStageMask)
	body.Uint32(uint32(len(barriers)))
	body.Uint32(0)
	barriersSlot := body.Pointer()
	p.AttachUint64s(eventsSlot, handleSlice(events))
	p.AttachTagged(l.ctx, barriersSlot, barriers)
	l.send(p)
}

// UpdateDescriptorSets is the capture wrapper of vkUpdateDescriptorSets.
func (l *Layer) UpdateDescriptorSets(device vk.Device, writes []vk.WriteDescriptorSet, copies []vk.CopyDescriptorSet) {
	c := l.builder.Chains()
	extra := structsSize(c, writes, WireWriteDescriptorSetSize, writeDescriptorSetExtra) +
		structsSize(c, copies, WireCopyDescriptorSetSize, nil)
	p := l.reserve(packet.CallUpdateDescriptorSets, PacketUpdateDescriptorSets{}, extra)
	l.device(uintptr(device)).Table.UpdateDescriptorSets(device, writes, copies)
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint32(uint32(len(writes)))
	body.Uint32(uint32(len(copies)))
	writesSlot := body.Pointer()
	copiesSlot := body.Pointer()
	attachStructs(l.ctx, p, writesSlot, writes, WireWriteDescriptorSetSize, encodeWriteDescriptorSet)
	attachStructs(l.ctx, p, copiesSlot, copies, WireCopyDescriptorSetSize, encodeCopyDescriptorSet)
	l.send(p)
}

// createPipelines captures a vkCreate*Pipelines command. The handles are
// captured after the real call filled them in.
func createPipelines[T any, PT chainedPtr[T]](l *Layer, call packet.CallID, device vk.Device, cache vk.PipelineCache, infos []T, size uint64, extra func(*packet.Chains, vk.Chained) uint64, encode encoder, pipelines []vk.Pipeline, create func() vk.Result) vk.Result {
	total := structsSize[T, PT](l.builder.Chains(), infos, size, extra) + packet.ArraySize(len(pipelines), 8)
	p := l.reserve(call, PacketCreatePipelines{}, total)
	res := create()
	p.SetCallEnd()
	body := p.Body()
	body.Uint64(uint64(device))
	body.Uint64(uint64(cache))
	body.Uint32(uint32(len(infos)))
	body.Uint32(0)
	createInfos := body.Pointer()
	handles := body.Pointer()
	writeResult(body, res)
	attachStructs[T, PT](l.ctx, p, createInfos, infos, size, encode)
	p.AttachUint64s(handles, handleSlice(pipelines))
	l.send(p)
	return res
}

// CreateGraphicsPipelines is the capture wrapper of vkCreateGraphicsPipelines.
func (l *Layer) CreateGraphicsPipelines(device vk.Device, cache vk.PipelineCache, infos []vk.GraphicsPipelineCreateInfo, pipelines []vk.Pipeline) vk.Result {
	return createPipelines(l, packet.CallCreateGraphicsPipelines, device, cache, infos,
		WireGraphicsPipelineCreateInfoSize, graphicsPipelineCreateInfoExtra, encodeGraphicsPipelineCreateInfo, pipelines,
		func() vk.Result {
			return l.device(uintptr(device)).Table.CreateGraphicsPipelines(device, cache, infos, pipelines)
		})
}

// CreateComputePipelines is the capture wrapper of vkCreateComputePipelines.
func (l *Layer) CreateComputePipelines(device vk.Device, cache vk.PipelineCache, infos []vk.ComputePipelineCreateInfo, pipelines []vk.Pipeline) vk.Result {
	return createPipelines(l, packet.CallCreateComputePipelines, device, cache, infos,
		WireComputePipelineCreateInfoSize, computePipelineCreateInfoExtra, encodeComputePipelineCreateInfo, pipelines,
		func() vk.Result {
			return l.device(uintptr(device)).Table.CreateComputePipelines(device, cache, infos, pipelines)
		})
}

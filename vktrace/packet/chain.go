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

import (
	"context"
	"sync"

	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/vulkan/vk"
)

// ChainLayout describes how one extension structure is encoded.
type ChainLayout struct {
	// Size is the encoded size of the structure itself.
	Size uint64
	// Extra, if not nil, returns the space needed by buffers the structure
	// points at, excluding its Next chain.
	Extra func(node vk.Chained) uint64
	// Encode writes node to r, attaching and finalizing any buffers it points
	// at other than its Next chain. It returns the slot of the Next pointer.
	Encode func(ctx context.Context, p *Packet, r *Region, node vk.Chained) Slot
}

// Chains maps structure types to their layouts.
type Chains struct {
	mutex   sync.RWMutex
	layouts map[vk.StructureType]ChainLayout
}

// NewChains returns an empty chain layout registry.
func NewChains() *Chains {
	return &Chains{layouts: map[vk.StructureType]ChainLayout{}}
}

// Register adds or replaces the layout for structures of type tag.
func (c *Chains) Register(tag vk.StructureType, layout ChainLayout) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.layouts[tag] = layout
}

// Layout returns the layout registered for tag.
func (c *Chains) Layout(tag vk.StructureType) (ChainLayout, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	l, ok := c.layouts[tag]
	return l, ok
}

// Size returns the space needed to attach the whole chain starting at node.
// Structures with no registered layout are skipped and need no space.
func (c *Chains) Size(node vk.Chained) uint64 {
	total := uint64(0)
	for ; !vk.IsNil(node); node = node.NextInChain() {
		l, ok := c.Layout(node.StructureType())
		if !ok {
			continue
		}
		total += Align(l.Size)
		if l.Extra != nil {
			total += l.Extra(node)
		}
	}
	return total
}

// ChainSize returns the space needed to attach the chain starting at node.
func (p *Packet) ChainSize(node vk.Chained) uint64 { return p.chains.Size(node) }

// AttachChain attaches the chain starting at node and finalizes slot.
// Each structure is linked to the next through its own Next slot and the
// chain is finalized from the last structure back to slot. Structures with
// no registered layout are dropped from the chain with a warning.
func (p *Packet) AttachChain(ctx context.Context, slot Slot, node vk.Chained) {
	for ; !vk.IsNil(node); node = node.NextInChain() {
		l, ok := p.chains.Layout(node.StructureType())
		if !ok {
			log.W(ctx, "Dropping structure with unknown type %d from chain", node.StructureType())
			continue
		}
		r := p.AttachStruct(slot, l.Size)
		next := l.Encode(ctx, p, r, node)
		p.AttachChain(ctx, next, node.NextInChain())
		p.Finalize(slot)
		return
	}
	p.Attach(slot, nil)
	p.Finalize(slot)
}

// TaggedSize returns the space needed to attach nodes as an array of pointers
// to structures selected by their type tags, including each structure's Next
// chain. Elements with no registered layout need only their pointer.
func (c *Chains) TaggedSize(nodes []vk.Chained) uint64 {
	total := ArraySize(len(nodes), PointerSize)
	for _, node := range nodes {
		if vk.IsNil(node) {
			continue
		}
		if _, ok := c.Layout(node.StructureType()); ok {
			total += c.Size(node)
		}
	}
	return total
}

// TaggedSize returns the space needed to attach nodes with AttachTagged.
func (p *Packet) TaggedSize(nodes []vk.Chained) uint64 { return p.chains.TaggedSize(nodes) }

// AttachTagged attaches nodes as an array of pointers and finalizes slot.
// Each element is encoded by the layout registered for its own type tag and
// followed by its Next chain. Elements that are nil or have no registered
// layout are recorded as null, the latter with a warning.
func (p *Packet) AttachTagged(ctx context.Context, slot Slot, nodes []vk.Chained) {
	r := p.AttachStruct(slot, uint64(len(nodes))*PointerSize)
	for _, node := range nodes {
		elem := r.Pointer()
		if vk.IsNil(node) {
			p.Attach(elem, nil)
			p.Finalize(elem)
			continue
		}
		l, ok := p.chains.Layout(node.StructureType())
		if !ok {
			log.W(ctx, "Recording element with unknown type %d as null", node.StructureType())
			p.Attach(elem, nil)
			p.Finalize(elem)
			continue
		}
		er := p.AttachStruct(elem, l.Size)
		next := l.Encode(ctx, p, er, node)
		p.AttachChain(ctx, next, node.NextInChain())
		p.Finalize(elem)
	}
	p.Finalize(slot)
}

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

// Package packet builds and decodes self-contained trace packets.
//
// A packet is a single contiguous little-endian buffer: a fixed Header, the
// fixed body of the call, then any number of attached buffers. Pointer fields
// in the body and in attached buffers hold packet-relative offsets, so the
// packet can be copied anywhere and decoded without fix-ups. The offset 0
// always addresses the header and is used as the null pointer.
package packet

import (
	eb "encoding/binary"
	"sync/atomic"
	"time"

	"github.com/google/vktrace/core/fault"
	"github.com/pkg/errors"
)

const (
	// HeaderSize is the encoded size of a Header.
	HeaderSize = 48
	// Alignment is the alignment of every attached buffer.
	Alignment = 8
	// PointerSize is the size of an encoded pointer slot.
	PointerSize = 8
	// Null is the offset stored in a slot for an absent buffer.
	Null = 0
)

const (
	ErrOverflow       = fault.Const("Packet space exhausted")
	ErrNotAttached    = fault.Const("Slot was never attached")
	ErrAttachedTwice  = fault.Const("Slot attached twice")
	ErrFinalizedTwice = fault.Const("Slot finalized twice")
	ErrNotFinalized   = fault.Const("Attached slot was not finalized")
	ErrBadSlot        = fault.Const("Slot lies outside the packet")
	ErrFinished       = fault.Const("Packet already finished")
)

// Byte offsets of the header fields.
const (
	sizeOffset      = 0
	sequenceOffset  = 8
	callOffset      = 16
	threadOffset    = 20
	callBeginOffset = 24
	callEndOffset   = 32
	enqueueOffset   = 40
)

var le = eb.LittleEndian

// Header is the fixed prefix of every packet.
type Header struct {
	Size      uint64 // Total bytes in the packet.
	Sequence  uint64 // Global index of the packet.
	Call      CallID
	Thread    uint32
	CallBegin uint64 // Nanoseconds, before the real call.
	CallEnd   uint64 // Nanoseconds, after the real call returned.
	Enqueue   uint64 // Nanoseconds, when the packet was finished.
}

// Clock provides timestamps in nanoseconds.
type Clock interface {
	Now() uint64
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() uint64

func (f ClockFunc) Now() uint64 { return f() }

// SystemClock returns a Clock reading the wall clock.
func SystemClock() Clock {
	return ClockFunc(func() uint64 { return uint64(time.Now().UnixNano()) })
}

// Align rounds n up to the packet Alignment.
func Align(n uint64) uint64 { return (n + Alignment - 1) &^ (Alignment - 1) }

// Extra returns the extra space needed to attach buffers of the given sizes.
func Extra(sizes ...uint64) uint64 {
	total := uint64(0)
	for _, s := range sizes {
		total += Align(s)
	}
	return total
}

// Builder creates packets. It owns the packet sequence counter.
type Builder struct {
	clock    Clock
	chains   *Chains
	thread   func() uint32
	sequence atomic.Uint64
}

// NewBuilder returns a Builder stamping packets with clock and encoding
// extension structures with chains. nil arguments select the system clock and
// an empty chain registry.
func NewBuilder(clock Clock, chains *Chains) *Builder {
	if clock == nil {
		clock = SystemClock()
	}
	if chains == nil {
		chains = NewChains()
	}
	return &Builder{clock: clock, chains: chains, thread: threadID}
}

// Chains returns the chain layouts used by packets of this builder.
func (b *Builder) Chains() *Chains { return b.chains }

// Reserve allocates a packet for call with bodySize bytes of fixed body
// (rounded up to Alignment) and extra bytes for attached buffers.
// The packet is stamped with the next sequence number and the call begin time.
func (b *Builder) Reserve(call CallID, bodySize, extra uint64) *Packet {
	bodyEnd := HeaderSize + bodySize
	extraStart := Align(bodyEnd)
	size := extraStart + extra
	p := &Packet{
		data:       make([]byte, size),
		clock:      b.clock,
		chains:     b.chains,
		extraStart: extraStart,
		next:       extraStart,
		slots:      map[Slot]*attachment{},
	}
	p.body = newRegion(p, HeaderSize, bodyEnd)
	le.PutUint64(p.data[sizeOffset:], size)
	le.PutUint64(p.data[sequenceOffset:], b.sequence.Add(1)-1)
	le.PutUint16(p.data[callOffset:], uint16(call))
	le.PutUint32(p.data[threadOffset:], b.thread())
	le.PutUint64(p.data[callBeginOffset:], b.clock.Now())
	return p
}

// Slot is the packet offset of an encoded pointer field.
type Slot uint64

type attachment struct {
	offset    uint64
	finalized bool
}

// Packet is a packet under construction. It is not safe for concurrent use.
type Packet struct {
	data       []byte
	clock      Clock
	chains     *Chains
	body       *Region
	extraStart uint64
	next       uint64
	slots      map[Slot]*attachment
	finished   bool
}

// Header returns the decoded header of the packet.
func (p *Packet) Header() Header { return decodeHeader(p.data) }

// Size returns the total size of the packet in bytes.
func (p *Packet) Size() uint64 { return uint64(len(p.data)) }

// Body returns the writer over the fixed body of the packet.
func (p *Packet) Body() *Region { return p.body }

// Attached returns the number of bytes of extra space consumed so far.
func (p *Packet) Attached() uint64 { return p.next - p.extraStart }

// Remaining returns the number of bytes of extra space still free.
func (p *Packet) Remaining() uint64 { return uint64(len(p.data)) - p.next }

// Attach copies src into the extra space and records its offset for slot.
// A nil or empty src attaches the null pointer.
func (p *Packet) Attach(slot Slot, src []byte) {
	r := p.reserve(slot, uint64(len(src)))
	if r != nil {
		r.Data(src)
	}
}

// AttachStruct reserves size bytes of extra space for slot and returns a
// writer to encode the structure into.
func (p *Packet) AttachStruct(slot Slot, size uint64) *Region {
	r := p.reserve(slot, size)
	if r == nil {
		r = newRegion(p, 0, 0)
	}
	return r
}

// Finalize writes the offset recorded for slot into the slot. Every
// attachment must be finalized exactly once, after the slots of any buffers
// nested inside it.
func (p *Packet) Finalize(slot Slot) {
	p.checkOpen()
	a, ok := p.slots[slot]
	if !ok {
		panic(errors.Wrapf(ErrNotAttached, "slot %#x", uint64(slot)))
	}
	if a.finalized {
		panic(errors.Wrapf(ErrFinalizedTwice, "slot %#x", uint64(slot)))
	}
	le.PutUint64(p.data[slot:], a.offset)
	a.finalized = true
}

// SetCallEnd stamps the time the real call returned.
func (p *Packet) SetCallEnd() {
	p.checkOpen()
	le.PutUint64(p.data[callEndOffset:], p.clock.Now())
}

// Finish stamps the enqueue time and returns the encoded packet.
// It panics if an attached slot was never finalized.
func (p *Packet) Finish() []byte {
	p.checkOpen()
	for slot, a := range p.slots {
		if !a.finalized {
			panic(errors.Wrapf(ErrNotFinalized, "slot %#x", uint64(slot)))
		}
	}
	le.PutUint64(p.data[enqueueOffset:], p.clock.Now())
	p.finished = true
	return p.data
}

func (p *Packet) checkOpen() {
	if p.finished {
		panic(ErrFinished)
	}
}

func (p *Packet) reserve(slot Slot, size uint64) *Region {
	p.checkOpen()
	if uint64(slot) < HeaderSize || uint64(slot)+PointerSize > uint64(len(p.data)) {
		panic(errors.Wrapf(ErrBadSlot, "slot %#x in packet of %d bytes", uint64(slot), len(p.data)))
	}
	if _, dup := p.slots[slot]; dup {
		panic(errors.Wrapf(ErrAttachedTwice, "slot %#x", uint64(slot)))
	}
	if size == 0 {
		p.slots[slot] = &attachment{offset: Null}
		return nil
	}
	start := p.next
	if size > p.Remaining() {
		panic(errors.Wrapf(ErrOverflow, "attaching %d bytes with %d remaining", size, p.Remaining()))
	}
	end := start + Align(size)
	if end > uint64(len(p.data)) {
		end = uint64(len(p.data))
	}
	p.next = end
	p.slots[slot] = &attachment{offset: start}
	return newRegion(p, start, start+size)
}

func decodeHeader(data []byte) Header {
	return Header{
		Size:      le.Uint64(data[sizeOffset:]),
		Sequence:  le.Uint64(data[sequenceOffset:]),
		Call:      CallID(le.Uint16(data[callOffset:])),
		Thread:    le.Uint32(data[threadOffset:]),
		CallBegin: le.Uint64(data[callBeginOffset:]),
		CallEnd:   le.Uint64(data[callEndOffset:]),
		Enqueue:   le.Uint64(data[enqueueOffset:]),
	}
}

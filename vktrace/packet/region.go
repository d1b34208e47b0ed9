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
	"github.com/google/vktrace/core/data/binary"
	"github.com/google/vktrace/core/data/endian"
	"github.com/google/vktrace/core/os/device"
	"github.com/pkg/errors"
)

// Region is a bounded little-endian writer over part of a packet.
// Writing past the end of the region panics with ErrOverflow.
type Region struct {
	binary.Writer
	c *cursor
}

type cursor struct {
	p          *Packet
	start, pos uint64
	end        uint64
}

func newRegion(p *Packet, start, end uint64) *Region {
	c := &cursor{p: p, start: start, pos: start, end: end}
	return &Region{Writer: endian.Writer(c, device.LittleEndian), c: c}
}

func (c *cursor) Write(b []byte) (int, error) {
	c.p.checkOpen()
	if uint64(len(b)) > c.end-c.pos {
		panic(errors.Wrapf(ErrOverflow, "writing %d bytes at %#x, region ends at %#x", len(b), c.pos, c.end))
	}
	copy(c.p.data[c.pos:], b)
	c.pos += uint64(len(b))
	return len(b), nil
}

// Offset returns the packet offset of the start of the region.
func (r *Region) Offset() uint64 { return r.c.start }

// Size returns the capacity of the region in bytes.
func (r *Region) Size() uint64 { return r.c.end - r.c.start }

// Len returns the number of bytes written to the region.
func (r *Region) Len() uint64 { return r.c.pos - r.c.start }

// Pointer writes a null pointer and returns its slot so that a buffer can
// later be attached and finalized into it.
func (r *Region) Pointer() Slot {
	slot := Slot(r.c.pos)
	r.Uint64(Null)
	return slot
}

// Skip advances the region by n zero bytes.
func (r *Region) Skip(n uint64) {
	if n > r.c.end-r.c.pos {
		panic(errors.Wrapf(ErrOverflow, "skipping %d bytes at %#x, region ends at %#x", n, r.c.pos, r.c.end))
	}
	r.c.pos += n
}

// Fixed writes s into a zero padded field of size bytes. s is truncated to
// leave room for the NUL terminator.
func (r *Region) Fixed(s string, size int) {
	if len(s) > size-1 {
		s = s[:size-1]
	}
	r.Data([]byte(s))
	binary.Pad(r, size-len(s))
}

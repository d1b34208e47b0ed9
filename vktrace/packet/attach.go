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

// StringSize returns the space needed to attach s with its NUL terminator.
// The empty string is attached as null and needs no space.
func StringSize(s string) uint64 {
	if s == "" {
		return 0
	}
	return Align(uint64(len(s)) + 1)
}

// StringsSize returns the space needed to attach a pointer array to the
// strings ss.
func StringsSize(ss []string) uint64 {
	total := Align(uint64(len(ss)) * PointerSize)
	for _, s := range ss {
		total += StringSize(s)
	}
	return total
}

// ArraySize returns the space needed to attach n elements of elemSize bytes.
func ArraySize(n int, elemSize uint64) uint64 { return Align(uint64(n) * elemSize) }

// AttachString attaches s as a NUL terminated string and finalizes slot.
func (p *Packet) AttachString(slot Slot, s string) {
	if s == "" {
		p.Attach(slot, nil)
	} else {
		p.Attach(slot, append([]byte(s), 0))
	}
	p.Finalize(slot)
}

// AttachStrings attaches an array of string pointers and each of the strings,
// then finalizes slot.
func (p *Packet) AttachStrings(slot Slot, ss []string) {
	r := p.AttachStruct(slot, uint64(len(ss))*PointerSize)
	elems := make([]Slot, len(ss))
	for i := range ss {
		elems[i] = r.Pointer()
	}
	for i, s := range ss {
		p.AttachString(elems[i], s)
	}
	p.Finalize(slot)
}

// AttachArray attaches n elements of elemSize bytes, each written by encode,
// and finalizes slot. An empty array is attached as null.
func AttachArray(p *Packet, slot Slot, n int, elemSize uint64, encode func(r *Region, i int)) {
	r := p.AttachStruct(slot, uint64(n)*elemSize)
	for i := 0; i < n; i++ {
		encode(r, i)
	}
	p.Finalize(slot)
}

// AttachUint32s attaches the values and finalizes slot.
func (p *Packet) AttachUint32s(slot Slot, values []uint32) {
	AttachArray(p, slot, len(values), 4, func(r *Region, i int) { r.Uint32(values[i]) })
}

// AttachUint64s attaches the values and finalizes slot.
func (p *Packet) AttachUint64s(slot Slot, values []uint64) {
	AttachArray(p, slot, len(values), 8, func(r *Region, i int) { r.Uint64(values[i]) })
}

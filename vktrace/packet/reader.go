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
	"bytes"
	"io"

	"github.com/google/vktrace/core/data/binary"
	"github.com/google/vktrace/core/data/endian"
	"github.com/google/vktrace/core/fault"
	"github.com/google/vktrace/core/os/device"
	"github.com/pkg/errors"
)

// MaxSize is the largest packet Read will accept.
const MaxSize = 1 << 31

const (
	ErrTruncated  = fault.Const("Packet truncated")
	ErrBadSize    = fault.Const("Packet size field is invalid")
	ErrOutOfRange = fault.Const("Offset lies outside the packet")
)

// Decoded is a received packet.
type Decoded struct {
	data   []byte
	header Header
}

// Read reads one packet from r.
// It returns io.EOF if r is exhausted before the first byte of the packet.
func Read(r io.Reader) (*Decoded, error) {
	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(ErrTruncated, err.Error())
	}
	size := le.Uint64(head[sizeOffset:])
	if size < HeaderSize || size > MaxSize {
		return nil, errors.Wrapf(ErrBadSize, "size %d", size)
	}
	data := make([]byte, size)
	copy(data, head)
	if _, err := io.ReadFull(r, data[HeaderSize:]); err != nil {
		return nil, errors.Wrapf(ErrTruncated, "reading %d byte packet: %v", size, err)
	}
	return &Decoded{data: data, header: decodeHeader(data)}, nil
}

// Decode wraps the bytes of a single packet.
func Decode(data []byte) (*Decoded, error) {
	if len(data) < HeaderSize {
		return nil, errors.Wrapf(ErrTruncated, "%d bytes", len(data))
	}
	h := decodeHeader(data)
	if h.Size != uint64(len(data)) {
		return nil, errors.Wrapf(ErrBadSize, "header says %d, have %d bytes", h.Size, len(data))
	}
	return &Decoded{data: data, header: h}, nil
}

// Header returns the packet header.
func (d *Decoded) Header() Header { return d.header }

// Bytes returns the whole encoded packet.
func (d *Decoded) Bytes() []byte { return d.data }

// Body returns a reader positioned at the fixed body.
func (d *Decoded) Body() binary.Reader {
	return endian.Reader(bytes.NewReader(d.data[HeaderSize:]), device.LittleEndian)
}

// At returns a reader positioned at offset.
func (d *Decoded) At(offset uint64) (binary.Reader, error) {
	if offset < HeaderSize || offset > uint64(len(d.data)) {
		return nil, errors.Wrapf(ErrOutOfRange, "offset %#x", offset)
	}
	return endian.Reader(bytes.NewReader(d.data[offset:]), device.LittleEndian), nil
}

// Slice returns n bytes at offset, or nil if offset is Null.
func (d *Decoded) Slice(offset, n uint64) ([]byte, error) {
	if offset == Null {
		return nil, nil
	}
	if offset < HeaderSize || offset > uint64(len(d.data)) || n > uint64(len(d.data))-offset {
		return nil, errors.Wrapf(ErrOutOfRange, "%d bytes at %#x in %d byte packet", n, offset, len(d.data))
	}
	return d.data[offset : offset+n], nil
}

// Pointer returns the offset stored in the slot at.
func (d *Decoded) Pointer(at uint64) (uint64, error) {
	b, err := d.Slice(at, PointerSize)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, errors.Wrap(ErrOutOfRange, "slot at null")
	}
	return le.Uint64(b), nil
}

// String returns the NUL terminated string at offset, or "" if offset is Null.
func (d *Decoded) String(offset uint64) (string, error) {
	if offset == Null {
		return "", nil
	}
	if offset < HeaderSize || offset >= uint64(len(d.data)) {
		return "", errors.Wrapf(ErrOutOfRange, "string at %#x", offset)
	}
	s := d.data[offset:]
	end := bytes.IndexByte(s, 0)
	if end < 0 {
		return "", errors.Wrapf(ErrTruncated, "unterminated string at %#x", offset)
	}
	return string(s[:end]), nil
}

// Strings returns the count strings addressed by the pointer array at offset.
func (d *Decoded) Strings(offset uint64, count int) ([]string, error) {
	if offset == Null {
		return nil, nil
	}
	if count < 0 || uint64(count) > uint64(len(d.data))/PointerSize {
		return nil, errors.Wrapf(ErrOutOfRange, "%d strings at %#x", count, offset)
	}
	out := make([]string, count)
	for i := range out {
		p, err := d.Pointer(offset + uint64(i)*PointerSize)
		if err != nil {
			return nil, err
		}
		if out[i], err = d.String(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

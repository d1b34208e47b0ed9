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

// Package endian implements binary.Reader and binary.Writer for a device byte
// order.
package endian

import (
	eb "encoding/binary"
	"io"
	"math"

	"github.com/google/vktrace/core/data/binary"
	"github.com/google/vktrace/core/os/device"
	"github.com/pkg/errors"
)

type byteOrder interface {
	eb.ByteOrder
	eb.AppendByteOrder
}

// ByteOrder returns the encoding/binary byte order for e. Unknown byte
// orders are treated as little-endian.
func ByteOrder(e device.Endian) eb.ByteOrder { return order(e) }

func order(e device.Endian) byteOrder {
	if e == device.BigEndian {
		return eb.BigEndian
	}
	return eb.LittleEndian
}

// Reader returns a binary.Reader decoding r in byte order e.
func Reader(r io.Reader, e device.Endian) binary.Reader {
	return &reader{src: r, order: order(e)}
}

// Writer returns a binary.Writer encoding to w in byte order e.
func Writer(w io.Writer, e device.Endian) binary.Writer {
	return &writer{dst: w, order: order(e)}
}

// errState is the sticky error shared by readers and writers. Once set, all
// further operations are no-ops.
type errState struct{ err error }

func (s *errState) Error() error { return s.err }

func (s *errState) SetError(err error) {
	if s.err == nil {
		s.err = err
	}
}

type reader struct {
	errState
	src     io.Reader
	order   byteOrder
	scratch [8]byte
}

func (r *reader) Read(p []byte) (int, error) { return r.src.Read(p) }

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	if n, err := io.ReadFull(r.src, p); err != nil {
		r.err = errors.Wrapf(err, "after reading %d bytes", n)
	}
}

// next reads n bytes into the scratch buffer, zeroing it on failure.
func (r *reader) next(n int) []byte {
	b := r.scratch[:n]
	r.Data(b)
	if r.err != nil {
		clear(b)
	}
	return b
}

func (r *reader) Bool() bool       { return r.Uint8() != 0 }
func (r *reader) Int8() int8       { return int8(r.Uint8()) }
func (r *reader) Uint8() uint8     { return r.next(1)[0] }
func (r *reader) Int16() int16     { return int16(r.Uint16()) }
func (r *reader) Uint16() uint16   { return r.order.Uint16(r.next(2)) }
func (r *reader) Int32() int32     { return int32(r.Uint32()) }
func (r *reader) Uint32() uint32   { return r.order.Uint32(r.next(4)) }
func (r *reader) Int64() int64     { return int64(r.Uint64()) }
func (r *reader) Uint64() uint64   { return r.order.Uint64(r.next(8)) }
func (r *reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }
func (r *reader) Float64() float64 { return math.Float64frombits(r.Uint64()) }

// String reads up to and including a NUL terminator.
func (r *reader) String() string {
	var s []byte
	for c := r.Uint8(); c != 0 && r.err == nil; c = r.Uint8() {
		s = append(s, c)
	}
	return string(s)
}

type writer struct {
	errState
	dst     io.Writer
	order   byteOrder
	scratch [8]byte
}

func (w *writer) Data(p []byte) {
	if w.err != nil {
		return
	}
	switch n, err := w.dst.Write(p); {
	case err != nil:
		w.err = err
	case n != len(p):
		w.err = io.ErrShortWrite
	}
}

func (w *writer) Bool(v bool) {
	if v {
		w.Uint8(1)
		return
	}
	w.Uint8(0)
}

func (w *writer) Uint8(v uint8) {
	w.scratch[0] = v
	w.Data(w.scratch[:1])
}

func (w *writer) Uint16(v uint16) { w.Data(w.order.AppendUint16(w.scratch[:0], v)) }
func (w *writer) Uint32(v uint32) { w.Data(w.order.AppendUint32(w.scratch[:0], v)) }
func (w *writer) Uint64(v uint64) { w.Data(w.order.AppendUint64(w.scratch[:0], v)) }

func (w *writer) Int8(v int8)       { w.Uint8(uint8(v)) }
func (w *writer) Int16(v int16)     { w.Uint16(uint16(v)) }
func (w *writer) Int32(v int32)     { w.Uint32(uint32(v)) }
func (w *writer) Int64(v int64)     { w.Uint64(uint64(v)) }
func (w *writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }
func (w *writer) Float64(v float64) { w.Uint64(math.Float64bits(v)) }

// String writes s followed by a NUL terminator.
func (w *writer) String(s string) {
	w.Data([]byte(s))
	w.Uint8(0)
}

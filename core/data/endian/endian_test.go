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

package endian_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/data/endian"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/device"
)

func TestLittleEndianLayout(t *testing.T) {
	ctx := log.Testing(t)
	buf := &bytes.Buffer{}
	w := endian.Writer(buf, device.LittleEndian)
	w.Uint16(0x0102)
	w.Uint32(0x03040506)
	w.String("vk")
	assert.For(ctx, "err").ThatError(w.Error()).Succeeded()
	assert.For(ctx, "bytes").ThatSlice(buf.Bytes()).Equals([]byte{
		0x02, 0x01,
		0x06, 0x05, 0x04, 0x03,
		'v', 'k', 0,
	})
}

func TestReadBack(t *testing.T) {
	ctx := log.Testing(t)
	for _, e := range []device.Endian{device.LittleEndian, device.BigEndian} {
		buf := &bytes.Buffer{}
		w := endian.Writer(buf, e)
		w.Bool(true)
		w.Int8(-3)
		w.Uint64(0x1122334455667788)
		w.Float32(1.5)
		w.String("vkCreateInstance")

		r := endian.Reader(buf, e)
		assert.For(ctx, "bool").ThatBoolean(r.Bool()).IsTrue()
		assert.For(ctx, "int8").That(r.Int8()).Equals(int8(-3))
		assert.For(ctx, "uint64").ThatUint(r.Uint64()).Equals(0x1122334455667788)
		assert.For(ctx, "float32").That(r.Float32()).Equals(float32(1.5))
		assert.For(ctx, "string").ThatString(r.String()).Equals("vkCreateInstance")
		assert.For(ctx, "err").ThatError(r.Error()).Succeeded()
	}
}

func TestShortRead(t *testing.T) {
	ctx := log.Testing(t)
	r := endian.Reader(bytes.NewReader([]byte{1, 2}), device.LittleEndian)
	assert.For(ctx, "value").ThatUint(uint64(r.Uint32())).Equals(0)
	assert.For(ctx, "err").ThatError(r.Error()).Is(io.ErrUnexpectedEOF)
}

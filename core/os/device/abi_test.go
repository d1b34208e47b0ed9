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

package device_test

import (
	"testing"
	"unsafe"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/device"
)

func TestHostPointerSize(t *testing.T) {
	ctx := log.Testing(t)
	host := device.Host()
	assert.For(ctx, "pointer size").ThatInteger(int(host.MemoryLayout.PointerSize)).Equals(int(unsafe.Sizeof(uintptr(0))))
	assert.For(ctx, "os").That(host.OS).NotEquals(device.UnknownOS)
}

func TestSameAs(t *testing.T) {
	ctx := log.Testing(t)
	other := &device.ABI{Name: "custom", OS: device.Linux, Architecture: device.X86_64}
	assert.For(ctx, "same").ThatBoolean(device.LinuxX86_64.SameAs(other)).IsTrue()
	assert.For(ctx, "different").ThatBoolean(device.OSXX86_64.SameAs(other)).IsFalse()
	assert.For(ctx, "nil").ThatBoolean((*device.ABI)(nil).SameAs(device.UnknownABI)).IsTrue()
}

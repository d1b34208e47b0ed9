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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/device"
	"github.com/google/vktrace/vktrace/packet"
	"github.com/google/vktrace/vktrace/transport"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func writeTrace(t *testing.T, calls ...packet.CallID) *bytes.Buffer {
	ctx := log.Testing(t)
	buf := &bytes.Buffer{}
	f, err := transport.NewFile(nopCloser{buf}, transport.FileOptions{Compress: true, ABI: device.LinuxX86_64})
	if err != nil {
		t.Fatalf("creating trace: %v", err)
	}
	b := packet.NewBuilder(nil, nil)
	for _, call := range calls {
		f.Send(ctx, b.Reserve(call, 8, 0).Finish())
	}
	f.Close()
	return buf
}

func TestDump(t *testing.T) {
	ctx := log.Testing(t)
	in := writeTrace(t, packet.CallQueueSubmit, packet.CallQueueWaitIdle, packet.CallQueueSubmit)
	out := &bytes.Buffer{}
	err := dump(ctx, in, out, 0, false)
	if !assert.For(ctx, "dump").ThatError(err).Succeeded() {
		return
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.For(ctx, "lines").ThatSlice(lines).IsLength(1 + 3 + 2 + 1)
	assert.For(ctx, "header").ThatString(lines[0]).Contains("linux x86_64, 64-bit pointers, compressed true")
	assert.For(ctx, "first").ThatString(lines[1]).Contains("vkQueueSubmit")
	assert.For(ctx, "second").ThatString(lines[2]).Contains("vkQueueWaitIdle")
	assert.For(ctx, "submit total").ThatString(lines[4]).HasPrefix("vkQueueSubmit")
	assert.For(ctx, "summary").ThatString(lines[6]).HasPrefix("3 packets, ")
}

func TestDumpSummaryAndLimit(t *testing.T) {
	ctx := log.Testing(t)
	calls := []packet.CallID{packet.CallDeviceWaitIdle, packet.CallDeviceWaitIdle, packet.CallDeviceWaitIdle}

	out := &bytes.Buffer{}
	assert.For(ctx, "limit").ThatError(dump(ctx, writeTrace(t, calls...), out, 1, false)).Succeeded()
	assert.For(ctx, "limited lines").ThatInteger(strings.Count(out.String(), "\n")).Equals(1 + 1 + 1 + 1)

	out.Reset()
	assert.For(ctx, "summary").ThatError(dump(ctx, writeTrace(t, calls...), out, 0, true)).Succeeded()
	assert.For(ctx, "summary lines").ThatInteger(strings.Count(out.String(), "\n")).Equals(1 + 1 + 1)
}

func TestDumpNotATrace(t *testing.T) {
	ctx := log.Testing(t)
	err := dump(ctx, strings.NewReader("not a trace file at all"), &bytes.Buffer{}, 0, false)
	assert.For(ctx, "dump").ThatError(err).HasCause(transport.ErrNotTraceFile)
}

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

package trace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/vktrace/config"
	"github.com/google/vktrace/vktrace/trace"
	"github.com/google/vktrace/vktrace/transport"
)

func TestLogging(t *testing.T) {
	assertCtx := log.Testing(t)
	w, buf := log.Buffer()
	ctx, flush := trace.Logging(context.Background(), w)
	log.I(ctx, "Layer loaded")
	log.D(ctx, "Mapped %d bytes", 64)
	flush()
	assert.For(assertCtx, "info").ThatString(buf.String()).Contains("I: <vktrace> Layer loaded")
	assert.For(assertCtx, "debug").ThatString(buf.String()).Contains("Mapped 64 bytes")
}

func TestFromConfig(t *testing.T) {
	ctx := log.Testing(t)

	l, err := trace.FromConfig(ctx, config.Config{Disable: true, TraceFile: "ignored.vktrace"})
	if assert.For(ctx, "disabled").ThatError(err).Succeeded() {
		assert.For(ctx, "disabled capturing").ThatBoolean(l.Capturing()).IsFalse()
		assert.For(ctx, "disabled close").ThatError(l.Close()).Succeeded()
	}

	path := filepath.Join(t.TempDir(), "app.vktrace")
	l, err = trace.FromConfig(ctx, config.Config{TraceFile: path, Compress: true, LogLevel: log.Info})
	if !assert.For(ctx, "file").ThatError(err).Succeeded() {
		return
	}
	assert.For(ctx, "capturing").ThatBoolean(l.Capturing()).IsTrue()
	assert.For(ctx, "close").ThatError(l.Close()).Succeeded()
	assert.For(ctx, "closed").ThatBoolean(l.Capturing()).IsFalse()

	in, err := os.Open(path)
	if !assert.For(ctx, "open").ThatError(err).Succeeded() {
		return
	}
	defer in.Close()
	r, err := transport.NewFileReader(in)
	if !assert.For(ctx, "read").ThatError(err).Succeeded() {
		return
	}
	defer r.Close()
	assert.For(ctx, "compressed").That(r.Header().Flags).Equals(transport.Compressed)
}

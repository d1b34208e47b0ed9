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

package shell_test

import (
	"testing"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/shell"
)

func layerEnv() *shell.Env {
	return shell.NewEnv().
		Set("VK_INSTANCE_LAYERS", "VK_LAYER_LUNARG_vktrace").
		Set("VKTRACE_COMPRESS", "").
		Set("VKTRACE_TRACE_FILE", "app.vktrace")
}

func TestEmptyEnv(t *testing.T) {
	ctx := log.Testing(t)
	env := shell.NewEnv()
	assert.For(ctx, "Vars").ThatSlice(env.Vars()).Equals([]string{})
}

func TestEnvSet(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "Vars").ThatSlice(layerEnv().Vars()).Equals([]string{
		"VK_INSTANCE_LAYERS=VK_LAYER_LUNARG_vktrace",
		"VKTRACE_COMPRESS",
		"VKTRACE_TRACE_FILE=app.vktrace",
	})
}

func TestEnvGet(t *testing.T) {
	ctx := log.Testing(t)
	env := layerEnv()
	assert.For(ctx, "exact").ThatString(env.Get("VKTRACE_TRACE_FILE")).Equals("app.vktrace")
	assert.For(ctx, "case").ThatString(env.Get("vktrace_trace_file")).Equals("app.vktrace")
	assert.For(ctx, "flag").ThatString(env.Get("VKTRACE_COMPRESS")).Equals("")
	assert.For(ctx, "flag exists").ThatBoolean(env.Exists("VKTRACE_COMPRESS")).IsTrue()
	assert.For(ctx, "missing").ThatBoolean(env.Exists("VKTRACE_ADDRESS")).IsFalse()
}

func TestEnvUnset(t *testing.T) {
	ctx := log.Testing(t)
	env := layerEnv().Unset("VK_INSTANCE_LAYERS")
	assert.For(ctx, "Keys").ThatSlice(env.Keys()).Equals([]string{"VKTRACE_COMPRESS", "VKTRACE_TRACE_FILE"})
	env.Set("VKTRACE_TRACE_FILE", "other.vktrace")
	assert.For(ctx, "reindexed").ThatString(env.Get("VKTRACE_TRACE_FILE")).Equals("other.vktrace")
	assert.For(ctx, "Map").That(env.Map()).DeepEquals(map[string]string{
		"VKTRACE_COMPRESS":   "",
		"VKTRACE_TRACE_FILE": "other.vktrace",
	})
}

func TestEnvAddPath(t *testing.T) {
	ctx := log.Testing(t)
	env := shell.NewEnv()
	env.PathListSeparator = ':'
	env.Set("VK_LAYER_PATH", "/usr/share/vulkan/explicit_layer.d")
	env.AddPathStart("VK_LAYER_PATH", "/tmp/vktrace").
		AddPathEnd("LD_LIBRARY_PATH", "/opt/lib", "/usr/local/lib")
	assert.For(ctx, "Vars").ThatSlice(env.Vars()).Equals([]string{
		"VK_LAYER_PATH=/tmp/vktrace:/usr/share/vulkan/explicit_layer.d",
		"LD_LIBRARY_PATH=/opt/lib:/usr/local/lib",
	})
}

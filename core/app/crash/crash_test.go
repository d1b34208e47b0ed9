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

package crash_test

import (
	"testing"

	"github.com/google/vktrace/core/app/crash"
	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
)

func TestCrash(t *testing.T) {
	ctx := log.Testing(t)
	var reported interface{}
	var stack []byte
	crash.Register(func(e interface{}, s []byte) { reported, stack = e, s })
	removed := false
	unregister := crash.Register(func(interface{}, []byte) { removed = true })
	unregister()

	recovered := func() (e interface{}) {
		defer func() { e = recover() }()
		crash.Crash("mapping lost")
		return nil
	}()
	assert.For(ctx, "rethrown").That(recovered).Equals("mapping lost")
	assert.For(ctx, "reported").That(reported).Equals("mapping lost")
	assert.For(ctx, "stack").ThatString(stack).Contains("TestCrash")
	assert.For(ctx, "unregistered").ThatBoolean(removed).IsFalse()
}

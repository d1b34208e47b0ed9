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

package interval_test

import (
	"testing"

	"github.com/google/vktrace/core/assert"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/math/interval"
)

func TestIntersect(t *testing.T) {
	ctx := log.Testing(t)
	mapping := interval.U64Range{First: 0x100, Count: 0x100}.Span()
	for _, test := range []struct {
		name   string
		span   interval.U64Span
		expect interval.U64Span
	}{
		{"inside", interval.U64Span{Start: 0x110, End: 0x120}, interval.U64Span{Start: 0x110, End: 0x120}},
		{"overlap start", interval.U64Span{Start: 0x80, End: 0x120}, interval.U64Span{Start: 0x100, End: 0x120}},
		{"overlap end", interval.U64Span{Start: 0x1f0, End: 0x300}, interval.U64Span{Start: 0x1f0, End: 0x200}},
		{"disjoint", interval.U64Span{Start: 0x300, End: 0x400}, interval.U64Span{Start: 0x300, End: 0x300}},
	} {
		got := mapping.Intersect(test.span)
		assert.For(ctx, test.name).That(got).Equals(test.expect)
	}
}

func TestLen(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "len").ThatUint(interval.U64Span{Start: 4, End: 12}.Len()).Equals(8)
	assert.For(ctx, "inverted").ThatBoolean(interval.U64Span{Start: 12, End: 4}.Empty()).IsTrue()
	assert.For(ctx, "contains").ThatBoolean(interval.U64Span{Start: 4, End: 12}.Contains(11)).IsTrue()
	assert.For(ctx, "excludes end").ThatBoolean(interval.U64Span{Start: 4, End: 12}.Contains(12)).IsFalse()
}

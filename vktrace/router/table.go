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

// Package router resolves Vulkan entry point names to capture wrappers or to
// the commands of the layer below.
package router

import (
	"sort"
	"strings"

	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/dispatch"
)

// Entry is one intercepted command.
type Entry struct {
	Name string
	// Requires lists the capabilities the object must have enabled for the
	// entry to be returned.
	Requires dispatch.Capability
	Proc     vk.ProcAddr
}

// Table maps command names to intercepted entries. It is immutable once
// built.
type Table struct {
	entries map[string]Entry
}

// NewTable returns a table holding entries. Later entries replace earlier
// entries of the same name.
func NewTable(entries ...Entry) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		t.entries[e.Name] = e
	}
	return t
}

// Lookup returns the intercepted command called name, or nil if there is
// none or its required capabilities are not all in caps.
// Names are matched exactly.
func (t *Table) Lookup(name string, caps dispatch.Capability) vk.ProcAddr {
	if t == nil || !strings.HasPrefix(name, "vk") {
		return nil
	}
	e, ok := t.entries[name]
	if !ok || !caps.Has(e.Requires) {
		return nil
	}
	return e.Proc
}

// Names returns the sorted names of all entries.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.entries))
	for name := range t.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

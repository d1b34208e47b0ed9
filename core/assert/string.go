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

package assert

import (
	"fmt"
	"strings"
)

// OnString provides assertions on a string.
type OnString struct {
	Assertion
	value string
}

// ThatString returns an OnString for value. Byte slices are converted
// directly, anything else is printed with fmt.Sprint.
func (a Assertion) ThatString(value interface{}) OnString {
	switch v := value.(type) {
	case string:
		return OnString{Assertion: a, value: v}
	case []byte:
		return OnString{Assertion: a, value: string(v)}
	default:
		return OnString{Assertion: a, value: fmt.Sprint(value)}
	}
}

// Equals asserts that the value is expect. On failure the first difference
// is reported.
func (o OnString) Equals(expect string) bool {
	o.Compare(o.value, "==", expect)
	if o.value == expect {
		return true
	}
	i := 0
	for i < len(o.value) && i < len(expect) && o.value[i] == expect[i] {
		i++
	}
	switch {
	case i == len(expect):
		o.Add("Longer", o.value[i:])
	case i == len(o.value):
		o.Add("Shorter", expect[i:])
	default:
		o.Add("Differs", raw(fmt.Sprintf("at byte %d", i)))
	}
	return o.Test(false)
}

// NotEquals asserts that the value is not test.
func (o OnString) NotEquals(test string) bool {
	return o.Compare(o.value, "!=", test).Test(o.value != test)
}

// Contains asserts that the value contains substr.
func (o OnString) Contains(substr string) bool {
	return o.Compare(o.value, "contains", substr).Test(strings.Contains(o.value, substr))
}

// HasPrefix asserts that the value starts with prefix.
func (o OnString) HasPrefix(prefix string) bool {
	return o.Compare(o.value, "starts with", prefix).Test(strings.HasPrefix(o.value, prefix))
}

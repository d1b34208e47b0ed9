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
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// OnSlice provides assertions on a slice or array.
type OnSlice struct {
	Assertion
	slice reflect.Value
}

// ThatSlice returns an OnSlice for slice, which must be a slice or array.
func (a Assertion) ThatSlice(slice interface{}) OnSlice {
	return OnSlice{Assertion: a, slice: reflect.ValueOf(slice)}
}

// IsEmpty asserts that the slice has no elements.
func (o OnSlice) IsEmpty() bool {
	return o.Compare(o.slice.Len(), "length ==", 0).Test(o.slice.Len() == 0)
}

// IsNotEmpty asserts that the slice has elements.
func (o OnSlice) IsNotEmpty() bool {
	return o.Compare(o.slice.Len(), "length >", 0).Test(o.slice.Len() > 0)
}

// IsLength asserts that the slice has length elements.
func (o OnSlice) IsLength(length int) bool {
	return o.Compare(o.slice.Len(), "length ==", length).Test(o.slice.Len() == length)
}

// Equals asserts that each element equals the matching element of expect
// using ==.
func (o OnSlice) Equals(expect interface{}) bool {
	return o.elements(reflect.ValueOf(expect), func(a, b interface{}) bool { return a == b })
}

// DeepEquals asserts that each element equals the matching element of expect
// using cmp.Equal.
func (o OnSlice) DeepEquals(expect interface{}, opts ...cmp.Option) bool {
	return o.elements(reflect.ValueOf(expect), func(a, b interface{}) bool { return cmp.Equal(a, b, opts...) })
}

// elements lists every index, marking missing (-), extra (+) and differing
// (*) elements.
func (o OnSlice) elements(expect reflect.Value, same func(a, b interface{}) bool) bool {
	n := o.slice.Len()
	if expect.Len() > n {
		n = expect.Len()
	}
	equal := true
	for i := 0; i < n; i++ {
		switch {
		case i >= o.slice.Len():
			o.Printf("-\t%d\t\t==>\t", i).Println(expect.Index(i).Interface())
			equal = false
		case i >= expect.Len():
			o.Printf("+\t%d\t", i).Println(o.slice.Index(i).Interface())
			equal = false
		default:
			got, want := o.slice.Index(i).Interface(), expect.Index(i).Interface()
			if same(got, want) {
				o.Printf("\t%d\t", i).Println(got)
			} else {
				o.Printf("*\t%d\t", i).Print(got).Printf("\t==>\t").Println(want)
				equal = false
			}
		}
	}
	return o.Test(equal)
}

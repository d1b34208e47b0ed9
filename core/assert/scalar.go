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

// OnBoolean provides assertions on a bool.
type OnBoolean struct {
	Assertion
	value bool
}

// ThatBoolean returns an OnBoolean for value.
func (a Assertion) ThatBoolean(value bool) OnBoolean {
	return OnBoolean{Assertion: a, value: value}
}

// Equals asserts that the value is expect.
func (o OnBoolean) Equals(expect bool) bool {
	return o.Compare(o.value, "==", expect).Test(o.value == expect)
}

// IsTrue asserts that the value is true.
func (o OnBoolean) IsTrue() bool { return o.Equals(true) }

// IsFalse asserts that the value is false.
func (o OnBoolean) IsFalse() bool { return o.Equals(false) }

type integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// OnNumber provides assertions on an integer.
type OnNumber[T integer] struct {
	Assertion
	value T
}

type (
	// OnInteger is the result of ThatInteger.
	OnInteger = OnNumber[int]
	// OnUint is the result of ThatUint, used for sizes and offsets.
	OnUint = OnNumber[uint64]
)

// ThatInteger returns an OnInteger for value.
func (a Assertion) ThatInteger(value int) OnInteger {
	return OnInteger{Assertion: a, value: value}
}

// ThatUint returns an OnUint for value.
func (a Assertion) ThatUint(value uint64) OnUint {
	return OnUint{Assertion: a, value: value}
}

// Equals asserts that the value is expect.
func (o OnNumber[T]) Equals(expect T) bool {
	return o.Compare(o.value, "==", expect).Test(o.value == expect)
}

// NotEquals asserts that the value is not test.
func (o OnNumber[T]) NotEquals(test T) bool {
	return o.Compare(o.value, "!=", test).Test(o.value != test)
}

// IsAtLeast asserts that the value is min or more.
func (o OnNumber[T]) IsAtLeast(min T) bool {
	return o.Compare(o.value, ">=", min).Test(o.value >= min)
}

// IsAtMost asserts that the value is max or less.
func (o OnNumber[T]) IsAtMost(max T) bool {
	return o.Compare(o.value, "<=", max).Test(o.value <= max)
}

// IsMultipleOf asserts that the value is an exact multiple of n.
func (o OnNumber[T]) IsMultipleOf(n T) bool {
	return o.Compare(o.value, "multiple of", n).Test(n != 0 && o.value%n == 0)
}

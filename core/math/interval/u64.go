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

// Package interval provides half-open ranges over uint64 coordinates.
package interval

import "fmt"

// U64Span is a half-open interval [Start, End).
type U64Span struct {
	Start uint64 // the value at which the interval begins
	End   uint64 // the next value not included in the interval.
}

// U64Range is an interval specified by a beginning and size.
type U64Range struct {
	First uint64 // the first value in the interval
	Count uint64 // the count of values in the interval
}

// Range converts a U64Span to a U64Range
func (s U64Span) Range() U64Range { return U64Range{First: s.Start, Count: s.End - s.Start} }

// Span converts a U64Range to a U64Span
func (r U64Range) Span() U64Span { return U64Span{Start: r.First, End: r.First + r.Count} }

// Len returns the number of values in the span.
func (s U64Span) Len() uint64 {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// Empty returns true if the span holds no values.
func (s U64Span) Empty() bool { return s.Len() == 0 }

// Contains returns true if v lies within the span.
func (s U64Span) Contains(v uint64) bool { return v >= s.Start && v < s.End }

// Intersect returns the overlap of s and o. The result is empty when the
// spans are disjoint.
func (s U64Span) Intersect(o U64Span) U64Span {
	start, end := s.Start, s.End
	if o.Start > start {
		start = o.Start
	}
	if o.End < end {
		end = o.End
	}
	if end < start {
		end = start
	}
	return U64Span{Start: start, End: end}
}

func (s U64Span) String() string { return fmt.Sprintf("[%#x-%#x)", s.Start, s.End) }

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

package log

import "context"

// delegate is the subset of *testing.T the test handler writes to.
type delegate interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}

// Testing returns a background context that logs to t.
// Messages of Error severity fail the test and Fatal messages stop it.
func Testing(t delegate) context.Context {
	return SubTest(context.Background(), t)
}

// SubTest returns ctx logging to t instead of its current handler, for use
// in t.Run:
//
//	t.Run(name, func(t *testing.T) {
//	  ctx := log.SubTest(ctx, t)
//	  ...
//	})
func SubTest(ctx context.Context, t delegate) context.Context {
	return PutHandler(ctx, TestHandler(t, Normal))
}

// TestHandler returns a Handler that prints messages to t in style s.
func TestHandler(t delegate, s Style) Handler {
	if t == nil {
		panic("TestHandler requires a test")
	}
	return NewHandler(func(m *Message) {
		text := s.Print(m)
		switch {
		case m.Severity >= Fatal:
			t.Fatal(text)
		case m.Severity >= Error:
			t.Error(text)
		default:
			t.Log(text)
		}
	}, nil)
}

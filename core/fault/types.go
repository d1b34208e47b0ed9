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

// Package fault holds the error types shared by the capture layer.
package fault

import "fmt"

// Const is an error that can be declared as a constant and compared with ==:
//
//	const ErrNotMapped = fault.Const("Memory is not mapped")
type Const string

func (e Const) Error() string { return string(e) }

// From returns the error held by a value passed to panic, such as the result
// of recover. Values that are not errors are formatted into a new error.
func From(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case error:
		return v
	default:
		return fmt.Errorf("panic: %v", v)
	}
}

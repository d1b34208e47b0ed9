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

import (
	"bytes"
	"os"
	"sync"
)

// Writer outputs the text of one formatted message.
type Writer func(text string, severity Severity)

// Std returns a Writer that sends messages below Error to stdout and the
// rest to stderr, one per line.
func Std() Writer {
	var mutex sync.Mutex
	return func(text string, severity Severity) {
		out := os.Stdout
		if severity >= Error {
			out = os.Stderr
		}
		mutex.Lock()
		defer mutex.Unlock()
		out.WriteString(text + "\n")
	}
}

// Buffer returns a Writer that collects messages into the returned buffer,
// separated by newlines.
func Buffer() (Writer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return func(text string, severity Severity) {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(text)
	}, buf
}

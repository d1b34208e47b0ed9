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
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/google/go-cmp/cmp"
)

// level is the severity an assertion reports failures with.
type level int

const (
	// Log is the informational level.
	Log = level(iota)
	// Error fails the test but lets it carry on.
	Error
	// Fatal stops the running test.
	Fatal
)

var levelNames = map[level]string{Log: "Info", Error: "Error", Fatal: "Critical"}

func (l level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return "Unknown"
}

// Assertion is the start of an assertion line. Text is buffered until the
// assertion fails or is explicitly logged.
// Assertions are built with assert.For.
type Assertion struct {
	level level
	out   *bytes.Buffer
	to    Output
}

// raw is printed without the quoting applied to strings and errors.
type raw string

// Critical makes a failure of the assertion stop the running test.
func (a *Assertion) Critical() *Assertion {
	a.level = Fatal
	return a
}

// Log writes args and flushes the assertion at Log level.
func (a *Assertion) Log(args ...interface{}) { a.flush(Log, args) }

// Error writes args and flushes the assertion at Error level.
func (a *Assertion) Error(args ...interface{}) { a.flush(Error, args) }

// Fatal writes args and flushes the assertion at Fatal level.
func (a *Assertion) Fatal(args ...interface{}) { a.flush(Fatal, args) }

func (a *Assertion) flush(l level, args []interface{}) {
	fmt.Fprint(a.out, args...)
	a.level = l
	a.Commit()
}

func (a *Assertion) value(v interface{}) {
	switch v := v.(type) {
	case raw:
		a.out.WriteString(string(v))
	case string:
		fmt.Fprintf(a.out, "`%s`", v)
	case error:
		fmt.Fprintf(a.out, "`%v`", v)
	default:
		fmt.Fprint(a.out, v)
	}
}

// Print writes values to the buffer separated by tabs. Strings and errors are
// quoted.
func (a *Assertion) Print(values ...interface{}) *Assertion {
	for i, v := range values {
		if i > 0 {
			a.out.WriteByte('\t')
		}
		a.value(v)
	}
	return a
}

// Println prints values and starts a new indented line.
func (a *Assertion) Println(values ...interface{}) *Assertion {
	a.Print(values...)
	a.out.WriteString("\n    ")
	return a
}

// Printf writes an unquoted formatted string to the buffer.
func (a *Assertion) Printf(format string, args ...interface{}) *Assertion {
	fmt.Fprintf(a.out, format, args...)
	return a
}

// Add writes a line with key and values.
func (a *Assertion) Add(key string, values ...interface{}) *Assertion {
	a.out.WriteString(key + "\t\t")
	return a.Println(values...)
}

// Got writes the line holding the value under test.
func (a *Assertion) Got(values ...interface{}) *Assertion {
	return a.Add("Got", values...)
}

// Expect writes the line holding the expectation.
func (a *Assertion) Expect(op string, values ...interface{}) *Assertion {
	a.out.WriteString("Expect\t" + op + "\t")
	return a.Println(values...)
}

// Compare writes both the Got and the Expect lines.
func (a *Assertion) Compare(value interface{}, op string, expect ...interface{}) *Assertion {
	return a.Got(value).Expect(op, expect...)
}

// Test commits the buffered output as a failure if condition is false, and
// returns condition.
func (a *Assertion) Test(condition bool) bool {
	if !condition {
		if a.level < Error {
			a.level = Error
		}
		a.Commit()
	}
	return condition
}

// TestDeepDiff compares value and expect with cmp.Diff, committing the diff
// as a failure if they differ.
func (a *Assertion) TestDeepDiff(value, expect interface{}, opts ...cmp.Option) bool {
	diff := cmp.Diff(expect, value, opts...)
	if diff == "" {
		return true
	}
	a.Println(raw("Diff (-expect +got):"))
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		a.Println(raw(line))
	}
	return a.Test(false)
}

// Commit aligns the buffered columns and writes them to the output at the
// assertion's level.
func (a Assertion) Commit() {
	buf := &bytes.Buffer{}
	tabs := tabwriter.NewWriter(buf, 1, 4, 1, ' ', tabwriter.StripEscape)
	tabs.Write(a.out.Bytes())
	tabs.Flush()
	message := a.level.String() + ":" + strings.TrimRightFunc(buf.String(), unicode.IsSpace)
	switch a.level {
	case Error:
		a.to.Error(message)
	case Fatal:
		a.to.Fatal(message)
	default:
		a.to.Log(message)
	}
}

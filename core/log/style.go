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
	"fmt"
	"strings"
)

// Style controls which parts of a message are printed.
type Style struct {
	Name         string
	Timestamp    bool // HH:MM:SS.sss of the message time.
	Severity     bool // Single letter severity, such as "W:".
	LongSeverity bool // Full severity name, such as "Warning:".
	Context      bool // Trace, tag and process of the message.
	Values       bool // Bound values, one per line.
}

var (
	// Raw prints only the message text.
	Raw = Style{Name: "raw"}

	// Brief prints the text after a short severity.
	Brief = Style{Name: "brief", Severity: true}

	// Normal is Brief prefixed by the time, and followed by the message
	// context.
	Normal = Style{Name: "normal", Timestamp: true, Severity: true, Context: true}

	// Detailed is Normal with the full severity name and bound values.
	Detailed = Style{Name: "detailed", Timestamp: true, LongSeverity: true, Context: true, Values: true}
)

var styles = []Style{Raw, Brief, Normal, Detailed}

func (s Style) String() string { return s.Name }

// Set implements pflag.Value so a style can be chosen on the command line.
func (s *Style) Set(name string) error {
	for _, style := range styles {
		if style.Name == name {
			*s = style
			return nil
		}
	}
	return fmt.Errorf("Unknown log style %q", name)
}

// Type implements pflag.Value.
func (s *Style) Type() string { return "style" }

// Handler returns a Handler printing messages in style s to w.
func (s Style) Handler(w Writer) Handler {
	return NewHandler(func(m *Message) { w(s.Print(m), m.Severity) }, nil)
}

// Print returns msg formatted in style s.
func (s Style) Print(msg *Message) string {
	parts := make([]string, 0, 6)
	if s.Timestamp && !msg.Time.IsZero() {
		t := msg.Time
		parts = append(parts, fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6))
	}
	switch {
	case s.LongSeverity:
		parts = append(parts, msg.Severity.String()+":")
	case s.Severity:
		parts = append(parts, msg.Severity.Short()+":")
	}
	if s.Context {
		if len(msg.Trace) > 0 {
			parts = append(parts, "["+strings.Join(msg.Trace, "/")+"]")
		}
		if msg.Tag != "" {
			parts = append(parts, "["+msg.Tag+"]")
		}
		if msg.Process != "" {
			parts = append(parts, "<"+msg.Process+">")
		}
	}
	parts = append(parts, msg.Text)
	out := strings.Join(parts, " ")
	if s.Values {
		for _, v := range msg.Values {
			out += fmt.Sprintf("\n  %v: %v", v.Name, v.Value)
		}
	}
	return out
}

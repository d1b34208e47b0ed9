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

// Package log provides context-carried structured logging.
//
// The Handler, Filter, Clock, tag, trace and bound values all travel on the
// context.Context, so any function that accepts a context can log without
// extra plumbing:
//
//	ctx = log.PutHandler(ctx, log.Normal.Handler(log.Std()))
//	log.I(ctx, "Mapped %v bytes", size)
package log

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"
)

// Logger is a snapshot of the logging state of a context.
type Logger struct {
	handler     Handler
	filter      Filter
	stacktracer Stacktracer
	clock       Clock
	tag         string
	process     string
	trace       []string
	values      *values
}

// From returns the Logger for ctx.
func From(ctx context.Context) *Logger {
	return &Logger{
		handler:     GetHandler(ctx),
		filter:      GetFilter(ctx),
		stacktracer: GetStacktracer(ctx),
		clock:       GetClock(ctx),
		tag:         GetTag(ctx),
		process:     GetProcess(ctx),
		trace:       GetTrace(ctx),
		values:      getValues(ctx),
	}
}

// D logs at Debug severity.
func D(ctx context.Context, format string, args ...interface{}) { From(ctx).D(format, args...) }

// I logs at Info severity.
func I(ctx context.Context, format string, args ...interface{}) { From(ctx).I(format, args...) }

// W logs at Warning severity.
func W(ctx context.Context, format string, args ...interface{}) { From(ctx).W(format, args...) }

// E logs at Error severity.
func E(ctx context.Context, format string, args ...interface{}) { From(ctx).E(format, args...) }

// F logs at Fatal severity. stopProcess marks the message as one the process
// should not survive.
func F(ctx context.Context, stopProcess bool, format string, args ...interface{}) {
	From(ctx).F(format, stopProcess, args...)
}

func (l *Logger) D(format string, args ...interface{}) { l.logf(Debug, false, format, args) }
func (l *Logger) I(format string, args ...interface{}) { l.logf(Info, false, format, args) }
func (l *Logger) W(format string, args ...interface{}) { l.logf(Warning, false, format, args) }
func (l *Logger) E(format string, args ...interface{}) { l.logf(Error, false, format, args) }

func (l *Logger) F(format string, stopProcess bool, args ...interface{}) {
	l.logf(Fatal, stopProcess, format, args)
}

// Active returns true if a message of severity s would reach a handler.
func (l *Logger) Active(s Severity) bool {
	return l.handler != nil && (l.filter == nil || l.filter.ShowSeverity(s))
}

func (l *Logger) logf(s Severity, stopProcess bool, format string, args []interface{}) {
	if l.Active(s) {
		l.handler.Handle(l.Messagef(s, stopProcess, format, args...))
	}
}

// Messagef is Message with a formatted text.
func (l *Logger) Messagef(s Severity, stopProcess bool, format string, args ...interface{}) *Message {
	return l.Message(s, stopProcess, fmt.Sprintf(format, args...))
}

// Message builds, but does not log, a message carrying the state of l.
func (l *Logger) Message(s Severity, stopProcess bool, text string) *Message {
	now := time.Now
	if l.clock != nil {
		now = l.clock.Time
	}
	m := &Message{
		Text:        text,
		Time:        now(),
		Severity:    s,
		StopProcess: stopProcess,
		Tag:         l.tag,
		Process:     l.process,
		Trace:       l.trace,
	}
	if l.stacktracer != nil && l.stacktracer.ShouldStacktrace(s) {
		m.Callstack = debug.Stack()
	}
	for n := l.values; n != nil; n = n.parent {
		for name, value := range n.v {
			m.Values = append(m.Values, &Value{Name: name, Value: value})
		}
	}
	sort.Sort(m.Values)
	return m
}

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
	"sync"

	"github.com/google/vktrace/core/app/crash"
)

// channel forwards messages to a single goroutine that owns the target
// handler.
type channel struct {
	messages chan *Message
	done     chan struct{}
	stop     sync.Once
}

// Channel returns a Handler that may be used from any goroutine. Messages
// are passed through a buffered chan of the given size to to. Closing the
// returned handler flushes the pending messages and closes to; anything
// logged afterwards is dropped.
func Channel(to Handler, size int) Handler {
	c := &channel{
		messages: make(chan *Message, size),
		done:     make(chan struct{}),
	}
	crash.Go(func() {
		defer close(c.done)
		defer to.Close()
		for m := range c.messages {
			if m == nil {
				return
			}
			to.Handle(m)
		}
	})
	return c
}

func (c *channel) Handle(m *Message) {
	if m == nil {
		return
	}
	select {
	case c.messages <- m:
	case <-c.done:
	}
}

func (c *channel) Close() {
	c.stop.Do(func() {
		select {
		case c.messages <- nil:
		case <-c.done:
		}
	})
	<-c.done
}

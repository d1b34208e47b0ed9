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

// Package transport delivers finished trace packets out of the traced
// process.
package transport

import (
	"context"
	"sync"

	"github.com/google/vktrace/core/fault"
)

// ErrClosed is returned when sending to a closed sink.
const ErrClosed = fault.Const("Sink is closed")

// Sink accepts finished packets in sequence order.
type Sink interface {
	// Send delivers one packet. The sink may keep data after returning.
	Send(ctx context.Context, data []byte) error
	// Close flushes and releases the sink.
	Close() error
}

// Memory is a Sink that keeps every packet in memory.
type Memory struct {
	mutex   sync.Mutex
	packets [][]byte
	closed  bool
}

// Send implements Sink.
func (m *Memory) Send(ctx context.Context, data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.packets = append(m.packets, append([]byte{}, data...))
	return nil
}

// Close implements Sink.
func (m *Memory) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.closed = true
	return nil
}

// Packets returns the packets sent so far.
func (m *Memory) Packets() [][]byte {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([][]byte{}, m.packets...)
}

// Closed returns true once Close has been called.
func (m *Memory) Closed() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.closed
}

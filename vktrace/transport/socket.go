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

package transport

import (
	"context"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/vktrace/core/app/crash"
	"github.com/google/vktrace/core/log"
	"github.com/pkg/errors"
)

// Socket is a Sink streaming packets to a single connected capture client.
type Socket struct {
	mutex    sync.Mutex
	listener net.Listener
	conn     net.Conn
	header   ConnectionHeader
	started  atomic.Bool
	closed   bool
}

// Listen listens on address and blocks until a capture client has connected
// and sent its header.
func Listen(ctx context.Context, address string) (*Socket, error) {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return nil, log.Errf(ctx, err, "Listening on %v", address)
	}
	s, err := Accept(ctx, l)
	if err != nil {
		l.Close()
		return nil, err
	}
	return s, nil
}

// Accept blocks until a capture client connects to l and completes the
// handshake. The socket takes ownership of l.
func Accept(ctx context.Context, l net.Listener) (*Socket, error) {
	log.I(ctx, "Waiting for capture client on %v", l.Addr())
	conn, err := l.Accept()
	if err != nil {
		return nil, log.Err(ctx, err, "Accepting capture client")
	}
	if _, err := conn.Write(ServerMagic[:]); err != nil {
		conn.Close()
		return nil, log.Err(ctx, err, "Sending magic")
	}
	h, err := ReadConnectionHeader(conn)
	if err != nil {
		conn.Close()
		return nil, log.Err(ctx, err, "Reading connection header")
	}
	s := &Socket{listener: l, conn: conn, header: h}
	s.started.Store(h.Flags&DeferStart == 0)
	log.I(ctx, "Capture client %v connected (version %d, deferred %v)", conn.RemoteAddr(), h.Version, !s.started.Load())
	crash.Go(func() { s.control(ctx) })
	return s, nil
}

// Header returns the header the client sent.
func (s *Socket) Header() ConnectionHeader { return s.header }

// Started returns true once packets are being forwarded to the client.
func (s *Socket) Started() bool { return s.started.Load() }

// control handles messages from the client until the connection closes.
func (s *Socket) control(ctx context.Context) {
	for {
		t, size, err := ReadMessageHeader(s.conn)
		if err != nil {
			return
		}
		if _, err := io.CopyN(io.Discard, s.conn, int64(size)); err != nil {
			return
		}
		switch t {
		case MessageStartTrace:
			log.I(ctx, "Capture started by client")
			s.started.Store(true)
		case MessageEndTrace:
			log.I(ctx, "Capture stopped by client")
			s.started.Store(false)
		default:
			log.W(ctx, "Ignoring message of type %d from client", t)
		}
	}
}

// Send implements Sink. Packets sent before the client started the capture
// are dropped.
func (s *Socket) Send(ctx context.Context, data []byte) error {
	if !s.started.Load() {
		return nil
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return ErrClosed
	}
	return errors.Wrap(WriteMessage(s.conn, MessageData, data), "Sending packet")
}

// Close sends the end of trace message and closes the connection.
func (s *Socket) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	WriteMessage(s.conn, MessageEndTrace, nil)
	err := s.conn.Close()
	s.listener.Close()
	return err
}

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

// Package client connects to a traced process and receives its packets.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/vktrace/core/app/crash"
	"github.com/google/vktrace/core/event/task"
	"github.com/google/vktrace/core/fault"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/vktrace/transport"
	"github.com/pkg/errors"
)

// ErrTraceFailed is the cause of errors reported by the traced process.
const ErrTraceFailed = fault.Const("Traced process reported an error")

const (
	sizeGap           = 1024 * 1024 * 5
	timeGap           = time.Second
	handshakeTimeout  = 500 * time.Millisecond
	defaultRetryDelay = 500 * time.Millisecond
)

// Options to use when connecting to a traced process.
type Options struct {
	// Address is the host:port the traced process listens on.
	Address string
	// DeferStart asks the process to hold the capture back until the start
	// signal passed to Capture fires.
	DeferStart bool
	// Attempts limits the number of connection attempts. Zero means retry
	// until the context is stopped.
	Attempts int
	// RetryDelay is the wait between connection attempts.
	RetryDelay time.Duration
}

// Process is a connection to a traced process.
type Process struct {
	Options Options
	conn    net.Conn
	reader  *bufio.Reader
}

// Stats counts what a capture received.
type Stats struct {
	Packets int
	Bytes   uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("%d packets, %s", s.Packets, humanize.Bytes(s.Bytes))
}

// Connect waits for the traced process to accept a connection and completes
// the handshake.
func Connect(ctx context.Context, o Options) (*Process, error) {
	delay := o.RetryDelay
	if delay == 0 {
		delay = defaultRetryDelay
	}
	p := &Process{Options: o}
	log.I(ctx, "Waiting for connection to %v...", o.Address)
	var last error
	err := task.Retry(ctx, o.Attempts, delay, func(ctx context.Context) (bool, error) {
		conn, err := net.Dial("tcp", o.Address)
		if err != nil {
			last = err
			log.D(ctx, "Dial failed: %v", err)
			return false, err
		}
		r := bufio.NewReader(conn)
		conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
		var magic [len(transport.ServerMagic)]byte
		if _, err := io.ReadFull(r, magic[:]); err != nil {
			conn.Close()
			last = err
			log.D(ctx, "Failed to read magic: %v", err)
			return false, err
		}
		if magic != transport.ServerMagic {
			conn.Close()
			last = errors.Wrapf(transport.ErrBadMagic, "%q", magic[:])
			return false, last
		}
		conn.SetReadDeadline(time.Time{})
		flags := transport.ConnectionFlags(0)
		if o.DeferStart {
			flags |= transport.DeferStart
		}
		h := transport.ConnectionHeader{Version: transport.ProtocolVersion, Flags: flags}
		if err := transport.WriteConnectionHeader(conn, h); err != nil {
			conn.Close()
			last = err
			return false, err
		}
		p.conn, p.reader = conn, r
		return true, nil
	})
	if p.conn == nil {
		if err == nil {
			err = last
		}
		return nil, log.Errf(ctx, err, "Connecting to %v", o.Address)
	}
	return p, nil
}

type message struct {
	kind transport.MessageType
	data []byte
	err  error
}

// read decodes messages from the connection until it fails or done is
// closed.
func (p *Process) read(out chan<- message, done <-chan struct{}) {
	defer close(out)
	for {
		m := message{}
		kind, size, err := transport.ReadMessageHeader(p.reader)
		if err == nil {
			m.kind, m.data = kind, make([]byte, size)
			_, err = io.ReadFull(p.reader, m.data)
		}
		m.err = err
		select {
		case out <- m:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Capture delivers the packets of the traced process to sink until the
// process ends the trace, disconnects or ctx is stopped. If the connection
// was made with DeferStart, the trace is started when start fires.
// The connection is closed on return; the sink is not.
func (p *Process) Capture(ctx context.Context, start task.Signal, sink transport.Sink) (Stats, error) {
	done := make(chan struct{})
	defer func() {
		close(done)
		p.conn.Close()
	}()
	messages := make(chan message, 64)
	crash.Go(func() { p.read(messages, done) })

	stats := Stats{}
	startTime := time.Now()
	nextSize, nextTime := uint64(0), startTime
	deferred := p.Options.DeferStart
	ticker := time.NewTicker(timeGap)
	defer ticker.Stop()
	for {
		var startC task.Signal
		if deferred {
			startC = start
		}
		select {
		case <-task.ShouldStop(ctx):
			log.I(ctx, "Stop: %v", stats)
			transport.WriteMessage(p.conn, transport.MessageEndTrace, nil)
			return stats, nil
		case <-startC:
			deferred = false
			log.I(ctx, "Starting capture")
			if err := transport.WriteMessage(p.conn, transport.MessageStartTrace, nil); err != nil {
				return stats, log.Err(ctx, err, "Starting capture")
			}
		case <-ticker.C:
		case m, ok := <-messages:
			if !ok {
				return stats, nil
			}
			switch {
			case errors.Is(m.err, io.EOF):
				log.I(ctx, "EOF: %v", stats)
				return stats, nil
			case m.err != nil:
				return stats, log.Err(ctx, m.err, "Connection error")
			}
			switch m.kind {
			case transport.MessageData:
				if err := sink.Send(ctx, m.data); err != nil {
					return stats, log.Err(ctx, err, "Writing packet")
				}
				stats.Packets++
				stats.Bytes += uint64(len(m.data))
			case transport.MessageEndTrace:
				log.I(ctx, "Trace ended: %v", stats)
				return stats, nil
			case transport.MessageError:
				return stats, errors.Wrap(ErrTraceFailed, string(m.data))
			default:
				log.W(ctx, "Ignoring message of type %d", m.kind)
			}
		}
		if now := time.Now(); stats.Bytes > nextSize || now.After(nextTime) {
			nextSize = stats.Bytes + sizeGap
			nextTime = now.Add(timeGap)
			log.I(ctx, "Capturing: %v in %v", stats, now.Sub(startTime).Truncate(time.Millisecond))
		}
	}
}

// Close closes the connection without capturing.
func (p *Process) Close() error { return p.conn.Close() }

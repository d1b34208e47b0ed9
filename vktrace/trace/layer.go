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

// Package trace implements the capture wrappers of the vktrace layer.
//
// Each wrapper declares the size of its packet, reserves it, calls the real
// command of the next layer, encodes the arguments and results, and hands the
// finished packet to the transport sink.
package trace

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/vktrace/core/app/crash"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/vulkan/vk"
	"github.com/google/vktrace/vktrace/config"
	"github.com/google/vktrace/vktrace/dispatch"
	"github.com/google/vktrace/vktrace/packet"
	"github.com/google/vktrace/vktrace/router"
	"github.com/google/vktrace/vktrace/shadow"
	"github.com/google/vktrace/vktrace/transport"
)

// Options customise a Layer.
type Options struct {
	// Key derives registry keys from dispatchable handles. nil means
	// dispatch.LoaderKey.
	Key dispatch.KeyFunc
	// Clock timestamps packets. nil means packet.SystemClock.
	Clock packet.Clock
}

// Layer is one instance of the capture layer.
type Layer struct {
	ctx       context.Context
	instances *dispatch.Registry[dispatch.InstanceRecord]
	devices   *dispatch.Registry[dispatch.DeviceRecord]
	memory    *shadow.Tracker
	builder   *packet.Builder
	router    *router.Router

	mutex sync.Mutex
	sink  transport.Sink
}

// New returns a layer that sends packets to sink. A nil sink gives a layer
// that forwards every command without capturing.
func New(ctx context.Context, sink transport.Sink, opts Options) *Layer {
	chains := packet.NewChains()
	RegisterChains(chains)
	l := &Layer{
		ctx:       log.Enter(ctx, "vktrace"),
		instances: dispatch.NewRegistry[dispatch.InstanceRecord](opts.Key),
		devices:   dispatch.NewRegistry[dispatch.DeviceRecord](opts.Key),
		memory:    shadow.New(),
		builder:   packet.NewBuilder(opts.Clock, chains),
		sink:      sink,
	}
	l.router = &router.Router{
		Instances:                 l.instances,
		Devices:                   l.devices,
		InstanceProcs:             l.instanceProcs(),
		DeviceProcs:               l.deviceProcs(),
		TracedGetInstanceProcAddr: l.tracedGetInstanceProcAddr,
		TracedGetDeviceProcAddr:   l.tracedGetDeviceProcAddr,
		Capturing:                 l.Capturing,
	}
	return l
}

// Logging returns ctx with a handler that writes messages from any
// application thread to w, and a function that flushes and closes it.
// Panics on layer goroutines are logged before the process goes down.
func Logging(ctx context.Context, w log.Writer) (context.Context, func()) {
	h := log.Channel(log.Normal.Handler(w), 256)
	ctx = log.PutHandler(log.PutProcess(ctx, "vktrace"), h)
	unregister := crash.Register(func(e interface{}, stack []byte) {
		w(fmt.Sprintf("Panic: %v\n%s", e, stack), log.Fatal)
	})
	return ctx, func() {
		unregister()
		h.Close()
	}
}

// FromConfig returns a layer that captures to the destination named by cfg.
// For a socket destination it blocks until a capture client has connected.
func FromConfig(ctx context.Context, cfg config.Config) (*Layer, error) {
	ctx = log.PutFilter(ctx, log.SeverityFilter(cfg.LogLevel))
	if !cfg.Capturing() {
		log.I(ctx, "Capture disabled")
		return New(ctx, nil, Options{}), nil
	}
	var sink transport.Sink
	switch {
	case cfg.TraceFile != "":
		f, err := transport.CreateFile(ctx, cfg.TraceFile, transport.FileOptions{Compress: cfg.Compress})
		if err != nil {
			return nil, err
		}
		sink = f
	default:
		s, err := transport.Listen(ctx, cfg.Address)
		if err != nil {
			return nil, err
		}
		sink = s
	}
	return New(ctx, sink, Options{}), nil
}

// Capturing returns true while the layer has a sink to send packets to.
func (l *Layer) Capturing() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.sink != nil
}

// Close stops capturing and closes the sink.
func (l *Layer) Close() error {
	l.mutex.Lock()
	sink := l.sink
	l.sink = nil
	l.mutex.Unlock()
	if sink == nil {
		return nil
	}
	log.I(l.ctx, "Capture finished")
	return sink.Close()
}

// GetInstanceProcAddr is the layer's vkGetInstanceProcAddr.
func (l *Layer) GetInstanceProcAddr(instance vk.Instance, name string) vk.ProcAddr {
	return l.router.GetInstanceProcAddr(instance, name)
}

// GetDeviceProcAddr is the layer's vkGetDeviceProcAddr.
func (l *Layer) GetDeviceProcAddr(device vk.Device, name string) vk.ProcAddr {
	return l.router.GetDeviceProcAddr(device, name)
}

// Router returns the router that resolves the layer's commands.
func (l *Layer) Router() *router.Router { return l.router }

// Memory returns the tracker of the layer's mapped memory.
func (l *Layer) Memory() *shadow.Tracker { return l.memory }

func (l *Layer) instance(h uintptr) *dispatch.InstanceRecord { return l.instances.Lookup(h) }
func (l *Layer) device(h uintptr) *dispatch.DeviceRecord     { return l.devices.Lookup(h) }

// reserve allocates a packet for call with a body the size of body.
func (l *Layer) reserve(call packet.CallID, body interface{}, extra uint64) *packet.Packet {
	return l.builder.Reserve(call, BodySize(body), extra)
}

// send finishes p and hands it to the sink. A failing sink never fails the
// application's call.
func (l *Layer) send(p *packet.Packet) {
	data := p.Finish()
	l.mutex.Lock()
	sink := l.sink
	l.mutex.Unlock()
	if sink == nil {
		return
	}
	if err := sink.Send(l.ctx, data); err != nil {
		log.W(l.ctx, "Dropped %v packet %d: %v", p.Header().Call, p.Header().Sequence, err)
	}
}

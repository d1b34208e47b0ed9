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

package main

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/google/vktrace/core/app/crash"
	"github.com/google/vktrace/core/event/task"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/vktrace/client"
	"github.com/google/vktrace/vktrace/transport"
	"github.com/spf13/cobra"
)

var captureFlags struct {
	address    string
	out        string
	compress   bool
	deferStart bool
	attempts   int
	duration   time.Duration
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Receive a trace from a process running the layer in socket mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return capture(cmd.Context())
	},
}

func init() {
	flags := captureCmd.Flags()
	flags.StringVarP(&captureFlags.address, "address", "a", "localhost:9286", "host:port the traced process listens on")
	flags.StringVarP(&captureFlags.out, "out", "o", "capture.vktrace", "trace file to write")
	flags.BoolVar(&captureFlags.compress, "compress", true, "compress the trace file")
	flags.BoolVar(&captureFlags.deferStart, "defer-start", false, "wait for enter before starting the capture")
	flags.IntVar(&captureFlags.attempts, "attempts", 0, "connection attempts, 0 to retry until interrupted")
	flags.DurationVar(&captureFlags.duration, "duration", 0, "stop the capture after this long, 0 for no limit")
}

func capture(ctx context.Context) error {
	p, err := client.Connect(ctx, client.Options{
		Address:    captureFlags.address,
		DeferStart: captureFlags.deferStart,
		Attempts:   captureFlags.attempts,
	})
	if err != nil {
		return err
	}
	out, err := transport.CreateFile(ctx, captureFlags.out, transport.FileOptions{Compress: captureFlags.compress})
	if err != nil {
		p.Close()
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.E(ctx, "Closing %v: %v", captureFlags.out, err)
		}
	}()

	start := task.FiredSignal
	if captureFlags.deferStart {
		var fire task.Task
		start, fire = task.NewSignal()
		crash.Go(func() {
			log.I(ctx, "Press enter to start capturing...")
			bufio.NewReader(os.Stdin).ReadString('\n')
			fire(ctx)
		})
	}
	if captureFlags.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, captureFlags.duration)
		defer cancel()
	}
	stats, err := p.Capture(ctx, start, out)
	if err != nil {
		return err
	}
	log.I(ctx, "Captured %v to %v", stats, captureFlags.out)
	return nil
}

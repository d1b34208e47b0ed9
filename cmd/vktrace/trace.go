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
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/shell"
	"github.com/google/vktrace/core/vulkan/loader"
	"github.com/spf13/cobra"
)

var traceFlags struct {
	layerFlags
	out string
}

var traceCmd = &cobra.Command{
	Use:   "trace [flags] -- <app> [args...]",
	Short: "Run an application with the layer writing a trace file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return trace(cmd.Context(), args)
	},
}

func init() {
	flags := traceCmd.Flags()
	traceFlags.register(flags)
	flags.StringVarP(&traceFlags.out, "out", "o", "capture.vktrace", "trace file to write")
}

func trace(ctx context.Context, args []string) error {
	cfg, err := traceFlags.config()
	if err != nil {
		return err
	}
	if cfg.TraceFile, err = filepath.Abs(traceFlags.out); err != nil {
		return err
	}
	env := shell.CloneEnv()
	cleanup, err := loader.SetupTrace(ctx, traceFlags.library, cfg, env)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	app := exec.CommandContext(ctx, args[0], args[1:]...)
	app.Env = env.Vars()
	app.Stdin, app.Stdout, app.Stderr = os.Stdin, os.Stdout, os.Stderr
	log.I(ctx, "Tracing %v to %v", args[0], cfg.TraceFile)
	if err := app.Run(); err != nil {
		return log.Errf(ctx, err, "Running %v", args[0])
	}
	if info, err := os.Stat(cfg.TraceFile); err == nil {
		log.I(ctx, "Trace written: %v (%s)", cfg.TraceFile, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

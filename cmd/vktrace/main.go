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

// The vktrace command captures and inspects traces written by the vktrace
// Vulkan layer.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/google/vktrace/core/log"
	"github.com/spf13/cobra"
)

var (
	logStyle = log.Normal
	logLevel = "Info"
)

var rootCmd = &cobra.Command{
	Use:           "vktrace",
	Short:         "Capture and inspect Vulkan traces",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		severity, err := log.ParseSeverity(logLevel)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		ctx = log.PutHandler(ctx, logStyle.Handler(log.Std()))
		ctx = log.PutFilter(ctx, log.SeverityFilter(severity))
		cmd.SetContext(ctx)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Var(&logStyle, "log-style", "log output style (raw, brief, normal, detailed)")
	flags.StringVar(&logLevel, "log-level", logLevel, "minimum severity to log")
	rootCmd.AddCommand(captureCmd, dumpCmd, envCmd, traceCmd)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ctx := log.PutHandler(ctx, logStyle.Handler(log.Std()))
		log.E(ctx, "%v", err)
		stop()
		os.Exit(1)
	}
}

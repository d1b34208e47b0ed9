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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/device"
	"github.com/google/vktrace/core/os/shell"
	"github.com/google/vktrace/core/vulkan/loader"
	"github.com/google/vktrace/vktrace/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// layerFlags are shared by the commands that configure the layer.
type layerFlags struct {
	library  string
	address  string
	compress bool
	level    string
}

func (f *layerFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.library, "layer", defaultLibrary(), "path of the layer library")
	flags.BoolVar(&f.compress, "compress", true, "compress the trace file")
	flags.StringVar(&f.level, "layer-log-level", "Info", "minimum severity the layer logs")
}

func (f *layerFlags) config() (config.Config, error) {
	severity, err := log.ParseSeverity(f.level)
	if err != nil {
		return config.Config{}, err
	}
	return config.Config{Address: f.address, Compress: f.compress, LogLevel: severity}, nil
}

// defaultLibrary returns the layer library installed next to this binary.
func defaultLibrary() string {
	name := loader.LibraryName(device.Host())
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}

var envFlags struct {
	layerFlags
	traceFile string
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the environment that enables the layer",
	Long: "Writes the layer manifest to a temporary directory and prints the " +
		"variables a process needs to load the layer. The directory is left " +
		"in place for the process to use.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := envFlags.config()
		if err != nil {
			return err
		}
		if envFlags.traceFile != "" {
			if cfg.TraceFile, err = filepath.Abs(envFlags.traceFile); err != nil {
				return err
			}
		}
		env := shell.CloneEnv()
		if _, err := loader.SetupTrace(cmd.Context(), envFlags.library, cfg, env); err != nil {
			return err
		}
		printEnv(cmd.Context(), cmd.OutOrStdout(), env)
		return nil
	},
}

func init() {
	flags := envCmd.Flags()
	envFlags.register(flags)
	flags.StringVarP(&envFlags.address, "address", "a", "", "host:port the layer listens on for a capture client")
	flags.StringVarP(&envFlags.traceFile, "out", "o", "", "trace file the layer writes")
}

var layerVars = []string{
	"VK_LAYER_PATH",
	"VK_INSTANCE_LAYERS",
	"VK_DEVICE_LAYERS",
	config.TraceFileVar,
	config.AddressVar,
	config.CompressVar,
	config.LogLevelVar,
	config.DisableVar,
}

// printEnv writes the layer variables of env as shell exports.
func printEnv(ctx context.Context, out io.Writer, env *shell.Env) {
	for _, key := range layerVars {
		if env.Exists(key) {
			fmt.Fprintf(out, "export %s=%q\n", key, env.Get(key))
		}
	}
	log.D(ctx, "Printed %d variables", len(layerVars))
}

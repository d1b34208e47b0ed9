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

// Package config holds the settings the capture layer reads from the
// environment of the traced process.
package config

import (
	"github.com/caarlos0/env/v8"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/shell"
	"github.com/pkg/errors"
)

// Environment variable names.
const (
	TraceFileVar = "VKTRACE_TRACE_FILE"
	AddressVar   = "VKTRACE_ADDRESS"
	CompressVar  = "VKTRACE_COMPRESS"
	LogLevelVar  = "VKTRACE_LOG_LEVEL"
	DisableVar   = "VKTRACE_DISABLE"
)

// Config is the capture layer configuration.
type Config struct {
	// TraceFile is the path of the trace file to write.
	TraceFile string `env:"VKTRACE_TRACE_FILE"`
	// Address is the host:port to listen on for a capture client. It is
	// ignored if TraceFile is set.
	Address string `env:"VKTRACE_ADDRESS"`
	// Compress enables zstd compression of trace files.
	Compress bool `env:"VKTRACE_COMPRESS" envDefault:"true"`
	// LogLevel is the minimum severity the layer logs.
	LogLevel log.Severity `env:"VKTRACE_LOG_LEVEL" envDefault:"Info"`
	// Disable turns the layer into a pass-through.
	Disable bool `env:"VKTRACE_DISABLE"`
}

// Load parses the configuration from e.
func Load(e *shell.Env) (Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: e.Map()}); err != nil {
		return Config{}, errors.Wrap(err, "Parsing vktrace environment")
	}
	return cfg, nil
}

// FromProcess parses the configuration from the environment of the current
// process.
func FromProcess() (Config, error) { return Load(shell.CloneEnv()) }

// Capturing returns true if the configuration names a destination and
// capture has not been disabled.
func (c Config) Capturing() bool {
	return !c.Disable && (c.TraceFile != "" || c.Address != "")
}

// Apply sets the variables for c on e, unsetting those left at their zero
// value, and returns e.
func (c Config) Apply(e *shell.Env) *shell.Env {
	set := func(key, value string) {
		if value == "" {
			e.Unset(key)
		} else {
			e.Set(key, value)
		}
	}
	set(TraceFileVar, c.TraceFile)
	set(AddressVar, c.Address)
	if c.Compress {
		e.Set(CompressVar, "true")
	} else {
		e.Set(CompressVar, "false")
	}
	e.Set(LogLevelVar, c.LogLevel.String())
	if c.Disable {
		e.Set(DisableVar, "true")
	} else {
		e.Unset(DisableVar)
	}
	return e
}

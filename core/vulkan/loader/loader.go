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

// Package loader contains utilities for setting up the Vulkan loader.
package loader

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/device"
	"github.com/google/vktrace/core/os/shell"
	"github.com/google/vktrace/vktrace/config"
	"github.com/pkg/errors"
)

const (
	// LayerName is the name the capture layer registers with the loader.
	LayerName = "VK_LAYER_LUNARG_vktrace"
	// ManifestName is the file name of the layer manifest.
	ManifestName = "VkLayer_vktrace.json"

	manifestVersion = "1.1.0"
	apiVersion      = "1.0.0"
)

// LibraryName returns the file name of the layer library for abi.
func LibraryName(abi *device.ABI) string {
	switch abi.OS {
	case device.Windows:
		return "VkLayer_vktrace.dll"
	case device.OSX:
		return "libVkLayer_vktrace.dylib"
	default:
		return "libVkLayer_vktrace.so"
	}
}

type extension struct {
	Name        string `json:"name"`
	SpecVersion string `json:"spec_version"`
}

type layer struct {
	Name                  string      `json:"name"`
	Type                  string      `json:"type"`
	LibraryPath           string      `json:"library_path"`
	APIVersion            string      `json:"api_version"`
	ImplementationVersion string      `json:"implementation_version"`
	Description           string      `json:"description"`
	InstanceExtensions    []extension `json:"instance_extensions,omitempty"`
}

// Manifest is the JSON file the loader reads to discover a layer.
type Manifest struct {
	FileFormatVersion string `json:"file_format_version"`
	Layer             layer  `json:"layer"`
}

// NewManifest returns the manifest of the capture layer implemented by
// library.
func NewManifest(library string) Manifest {
	return Manifest{
		FileFormatVersion: manifestVersion,
		Layer: layer{
			Name:                  LayerName,
			Type:                  "GLOBAL",
			LibraryPath:           library,
			APIVersion:            apiVersion,
			ImplementationVersion: "1",
			Description:           "Vulkan API capture",
			InstanceExtensions: []extension{
				{Name: "VK_EXT_debug_report", SpecVersion: "6"},
			},
		},
	}
}

// SetupTrace sets up env so that a process started with it loads library as
// the capture layer, configured by cfg. The layer manifest is written to a
// temporary directory. Returns a clean-up function that removes the
// directory once the traced process has exited.
func SetupTrace(ctx context.Context, library string, cfg config.Config, env *shell.Env) (func(ctx context.Context), error) {
	library, err := filepath.Abs(library)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(library); err != nil {
		return nil, log.Errf(ctx, err, "Layer library %v", library)
	}
	tempdir, err := os.MkdirTemp("", "vktrace")
	if err != nil {
		return nil, err
	}
	cleanup := func(ctx context.Context) {
		if err := os.RemoveAll(tempdir); err != nil {
			log.W(ctx, "Removing %v: %v", tempdir, err)
		}
	}
	if err := writeManifest(filepath.Join(tempdir, ManifestName), library); err != nil {
		cleanup(ctx)
		return nil, log.Err(ctx, err, "Writing layer manifest")
	}
	env.AddPathStart("VK_LAYER_PATH", tempdir).
		AddPathStart("VK_INSTANCE_LAYERS", LayerName).
		AddPathStart("VK_DEVICE_LAYERS", LayerName)
	cfg.Apply(env)
	log.D(ctx, "Layer manifest for %v in %v", library, tempdir)
	return cleanup, nil
}

func writeManifest(path, library string) error {
	data, err := json.MarshalIndent(NewManifest(library), "", "  ")
	if err != nil {
		return errors.Wrap(err, "Encoding manifest")
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

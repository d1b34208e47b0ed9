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

package device

import "runtime"

// ABI is the combination of operating system, processor and memory layout a
// binary is built for.
type ABI struct {
	Name         string
	OS           OSKind
	Architecture Architecture
	MemoryLayout *MemoryLayout
}

var (
	UnknownABI = abi("unknown", UnknownOS, UnknownArchitecture, &MemoryLayout{})

	AndroidARMv7a   = abi("armeabi-v7a", Android, ARMv7a, Little32)
	AndroidARM64v8a = abi("arm64-v8a", Android, ARMv8a, Little64)
	AndroidX86_64   = abi("x86-64", Android, X86_64, Little64)

	LinuxX86_64   = abi("linux_x64", Linux, X86_64, Little64)
	LinuxARM64    = abi("linux_arm64", Linux, ARMv8a, Little64)
	OSXX86_64     = abi("osx_x64", OSX, X86_64, Little64)
	OSXARM64      = abi("osx_arm64", OSX, ARMv8a, Little64)
	WindowsX86_64 = abi("windows_x64", Windows, X86_64, Little64)
)

var known = []*ABI{
	LinuxX86_64, LinuxARM64,
	OSXX86_64, OSXARM64,
	WindowsX86_64,
	AndroidARMv7a, AndroidARM64v8a, AndroidX86_64,
}

func abi(name string, os OSKind, arch Architecture, ml *MemoryLayout) *ABI {
	return &ABI{Name: name, OS: os, Architecture: arch, MemoryLayout: ml}
}

// SameAs returns true if the two abi objects are a match.
// ABIs match if both their os and architecture are the same; the name and
// memory layout are not considered.
func (a *ABI) SameAs(o *ABI) bool {
	if a == nil {
		a = UnknownABI
	}
	if o == nil {
		o = UnknownABI
	}
	return (a.OS == o.OS) && (a.Architecture == o.Architecture)
}

func (a *ABI) String() string { return a.Name }

var goOS = map[string]OSKind{
	"linux":   Linux,
	"android": Android,
	"darwin":  OSX,
	"windows": Windows,
	"fuchsia": Fuchsia,
}

var goArch = map[string]Architecture{
	"amd64":    X86_64,
	"386":      X86,
	"arm":      ARMv7a,
	"arm64":    ARMv8a,
	"mips":     MIPS,
	"mips64":   MIPS64,
	"mipsle":   MIPS,
	"mips64le": MIPS64,
}

// Host returns the ABI of the running process.
func Host() *ABI {
	os, arch := goOS[runtime.GOOS], goArch[runtime.GOARCH]
	for _, k := range known {
		if k.OS == os && k.Architecture == arch {
			return k
		}
	}
	ml := Little64
	switch arch {
	case X86, ARMv7a, MIPS:
		ml = Little32
	}
	return abi(runtime.GOOS+"_"+runtime.GOARCH, os, arch, ml)
}

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

// Package device describes the memory layout and platform of the process
// being traced.
package device

import "fmt"

// Endian is the byte order of multi-byte values in memory.
type Endian uint8

const (
	UnknownEndian Endian = iota
	LittleEndian
	BigEndian
)

func (e Endian) String() string {
	switch e {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "UnknownEndian"
	}
}

// OSKind is the family of operating system.
type OSKind uint8

const (
	UnknownOS OSKind = iota
	Windows
	OSX
	Linux
	Android
	Fuchsia
)

var osNames = map[OSKind]string{
	UnknownOS: "unknown",
	Windows:   "windows",
	OSX:       "osx",
	Linux:     "linux",
	Android:   "android",
	Fuchsia:   "fuchsia",
}

func (o OSKind) String() string {
	if n, ok := osNames[o]; ok {
		return n
	}
	return fmt.Sprintf("OSKind<%d>", uint8(o))
}

// Architecture is the processor family.
type Architecture uint8

const (
	UnknownArchitecture Architecture = iota
	ARMv7a
	ARMv8a
	X86
	X86_64
	MIPS
	MIPS64
)

var archNames = map[Architecture]string{
	UnknownArchitecture: "unknown",
	ARMv7a:              "armv7a",
	ARMv8a:              "armv8a",
	X86:                 "x86",
	X86_64:              "x86_64",
	MIPS:                "mips",
	MIPS64:              "mips64",
}

func (a Architecture) String() string {
	if n, ok := archNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Architecture<%d>", uint8(a))
}

// MemoryLayout describes the sizes and byte order of a target's primitives.
type MemoryLayout struct {
	PointerSize uint32
	Endian      Endian
}

var (
	Little32 = &MemoryLayout{PointerSize: 4, Endian: LittleEndian}
	Little64 = &MemoryLayout{PointerSize: 8, Endian: LittleEndian}
	Big64    = &MemoryLayout{PointerSize: 8, Endian: BigEndian}
)

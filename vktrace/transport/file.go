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

package transport

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/google/vktrace/core/data/endian"
	"github.com/google/vktrace/core/fault"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/core/os/device"
	"github.com/google/vktrace/vktrace/packet"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// FileMagic starts every trace file.
var FileMagic = [4]byte{'v', 'k', 't', 'r'}

// FileVersion is the version of the trace file format written.
const FileVersion = 1

// ErrNotTraceFile is returned when reading a file without the trace magic.
const ErrNotTraceFile = fault.Const("Not a vktrace file")

// FileFlags describe the encoding of a trace file.
type FileFlags uint32

// Compressed means the packets following the header form a zstd stream.
const Compressed FileFlags = 1

// FileHeader is the uncompressed prefix of a trace file.
//
//	struct FileHeader {
//	    uint8_t  magic[4];  // 'v', 'k', 't', 'r'
//	    uint32_t version;
//	    uint8_t  capture[16];
//	    uint8_t  pointerSize;
//	    uint8_t  endian;
//	    uint8_t  os;
//	    uint8_t  architecture;
//	    uint32_t flags;
//	};
//
// All fields are little-endian.
type FileHeader struct {
	Version      uint32
	Capture      uuid.UUID
	PointerSize  uint8
	Endian       device.Endian
	OS           device.OSKind
	Architecture device.Architecture
	Flags        FileFlags
}

func (h FileHeader) write(out io.Writer) error {
	w := endian.Writer(out, device.LittleEndian)
	w.Data(FileMagic[:])
	w.Uint32(h.Version)
	w.Data(h.Capture[:])
	w.Uint8(h.PointerSize)
	w.Uint8(uint8(h.Endian))
	w.Uint8(uint8(h.OS))
	w.Uint8(uint8(h.Architecture))
	w.Uint32(uint32(h.Flags))
	return w.Error()
}

func readFileHeader(in io.Reader) (FileHeader, error) {
	h := FileHeader{}
	r := endian.Reader(in, device.LittleEndian)
	var magic [4]byte
	r.Data(magic[:])
	if r.Error() == nil && magic != FileMagic {
		return h, errors.Wrapf(ErrNotTraceFile, "magic %q", magic[:])
	}
	h.Version = r.Uint32()
	r.Data(h.Capture[:])
	h.PointerSize = r.Uint8()
	h.Endian = device.Endian(r.Uint8())
	h.OS = device.OSKind(r.Uint8())
	h.Architecture = device.Architecture(r.Uint8())
	h.Flags = FileFlags(r.Uint32())
	if err := r.Error(); err != nil {
		return h, errors.Wrap(err, "Reading trace file header")
	}
	return h, nil
}

// FileOptions control how a trace file is written.
type FileOptions struct {
	// Compress writes the packets as a zstd stream.
	Compress bool
	// ABI is recorded in the header. nil records the host.
	ABI *device.ABI
}

// File is a Sink writing a trace file.
type File struct {
	mutex   sync.Mutex
	header  FileHeader
	out     io.WriteCloser
	buf     *bufio.Writer
	encoder *zstd.Encoder
	packets io.Writer
	closed  bool
}

// NewFile writes the file header to out and returns a sink that appends
// packets to it. Closing the sink closes out.
func NewFile(out io.WriteCloser, opts FileOptions) (*File, error) {
	abi := opts.ABI
	if abi == nil {
		abi = device.Host()
	}
	f := &File{
		header: FileHeader{
			Version:      FileVersion,
			Capture:      uuid.New(),
			PointerSize:  uint8(abi.MemoryLayout.PointerSize),
			Endian:       abi.MemoryLayout.Endian,
			OS:           abi.OS,
			Architecture: abi.Architecture,
		},
		out: out,
		buf: bufio.NewWriter(out),
	}
	if opts.Compress {
		f.header.Flags |= Compressed
	}
	if err := f.header.write(f.buf); err != nil {
		return nil, errors.Wrap(err, "Writing trace file header")
	}
	f.packets = f.buf
	if opts.Compress {
		enc, err := zstd.NewWriter(f.buf, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, errors.Wrap(err, "Creating zstd encoder")
		}
		f.encoder, f.packets = enc, enc
	}
	return f, nil
}

// CreateFile creates the trace file at path.
func CreateFile(ctx context.Context, path string, opts FileOptions) (*File, error) {
	out, err := os.Create(path)
	if err != nil {
		return nil, log.Errf(ctx, err, "Creating trace file %v", path)
	}
	f, err := NewFile(out, opts)
	if err != nil {
		out.Close()
		return nil, err
	}
	log.I(ctx, "Writing trace %v to %v", f.header.Capture, path)
	return f, nil
}

// Header returns the header written to the file.
func (f *File) Header() FileHeader { return f.header }

// Send implements Sink.
func (f *File) Send(ctx context.Context, data []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.closed {
		return ErrClosed
	}
	_, err := f.packets.Write(data)
	return err
}

// Close implements Sink.
func (f *File) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	var errs fault.List
	if f.encoder != nil {
		errs.Collect(f.encoder.Close())
	}
	errs.Collect(f.buf.Flush())
	errs.Collect(f.out.Close())
	return errs.Err()
}

// FileReader reads packets back from a trace file.
type FileReader struct {
	header  FileHeader
	in      io.Reader
	decoder *zstd.Decoder
}

// NewFileReader reads the file header from in.
func NewFileReader(in io.Reader) (*FileReader, error) {
	buffered := bufio.NewReader(in)
	h, err := readFileHeader(buffered)
	if err != nil {
		return nil, err
	}
	r := &FileReader{header: h, in: buffered}
	if h.Flags&Compressed != 0 {
		dec, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, errors.Wrap(err, "Creating zstd decoder")
		}
		r.decoder, r.in = dec, dec
	}
	return r, nil
}

// Header returns the file header.
func (r *FileReader) Header() FileHeader { return r.header }

// Next returns the next packet, or io.EOF at the end of the file.
func (r *FileReader) Next() (*packet.Decoded, error) {
	return packet.Read(r.in)
}

// Close releases the decoder.
func (r *FileReader) Close() {
	if r.decoder != nil {
		r.decoder.Close()
	}
}

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
	"io"

	"github.com/google/vktrace/core/data/endian"
	"github.com/google/vktrace/core/fault"
	"github.com/google/vktrace/core/os/device"
	"github.com/pkg/errors"
)

// ServerMagic is sent by the traced process as soon as a client connects.
var ServerMagic = [5]byte{'v', 'k', 't', 'r', 'c'}

// ClientMagic starts the connection header sent by the client.
var ClientMagic = [4]byte{'v', 'k', 't', '0'}

// ProtocolVersion is the version of the connection header.
const ProtocolVersion = 1

const ErrBadMagic = fault.Const("Unexpected magic")

// MessageType is the first byte of every framed message.
type MessageType byte

const (
	MessageData       MessageType = 0x00
	MessageStartTrace MessageType = 0x01
	MessageEndTrace   MessageType = 0x02
	MessageError      MessageType = 0x03
	MessageInvalid    MessageType = 0xff
)

const (
	// MessageHeaderSize is the size of a message type and its data size.
	MessageHeaderSize = 6
	messageDataBytes  = 5
	// MaxMessageSize is the largest data size a message header can describe.
	MaxMessageSize = 1<<(8*messageDataBytes) - 1
)

// ConnectionFlags are requested by the client in its header.
type ConnectionFlags uint32

// DeferStart asks the traced process to drop packets until a
// MessageStartTrace arrives.
const DeferStart ConnectionFlags = 0x00000010

// ConnectionHeader is sent by the client after it receives ServerMagic.
//
//	struct ConnectionHeader {
//	    uint8_t  magic[4];  // 'v', 'k', 't', '0'
//	    uint32_t version;
//	    uint32_t flags;
//	};
type ConnectionHeader struct {
	Version uint32
	Flags   ConnectionFlags
}

// WriteConnectionHeader encodes h to out.
func WriteConnectionHeader(out io.Writer, h ConnectionHeader) error {
	w := endian.Writer(out, device.LittleEndian)
	w.Data(ClientMagic[:])
	w.Uint32(h.Version)
	w.Uint32(uint32(h.Flags))
	return w.Error()
}

// ReadConnectionHeader decodes a connection header from in.
func ReadConnectionHeader(in io.Reader) (ConnectionHeader, error) {
	r := endian.Reader(in, device.LittleEndian)
	var magic [4]byte
	r.Data(magic[:])
	h := ConnectionHeader{Version: r.Uint32(), Flags: ConnectionFlags(r.Uint32())}
	if err := r.Error(); err != nil {
		return h, err
	}
	if magic != ClientMagic {
		return h, errors.Wrapf(ErrBadMagic, "%q", magic[:])
	}
	return h, nil
}

// WriteMessage frames data as a message of type t.
func WriteMessage(out io.Writer, t MessageType, data []byte) error {
	if len(data) > MaxMessageSize {
		return errors.Errorf("Message of %d bytes is too large", len(data))
	}
	var header [MessageHeaderSize]byte
	header[0] = byte(t)
	for i := 0; i < messageDataBytes; i++ {
		header[i+1] = byte(uint64(len(data)) >> (i * 8))
	}
	if _, err := out.Write(header[:]); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := out.Write(data)
	return err
}

// ReadMessageHeader reads a message type and data size.
func ReadMessageHeader(in io.Reader) (MessageType, uint64, error) {
	var buf [MessageHeaderSize]byte
	if _, err := io.ReadFull(in, buf[:]); err != nil {
		return MessageInvalid, 0, err
	}
	size := uint64(0)
	for i := 0; i < messageDataBytes; i++ {
		size |= uint64(buf[i+1]) << (i * 8)
	}
	return MessageType(buf[0]), size, nil
}

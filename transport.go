/*
Copyright 2025 The gofixbuf Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ipfix

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
)

// Transport abstracts the connection an exporting process writes messages
// to. Implementations must tolerate Open after Close for reconnects.
type Transport interface {
	io.Writer
	io.Closer

	Open(ctx context.Context) error
}

// TCPTransport exports over a TCP connection, one transport session per
// connection (RFC 7011, Section 10.4).
type TCPTransport struct {
	Addr string

	conn net.Conn
}

func (t *TCPTransport) Open(ctx context.Context) error {
	if t.conn != nil {
		return nil
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", t.Addr)
	if err != nil {
		return &TransportError{Op: "dial", Err: err}
	}
	t.conn = conn
	return nil
}

func (t *TCPTransport) Write(b []byte) (int, error) {
	if t.conn == nil {
		return 0, &TransportError{Op: "write", Err: net.ErrClosed}
	}
	return t.conn.Write(b)
}

func (t *TCPTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// UDPTransport exports datagrams, one message per packet (RFC 7011,
// Section 10.3). Pair it with a retransmission policy so collectors
// recover templates after loss.
type UDPTransport struct {
	Addr string

	conn net.Conn
}

func (t *UDPTransport) Open(ctx context.Context) error {
	if t.conn != nil {
		return nil
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", t.Addr)
	if err != nil {
		return &TransportError{Op: "dial", Err: err}
	}
	t.conn = conn
	return nil
}

func (t *UDPTransport) Write(b []byte) (int, error) {
	if t.conn == nil {
		return 0, &TransportError{Op: "write", Err: net.ErrClosed}
	}
	return t.conn.Write(b)
}

func (t *UDPTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// ReadMessage reads exactly one IPFIX message from a stream transport,
// using the length declared in the message header as the frame boundary. A
// clean end of input before any header octet yields ErrEndOfStream; a
// truncated message yields ErrMalformedMessage.
func ReadMessage(r io.Reader) ([]byte, error) {
	header := make([]byte, messageHeaderLength)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEndOfStream
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("stream ended inside message header: %w", ErrMalformedMessage)
		}
		return nil, &TransportError{Op: "read", Err: err}
	}
	length := binary.BigEndian.Uint16(header[2:4])
	if int(length) < messageHeaderLength {
		return nil, fmt.Errorf("message length %d shorter than header: %w", length, ErrMalformedMessage)
	}
	msg := make([]byte, length)
	copy(msg, header)
	if _, err := io.ReadFull(r, msg[messageHeaderLength:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("stream ended inside message body: %w", ErrMalformedMessage)
		}
		return nil, &TransportError{Op: "read", Err: err}
	}
	return msg, nil
}

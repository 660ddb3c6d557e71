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
	"errors"
	"net"
)

// TCPCollector receives IPFIX over TCP. Each accepted connection is one
// transport session (RFC 7011, Section 10.4): it gets its own clone of the
// base session, and its template state dies with the connection.
type TCPCollector struct {
	bindAddr string
	base     *Session

	listener *net.TCPListener
}

func NewTCPCollector(bindAddr string, base *Session) *TCPCollector {
	return &TCPCollector{
		bindAddr: bindAddr,
		base:     base,
	}
}

// Listen accepts connections until ctx is canceled, decoding each in its
// own goroutine and invoking handle per record.
func (c *TCPCollector) Listen(ctx context.Context, handle RecordHandler) error {
	logger := FromContext(ctx)
	addr, err := net.ResolveTCPAddr("tcp", c.bindAddr)
	if err != nil {
		return err
	}
	c.listener, err = net.ListenTCP("tcp", addr)
	if err != nil {
		return err
	}
	defer c.listener.Close()

	go func() {
		<-ctx.Done()
		c.listener.Close()
	}()

	logger.Info("started tcp collector", "addr", c.bindAddr)
	for {
		conn, err := c.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				logger.Info("shutting down tcp collector", "addr", c.bindAddr)
				return nil
			}
			logger.Error(err, "failed to accept tcp connection", "addr", c.bindAddr)
			return err
		}
		go c.serve(ctx, conn, handle)
	}
}

func (c *TCPCollector) serve(ctx context.Context, conn net.Conn, handle RecordHandler) {
	logger := FromContext(ctx)
	defer conn.Close()

	session := c.base.Clone()
	defer session.Close()

	logger.V(1).Info("new tcp transport session", "peer", conn.RemoteAddr())
	err := CollectStream(ctx, session, func() ([]byte, error) {
		return ReadMessage(conn)
	}, handle)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(err, "tcp transport session failed", "peer", conn.RemoteAddr())
		return
	}
	logger.V(1).Info("tcp transport session closed", "peer", conn.RemoteAddr())
}

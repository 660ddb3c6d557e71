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
	"net/netip"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

var (
	// UDPPacketBufferSize bounds the datagrams the collector accepts. IPFIX
	// over UDP should stay under the path MTU to avoid fragment loss, but
	// exporters are not obliged to, so read up to the UDP maximum.
	UDPPacketBufferSize int = 0xFFFF

	// UDPChannelBufferSize is the number of datagrams buffered between the
	// socket reader and the decode loop. Packets beyond it are dropped
	// rather than blocking the socket.
	UDPChannelBufferSize int = 50
)

type datagram struct {
	addr netip.AddrPort
	data []byte
}

// UDPCollector receives IPFIX over UDP, scoping template state per exporting
// peer through a PeerTable (RFC 7011, Section 10.3).
type UDPCollector struct {
	bindAddr string
	peers    *PeerTable
	packetCh chan datagram

	expireInterval time.Duration

	listener net.PacketConn
}

// NewUDPCollector builds a collector bound to bindAddr. Each peer's session
// clones base, inheriting internal templates, pairings, and the
// new-template callback.
func NewUDPCollector(bindAddr string, base *Session, opts ...PeerTableOption) *UDPCollector {
	return &UDPCollector{
		bindAddr:       bindAddr,
		peers:          NewPeerTable(base, opts...),
		packetCh:       make(chan datagram, UDPChannelBufferSize),
		expireInterval: time.Minute,
	}
}

func (c *UDPCollector) Peers() *PeerTable {
	return c.peers
}

// Listen binds the socket and decodes datagrams until ctx is canceled,
// invoking handle per record. Decode errors are logged per datagram and
// never stop the collector; one exporter's garbage must not silence the
// rest.
func (c *UDPCollector) Listen(ctx context.Context, handle RecordHandler) (err error) {
	logger := FromContext(ctx)
	c.listener, err = listenUDP(ctx, c.bindAddr)
	if err != nil {
		logger.Error(err, "failed to bind udp collector", "addr", c.bindAddr)
		return err
	}
	defer c.listener.Close()
	defer c.peers.Close()

	go c.readLoop(ctx)

	logger.Info("started udp collector", "addr", c.bindAddr)
	expire := time.NewTicker(c.expireInterval)
	defer expire.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down udp collector", "addr", c.bindAddr)
			return nil
		case <-expire.C:
			if n := c.peers.Expire(); n > 0 {
				logger.V(1).Info("expired idle udp peers", "count", n)
			}
		case pkt := <-c.packetCh:
			buf := c.peers.Resolve(PeerKeyFor(pkt.addr, pkt.data))
			if err := CollectMessage(ctx, buf, pkt.data, handle); err != nil {
				logger.Error(err, "failed to decode datagram", "peer", pkt.addr)
			}
		}
	}
}

func (c *UDPCollector) readLoop(ctx context.Context) {
	logger := FromContext(ctx)
	buffer := make([]byte, UDPPacketBufferSize)
	for {
		n, addr, err := c.listener.ReadFrom(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Error(err, "failed to read from udp socket")
			return
		}
		packetsReceived.Inc()

		// trim to the packet size so the large read buffer can be reused
		packet := make([]byte, n)
		copy(packet, buffer[:n])

		udpAddr, ok := addr.(*net.UDPAddr)
		if !ok {
			continue
		}
		select {
		case c.packetCh <- datagram{addr: udpAddr.AddrPort(), data: packet}:
		default:
			packetsDropped.Inc()
		}
	}
}

// listenUDP binds with SO_REUSEADDR and SO_REUSEPORT set, so multiple
// collector processes can share one port for scale-out.
func listenUDP(ctx context.Context, bindAddr string) (net.PacketConn, error) {
	listenConfig := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var err error
			controlErr := c.Control(func(fd uintptr) {
				err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				if err != nil {
					return
				}
				err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
			if controlErr != nil {
				err = controlErr
			}
			return err
		},
	}
	return listenConfig.ListenPacket(ctx, "udp", bindAddr)
}

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
	"container/list"
	"encoding/binary"
	"net/netip"
	"sync"
	"time"
)

// PeerKey identifies one UDP transport session: the exporter's source
// address and the observation domain it exports (RFC 7011, Section 10.3.4).
type PeerKey struct {
	Addr                netip.AddrPort
	ObservationDomainId uint32
}

// PeerKeyFor extracts the peer key for a datagram without decoding the
// whole message.
func PeerKeyFor(addr netip.AddrPort, msg []byte) PeerKey {
	key := PeerKey{Addr: addr}
	if len(msg) >= messageHeaderLength {
		key.ObservationDomainId = binary.BigEndian.Uint32(msg[12:16])
	}
	return key
}

type peerEntry struct {
	key      PeerKey
	session  *Session
	buffer   *MessageBuffer
	lastSeen time.Time
	elem     *list.Element
}

// DefaultPeerTimeout is the idle time after which a UDP peer's template
// state is dropped. RFC 7011 suggests at least three times the exporter's
// template refresh interval.
const DefaultPeerTimeout = 30 * time.Minute

// PeerTableOption configures a PeerTable at construction time.
type PeerTableOption func(*PeerTable)

// WithPeerTimeout sets the idle timeout after which Expire drops a peer.
func WithPeerTimeout(d time.Duration) PeerTableOption {
	return func(t *PeerTable) {
		t.timeout = d
	}
}

// WithMaxPeers caps the number of tracked peers; the stalest peer is
// evicted when a new one would exceed the cap. 0 means unlimited.
func WithMaxPeers(n int) PeerTableOption {
	return func(t *PeerTable) {
		t.maxPeers = n
	}
}

// WithPeerClock overrides the time source used for idle tracking.
func WithPeerClock(now func() time.Time) PeerTableOption {
	return func(t *PeerTable) {
		t.now = now
	}
}

// PeerTable scopes sessions to UDP peers. Each peer gets a clone of the
// base session, so templates learned from one exporter never leak into
// another's decoding, while internal templates and pairings are shared.
// Safe for concurrent use.
type PeerTable struct {
	mu sync.Mutex

	base  *Session
	peers map[PeerKey]*peerEntry

	// order keeps peers sorted by last activity, stalest at the front, so
	// expiry walks only as far as it evicts.
	order *list.List

	timeout  time.Duration
	maxPeers int
	now      func() time.Time
}

func NewPeerTable(base *Session, opts ...PeerTableOption) *PeerTable {
	t := &PeerTable{
		base:    base,
		peers:   make(map[PeerKey]*peerEntry),
		order:   list.New(),
		timeout: DefaultPeerTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resolve returns the message buffer for the peer, creating a fresh
// per-peer session on first contact, and marks the peer active.
func (t *PeerTable) Resolve(key PeerKey) *MessageBuffer {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.peers[key]
	if !ok {
		if t.maxPeers > 0 && len(t.peers) >= t.maxPeers {
			t.evictLocked(t.order.Front().Value.(*peerEntry))
		}
		session := t.base.Clone()
		entry = &peerEntry{
			key:     key,
			session: session,
			buffer:  NewMessageBuffer(session),
		}
		entry.elem = t.order.PushBack(entry)
		t.peers[key] = entry
		getLogger().V(1).Info("new udp peer", "addr", key.Addr, "odid", key.ObservationDomainId)
	}
	entry.lastSeen = t.now()
	t.order.MoveToBack(entry.elem)
	return entry.buffer
}

// Session returns the per-peer session without touching activity state, or
// nil for unknown peers.
func (t *PeerTable) Session(key PeerKey) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry, ok := t.peers[key]; ok {
		return entry.session
	}
	return nil
}

// Expire drops every peer idle longer than the table's timeout and returns
// the number of peers dropped. Run it periodically; the table does not spawn
// its own timer.
func (t *PeerTable) Expire() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	deadline := t.now().Add(-t.timeout)
	n := 0
	for {
		front := t.order.Front()
		if front == nil {
			break
		}
		entry := front.Value.(*peerEntry)
		if entry.lastSeen.After(deadline) {
			break
		}
		t.evictLocked(entry)
		n++
	}
	return n
}

func (t *PeerTable) evictLocked(entry *peerEntry) {
	t.order.Remove(entry.elem)
	delete(t.peers, entry.key)
	entry.session.Close()
	peersExpired.Inc()
	getLogger().V(1).Info("udp peer expired", "addr", entry.key.Addr, "odid", entry.key.ObservationDomainId)
}

func (t *PeerTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.peers)
}

// Close drops all peers, closing their sessions.
func (t *PeerTable) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, entry := range t.peers {
		entry.session.Close()
	}
	t.peers = make(map[PeerKey]*peerEntry)
	t.order.Init()
}

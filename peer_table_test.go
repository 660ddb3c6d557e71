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
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peerKey(addr string, odid uint32) PeerKey {
	return PeerKey{Addr: netip.MustParseAddrPort(addr), ObservationDomainId: odid}
}

func TestPeerTableIsolation(t *testing.T) {
	model := NewInfoModel()
	base := NewSession(model)
	table := NewPeerTable(base)

	a := peerKey("192.0.2.1:4739", 1)
	b := peerKey("192.0.2.2:4739", 1)

	bufA := table.Resolve(a)
	bufB := table.Resolve(b)
	require.NotSame(t, bufA, bufB)
	assert.Equal(t, 2, table.Len())

	// a template learned from peer A must not decode peer B's sets
	tpl := testTemplate(t, model, "octetDeltaCount")
	require.NoError(t, bufA.Session().AddExternalTemplate(300, tpl))

	_, err := bufA.Session().GetExternalTemplate(300)
	assert.NoError(t, err)
	_, err = bufB.Session().GetExternalTemplate(300)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	// same address, different observation domain: distinct peer
	bufA2 := table.Resolve(peerKey("192.0.2.1:4739", 2))
	require.NotSame(t, bufA, bufA2)
	assert.Equal(t, 3, table.Len())

	// resolving the same key again returns the same buffer
	assert.Same(t, bufA, table.Resolve(a))
}

func TestPeerTableExpiry(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	table := NewPeerTable(NewSession(NewInfoModel()),
		WithPeerTimeout(10*time.Minute), WithPeerClock(clock))

	table.Resolve(peerKey("192.0.2.1:4739", 1))
	now = now.Add(5 * time.Minute)
	table.Resolve(peerKey("192.0.2.2:4739", 1))

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, table.Expire())
	assert.Equal(t, 1, table.Len())

	// the younger peer survives
	assert.NotNil(t, table.Session(peerKey("192.0.2.2:4739", 1)))
	assert.Nil(t, table.Session(peerKey("192.0.2.1:4739", 1)))

	// activity refreshes the idle clock
	table.Resolve(peerKey("192.0.2.2:4739", 1))
	now = now.Add(9 * time.Minute)
	assert.Equal(t, 0, table.Expire())
}

func TestPeerTableMaxPeersEvictsStalest(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	table := NewPeerTable(NewSession(NewInfoModel()),
		WithMaxPeers(2), WithPeerClock(clock))

	table.Resolve(peerKey("192.0.2.1:4739", 1))
	now = now.Add(time.Minute)
	table.Resolve(peerKey("192.0.2.2:4739", 1))
	now = now.Add(time.Minute)
	table.Resolve(peerKey("192.0.2.3:4739", 1))

	assert.Equal(t, 2, table.Len())
	assert.Nil(t, table.Session(peerKey("192.0.2.1:4739", 1)))
	assert.NotNil(t, table.Session(peerKey("192.0.2.3:4739", 1)))
}

func TestPeerKeyFor(t *testing.T) {
	msg := buildMessage(77, 0)
	key := PeerKeyFor(netip.MustParseAddrPort("192.0.2.1:4739"), msg)
	assert.Equal(t, uint32(77), key.ObservationDomainId)
}

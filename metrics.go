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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	messagesDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "messages_decoded_total",
		Help:      "Number of IPFIX messages successfully parsed",
	})
	recordsDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "records_decoded_total",
		Help:      "Number of data records successfully decoded",
	})
	templatesLearned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "templates_learned_total",
		Help:      "Number of templates learned from template sets",
	})
	setsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "sets_skipped_total",
		Help:      "Number of data sets skipped for lack of a matching template",
	})
	sequenceGaps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "sequence_gaps_total",
		Help:      "Number of observed discontinuities in message sequence numbers",
	})
	messagesExported = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "messages_exported_total",
		Help:      "Number of IPFIX messages emitted by exporting buffers",
	})
	peersExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "udp_peers_expired_total",
		Help:      "Number of UDP peer sessions dropped after their idle timeout",
	})
	packetsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "udp_packets_received_total",
		Help:      "Number of datagrams received by UDP collectors",
	})
	packetsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipfix",
		Name:      "udp_packets_dropped_total",
		Help:      "Number of datagrams dropped because the packet queue was full",
	})
)

var registerMetricsOnce sync.Once

// RegisterMetrics registers the package's collectors with reg. Safe to call
// from multiple collectors sharing the default registry; registration
// happens once.
func RegisterMetrics(reg prometheus.Registerer) {
	registerMetricsOnce.Do(func() {
		reg.MustRegister(
			messagesDecoded,
			recordsDecoded,
			templatesLearned,
			setsSkipped,
			sequenceGaps,
			messagesExported,
			peersExpired,
			packetsReceived,
			packetsDropped,
		)
	})
}

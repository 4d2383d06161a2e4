// Package metrics exposes prometheus counters and gauges for the
// session engine's ambient observability, in the style of
// go-tcg-storage's session-layer instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wrd",
		Name:      "frames_decoded_total",
		Help:      "Wire frames successfully decoded from client sockets.",
	})

	FramesEncoded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wrd",
		Name:      "frames_encoded_total",
		Help:      "Wire frames successfully encoded to client sockets.",
	})

	ProtocolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wrd",
		Name:      "protocol_errors_total",
		Help:      "wl_display.error events emitted, by code.",
	}, []string{"code"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "wrd",
		Name:      "active_sessions",
		Help:      "Client sessions currently connected.",
	})

	RelayWaitsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "wrd",
		Name:      "relay_waits_in_flight",
		Help:      "Sessions currently suspended awaiting an upstream reply.",
	})

	RelayedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wrd",
		Name:      "relayed_requests_total",
		Help:      "Requests forwarded upstream, by action (relay, relay_wait).",
	}, []string{"action"})
)

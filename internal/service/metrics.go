package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Workflow counters. HTTP-level metrics live in the api middleware; these
// track business outcomes independent of transport.
var (
	registrationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittech",
		Name:      "registrations_total",
		Help:      "Registration workflow outcomes by terminal state.",
	}, []string{"outcome"})

	bookingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fittech",
		Name:      "bookings_total",
		Help:      "Sessions booked.",
	})
)

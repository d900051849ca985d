package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "airline_ops"

type Metrics struct {
	registry *prometheus.Registry

	TicketsIssued          prometheus.Counter
	TicketsCancelled       prometheus.Counter
	BaggageChecked         prometheus.Counter
	BaggageSurcharge       prometheus.Counter
	SeatAssignmentFallback prometheus.Counter
	SearchDuration         prometheus.Histogram
	GroundEvents           *prometheus.CounterVec
	ErrorsCount            *prometheus.CounterVec
}

// New registers every collector on a fresh registry, so instances never clash.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TicketsIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_issued_total",
			Help:      "The total number of issued tickets",
		}),
		TicketsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_cancelled_total",
			Help:      "The total number of cancelled tickets",
		}),
		BaggageChecked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "baggage_checked_total",
			Help:      "The total number of baggage check-ins",
		}),
		BaggageSurcharge: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "baggage_surcharge_amount_total",
			Help:      "Sum of overweight surcharges charged",
		}),
		SeatAssignmentFallback: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_assignment_fallbacks_total",
			Help:      "Seats picked by enumeration after random draws kept colliding",
		}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_search_duration_seconds",
			Help:      "Time taken to answer a flight search",
			Buckets:   prometheus.DefBuckets,
		}),
		GroundEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ground_events_total",
			Help:      "Ground-handling messages consumed, by kind and outcome",
		}, []string{"kind", "outcome"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

package phonedata

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts component traffic.
type Metrics struct {
	requests    *prometheus.CounterVec
	validations *prometheus.CounterVec
}

// NewMetrics registers the component counters on reg, or on the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phoneinput",
			Name:      "requests_total",
			Help:      "Phone data requests by route and status code",
		}, []string{"route", "code"}),
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phoneinput",
			Name:      "validations_total",
			Help:      "Number validations by outcome",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeRequest(route string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (m *Metrics) observeValidation(valid bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.validations.WithLabelValues(result).Inc()
}

package region

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	csc = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "region_setup_channel_count",
		Help: "The number of channel setup requests (per result).",
	}, []string{"result"})

	dcl = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "region_duty_cycle_limited_count",
		Help: "The number of transmissions refused because of the band duty-cycle (per band).",
	}, []string{"band"})

	ats = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "region_airtime_seconds",
		Help:    "The airtime of the recorded transmissions (per band).",
		Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"band"})
)

func channelSetup(err error) prometheus.Counter {
	result := "ok"
	switch err {
	case nil:
	case ErrInvalidIndex:
		result = "invalid_index"
	case ErrProtectedChannel:
		result = "protected_channel"
	case ErrFrequencyOutOfRange:
		result = "frequency_out_of_range"
	case ErrDataRateRange:
		result = "data_rate_range"
	default:
		result = "error"
	}
	return csc.With(prometheus.Labels{"result": result})
}

func dutyCycleLimited(band string) prometheus.Counter {
	return dcl.With(prometheus.Labels{"band": band})
}

func airtimeSeconds(band string) prometheus.Observer {
	return ats.With(prometheus.Labels{"band": band})
}

package binning

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK           = "ok"
	resultOutOfBounds  = "out_of_bounds"
	resultInvalidIndex = "invalid_index"
)

var (
	insertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "binkeys_inserts_total",
		Help: "The total number of insert attempts, by result",
	}, []string{"result"})

	containersCreated = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "binkeys_containers_created_total",
		Help: "The total number of binned key containers created, by strategy",
	}, []string{"strategy"})
)

func init() {
	for _, result := range []string{resultOK, resultOutOfBounds, resultInvalidIndex} {
		insertsTotal.WithLabelValues(result).Add(0)
	}
}

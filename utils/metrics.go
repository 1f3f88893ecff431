package utils

import "github.com/prometheus/client_golang/prometheus"

var (
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sitecms", Name: "uploads_total", Help: "Image uploads by outcome."},
		[]string{"outcome"},
	)
	CompensationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sitecms", Name: "upload_compensations_total", Help: "Remote file deletions after a failed insert, by outcome."},
		[]string{"outcome"},
	)
	SweptUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sitecms", Name: "swept_uploads_total", Help: "Unconfirmed uploads removed by the sweeper, by outcome."},
		[]string{"outcome"},
	)
)

// RegisterCollectors registers the application counters on reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(UploadsTotal)
	reg.MustRegister(CompensationsTotal)
	reg.MustRegister(SweptUploadsTotal)
}

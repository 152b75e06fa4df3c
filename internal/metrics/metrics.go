package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels examples rendered and written cleanly.
	OutcomeSuccess = "success"
	// OutcomeError labels examples dropped by a render or encode failure.
	OutcomeError = "error"

	// ResultPass labels dataset lines satisfying the format contract.
	ResultPass = "pass"
	// ResultFail labels dataset lines missing part of the contract.
	ResultFail = "fail"
)

var (
	examplesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anomaly_trainset",
			Name:      "examples_total",
			Help:      "Training examples processed, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	exampleRenderSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "anomaly_trainset",
			Name:      "example_render_seconds",
			Help:      "Per-example render and write latency in seconds.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	validationLinesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anomaly_trainset",
			Name:      "validation_lines_total",
			Help:      "Dataset lines checked by the format validator, partitioned by result.",
		},
		[]string{"result"},
	)
)

// Register attaches the trainset collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		examplesTotal,
		exampleRenderSeconds,
		validationLinesTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveExample records one example's processing latency and outcome label.
func ObserveExample(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	examplesTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	exampleRenderSeconds.Observe(duration.Seconds())
}

// ObserveValidation records one validated line.
func ObserveValidation(ok bool) {
	label := ResultFail
	if ok {
		label = ResultPass
	}
	validationLinesTotal.WithLabelValues(label).Inc()
}

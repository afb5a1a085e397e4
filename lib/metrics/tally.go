package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type TallyMetrics struct {
	NomineesWithVotes metrics.Gauge

	BallotsCast   metrics.Counter
	WeightTallied metrics.Counter
}

func (t *TallyMetrics) SetNomineesWithVotes(num uint64) {
	t.NomineesWithVotes.Set(float64(num))
}

func PromTallyMetrics() *TallyMetrics {
	return &TallyMetrics{
		NomineesWithVotes: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: TallySubsystem,
			Name:      "nominees_with_votes",
			Help:      "Number of distinct nominees that received vote weight.",
		}, []string{}),
		BallotsCast: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TallySubsystem,
			Name:      "ballots_cast_total",
			Help:      "Total number of accepted ballots.",
		}, []string{}),
		WeightTallied: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: TallySubsystem,
			Name:      "weight_tallied_total",
			Help:      "Total decayed vote weight accumulated.",
		}, []string{}),
	}
}

func NopTallyMetrics() *TallyMetrics {
	return &TallyMetrics{
		NomineesWithVotes: discard.NewGauge(),
		BallotsCast:       discard.NewCounter(),
		WeightTallied:     discard.NewCounter(),
	}
}

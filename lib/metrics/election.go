package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type ElectionMetrics struct {
	ActiveCycle       metrics.Gauge
	Contenders        metrics.Gauge
	CompliantNominees metrics.Gauge

	CyclesOpened      metrics.Counter
	Exclusions        metrics.Counter
	Inclusions        metrics.Counter
	ElectionsExecuted metrics.Counter
	ElectionsFailed   metrics.Counter
}

func (e *ElectionMetrics) SetActiveCycle(index uint64) {
	e.ActiveCycle.Set(float64(index))
}
func (e *ElectionMetrics) SetContenders(num uint64) {
	e.Contenders.Set(float64(num))
}
func (e *ElectionMetrics) SetCompliantNominees(num uint64) {
	e.CompliantNominees.Set(float64(num))
}

func PromElectionMetrics() *ElectionMetrics {
	return &ElectionMetrics{
		ActiveCycle: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "active_cycle",
			Help:      "Index of the active election cycle.",
		}, []string{}),
		Contenders: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "contenders",
			Help:      "Number of registered contenders in the active cycle.",
		}, []string{}),
		CompliantNominees: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "compliant_nominees",
			Help:      "Number of compliant nominees in the active cycle.",
		}, []string{}),
		CyclesOpened: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "cycles_opened_total",
			Help:      "Total number of opened election cycles.",
		}, []string{}),
		Exclusions: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "exclusions_total",
			Help:      "Total number of nominee exclusions.",
		}, []string{}),
		Inclusions: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "inclusions_total",
			Help:      "Total number of nominee inclusions.",
		}, []string{}),
		ElectionsExecuted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "elections_executed_total",
			Help:      "Total number of election results forwarded to the sink.",
		}, []string{}),
		ElectionsFailed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ElectionSubsystem,
			Name:      "elections_failed_total",
			Help:      "Total number of cycles that failed to complete.",
		}, []string{}),
	}
}

func NopElectionMetrics() *ElectionMetrics {
	return &ElectionMetrics{
		ActiveCycle:       discard.NewGauge(),
		Contenders:        discard.NewGauge(),
		CompliantNominees: discard.NewGauge(),
		CyclesOpened:      discard.NewCounter(),
		Exclusions:        discard.NewCounter(),
		Inclusions:        discard.NewCounter(),
		ElectionsExecuted: discard.NewCounter(),
		ElectionsFailed:   discard.NewCounter(),
	}
}

package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Election = PromElectionMetrics()
	Tally = PromTallyMetrics()
	API = PromAPIMetrics()
}

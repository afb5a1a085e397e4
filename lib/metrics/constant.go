package metrics

const (
	Namespace         = "conclave"
	ElectionSubsystem = "election"
	TallySubsystem    = "tally"
	APISubsystem      = "api"
)

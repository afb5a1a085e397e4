package election

type Phase uint

const (
	PhaseNONE Phase = iota
	// nominee voting window: contenders self-register
	PhaseVOTING
	// reviewer window: nominees can be excluded or reinstated
	PhaseVETTING
	// vetting elapsed, awaiting the finalize decision
	PhaseCOUNTING
	// run-off among the compliant nominees
	PhaseRUNOFF
	// the result has been forwarded to the sink
	PhaseEXECUTED
	// terminal failure, no result was produced
	PhaseFAILED
)

func (p Phase) String() string {
	switch p {
	case PhaseVOTING:
		return "VOTING"
	case PhaseVETTING:
		return "VETTING"
	case PhaseCOUNTING:
		return "COUNTING"
	case PhaseRUNOFF:
		return "RUNOFF"
	case PhaseEXECUTED:
		return "EXECUTED"
	case PhaseFAILED:
		return "FAILED"
	default:
		return ""
	}
}

func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseEXECUTED, PhaseFAILED:
		return true
	}

	return false
}

package errors

// pre-defined errors
//
// 1xx: storage
// 2xx: timing violations, user-correctable by waiting
// 3xx: authorization violations
// 4xx: state-conflict violations
// 5xx: eligibility violations
// 6xx: terminal cycle failures
var (
	StorageRecordDoesNotExist  = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(101, "record already exists in storage")
	StorageCoreError           = NewError(102, "storage error")

	CycleNotFound        = NewError(200, "election cycle not found")
	CycleNotYetScheduled = NewError(201, "scheduled start of the next election cycle not reached")
	VotingNotOpen        = NewError(202, "voting window is not open")
	VotingStillOpen      = NewError(203, "voting window has not closed yet")
	VettingElapsed       = NewError(204, "vetting window has elapsed")
	VettingStillOpen     = NewError(205, "vetting window has not elapsed yet")

	NotReviewer = NewError(300, "caller is not the designated reviewer")
	NotOwner    = NewError(301, "caller is not the owner")

	CycleStillActive          = NewError(400, "an election cycle is still active")
	AlreadyContender          = NewError(401, "account is already a registered contender")
	AlreadyExcluded           = NewError(402, "nominee is already excluded")
	AlreadyCompliantNominee   = NewError(403, "account is already a compliant nominee")
	CycleAlreadyFinalized     = NewError(404, "election cycle is already finalized")
	ZeroVoteWeight            = NewError(405, "vote weight is zero")
	InsufficientVotingPower   = NewError(406, "votes exceed the available voting power")
	ProposalCreationForbidden = NewError(407, "election requests can only be created by opening the next cycle")
	InvalidCycleIndex         = NewError(408, "cycle index does not match the most recent election cycle")
	MaximumVotingPowerReached = NewError(409, "maximum voting power reached")
	AmountUnderflow           = NewError(410, "subtraction underflows the amount")

	MemberOfOppositeCohort = NewError(500, "account is a member of the cohort not being elected")
	NotCompliantNominee    = NewError(501, "account is not a compliant nominee of this cycle")
	NotContender           = NewError(502, "account is not a registered contender of this cycle")
	InvalidCohort          = NewError(503, "invalid cohort")

	InsufficientCompliantNominees = NewError(600, "compliant nominee count is below the target member count")
	InsufficientNomineesWithVotes = NewError(601, "fewer nominees received votes than the target member count")

	InvalidConfig    = NewError(700, "invalid election configuration")
	InvalidCycleDate = NewError(701, "invalid cycle date; day must be in [1, 28]")
)

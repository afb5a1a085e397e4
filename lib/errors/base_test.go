package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, AlreadyExcluded, AlreadyExcluded)

	e := AlreadyExcluded
	e0 := AlreadyExcluded.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.SetData("cycle", uint64(3))
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsIsCode(t *testing.T) {
	require.True(t, IsCode(CycleNotYetScheduled, CycleNotYetScheduled))
	require.True(t, IsCode(CycleNotYetScheduled.Clone().SetData("cycle", uint64(1)), CycleNotYetScheduled))
	require.False(t, IsCode(CycleNotYetScheduled, CycleStillActive))
	require.False(t, IsCode(nil, CycleStillActive))
	require.False(t, IsCode(fmt.Errorf("plain"), CycleStillActive))
}

func TestErrorsRLP(t *testing.T) {
	{
		b, err := rlp.EncodeToBytes(CycleNotFound)
		require.NoError(t, err)
		require.NotEmpty(t, b)
	}

	{
		withData := VotingNotOpen.Clone().SetData("now", uint64(100))
		b, err := rlp.EncodeToBytes(withData)
		require.NoError(t, err)
		require.NotEmpty(t, b)
	}
}

func TestErrorsCodesAreUnique(t *testing.T) {
	all := []*Error{
		StorageRecordDoesNotExist, StorageRecordAlreadyExists, StorageCoreError,
		CycleNotFound, CycleNotYetScheduled, VotingNotOpen, VotingStillOpen,
		VettingElapsed, VettingStillOpen,
		NotReviewer, NotOwner,
		CycleStillActive, AlreadyContender, AlreadyExcluded, AlreadyCompliantNominee,
		CycleAlreadyFinalized, ZeroVoteWeight, InsufficientVotingPower,
		ProposalCreationForbidden, InvalidCycleIndex, MaximumVotingPowerReached,
		AmountUnderflow,
		MemberOfOppositeCohort, NotCompliantNominee, NotContender, InvalidCohort,
		InsufficientCompliantNominees, InsufficientNomineesWithVotes,
		InvalidConfig, InvalidCycleDate,
	}

	seen := map[uint]bool{}
	for _, e := range all {
		require.False(t, seen[e.Code], "duplicated error code: %d", e.Code)
		seen[e.Code] = true
	}
}

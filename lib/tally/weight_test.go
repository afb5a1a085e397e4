package tally

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/common"
)

func TestVoteWeight(t *testing.T) {
	const (
		votingStart   uint64 = 1000
		fullWeightEnd uint64 = 2000
		votingEnd     uint64 = 4000
	)

	weight := func(now uint64, votes common.Amount) common.Amount {
		return VoteWeight(votingStart, fullWeightEnd, votingEnd, now, votes)
	}

	// full weight throughout the full-weight window, boundary included
	require.Equal(t, common.Amount(100), weight(votingStart, 100))
	require.Equal(t, common.Amount(100), weight(1500, 100))
	require.Equal(t, common.Amount(100), weight(fullWeightEnd, 100))

	// halfway through the decay window
	require.Equal(t, common.Amount(50), weight(3000, 100))

	// zero at the very end of the window
	require.Equal(t, common.Amount(0), weight(votingEnd, 100))

	// zero outside the window
	require.Equal(t, common.Amount(0), weight(votingStart-1, 100))
	require.Equal(t, common.Amount(0), weight(votingEnd+1, 100))

	// zero votes carry zero weight even at full weight
	require.Equal(t, common.Amount(0), weight(votingStart, 0))
}

func TestVoteWeightStrictlyDecreasing(t *testing.T) {
	const (
		votingStart   uint64 = 0
		fullWeightEnd uint64 = 100
		votingEnd     uint64 = 1100
	)

	previous := VoteWeight(votingStart, fullWeightEnd, votingEnd, fullWeightEnd, 1000)
	require.Equal(t, common.Amount(1000), previous)

	// steps land exactly on votingEnd so the loop checks the terminal zero
	for now := fullWeightEnd + 100; now <= votingEnd; now += 100 {
		weight := VoteWeight(votingStart, fullWeightEnd, votingEnd, now, 1000)
		require.True(t, weight < previous, "weight must fall after the full-weight window: now=%d", now)
		previous = weight
	}
	require.Equal(t, common.Amount(0), previous)
	require.Equal(t, common.Amount(0), VoteWeight(votingStart, fullWeightEnd, votingEnd, votingEnd, 1000))
}

func TestVoteWeightSmallVotesDoNotTruncateEarly(t *testing.T) {
	const (
		votingStart   uint64 = 0
		fullWeightEnd uint64 = 10
		votingEnd     uint64 = 1010
	)

	// one vote halfway through a long decay window: multiplying before
	// dividing keeps the fraction alive as long as num >= den
	require.Equal(t, common.Amount(0), VoteWeight(votingStart, fullWeightEnd, votingEnd, 600, 1))
	require.Equal(t, common.Amount(1), VoteWeight(votingStart, fullWeightEnd, votingEnd, 10, 1))

	// two votes halfway keep weight 1 instead of rounding to zero twice
	require.Equal(t, common.Amount(1), VoteWeight(votingStart, fullWeightEnd, votingEnd, 510, 2))
}

func TestVoteWeightLargeVotes(t *testing.T) {
	const (
		votingStart   uint64 = 0
		fullWeightEnd uint64 = 1
		votingEnd     uint64 = 1000001
	)

	// votes near the power cap must not overflow the intermediate product
	votes := common.Amount(common.MaximumVotingPower)
	got := VoteWeight(votingStart, fullWeightEnd, votingEnd, 500001, votes)
	require.Equal(t, common.Amount(uint64(votes)/2), got)
}

package election

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/common"
)

type countingPowerSource struct {
	powers map[string]common.Amount
	calls  int
}

func (s *countingPowerSource) GetVotes(address string, checkpoint uint64) (common.Amount, error) {
	s.calls++
	return s.powers[address], nil
}

func TestStaticPowerSource(t *testing.T) {
	source := NewStaticPowerSource(map[string]common.Amount{"GVOTER": 77})

	got, err := source.GetVotes("GVOTER", 1000)
	require.NoError(t, err)
	require.Equal(t, common.Amount(77), got)

	// unknown accounts hold no power
	got, err = source.GetVotes("GUNKNOWN", 1000)
	require.NoError(t, err)
	require.Equal(t, common.Amount(0), got)
}

func TestCachingPowerSource(t *testing.T) {
	source := &countingPowerSource{powers: map[string]common.Amount{"GVOTER": 77}}
	cached, err := NewCachingPowerSource(source, 16)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := cached.GetVotes("GVOTER", 1000)
		require.NoError(t, err)
		require.Equal(t, common.Amount(77), got)
	}
	require.Equal(t, 1, source.calls)

	// a different checkpoint is a different entry
	_, err = cached.GetVotes("GVOTER", 2000)
	require.NoError(t, err)
	require.Equal(t, 2, source.calls)
}

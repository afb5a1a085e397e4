package common

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave.io/conclave/lib/errors"
)

func TestAmountAddSub(t *testing.T) {
	a := Amount(100)

	n, err := a.Add(Amount(50))
	require.NoError(t, err)
	require.Equal(t, Amount(150), n)

	n, err = a.Sub(Amount(30))
	require.NoError(t, err)
	require.Equal(t, Amount(70), n)

	_, err = a.Sub(Amount(200))
	require.Equal(t, errors.AmountUnderflow, err)

	_, err = MaximumVotingPower.Add(Amount(1))
	require.Equal(t, errors.MaximumVotingPowerReached, err)
}

func TestAmountMustAddPanics(t *testing.T) {
	require.Panics(t, func() {
		MaximumVotingPower.MustAdd(Amount(1))
	})
	require.Panics(t, func() {
		Amount(1).MustSub(Amount(2))
	})
}

func TestAmountFromString(t *testing.T) {
	a, err := AmountFromString("12345")
	require.NoError(t, err)
	require.Equal(t, Amount(12345), a)

	_, err = AmountFromString("-1")
	require.Error(t, err)

	_, err = AmountFromString("notanumber")
	require.Error(t, err)
}

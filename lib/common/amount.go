//
// Define the `Amount` type, used for voting power and accumulated vote
// weight across the code base.
//
// In addition to the `Amount` type, some member functions are defined:
// - `Add` / `Sub` do an addition / substraction and return an error object
// - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a `panic`.
//   Those are provided for testing / quick prototyping and should not be in production code.
// - Invariant `panic`s if the instance it's called on violates its invariant (see Contract programming)
//
package common

import (
	"fmt"
	"strconv"

	"conclave.io/conclave/lib/errors"
)

const (
	// The maximum voting power any single account can hold. Products of
	// an `Amount` and a window length must fit into a big.Int without
	// surprises, so the cap is kept well below the uint64 ceiling.
	MaximumVotingPower Amount = 1 << 62
)

// Main vote-weight type used across conclave
type Amount uint64

// Check this type's invariant, that is, its value is <= MaximumVotingPower
func (a Amount) Invariant() {
	if a > MaximumVotingPower {
		// `uint64` is necessary to avoid a recursive call to `String`
		// which would lead to an infinite recursion
		panic(fmt.Errorf("Amount '%d' is higher than the maximum voting power (%d)", uint64(a), uint64(MaximumVotingPower)))
	}
}

// Stringer interface implementation
func (a Amount) String() string {
	a.Invariant()
	return strconv.FormatUint(uint64(a), 10)
}

//
// Add an `Amount` to this `Amount`
//
// If the resulting value would overflow MaximumVotingPower, an error is
// returned, along with the value (which would trigger a `panic` if used).
//
func (a Amount) Add(added Amount) (n Amount, err error) {
	a.Invariant()
	added.Invariant()
	if n = a + added; n > MaximumVotingPower {
		err = errors.MaximumVotingPowerReached
	}
	return
}

// Counterpart of `Add`
func (a Amount) Sub(sub Amount) (Amount, error) {
	a.Invariant()
	sub.Invariant()
	if sub > a {
		return MaximumVotingPower + 1, errors.AmountUnderflow
	}
	return a - sub, nil
}

// Version of `Add` which panics instead of returning an error
func (a Amount) MustAdd(added Amount) Amount {
	n, err := a.Add(added)
	if err != nil {
		panic(err)
	}
	return n
}

// Version of `Sub` which panics instead of returning an error
func (a Amount) MustSub(sub Amount) Amount {
	n, err := a.Sub(sub)
	if err != nil {
		panic(err)
	}
	return n
}

// Parse an `Amount` from a string input
func AmountFromString(str string) (Amount, error) {
	value, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return Amount(0), err
	}
	if Amount(value) > MaximumVotingPower {
		return Amount(0), errors.MaximumVotingPowerReached
	}
	return Amount(value), nil
}

// Version of `AmountFromString` which panics instead of returning an error
func MustAmountFromString(str string) Amount {
	a, err := AmountFromString(str)
	if err != nil {
		panic(err)
	}
	return a
}

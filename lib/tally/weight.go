package tally

import (
	"math/big"

	"conclave.io/conclave/lib/common"
)

// VoteWeight converts raw votes cast at `now` into decayed weight.
//
// Zero outside [votingStart, votingEnd]. Full weight through the
// full-weight window, then linear decay down to zero at votingEnd:
//
//	weight = votes * (votingEnd - now) / (votingEnd - fullWeightEnd)
//
// The numerator is computed before the division so that small vote
// counts do not truncate to zero early.
func VoteWeight(votingStart, fullWeightEnd, votingEnd, now uint64, votes common.Amount) common.Amount {
	if votes == 0 {
		return 0
	}
	if now < votingStart || now > votingEnd {
		return 0
	}
	if now <= fullWeightEnd {
		return votes
	}

	num := new(big.Int).Mul(
		new(big.Int).SetUint64(uint64(votes)),
		new(big.Int).SetUint64(votingEnd-now),
	)
	den := new(big.Int).SetUint64(votingEnd - fullWeightEnd)

	return common.Amount(num.Div(num, den).Uint64())
}

package engine

import (
	"cosmossdk.io/math"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// Penalty is the outcome of pricing an execution at one instant: the total
// amount forfeited from the security deposit, the share rewarded to whoever
// triggers settlement, and the remainder retained for the fee recipient.
type Penalty struct {
	Total          math.Int
	ExecutorReward math.Int
	Retained       math.Int
}

func zeroPenalty() Penalty {
	return Penalty{Total: math.ZeroInt(), ExecutorReward: math.ZeroInt(), Retained: math.ZeroInt()}
}

// ComputePenalty prices the security-deposit forfeit for executing at tick
// now. Three regimes, measured from the grace boundary
// (started_at + duration + grace_period):
//
//  1. at or before the boundary: no penalty
//  2. within penalty_period past it: linear growth from initial_penalty_bps
//     to the full deposit
//  3. beyond penalty_period: the whole deposit is forfeited
func ComputePenalty(p types.AuctionParameters, auction *types.Auction, now uint64) Penalty {
	graceTick := auction.GraceTick(p)
	if now <= graceTick {
		return zeroPenalty()
	}

	deposit := auction.SecurityDeposit
	elapsed := now - graceTick
	var total math.Int
	if elapsed >= uint64(p.PenaltyPeriod) || p.InitialPenaltyBps >= types.BpsDenom {
		total = deposit
	} else {
		// initial + (10000-initial) * elapsed/period, in bps of the deposit
		growth := math.NewIntFromUint64(uint64(types.BpsDenom - p.InitialPenaltyBps)).
			Mul(math.NewIntFromUint64(elapsed)).
			Quo(math.NewIntFromUint64(uint64(p.PenaltyPeriod)))
		bps := math.NewIntFromUint64(uint64(p.InitialPenaltyBps)).Add(growth)
		total = deposit.Mul(bps).Quo(math.NewInt(types.BpsDenom))
		if total.GT(deposit) {
			total = deposit
		}
	}

	reward := total.Mul(math.NewIntFromUint64(uint64(p.UserPenaltyRewardBps))).Quo(math.NewInt(types.BpsDenom))
	if reward.GT(total) {
		reward = total
	}
	return Penalty{
		Total:          total,
		ExecutorReward: reward,
		Retained:       total.Sub(reward),
	}
}

// MinOfferDelta is the anti-carping threshold: the smallest price improvement
// a new offer must bring, as a fraction of the pre-penalty security deposit.
func MinOfferDelta(p types.AuctionParameters, auction *types.Auction) math.Int {
	return auction.SecurityDeposit.
		Mul(math.NewIntFromUint64(uint64(p.MinOfferDeltaBps))).
		Quo(math.NewInt(types.BpsDenom))
}

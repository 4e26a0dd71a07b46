package engine

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

func TestComputePenalty(t *testing.T) {
	// started_at 0, duration 10, grace 20: grace boundary at tick 30.
	auction := &types.Auction{
		StartedAt:       0,
		SecurityDeposit: math.NewInt(200),
	}

	tests := []struct {
		name       string
		now        uint64
		wantTotal  int64
		wantReward int64
	}{
		{
			name:      "during auction",
			now:       5,
			wantTotal: 0,
		},
		{
			name:      "within grace period",
			now:       15,
			wantTotal: 0,
		},
		{
			name:      "at grace boundary",
			now:       30,
			wantTotal: 0,
		},
		{
			name: "one tick past grace",
			now:  31,
			// 1000 + 9000*1/50 = 1180 bps of 200
			wantTotal:  23,
			wantReward: 4,
		},
		{
			name: "half of penalty period",
			now:  55,
			// 1000 + 9000*25/50 = 5500 bps of 200
			wantTotal:  110,
			wantReward: 22,
		},
		{
			name:       "at end of penalty period",
			now:        80,
			wantTotal:  200,
			wantReward: 40,
		},
		{
			name:       "far beyond penalty period",
			now:        10_000,
			wantTotal:  200,
			wantReward: 40,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePenalty(sampleParams, auction, tt.now)
			assert.Equal(t, tt.wantTotal, p.Total.Int64())
			assert.Equal(t, tt.wantReward, p.ExecutorReward.Int64())
			assert.Equal(t, tt.wantTotal-tt.wantReward, p.Retained.Int64())
		})
	}
}

func TestComputePenaltyInitialAtFullBps(t *testing.T) {
	params := sampleParams
	params.InitialPenaltyBps = types.BpsDenom

	auction := &types.Auction{StartedAt: 0, SecurityDeposit: math.NewInt(200)}

	p := ComputePenalty(params, auction, 31)
	assert.Equal(t, int64(200), p.Total.Int64(), "full deposit forfeited immediately past grace")
}

func TestMinOfferDelta(t *testing.T) {
	auction := &types.Auction{SecurityDeposit: math.NewInt(200)}

	// 500 bps of 200
	assert.Equal(t, int64(10), MinOfferDelta(sampleParams, auction).Int64())

	params := sampleParams
	params.MinOfferDeltaBps = 0
	assert.True(t, MinOfferDelta(params, auction).IsZero())
}

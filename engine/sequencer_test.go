package engine

import (
	stdmath "math"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

func TestReserveSequenceContiguous(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	key := types.SequencerKey{SourceChain: testSourceChain, Sender: addr(0xbb)}

	// interleave reservations from distinct orders against one key
	for i := 0; i < 5; i++ {
		hash := types.OrderHash{byte(i + 1)}
		reservation, err := env.engine.reserveSequence(key, hash, "beneficiary")
		require.NoError(t, err)
		assert.Equal(t, uint64(i), reservation.Sequence)
	}

	seq, err := env.engine.GetSequencer(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), seq.NextSequence)
}

func TestReserveSequenceIndependentKeys(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	keyA := types.SequencerKey{SourceChain: testSourceChain, Sender: addr(0x01)}
	keyB := types.SequencerKey{SourceChain: testSourceChain, Sender: addr(0x02)}

	ra, err := env.engine.reserveSequence(keyA, types.OrderHash{0x01}, "x")
	require.NoError(t, err)
	rb, err := env.engine.reserveSequence(keyB, types.OrderHash{0x02}, "x")
	require.NoError(t, err)

	assert.Equal(t, uint64(0), ra.Sequence)
	assert.Equal(t, uint64(0), rb.Sequence, "each key owns its own counter")
}

func TestReserveSequenceDuplicateOrder(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	key := types.SequencerKey{SourceChain: testSourceChain, Sender: addr(0xbb)}
	hash := types.OrderHash{0x01}

	_, err := env.engine.reserveSequence(key, hash, "x")
	require.NoError(t, err)
	_, err = env.engine.reserveSequence(key, hash, "x")
	assert.ErrorIs(t, err, types.ErrReservationExists)
}

func TestReserveSequenceOverflow(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	key := types.SequencerKey{SourceChain: testSourceChain, Sender: addr(0xbb)}

	require.NoError(t, env.store.PutSequencer(&types.FastFillSequencer{
		Key:          key,
		NextSequence: stdmath.MaxUint64,
	}))

	_, err := env.engine.reserveSequence(key, types.OrderHash{0x01}, "x")
	assert.ErrorIs(t, err, types.ErrSequenceOverflow)

	// the counter must not wrap
	seq, err := env.engine.GetSequencer(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(stdmath.MaxUint64), seq.NextSequence)
}

// Sequences stay contiguous no matter which settlement path reserves them.
func TestSequencingAcrossSettlementPaths(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	sender := addr(0xbb)
	key := types.SequencerKey{SourceChain: testSourceChain, Sender: sender}

	// order 1: auctioned and executed
	order1 := sampleOrder(testLocalChain)
	env.fundedAuction(t, order1, "bidder-a", "token-a", 100)
	env.clock.set(15)
	exec, err := env.engine.ExecuteFastOrder(orderHash(t, order1), order1, "executor", "token-a")
	require.NoError(t, err)
	require.NotNil(t, exec.Reservation)

	// order 2: slow path, no auction
	order2 := sampleOrder(testLocalChain)
	order2.RefundAddress = addr(0x77) // different hash, same sender
	env.bank.Mint("slow-custody", math.NewInt(1000))
	settlement, err := env.engine.SettleNone(order2, testSourceChain, "slow-custody", math.NewInt(1000), &types.SlowOrderResponse{BaseFee: 25}, "preparer")
	require.NoError(t, err)
	require.NotNil(t, settlement.Reservation)

	// order 3: auctioned again
	order3 := sampleOrder(testLocalChain)
	order3.RefundAddress = addr(0x78)
	env.fundedAuction(t, order3, "bidder-a", "token-a", 100)
	env.clock.set(30)
	exec3, err := env.engine.ExecuteFastOrder(orderHash(t, order3), order3, "executor", "token-a")
	require.NoError(t, err)

	assert.Equal(t, uint64(0), exec.Reservation.Sequence)
	assert.Equal(t, uint64(1), settlement.Reservation.Sequence)
	assert.Equal(t, uint64(2), exec3.Reservation.Sequence)

	seq, err := env.engine.GetSequencer(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), seq.NextSequence)
}

func TestFastFillLifecycle(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	order := sampleOrder(testLocalChain)
	hash := orderHash(t, order)
	key := types.SequencerKey{SourceChain: testSourceChain, Sender: order.Sender}

	env.fundedAuction(t, order, "bidder-a", "token-a", 100)
	env.tokens.SetOwner("token-a", "owner-a")
	env.clock.set(15)
	exec, err := env.engine.ExecuteFastOrder(hash, order, "executor", "token-a")
	require.NoError(t, err)

	fill, err := env.engine.CreateFastFill(order, exec.FillAmount)
	require.NoError(t, err)
	assert.False(t, fill.Redeemed)
	assert.Equal(t, "owner-a", fill.Info.PreparedBy)
	assert.Equal(t, exec.FillAmount, fill.Info.Amount)

	t.Run("reservation is consumed", func(t *testing.T) {
		_, err := env.engine.CreateFastFill(order, exec.FillAmount)
		assert.ErrorIs(t, err, types.ErrNoReservation)
	})

	t.Run("redeem flips exactly once", func(t *testing.T) {
		redeemed, err := env.engine.RedeemFastFill(key, fill.Sequence, "redeemer-1")
		require.NoError(t, err)
		assert.True(t, redeemed.Redeemed)
		assert.Equal(t, "redeemer-1", redeemed.Info.Redeemer)

		_, err = env.engine.RedeemFastFill(key, fill.Sequence, "redeemer-2")
		assert.ErrorIs(t, err, types.ErrFastFillAlreadyRedeemed)
	})

	t.Run("unknown sequence", func(t *testing.T) {
		_, err := env.engine.RedeemFastFill(key, 99, "redeemer-1")
		assert.ErrorIs(t, err, types.ErrNoFastFill)
	})
}

// Closed token accounts forfeit the beneficiary slot to the executor.
func TestBeneficiaryFallback(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	order := sampleOrder(testLocalChain)
	hash := orderHash(t, order)

	env.fundedAuction(t, order, "bidder-a", "token-a", 100)
	env.tokens.SetOwner("token-a", "owner-a")
	env.tokens.CloseAccount("token-a")

	env.clock.set(15)
	exec, err := env.engine.ExecuteFastOrder(hash, order, "executor", "token-a")
	require.NoError(t, err)

	assert.Equal(t, "executor", exec.Reservation.Beneficiary)
}

package engine

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

func TestCreateAuction(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	order := sampleOrder(testLocalChain)
	hash := orderHash(t, order)

	auction := env.fundedAuction(t, order, "bidder-a", "token-a", 100)

	assert.Equal(t, hash, auction.ID)
	assert.Equal(t, types.AuctionActive, auction.Status.Kind)
	assert.Equal(t, int64(1000), auction.DepositedAmount.Int64())
	assert.Equal(t, int64(200), auction.SecurityDeposit.Int64())
	assert.Equal(t, "bidder-a", auction.BestOffer.Bidder)
	assert.Equal(t, auction.BestOffer, auction.InitialOffer)

	// amount_in + security_deposit moved into custody
	assert.Equal(t, int64(1200), env.bank.Balance(custodyAccount(hash)).Int64())
	assert.Equal(t, int64(8800), env.bank.Balance("bidder-a").Int64())

	t.Run("duplicate order rejected", func(t *testing.T) {
		_, err := env.engine.CreateAuction(order, testSourceChain, "bidder-b", "token-b", math.NewInt(90), "preparer")
		assert.ErrorIs(t, err, types.ErrAuctionExists)
	})

	t.Run("paused engine rejects new auctions", func(t *testing.T) {
		env.engine.SetPaused(true)
		defer env.engine.SetPaused(false)

		other := sampleOrder(testLocalChain)
		other.Sender = addr(0x99)
		_, err := env.engine.CreateAuction(other, testSourceChain, "bidder-b", "token-b", math.NewInt(90), "preparer")
		assert.ErrorIs(t, err, types.ErrPaused)
	})

	t.Run("offer above max fee rejected", func(t *testing.T) {
		other := sampleOrder(testLocalChain)
		other.Sender = addr(0x98)
		_, err := env.engine.CreateAuction(other, testSourceChain, "bidder-b", "token-b", math.NewInt(201), "preparer")
		assert.ErrorIs(t, err, types.ErrInvalidOffer)
	})

	t.Run("expired deadline rejected", func(t *testing.T) {
		other := sampleOrder(testLocalChain)
		other.Sender = addr(0x97)
		other.Deadline = 1
		env.clock.set(5)
		defer env.clock.set(0)
		_, err := env.engine.CreateAuction(other, testSourceChain, "bidder-b", "token-b", math.NewInt(90), "preparer")
		assert.ErrorIs(t, err, types.ErrDeadlineExceeded)
	})
}

func TestImproveOffer(t *testing.T) {
	order := sampleOrder(testLocalChain)
	hash := orderHash(t, order)

	tests := []struct {
		name     string
		setup    func(env *testEnv)
		bidder   string
		newPrice int64
		wantErr  error
	}{
		{
			name:     "valid improvement by new bidder",
			bidder:   "bidder-b",
			newPrice: 90,
		},
		{
			name:     "valid improvement by current best bidder",
			bidder:   "bidder-a",
			newPrice: 90,
		},
		{
			name:     "equal price rejected",
			bidder:   "bidder-b",
			newPrice: 100,
			wantErr:  types.ErrOfferPriceNotImproved,
		},
		{
			name:     "higher price rejected",
			bidder:   "bidder-b",
			newPrice: 110,
			wantErr:  types.ErrOfferPriceNotImproved,
		},
		{
			name: "carping rejected",
			// min delta is 10 (500 bps of deposit 200)
			bidder:   "bidder-b",
			newPrice: 95,
			wantErr:  types.ErrCarpingNotAllowed,
		},
		{
			name:     "expired auction rejected",
			setup:    func(env *testEnv) { env.clock.set(11) },
			bidder:   "bidder-b",
			newPrice: 90,
			wantErr:  types.ErrAuctionPeriodExpired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, sampleParams)
			env.fundedAuction(t, order, "bidder-a", "token-a", 100)
			env.bank.Mint(tt.bidder, math.NewInt(10_000))
			if tt.setup != nil {
				tt.setup(env)
			}

			auction, err := env.engine.ImproveOffer(hash, tt.bidder, "token-b", math.NewInt(tt.newPrice))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				// rejected call leaves state unchanged
				current, gerr := env.engine.GetAuction(hash)
				require.NoError(t, gerr)
				assert.Equal(t, "bidder-a", current.BestOffer.Bidder)
				assert.Equal(t, int64(100), current.BestOffer.Price.Int64())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bidder, auction.BestOffer.Bidder)
			assert.Equal(t, tt.newPrice, auction.BestOffer.Price.Int64())
		})
	}
}

func TestImproveOfferFundsSwap(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	order := sampleOrder(testLocalChain)
	hash := orderHash(t, order)

	env.fundedAuction(t, order, "bidder-a", "token-a", 100)
	env.bank.Mint("bidder-b", math.NewInt(10_000))

	_, err := env.engine.ImproveOffer(hash, "bidder-b", "token-b", math.NewInt(90))
	require.NoError(t, err)

	// displaced bidder is made whole, new bidder is staked
	assert.Equal(t, int64(10_000), env.bank.Balance("bidder-a").Int64())
	assert.Equal(t, int64(8800), env.bank.Balance("bidder-b").Int64())
	assert.Equal(t, int64(1200), env.bank.Balance(custodyAccount(hash)).Int64())
}

func TestImproveOfferStrictlyDecreasing(t *testing.T) {
	env := newTestEnv(t, sampleParams)
	order := sampleOrder(testLocalChain)
	hash := orderHash(t, order)

	env.fundedAuction(t, order, "bidder-a", "token-a", 200)
	env.bank.Mint("bidder-b", math.NewInt(10_000))

	prices := []int64{180, 160, 150}
	last := int64(200)
	for _, price := range prices {
		auction, err := env.engine.ImproveOffer(hash, "bidder-b", "token-b", math.NewInt(price))
		require.NoError(t, err)
		assert.Less(t, auction.BestOffer.Price.Int64(), last)
		last = auction.BestOffer.Price.Int64()
	}

	_, err := env.engine.ImproveOffer(hash, "bidder-a", "token-a", math.NewInt(150))
	assert.ErrorIs(t, err, types.ErrOfferPriceNotImproved)
}

func TestImproveOfferNoAuction(t *testing.T) {
	env := newTestEnv(t, sampleParams)

	_, err := env.engine.ImproveOffer(types.OrderHash{0x01}, "bidder-a", "token-a", math.NewInt(90))
	assert.ErrorIs(t, err, types.ErrNoAuction)
}

package engine

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/store"
	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

const (
	testLocalChain  uint16 = 1
	testRemoteChain uint16 = 23
	testSourceChain uint16 = 6

	testFeeRecipient = "fee-recipient"
	testEnactDelay   = 100
	testCoolDown     = 50
)

var sampleParams = types.AuctionParameters{
	UserPenaltyRewardBps: 2000,
	InitialPenaltyBps:    1000,
	Duration:             10,
	GracePeriod:          20,
	PenaltyPeriod:        50,
	MinOfferDeltaBps:     500,
	SecurityDepositBps:   0,
}

type testEnv struct {
	engine *Engine
	bank   *MemoryBank
	clock  *manualClock
	tokens *memoryTokenResolver
	store  *store.Store
	params *ParameterStore
}

func newTestEnv(t *testing.T, p types.AuctionParameters) *testEnv {
	t.Helper()

	st := store.New(store.NewMemDB())
	clock := &manualClock{}
	logger := zap.NewNop()

	params := NewParameterStore(st, clock, testEnactDelay, logger)
	_, err := params.Bootstrap(p)
	require.NoError(t, err)

	bank := NewMemoryBank()
	tokens := NewMemoryTokenResolver()
	eng := New(
		Config{
			LocalChainID:    testLocalChain,
			FeeRecipient:    testFeeRecipient,
			ArchiveCoolDown: testCoolDown,
		},
		st, params, bank, clock, tokens,
		LogMessenger{Logger: logger},
		logger,
	)

	return &testEnv{
		engine: eng,
		bank:   bank,
		clock:  clock,
		tokens: tokens,
		store:  st,
		params: params,
	}
}

func addr(b byte) types.Address {
	var a types.Address
	a[31] = b
	return a
}

// sampleOrder builds an order with amount_in 1000, max fee 200, init auction
// fee 50, so the security deposit under sampleParams is exactly the max fee.
func sampleOrder(targetChain uint16) *types.FastMarketOrder {
	return &types.FastMarketOrder{
		AmountIn:        1000,
		MinAmountOut:    900,
		TargetChain:     targetChain,
		Redeemer:        addr(0xaa),
		Sender:          addr(0xbb),
		RefundAddress:   addr(0xcc),
		MaxFee:          200,
		InitAuctionFee:  50,
		RedeemerMessage: []byte("hello"),
	}
}

func orderHash(t *testing.T, order *types.FastMarketOrder) types.OrderHash {
	t.Helper()
	hash, err := order.Hash()
	require.NoError(t, err)
	return hash
}

// fundedAuction creates an auction for order at tick 0 with bidder A at the
// given offer price.
func (env *testEnv) fundedAuction(t *testing.T, order *types.FastMarketOrder, bidder, tokenAccount string, price int64) *types.Auction {
	t.Helper()
	env.bank.Mint(bidder, math.NewInt(10_000))
	auction, err := env.engine.CreateAuction(order, testSourceChain, bidder, tokenAccount, math.NewInt(price), "preparer")
	require.NoError(t, err)
	return auction
}

// totalSupply sums every account the tests touch, to assert conservation.
func (env *testEnv) totalSupply(accounts ...string) math.Int {
	total := math.ZeroInt()
	for _, acc := range accounts {
		total = total.Add(env.bank.Balance(acc))
	}
	return total
}

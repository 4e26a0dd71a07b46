package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/store"
	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// Config fixes the engine's deployment-level knobs. The economic knobs live
// in types.AuctionParameters and are versioned through the ParameterStore.
type Config struct {
	// LocalChainID selects the fast-fill path: fills targeting this chain
	// are sequenced locally instead of handed to the messenger.
	LocalChainID uint16

	// FeeRecipient receives base fees and the retained share of penalties.
	FeeRecipient string

	// ArchiveCoolDown is the number of ticks a settled auction must rest
	// before it may be archived.
	ArchiveCoolDown uint64
}

// Engine owns the auction registry, settlement paths, and fast-fill
// sequencing. All state lives in the store; the engine holds only locks.
type Engine struct {
	cfg    Config
	store  *store.Store
	params *ParameterStore
	bank   Bank
	clock  Clock
	tokens TokenAccountResolver
	bridge Messenger
	logger *zap.Logger

	paused atomic.Bool

	auctionLocks   *keyedMutex
	sequencerLocks *keyedMutex
}

func New(
	cfg Config,
	st *store.Store,
	params *ParameterStore,
	bank Bank,
	clock Clock,
	tokens TokenAccountResolver,
	bridge Messenger,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		cfg:            cfg,
		store:          st,
		params:         params,
		bank:           bank,
		clock:          clock,
		tokens:         tokens,
		bridge:         bridge,
		logger:         logger.With(zap.String("module", "engine")),
		auctionLocks:   newKeyedMutex(),
		sequencerLocks: newKeyedMutex(),
	}
}

// SetPaused flips the pause flag handed down from the admin surface. A paused
// engine refuses new auctions; live auctions still settle.
func (e *Engine) SetPaused(paused bool) {
	e.paused.Store(paused)
	e.logger.Info("pause flag updated", zap.Bool("paused", paused))
}

func (e *Engine) Paused() bool {
	return e.paused.Load()
}

// GetAuction exposes the current auction record for queries.
func (e *Engine) GetAuction(hash types.OrderHash) (*types.Auction, error) {
	a, err := e.store.GetAuction(hash)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, types.ErrNoAuction
	}
	return a, nil
}

// custodyAccount derives the bank account holding one auction's funds.
func custodyAccount(hash types.OrderHash) string {
	return "custody:" + hash.String()
}

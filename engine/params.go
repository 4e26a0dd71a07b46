package engine

import (
	"math"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/store"
	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// ParameterStore holds the versioned auction parameters. A new version is
// adopted only through Propose followed by Enact after the mandatory delay;
// versions referenced by live auctions are never mutated.
type ParameterStore struct {
	mu     sync.Mutex
	store  *store.Store
	clock  Clock
	delay  uint64
	logger *zap.Logger
}

func NewParameterStore(st *store.Store, clock Clock, enactDelay uint64, logger *zap.Logger) *ParameterStore {
	return &ParameterStore{
		store:  st,
		clock:  clock,
		delay:  enactDelay,
		logger: logger.With(zap.String("module", "parameter-store")),
	}
}

// Bootstrap installs the first parameter version directly. It refuses to run
// once any version is active; later changes go through Propose/Enact.
func (ps *ParameterStore) Bootstrap(params types.AuctionParameters) (uint32, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, ok, err := ps.store.ActiveConfigID(); err != nil {
		return 0, err
	} else if ok {
		return 0, errorsmod.Wrap(types.ErrInvalidParameters, "parameters already bootstrapped")
	}
	const configID = 1
	if err := ps.store.PutParameters(configID, params); err != nil {
		return 0, err
	}
	if err := ps.store.SetActiveConfigID(configID); err != nil {
		return 0, err
	}
	ps.logger.Info("parameters bootstrapped", zap.Uint32("config_id", configID))
	return configID, nil
}

// Active returns the enacted config id and its parameters.
func (ps *ParameterStore) Active() (uint32, types.AuctionParameters, error) {
	id, ok, err := ps.store.ActiveConfigID()
	if err != nil {
		return 0, types.AuctionParameters{}, err
	}
	if !ok {
		return 0, types.AuctionParameters{}, errorsmod.Wrap(types.ErrInvalidParameters, "no active parameters")
	}
	params, err := ps.store.GetParameters(id)
	if err != nil {
		return 0, types.AuctionParameters{}, err
	}
	if params == nil {
		return 0, types.AuctionParameters{}, errorsmod.Wrapf(types.ErrAuctionConfigMismatch, "active config %d missing", id)
	}
	return id, *params, nil
}

// ForConfig returns the parameter version an auction was created under.
func (ps *ParameterStore) ForConfig(configID uint32) (types.AuctionParameters, error) {
	params, err := ps.store.GetParameters(configID)
	if err != nil {
		return types.AuctionParameters{}, err
	}
	if params == nil {
		return types.AuctionParameters{}, errorsmod.Wrapf(types.ErrAuctionConfigMismatch, "config %d not found", configID)
	}
	return *params, nil
}

// Propose records a new parameter version for later enactment.
func (ps *ParameterStore) Propose(params types.AuctionParameters, proposer string) (*types.Proposal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()

	id, err := ps.store.NextProposalID()
	if err != nil {
		return nil, err
	}
	if id == math.MaxUint64 {
		return nil, types.ErrProposalIDOverflow
	}
	now := ps.clock.Now()
	proposal := &types.Proposal{
		ID:          id,
		Params:      params,
		Proposer:    proposer,
		ProposedAt:  now,
		EnactableAt: now + ps.delay,
	}
	if err := ps.store.PutProposal(proposal); err != nil {
		return nil, err
	}
	if err := ps.store.SetNextProposalID(id + 1); err != nil {
		return nil, err
	}
	ps.logger.Info("parameters proposed",
		zap.Uint64("proposal_id", id),
		zap.String("proposer", proposer),
		zap.Uint64("enactable_at", proposal.EnactableAt),
	)
	return proposal, nil
}

// Enact adopts a proposed version once its delay has elapsed, bumping the
// active config id. The proposal is consumed.
func (ps *ParameterStore) Enact(proposalID uint64) (uint32, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	proposal, err := ps.store.GetProposal(proposalID)
	if err != nil {
		return 0, err
	}
	if proposal == nil {
		return 0, errorsmod.Wrapf(types.ErrNoProposal, "proposal %d", proposalID)
	}
	if now := ps.clock.Now(); now < proposal.EnactableAt {
		return 0, errorsmod.Wrapf(types.ErrProposalDelayNotElapsed, "enactable at %d, now %d", proposal.EnactableAt, now)
	}

	activeID, ok, err := ps.store.ActiveConfigID()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errorsmod.Wrap(types.ErrInvalidParameters, "no active parameters to supersede")
	}
	newID := activeID + 1
	if err := ps.store.PutParameters(newID, proposal.Params); err != nil {
		return 0, err
	}
	if err := ps.store.SetActiveConfigID(newID); err != nil {
		return 0, err
	}
	if err := ps.store.DeleteProposal(proposalID); err != nil {
		return 0, err
	}
	ps.logger.Info("parameters enacted",
		zap.Uint64("proposal_id", proposalID),
		zap.Uint32("config_id", newID),
	)
	return newID, nil
}

package engine

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// CreateAuction opens the auction for an order with the first valid offer.
// The offer price is the fee the bidder will earn; it may not exceed the
// order's max fee. The bidder's deposit (amount_in plus the security deposit)
// moves into the auction's custody in the same operation.
func (e *Engine) CreateAuction(
	order *types.FastMarketOrder,
	sourceChain uint16,
	bidder string,
	tokenAccount string,
	offerPrice math.Int,
	preparedBy string,
) (*types.Auction, error) {
	if e.Paused() {
		return nil, types.ErrPaused
	}
	hash, err := order.Hash()
	if err != nil {
		return nil, err
	}

	unlock := e.auctionLocks.lock(hash.String())
	defer unlock()

	now := e.clock.Now()
	if order.Deadline != 0 && now > uint64(order.Deadline) {
		return nil, errorsmod.Wrapf(types.ErrDeadlineExceeded, "deadline %d, now %d", order.Deadline, now)
	}
	if existing, err := e.store.GetAuction(hash); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errorsmod.Wrapf(types.ErrAuctionExists, "order %s", hash)
	}

	maxFee := math.NewIntFromUint64(order.MaxFee)
	if offerPrice.IsNegative() || offerPrice.GT(maxFee) {
		return nil, errorsmod.Wrapf(types.ErrInvalidOffer, "offer %s exceeds max fee %s", offerPrice, maxFee)
	}
	if order.AmountIn < order.MaxFee+order.InitAuctionFee {
		return nil, errorsmod.Wrapf(types.ErrInvalidOffer, "amount in %d does not cover fees", order.AmountIn)
	}

	configID, params, err := e.params.Active()
	if err != nil {
		return nil, err
	}

	amountIn := math.NewIntFromUint64(order.AmountIn)
	securityDeposit := maxFee.Add(
		amountIn.Mul(math.NewIntFromUint64(uint64(params.SecurityDepositBps))).Quo(math.NewInt(types.BpsDenom)),
	)

	custody := custodyAccount(hash)
	if err := e.bank.Move(bidder, custody, amountIn.Add(securityDeposit)); err != nil {
		return nil, err
	}

	offer := types.Offer{Bidder: bidder, TokenAccount: tokenAccount, Price: offerPrice}
	auction := &types.Auction{
		ID:              hash,
		Status:          types.StatusActive(),
		StartedAt:       now,
		ConfigID:        configID,
		BestOffer:       offer,
		InitialOffer:    offer,
		DepositedAmount: amountIn,
		SecurityDeposit: securityDeposit,
		SourceChain:     sourceChain,
		TargetChain:     order.TargetChain,
		PreparedBy:      preparedBy,
	}
	if err := e.store.PutAuction(auction); err != nil {
		return nil, err
	}

	e.logger.Info("auction created",
		zap.String("order", hash.String()),
		zap.String("bidder", bidder),
		zap.String("offer_price", offerPrice.String()),
		zap.Uint32("config_id", configID),
		zap.Uint64("started_at", now),
	)
	return auction, nil
}

// Archive removes a settled auction once the cool-down has elapsed. Called by
// the external collaborator that reclaims storage.
func (e *Engine) Archive(hash types.OrderHash) error {
	unlock := e.auctionLocks.lock(hash.String())
	defer unlock()

	auction, err := e.store.GetAuction(hash)
	if err != nil {
		return err
	}
	if auction == nil {
		return errorsmod.Wrapf(types.ErrNoAuction, "order %s", hash)
	}
	if auction.Status.Kind != types.AuctionSettled {
		return errorsmod.Wrapf(types.ErrAuctionNotSettled, "order %s is %s", hash, auction.Status.Kind)
	}
	if now := e.clock.Now(); now < auction.SettledAt+e.cfg.ArchiveCoolDown {
		return errorsmod.Wrapf(types.ErrCoolDownNotElapsed, "archivable at %d, now %d", auction.SettledAt+e.cfg.ArchiveCoolDown, now)
	}
	if err := e.store.DeleteAuction(hash); err != nil {
		return err
	}
	e.logger.Info("auction archived", zap.String("order", hash.String()))
	return nil
}

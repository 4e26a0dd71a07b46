package engine

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// ImproveOffer replaces the best offer with a strictly better one. The new
// bidder's deposit moves into custody and the displaced bidder's deposit
// moves back to them in the same operation, so custody always nets to
// deposited_amount + security_deposit.
func (e *Engine) ImproveOffer(
	hash types.OrderHash,
	bidder string,
	tokenAccount string,
	newOfferPrice math.Int,
) (*types.Auction, error) {
	unlock := e.auctionLocks.lock(hash.String())
	defer unlock()

	auction, err := e.store.GetAuction(hash)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, errorsmod.Wrapf(types.ErrNoAuction, "order %s", hash)
	}
	if auction.Status.Kind != types.AuctionActive {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotActive, "order %s is %s", hash, auction.Status.Kind)
	}

	params, err := e.params.ForConfig(auction.ConfigID)
	if err != nil {
		return nil, err
	}
	if now := e.clock.Now(); now > auction.EndTick(params) {
		return nil, errorsmod.Wrapf(types.ErrAuctionPeriodExpired, "ended at %d, now %d", auction.EndTick(params), now)
	}

	best := auction.BestOffer
	if newOfferPrice.IsNegative() || !newOfferPrice.LT(best.Price) {
		return nil, errorsmod.Wrapf(types.ErrOfferPriceNotImproved, "offer %s does not beat %s", newOfferPrice, best.Price)
	}
	if delta := MinOfferDelta(params, auction); best.Price.Sub(newOfferPrice).LT(delta) {
		return nil, errorsmod.Wrapf(types.ErrCarpingNotAllowed, "improvement %s below minimum %s", best.Price.Sub(newOfferPrice), delta)
	}

	if bidder != best.Bidder {
		stake := auction.DepositedAmount.Add(auction.SecurityDeposit)
		custody := custodyAccount(hash)
		if err := e.bank.Move(bidder, custody, stake); err != nil {
			return nil, err
		}
		if err := e.bank.Move(custody, best.Bidder, stake); err != nil {
			return nil, err
		}
	}

	auction.BestOffer = types.Offer{Bidder: bidder, TokenAccount: tokenAccount, Price: newOfferPrice}
	if err := e.store.PutAuction(auction); err != nil {
		return nil, err
	}

	e.logger.Debug("offer improved",
		zap.String("order", hash.String()),
		zap.String("bidder", bidder),
		zap.String("offer_price", newOfferPrice.String()),
	)
	return auction, nil
}

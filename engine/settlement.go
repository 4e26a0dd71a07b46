package engine

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// bridgeOutbound is the in-transit account for value leaving through the
// cross-chain messenger.
const bridgeOutbound = "bridge:outbound"

// Execution is the result of executing a fast order: the fill produced for
// the destination, how it was routed, and the penalty applied.
type Execution struct {
	Auction    *types.Auction
	Fill       types.Fill
	FillAmount math.Int
	Penalty    Penalty

	// Reservation is set when the fill was sequenced locally.
	Reservation *types.ReservedFastFillSequence

	// FillPayload is set when the fill was handed to the messenger.
	FillPayload []byte
}

// Settlement is the result of a slow-path settlement.
type Settlement struct {
	Auction     *types.Auction
	Fee         math.Int
	Fill        *types.Fill
	Reservation *types.ReservedFastFillSequence
	FillPayload []byte
}

// ExecuteFastOrder finalizes an expired active auction. The winning bidder's
// fronted capital pays the user's fill, the deposit returns minus any
// penalty, and the executor and fee recipient split the forfeited part.
// Exactly one execution per auction: the Active status is the gate.
func (e *Engine) ExecuteFastOrder(
	hash types.OrderHash,
	order *types.FastMarketOrder,
	executor string,
	bestOfferToken string,
) (*Execution, error) {
	orderHash, err := order.Hash()
	if err != nil {
		return nil, err
	}
	if orderHash != hash {
		return nil, errorsmod.Wrapf(types.ErrOrderHashMismatch, "order hashes to %s, auction is %s", orderHash, hash)
	}

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
	if bestOfferToken != auction.BestOffer.TokenAccount {
		return nil, errorsmod.Wrapf(types.ErrBestOfferTokenMismatch, "want %s", auction.BestOffer.TokenAccount)
	}

	params, err := e.params.ForConfig(auction.ConfigID)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	if now <= auction.EndTick(params) {
		return nil, errorsmod.Wrapf(types.ErrAuctionPeriodNotExpired, "ends at %d, now %d", auction.EndTick(params), now)
	}

	penalty := ComputePenalty(params, auction, now)
	price := auction.BestOffer.Price
	initFee := math.NewIntFromUint64(order.InitAuctionFee)
	fillAmount := auction.DepositedAmount.Sub(price).Sub(initFee)
	if fillAmount.IsNegative() {
		// Creation guarantees amount_in covers max_fee + init_auction_fee;
		// a negative fill here means the record is corrupt.
		return nil, errorsmod.Wrapf(types.ErrInvalidOffer, "fill amount %s is negative", fillAmount)
	}
	bidderRefund := auction.SecurityDeposit.Sub(penalty.Total).Add(price)

	custody := custodyAccount(hash)
	if err := e.bank.Move(custody, auction.BestOffer.Bidder, bidderRefund); err != nil {
		return nil, err
	}
	if penalty.ExecutorReward.IsPositive() {
		if err := e.bank.Move(custody, executor, penalty.ExecutorReward); err != nil {
			return nil, err
		}
	}
	if feeTake := penalty.Retained.Add(initFee); feeTake.IsPositive() {
		if err := e.bank.Move(custody, e.cfg.FeeRecipient, feeTake); err != nil {
			return nil, err
		}
	}

	fill := types.Fill{
		SourceChain:     auction.SourceChain,
		OrderSender:     order.Sender,
		Redeemer:        order.Redeemer,
		RedeemerMessage: order.RedeemerMessage,
	}
	exec := &Execution{Fill: fill, FillAmount: fillAmount, Penalty: penalty}

	if order.TargetChain == e.cfg.LocalChainID {
		// A bidder whose receiving account was closed since the bid loses
		// the beneficiary slot to the executor.
		beneficiary := executor
		if owner, ok := e.tokens.Owner(auction.BestOffer.TokenAccount); ok {
			beneficiary = owner
		}
		key := types.SequencerKey{SourceChain: auction.SourceChain, Sender: order.Sender}
		reservation, err := e.reserveSequence(key, hash, beneficiary)
		if err != nil {
			return nil, err
		}
		if err := e.bank.Move(custody, order.Redeemer.String(), fillAmount); err != nil {
			return nil, err
		}
		exec.Reservation = reservation
	} else {
		payload, err := fill.Encode()
		if err != nil {
			return nil, err
		}
		if err := e.bank.Move(custody, bridgeOutbound, fillAmount); err != nil {
			return nil, err
		}
		if err := e.bridge.SendFill(payload); err != nil {
			return nil, err
		}
		exec.FillPayload = payload
	}

	auction.Status = types.StatusCompleted(penalty.Total)
	if err := e.store.PutAuction(auction); err != nil {
		return nil, err
	}
	exec.Auction = auction

	e.logger.Info("fast order executed",
		zap.String("order", hash.String()),
		zap.String("executor", executor),
		zap.String("fill_amount", fillAmount.String()),
		zap.String("penalty", penalty.Total.String()),
		zap.Bool("local", exec.Reservation != nil),
	)
	return exec, nil
}

// SettleComplete closes out a completed auction when the finality-bound
// confirmation arrives. The repatriated custody repays the winning bidder,
// minus the base fee learned from the slow path.
func (e *Engine) SettleComplete(
	hash types.OrderHash,
	slowCustody string,
	custodyAmount math.Int,
	response *types.SlowOrderResponse,
) (*Settlement, error) {
	unlock := e.auctionLocks.lock(hash.String())
	defer unlock()

	auction, err := e.store.GetAuction(hash)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, errorsmod.Wrapf(types.ErrNoAuction, "order %s", hash)
	}
	if auction.Status.Kind != types.AuctionCompleted {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotCompleted, "order %s is %s", hash, auction.Status.Kind)
	}

	baseFee := math.NewIntFromUint64(response.BaseFee)
	if baseFee.GT(custodyAmount) {
		return nil, errorsmod.Wrapf(types.ErrInsufficientFunds, "base fee %s exceeds custody %s", baseFee, custodyAmount)
	}
	if err := e.bank.Move(slowCustody, auction.BestOffer.Bidder, custodyAmount.Sub(baseFee)); err != nil {
		return nil, err
	}
	if baseFee.IsPositive() {
		if err := e.bank.Move(slowCustody, e.cfg.FeeRecipient, baseFee); err != nil {
			return nil, err
		}
	}

	auction.Status = types.StatusSettled(baseFee, auction.Status.TotalPenalty)
	auction.SettledAt = e.clock.Now()
	if err := e.store.PutAuction(auction); err != nil {
		return nil, err
	}

	e.logger.Info("auction settled",
		zap.String("order", hash.String()),
		zap.String("fee", baseFee.String()),
	)
	return &Settlement{Auction: auction, Fee: baseFee}, nil
}

// SettleNone settles an order no solver ever bid on: the slow confirmation is
// the only leg, so only the base fee and the auction-initiation fee are
// charged. It never requires a pre-existing auction; it records a terminal
// one so the order can never be auctioned afterwards.
func (e *Engine) SettleNone(
	order *types.FastMarketOrder,
	sourceChain uint16,
	slowCustody string,
	custodyAmount math.Int,
	response *types.SlowOrderResponse,
	preparedBy string,
) (*Settlement, error) {
	hash, err := order.Hash()
	if err != nil {
		return nil, err
	}

	unlock := e.auctionLocks.lock(hash.String())
	defer unlock()

	if existing, err := e.store.GetAuction(hash); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errorsmod.Wrapf(types.ErrAuctionExists, "order %s is %s", hash, existing.Status.Kind)
	}

	fee := math.NewIntFromUint64(response.BaseFee).Add(math.NewIntFromUint64(order.InitAuctionFee))
	if fee.GT(custodyAmount) {
		return nil, errorsmod.Wrapf(types.ErrInsufficientFunds, "fee %s exceeds custody %s", fee, custodyAmount)
	}
	userAmount := custodyAmount.Sub(fee)

	if fee.IsPositive() {
		if err := e.bank.Move(slowCustody, e.cfg.FeeRecipient, fee); err != nil {
			return nil, err
		}
	}

	fill := &types.Fill{
		SourceChain:     sourceChain,
		OrderSender:     order.Sender,
		Redeemer:        order.Redeemer,
		RedeemerMessage: order.RedeemerMessage,
	}
	settlement := &Settlement{Fee: fee, Fill: fill}

	if order.TargetChain == e.cfg.LocalChainID {
		// No auction means no bidder: the original order preparer is
		// unconditionally the beneficiary.
		key := types.SequencerKey{SourceChain: sourceChain, Sender: order.Sender}
		reservation, err := e.reserveSequence(key, hash, preparedBy)
		if err != nil {
			return nil, err
		}
		if err := e.bank.Move(slowCustody, order.Redeemer.String(), userAmount); err != nil {
			return nil, err
		}
		settlement.Reservation = reservation
	} else {
		payload, err := fill.Encode()
		if err != nil {
			return nil, err
		}
		if err := e.bank.Move(slowCustody, bridgeOutbound, userAmount); err != nil {
			return nil, err
		}
		if err := e.bridge.SendFill(payload); err != nil {
			return nil, err
		}
		settlement.FillPayload = payload
	}

	now := e.clock.Now()
	auction := &types.Auction{
		ID:              hash,
		Status:          types.StatusSettled(fee, math.ZeroInt()),
		StartedAt:       now,
		SourceChain:     sourceChain,
		TargetChain:     order.TargetChain,
		DepositedAmount: math.ZeroInt(),
		SecurityDeposit: math.ZeroInt(),
		PreparedBy:      preparedBy,
		SettledAt:       now,
	}
	if err := e.store.PutAuction(auction); err != nil {
		return nil, err
	}
	settlement.Auction = auction

	e.logger.Info("order settled without auction",
		zap.String("order", hash.String()),
		zap.String("fee", fee.String()),
	)
	return settlement, nil
}

package engine

import (
	"math"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// reserveSequence hands out the next sequence number for the order's
// (source_chain, sender) pair and persists a one-time claim ticket for it.
// The sequencer is created lazily on first use. Both settlement paths funnel
// through here, so sequences stay contiguous regardless of how a fill was
// settled.
func (e *Engine) reserveSequence(
	key types.SequencerKey,
	orderHash types.OrderHash,
	beneficiary string,
) (*types.ReservedFastFillSequence, error) {
	unlock := e.sequencerLocks.lock(key.String())
	defer unlock()

	if existing, err := e.store.GetReservation(orderHash); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errorsmod.Wrapf(types.ErrReservationExists, "order %s", orderHash)
	}

	seq, err := e.store.GetSequencer(key)
	if err != nil {
		return nil, err
	}
	if seq == nil {
		seq = &types.FastFillSequencer{Key: key}
	}
	if seq.NextSequence == math.MaxUint64 {
		return nil, errorsmod.Wrapf(types.ErrSequenceOverflow, "sequencer %s", key)
	}

	reservation := &types.ReservedFastFillSequence{
		OrderHash:   orderHash,
		Key:         key,
		Sequence:    seq.NextSequence,
		Beneficiary: beneficiary,
	}
	seq.NextSequence++
	if err := e.store.PutSequencer(seq); err != nil {
		return nil, err
	}
	if err := e.store.PutReservation(reservation); err != nil {
		return nil, err
	}

	e.logger.Debug("sequence reserved",
		zap.String("sequencer", key.String()),
		zap.Uint64("sequence", reservation.Sequence),
		zap.String("beneficiary", beneficiary),
	)
	return reservation, nil
}

// CreateFastFill consumes the order's reserved sequence and materializes the
// delivery record. Exactly one fast fill exists per reservation.
func (e *Engine) CreateFastFill(order *types.FastMarketOrder, amount sdkmath.Int) (*types.FastFill, error) {
	hash, err := order.Hash()
	if err != nil {
		return nil, err
	}
	reservation, err := e.store.GetReservation(hash)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, errorsmod.Wrapf(types.ErrNoReservation, "order %s", hash)
	}

	unlock := e.sequencerLocks.lock(reservation.Key.String())
	defer unlock()

	if existing, err := e.store.GetFastFill(reservation.Key, reservation.Sequence); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errorsmod.Wrapf(types.ErrFastFillExists, "sequence %d", reservation.Sequence)
	}

	fill := &types.FastFill{
		Key:      reservation.Key,
		Sequence: reservation.Sequence,
		Info: types.FastFillInfo{
			PreparedBy: reservation.Beneficiary,
			Amount:     amount,
			Timestamp:  e.clock.Now(),
		},
		Redeemer:        order.Redeemer,
		RedeemerMessage: order.RedeemerMessage,
	}
	if err := e.store.PutFastFill(fill); err != nil {
		return nil, err
	}
	// The ticket is spent; its value refunds to the beneficiary.
	if err := e.store.DeleteReservation(hash); err != nil {
		return nil, err
	}

	e.logger.Info("fast fill created",
		zap.String("sequencer", reservation.Key.String()),
		zap.Uint64("sequence", reservation.Sequence),
	)
	return fill, nil
}

// RedeemFastFill marks a fast fill delivered. The flag flips false to true
// exactly once; a second redemption is rejected.
func (e *Engine) RedeemFastFill(key types.SequencerKey, sequence uint64, redeemer string) (*types.FastFill, error) {
	unlock := e.sequencerLocks.lock(key.String())
	defer unlock()

	fill, err := e.store.GetFastFill(key, sequence)
	if err != nil {
		return nil, err
	}
	if fill == nil {
		return nil, errorsmod.Wrapf(types.ErrNoFastFill, "sequencer %s sequence %d", key, sequence)
	}
	if fill.Redeemed {
		return nil, errorsmod.Wrapf(types.ErrFastFillAlreadyRedeemed, "sequencer %s sequence %d", key, sequence)
	}
	fill.Redeemed = true
	fill.Info.Redeemer = redeemer
	if err := e.store.PutFastFill(fill); err != nil {
		return nil, err
	}

	e.logger.Info("fast fill redeemed",
		zap.String("sequencer", key.String()),
		zap.Uint64("sequence", sequence),
		zap.String("redeemer", redeemer),
	)
	return fill, nil
}

// GetSequencer exposes the sequencer record for queries; a nil record means
// no fill was ever sequenced for the key.
func (e *Engine) GetSequencer(key types.SequencerKey) (*types.FastFillSequencer, error) {
	return e.store.GetSequencer(key)
}

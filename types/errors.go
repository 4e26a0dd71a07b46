package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Engine sentinel errors. Precondition violations are caller errors and are
// never retried by the engine; overflow errors are fatal and must abort the
// whole operation.
var (
	ErrPaused                  = errorsmod.Register(ModuleName, 2, "engine is paused")
	ErrAuctionExists           = errorsmod.Register(ModuleName, 3, "auction already exists for order")
	ErrNoAuction               = errorsmod.Register(ModuleName, 4, "no auction for order")
	ErrAuctionNotActive        = errorsmod.Register(ModuleName, 5, "auction is not active")
	ErrAuctionPeriodExpired    = errorsmod.Register(ModuleName, 6, "auction period has expired")
	ErrAuctionPeriodNotExpired = errorsmod.Register(ModuleName, 7, "auction period has not expired")
	ErrOfferPriceNotImproved   = errorsmod.Register(ModuleName, 8, "offer price does not improve best offer")
	ErrCarpingNotAllowed       = errorsmod.Register(ModuleName, 9, "offer improvement below minimum delta")
	ErrAuctionConfigMismatch   = errorsmod.Register(ModuleName, 10, "auction references a different configuration")
	ErrBestOfferTokenMismatch  = errorsmod.Register(ModuleName, 11, "token account does not match best offer")
	ErrOrderHashMismatch       = errorsmod.Register(ModuleName, 12, "order does not match auction order hash")
	ErrAuctionNotCompleted     = errorsmod.Register(ModuleName, 13, "auction is not completed")
	ErrAuctionNotSettled       = errorsmod.Register(ModuleName, 14, "auction is not settled")
	ErrInvalidOffer            = errorsmod.Register(ModuleName, 15, "invalid offer")
	ErrDeadlineExceeded        = errorsmod.Register(ModuleName, 16, "order deadline exceeded")
	ErrInvalidParameters       = errorsmod.Register(ModuleName, 17, "invalid auction parameters")
	ErrInsufficientFunds       = errorsmod.Register(ModuleName, 18, "insufficient funds")
	ErrCoolDownNotElapsed      = errorsmod.Register(ModuleName, 19, "settlement cool-down has not elapsed")
	ErrProposalDelayNotElapsed = errorsmod.Register(ModuleName, 20, "proposal enactment delay has not elapsed")
	ErrNoProposal              = errorsmod.Register(ModuleName, 21, "no such parameter proposal")

	ErrReservationExists       = errorsmod.Register(ModuleName, 22, "sequence already reserved for order")
	ErrNoReservation           = errorsmod.Register(ModuleName, 23, "no reserved sequence for order")
	ErrFastFillExists          = errorsmod.Register(ModuleName, 24, "fast fill already created for sequence")
	ErrNoFastFill              = errorsmod.Register(ModuleName, 25, "no such fast fill")
	ErrFastFillAlreadyRedeemed = errorsmod.Register(ModuleName, 26, "fast fill already redeemed")

	// Fatal arithmetic and resource exhaustion.
	ErrSequenceOverflow   = errorsmod.Register(ModuleName, 27, "fast fill sequence counter overflow")
	ErrProposalIDOverflow = errorsmod.Register(ModuleName, 28, "proposal id overflow")
	ErrMessageTooLarge    = errorsmod.Register(ModuleName, 29, "message exceeds maximum size")

	// Codec errors.
	ErrInvalidPayloadID = errorsmod.Register(ModuleName, 30, "invalid payload discriminator")
	ErrPayloadTooShort  = errorsmod.Register(ModuleName, 31, "payload too short")
)

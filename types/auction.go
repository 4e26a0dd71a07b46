package types

import (
	"encoding/hex"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// OrderHash uniquely identifies the originating cross-chain order. It is the
// digest of the order's canonical encoding, so one auction exists per order.
type OrderHash [32]byte

func (h OrderHash) String() string {
	return hex.EncodeToString(h[:])
}

func OrderHashFromHex(s string) (OrderHash, error) {
	var h OrderHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("decode order hash: %w", err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("order hash must be %d bytes, got %d", len(h), len(b))
	}
	copy(h[:], b)
	return h, nil
}

// AuctionParameters is one immutable version of the economic configuration.
// Every auction pins the version that was active when it was created.
type AuctionParameters struct {
	UserPenaltyRewardBps uint32 `json:"user_penalty_reward_bps" mapstructure:"user_penalty_reward_bps"`
	InitialPenaltyBps    uint32 `json:"initial_penalty_bps" mapstructure:"initial_penalty_bps"`
	Duration             uint16 `json:"duration" mapstructure:"duration"`
	GracePeriod          uint16 `json:"grace_period" mapstructure:"grace_period"`
	PenaltyPeriod        uint16 `json:"penalty_period" mapstructure:"penalty_period"`

	// MinOfferDeltaBps prices the anti-carping threshold as a fraction of
	// the security deposit.
	MinOfferDeltaBps uint32 `json:"min_offer_delta_bps" mapstructure:"min_offer_delta_bps"`

	// SecurityDepositBps sizes the collateral a bidder posts on top of the
	// order's max fee, as a fraction of amount_in.
	SecurityDepositBps uint32 `json:"security_deposit_bps" mapstructure:"security_deposit_bps"`
}

func (p AuctionParameters) Validate() error {
	if p.Duration == 0 {
		return errorsmod.Wrap(ErrInvalidParameters, "duration must be greater than zero")
	}
	if p.GracePeriod <= p.Duration {
		return errorsmod.Wrap(ErrInvalidParameters, "grace period must exceed duration")
	}
	if p.UserPenaltyRewardBps > FeePrecisionMax {
		return errorsmod.Wrapf(ErrInvalidParameters, "user penalty reward bps %d exceeds precision max", p.UserPenaltyRewardBps)
	}
	if p.InitialPenaltyBps > FeePrecisionMax {
		return errorsmod.Wrapf(ErrInvalidParameters, "initial penalty bps %d exceeds precision max", p.InitialPenaltyBps)
	}
	if p.MinOfferDeltaBps > BpsDenom {
		return errorsmod.Wrapf(ErrInvalidParameters, "min offer delta bps %d exceeds denominator", p.MinOfferDeltaBps)
	}
	if p.SecurityDepositBps > BpsDenom {
		return errorsmod.Wrapf(ErrInvalidParameters, "security deposit bps %d exceeds denominator", p.SecurityDepositBps)
	}
	return nil
}

// Proposal is a pending parameter version awaiting enactment.
type Proposal struct {
	ID          uint64            `json:"id"`
	Params      AuctionParameters `json:"params"`
	Proposer    string            `json:"proposer"`
	ProposedAt  uint64            `json:"proposed_at"`
	EnactableAt uint64            `json:"enactable_at"`
}

type AuctionStatusKind uint8

const (
	AuctionNotStarted AuctionStatusKind = iota
	AuctionActive
	AuctionCompleted
	AuctionSettled
)

func (k AuctionStatusKind) String() string {
	switch k {
	case AuctionNotStarted:
		return "not-started"
	case AuctionActive:
		return "active"
	case AuctionCompleted:
		return "completed"
	case AuctionSettled:
		return "settled"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// AuctionStatus carries the state-machine position plus, once terminal, the
// fee charged and the total penalty taken from the security deposit.
type AuctionStatus struct {
	Kind         AuctionStatusKind `json:"kind"`
	Fee          math.Int          `json:"fee"`
	TotalPenalty math.Int          `json:"total_penalty"`
}

func StatusActive() AuctionStatus {
	return AuctionStatus{Kind: AuctionActive, Fee: math.ZeroInt(), TotalPenalty: math.ZeroInt()}
}

func StatusCompleted(penalty math.Int) AuctionStatus {
	return AuctionStatus{Kind: AuctionCompleted, Fee: math.ZeroInt(), TotalPenalty: penalty}
}

func StatusSettled(fee, totalPenalty math.Int) AuctionStatus {
	return AuctionStatus{Kind: AuctionSettled, Fee: fee, TotalPenalty: totalPenalty}
}

// Offer is one bidder's standing offer: the price is the fee the bidder will
// earn for fronting the transfer, so lower is better for the user.
type Offer struct {
	Bidder       string   `json:"bidder"`
	TokenAccount string   `json:"token_account"`
	Price        math.Int `json:"price"`
}

// Auction is the authoritative record for one order's auction lifecycle.
type Auction struct {
	ID           OrderHash     `json:"id"`
	Status       AuctionStatus `json:"status"`
	StartedAt    uint64        `json:"started_at"`
	ConfigID     uint32        `json:"config_id"`
	BestOffer    Offer         `json:"best_offer"`
	InitialOffer Offer         `json:"initial_offer"`

	DepositedAmount math.Int `json:"deposited_amount"`
	SecurityDeposit math.Int `json:"security_deposit"`

	SourceChain uint16 `json:"source_chain"`
	TargetChain uint16 `json:"target_chain"`
	PreparedBy  string `json:"prepared_by"`

	// SettledAt gates archival behind the cool-down period.
	SettledAt uint64 `json:"settled_at,omitempty"`
}

// EndTick is the last tick at which offers may still be improved.
func (a *Auction) EndTick(p AuctionParameters) uint64 {
	return a.StartedAt + uint64(p.Duration)
}

// GraceTick is the last tick of penalty-free execution.
func (a *Auction) GraceTick(p AuctionParameters) uint64 {
	return a.StartedAt + uint64(p.Duration) + uint64(p.GracePeriod)
}

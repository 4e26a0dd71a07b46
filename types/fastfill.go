package types

import (
	"encoding/hex"
	"fmt"

	"cosmossdk.io/math"
)

// Address is a 32-byte universal address as carried in cross-chain messages.
type Address [32]byte

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// SequencerKey identifies one fast-fill ordering domain. All fills for the
// same source chain and order sender share a single counter, no matter which
// settlement path produced them.
type SequencerKey struct {
	SourceChain uint16  `json:"source_chain"`
	Sender      Address `json:"sender"`
}

func (k SequencerKey) String() string {
	return fmt.Sprintf("%d/%s", k.SourceChain, k.Sender)
}

// FastFillSequencer owns the next sequence number for its key. Nothing else
// may write NextSequence.
type FastFillSequencer struct {
	Key          SequencerKey `json:"key"`
	NextSequence uint64       `json:"next_sequence"`
}

// ReservedFastFillSequence is a one-time claim ticket binding a sequence
// number to the eventual delivery record. It is consumed when the fast fill
// is created, and the reservation value is refunded to Beneficiary.
type ReservedFastFillSequence struct {
	OrderHash   OrderHash    `json:"order_hash"`
	Key         SequencerKey `json:"key"`
	Sequence    uint64       `json:"sequence"`
	Beneficiary string       `json:"beneficiary"`
}

// FastFillInfo records who prepared the fill and, once redeemed, by whom.
type FastFillInfo struct {
	PreparedBy string   `json:"prepared_by"`
	Amount     math.Int `json:"amount"`
	Redeemer   string   `json:"redeemer,omitempty"`
	Timestamp  uint64   `json:"timestamp"`
}

// FastFill is a locally delivered, economically-settled representation of a
// cross-chain transfer. Redeemed flips false to true exactly once.
type FastFill struct {
	Key             SequencerKey `json:"key"`
	Sequence        uint64       `json:"sequence"`
	Redeemed        bool         `json:"redeemed"`
	Info            FastFillInfo `json:"info"`
	Redeemer        Address      `json:"redeemer"`
	RedeemerMessage []byte       `json:"redeemer_message,omitempty"`
}

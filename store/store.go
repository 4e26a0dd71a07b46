package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// Key prefixes. One record per key; composite keys append fixed-width
// big-endian fields so related records sort together.
const (
	auctionPrefix     = "auction/"
	proposalPrefix    = "proposal/"
	sequencerPrefix   = "sequencer/"
	reservationPrefix = "reservation/"
	fastFillPrefix    = "fastfill/"

	activeConfigKey   = "state/active_config"
	parametersPrefix  = "state/parameters/"
	nextProposalIDKey = "state/next_proposal_id"
)

// Store persists all engine records as JSON documents in a DB backend.
type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func auctionKey(h types.OrderHash) []byte {
	return []byte(auctionPrefix + h.String())
}

func sequencerKey(k types.SequencerKey) []byte {
	b := make([]byte, 0, len(sequencerPrefix)+2+32)
	b = append(b, sequencerPrefix...)
	b = binary.BigEndian.AppendUint16(b, k.SourceChain)
	return append(b, k.Sender[:]...)
}

func reservationKey(h types.OrderHash) []byte {
	return []byte(reservationPrefix + h.String())
}

func fastFillKey(k types.SequencerKey, sequence uint64) []byte {
	b := make([]byte, 0, len(fastFillPrefix)+2+32+8)
	b = append(b, fastFillPrefix...)
	b = binary.BigEndian.AppendUint16(b, k.SourceChain)
	b = append(b, k.Sender[:]...)
	return binary.BigEndian.AppendUint64(b, sequence)
}

func proposalKey(id uint64) []byte {
	b := make([]byte, 0, len(proposalPrefix)+8)
	b = append(b, proposalPrefix...)
	return binary.BigEndian.AppendUint64(b, id)
}

func parametersKey(configID uint32) []byte {
	b := make([]byte, 0, len(parametersPrefix)+4)
	b = append(b, parametersPrefix...)
	return binary.BigEndian.AppendUint32(b, configID)
}

func (s *Store) get(key []byte, out any) (bool, error) {
	raw, err := s.db.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode record %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) put(key []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	return s.db.Put(key, raw)
}

// GetAuction returns the auction for the order hash, or (nil, nil) when none
// exists.
func (s *Store) GetAuction(h types.OrderHash) (*types.Auction, error) {
	var a types.Auction
	ok, err := s.get(auctionKey(h), &a)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

func (s *Store) PutAuction(a *types.Auction) error {
	return s.put(auctionKey(a.ID), a)
}

func (s *Store) DeleteAuction(h types.OrderHash) error {
	return s.db.Delete(auctionKey(h))
}

func (s *Store) GetSequencer(k types.SequencerKey) (*types.FastFillSequencer, error) {
	var seq types.FastFillSequencer
	ok, err := s.get(sequencerKey(k), &seq)
	if err != nil || !ok {
		return nil, err
	}
	return &seq, nil
}

func (s *Store) PutSequencer(seq *types.FastFillSequencer) error {
	return s.put(sequencerKey(seq.Key), seq)
}

func (s *Store) GetReservation(h types.OrderHash) (*types.ReservedFastFillSequence, error) {
	var r types.ReservedFastFillSequence
	ok, err := s.get(reservationKey(h), &r)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

func (s *Store) PutReservation(r *types.ReservedFastFillSequence) error {
	return s.put(reservationKey(r.OrderHash), r)
}

func (s *Store) DeleteReservation(h types.OrderHash) error {
	return s.db.Delete(reservationKey(h))
}

func (s *Store) GetFastFill(k types.SequencerKey, sequence uint64) (*types.FastFill, error) {
	var f types.FastFill
	ok, err := s.get(fastFillKey(k, sequence), &f)
	if err != nil || !ok {
		return nil, err
	}
	return &f, nil
}

func (s *Store) PutFastFill(f *types.FastFill) error {
	return s.put(fastFillKey(f.Key, f.Sequence), f)
}

func (s *Store) GetProposal(id uint64) (*types.Proposal, error) {
	var p types.Proposal
	ok, err := s.get(proposalKey(id), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (s *Store) PutProposal(p *types.Proposal) error {
	return s.put(proposalKey(p.ID), p)
}

func (s *Store) DeleteProposal(id uint64) error {
	return s.db.Delete(proposalKey(id))
}

// NextProposalID returns the counter without advancing it.
func (s *Store) NextProposalID() (uint64, error) {
	raw, err := s.db.Get([]byte(nextProposalIDKey))
	if errors.Is(err, ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

func (s *Store) SetNextProposalID(id uint64) error {
	return s.db.Put([]byte(nextProposalIDKey), binary.BigEndian.AppendUint64(nil, id))
}

func (s *Store) GetParameters(configID uint32) (*types.AuctionParameters, error) {
	var p types.AuctionParameters
	ok, err := s.get(parametersKey(configID), &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) PutParameters(configID uint32, p types.AuctionParameters) error {
	return s.put(parametersKey(configID), p)
}

// ActiveConfigID returns the currently enacted configuration id; ok is false
// before the first version is written.
func (s *Store) ActiveConfigID() (uint32, bool, error) {
	raw, err := s.db.Get([]byte(activeConfigKey))
	if errors.Is(err, ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return binary.BigEndian.Uint32(raw), true, nil
}

func (s *Store) SetActiveConfigID(id uint32) error {
	return s.db.Put([]byte(activeConfigKey), binary.BigEndian.AppendUint32(nil, id))
}

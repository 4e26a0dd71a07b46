package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
)

// Payload discriminators. The wire formats are bit-exact: a single
// discriminator byte precedes each record, variable fields carry a 4-byte
// big-endian length prefix.
const (
	PayloadIDFill              uint8 = 1
	PayloadIDFastMarketOrder   uint8 = 11
	PayloadIDFastFill          uint8 = 12
	PayloadIDSlowOrderResponse uint8 = 14
)

// MaxRedeemerMessageLen bounds the variable portion of any order or fill so a
// hostile message cannot force an oversized allocation.
const MaxRedeemerMessageLen = 10 * 1024

// FastMarketOrder is the inbound order record consumed to create an auction.
type FastMarketOrder struct {
	AmountIn        uint64
	MinAmountOut    uint64
	TargetChain     uint16
	Redeemer        Address
	Sender          Address
	RefundAddress   Address
	MaxFee          uint64
	InitAuctionFee  uint64
	Deadline        uint32
	RedeemerMessage []byte
}

func (o *FastMarketOrder) Encode() ([]byte, error) {
	if len(o.RedeemerMessage) > MaxRedeemerMessageLen {
		return nil, errorsmod.Wrapf(ErrMessageTooLarge, "redeemer message is %d bytes", len(o.RedeemerMessage))
	}
	buf := new(bytes.Buffer)
	buf.WriteByte(PayloadIDFastMarketOrder)
	writeUint64(buf, o.AmountIn)
	writeUint64(buf, o.MinAmountOut)
	writeUint16(buf, o.TargetChain)
	buf.Write(o.Redeemer[:])
	buf.Write(o.Sender[:])
	buf.Write(o.RefundAddress[:])
	writeUint64(buf, o.MaxFee)
	writeUint64(buf, o.InitAuctionFee)
	writeUint32(buf, o.Deadline)
	writeBytes(buf, o.RedeemerMessage)
	return buf.Bytes(), nil
}

func DecodeFastMarketOrder(payload []byte) (*FastMarketOrder, error) {
	r := newReader(payload)
	if err := r.expectID(PayloadIDFastMarketOrder); err != nil {
		return nil, err
	}
	o := new(FastMarketOrder)
	var err error
	if o.AmountIn, err = r.uint64(); err != nil {
		return nil, err
	}
	if o.MinAmountOut, err = r.uint64(); err != nil {
		return nil, err
	}
	if o.TargetChain, err = r.uint16(); err != nil {
		return nil, err
	}
	if err = r.address(&o.Redeemer); err != nil {
		return nil, err
	}
	if err = r.address(&o.Sender); err != nil {
		return nil, err
	}
	if err = r.address(&o.RefundAddress); err != nil {
		return nil, err
	}
	if o.MaxFee, err = r.uint64(); err != nil {
		return nil, err
	}
	if o.InitAuctionFee, err = r.uint64(); err != nil {
		return nil, err
	}
	if o.Deadline, err = r.uint32(); err != nil {
		return nil, err
	}
	if o.RedeemerMessage, err = r.bytes(); err != nil {
		return nil, err
	}
	return o, nil
}

// Hash derives the order's unique identity from its canonical encoding.
func (o *FastMarketOrder) Hash() (OrderHash, error) {
	enc, err := o.Encode()
	if err != nil {
		return OrderHash{}, err
	}
	return sha256.Sum256(enc), nil
}

// Fill is produced by settlement and handed to the cross-chain messenger for
// delivery on the target chain.
type Fill struct {
	SourceChain     uint16
	OrderSender     Address
	Redeemer        Address
	RedeemerMessage []byte
}

func (f *Fill) Encode() ([]byte, error) {
	if len(f.RedeemerMessage) > MaxRedeemerMessageLen {
		return nil, errorsmod.Wrapf(ErrMessageTooLarge, "redeemer message is %d bytes", len(f.RedeemerMessage))
	}
	buf := new(bytes.Buffer)
	buf.WriteByte(PayloadIDFill)
	f.encodeBody(buf)
	return buf.Bytes(), nil
}

func (f *Fill) encodeBody(buf *bytes.Buffer) {
	writeUint16(buf, f.SourceChain)
	buf.Write(f.OrderSender[:])
	buf.Write(f.Redeemer[:])
	writeBytes(buf, f.RedeemerMessage)
}

func DecodeFill(payload []byte) (*Fill, error) {
	r := newReader(payload)
	if err := r.expectID(PayloadIDFill); err != nil {
		return nil, err
	}
	return decodeFillBody(r)
}

func decodeFillBody(r *reader) (*Fill, error) {
	f := new(Fill)
	var err error
	if f.SourceChain, err = r.uint16(); err != nil {
		return nil, err
	}
	if err = r.address(&f.OrderSender); err != nil {
		return nil, err
	}
	if err = r.address(&f.Redeemer); err != nil {
		return nil, err
	}
	if f.RedeemerMessage, err = r.bytes(); err != nil {
		return nil, err
	}
	return f, nil
}

// FastFillMessage is the locally-delivered variant: the fill amount followed
// by the fill record itself.
type FastFillMessage struct {
	Amount uint64
	Fill   Fill
}

func (m *FastFillMessage) Encode() ([]byte, error) {
	if len(m.Fill.RedeemerMessage) > MaxRedeemerMessageLen {
		return nil, errorsmod.Wrapf(ErrMessageTooLarge, "redeemer message is %d bytes", len(m.Fill.RedeemerMessage))
	}
	buf := new(bytes.Buffer)
	buf.WriteByte(PayloadIDFastFill)
	writeUint64(buf, m.Amount)
	m.Fill.encodeBody(buf)
	return buf.Bytes(), nil
}

func DecodeFastFillMessage(payload []byte) (*FastFillMessage, error) {
	r := newReader(payload)
	if err := r.expectID(PayloadIDFastFill); err != nil {
		return nil, err
	}
	m := new(FastFillMessage)
	var err error
	if m.Amount, err = r.uint64(); err != nil {
		return nil, err
	}
	fill, err := decodeFillBody(r)
	if err != nil {
		return nil, err
	}
	m.Fill = *fill
	return m, nil
}

// SlowOrderResponse reports the base fee charged by the finality-bound path.
type SlowOrderResponse struct {
	BaseFee uint64
}

func (s *SlowOrderResponse) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(PayloadIDSlowOrderResponse)
	writeUint64(buf, s.BaseFee)
	return buf.Bytes()
}

func DecodeSlowOrderResponse(payload []byte) (*SlowOrderResponse, error) {
	r := newReader(payload)
	if err := r.expectID(PayloadIDSlowOrderResponse); err != nil {
		return nil, err
	}
	s := new(SlowOrderResponse)
	var err error
	if s.BaseFee, err = r.uint64(); err != nil {
		return nil, err
	}
	return s, nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}

type reader struct {
	buf []byte
	off int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) expectID(id uint8) error {
	if len(r.buf) == 0 {
		return ErrPayloadTooShort
	}
	if r.buf[0] != id {
		return errorsmod.Wrapf(ErrInvalidPayloadID, "want %d, got %d", id, r.buf[0])
	}
	r.off = 1
	return nil
}

func (r *reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, errorsmod.Wrapf(ErrPayloadTooShort, "need %d bytes at offset %d of %d", n, r.off, len(r.buf))
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *reader) address(dst *Address) error {
	b, err := r.take(32)
	if err != nil {
		return err
	}
	copy(dst[:], b)
	return nil
}

func (r *reader) bytes() ([]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if n > MaxRedeemerMessageLen {
		return nil, errorsmod.Wrapf(ErrMessageTooLarge, "declared length %d", n)
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

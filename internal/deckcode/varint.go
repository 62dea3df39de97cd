package deckcode

import "fmt"

// extractWithCarry returns the low bits of value. When value does not fit in
// bits, the bit just above them is set as a continuation flag.
func extractWithCarry(value uint32, bits uint) uint32 {
	limit := uint32(1) << bits
	out := value & (limit - 1)
	if value >= limit {
		out |= limit
	}
	return out
}

// appendRemaining drops the alreadyWritten low bits of value and appends the
// rest as 7-bit groups, low group first, bit 7 set on all but the last.
// Nothing is appended when the remainder is zero.
func appendRemaining(dst []byte, value uint32, alreadyWritten uint) []byte {
	value >>= alreadyWritten
	for value > 0 {
		dst = append(dst, byte(extractWithCarry(value, 7)))
		value >>= 7
	}
	return dst
}

// reader walks a deck buffer. Reads past limit fail with ErrTruncatedInput.
type reader struct {
	data  []byte
	pos   int
	limit int
}

func newReader(data []byte, pos, limit int) *reader {
	return &reader{data: data, pos: pos, limit: limit}
}

func (r *reader) more() bool { return r.pos < r.limit }

func (r *reader) readByte() (byte, error) {
	if r.pos >= r.limit {
		return 0, fmt.Errorf("%w: need byte at offset %d, section ends at %d", ErrTruncatedInput, r.pos, r.limit)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// readVarUint decodes a value whose first baseBits live in base. With
// baseBits == 0 the whole value comes from the following bytes.
func (r *reader) readVarUint(base uint32, baseBits uint) (uint32, error) {
	var out uint32
	shift := uint(0)
	if baseBits > 0 {
		cont := uint32(1) << baseBits
		out = base & (cont - 1)
		if base&cont == 0 {
			return out, nil
		}
		shift = baseBits
	}
	for {
		if shift >= 32 {
			return 0, fmt.Errorf("%w: varint longer than 32 bits at offset %d", ErrMalformedInput, r.pos)
		}
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		out |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return out, nil
		}
		shift += 7
	}
}

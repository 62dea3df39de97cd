package deckcode

import "fmt"

const (
	// inline counts 1..3 are stored as 0..2; 3 means the count follows the id delta.
	extendedCount = 3
	// no single entry may take more than this many bytes.
	maxEntryBytes = 11
)

// appendEntry writes one (id delta, n) record. n is a turn for heroes and a
// count for cards.
func appendEntry(dst []byte, delta, n uint32) ([]byte, error) {
	if n == 0 {
		return dst, fmt.Errorf("%w: zero count", ErrInvalidEntry)
	}
	start := len(dst)

	extended := n-1 >= extendedCount
	countBits := uint32(extendedCount)
	if !extended {
		countBits = n - 1
	}
	dst = append(dst, byte(countBits<<6|extractWithCarry(delta, 5)))
	dst = appendRemaining(dst, delta, 5)
	if extended {
		dst = appendRemaining(dst, n, 0)
	}

	if len(dst)-start > maxEntryBytes {
		return dst[:start], fmt.Errorf("%w: entry takes %d bytes", ErrInvalidEntry, len(dst)-start)
	}
	return dst, nil
}

// entryReader reads a section of entries whose ids are delta-chained.
type entryReader struct {
	*reader
	prevID uint32
}

// reset starts a new delta chain.
func (r *entryReader) reset() { r.prevID = 0 }

func (r *entryReader) readEntry() (id, n uint32, err error) {
	header, err := r.readByte()
	if err != nil {
		return 0, 0, err
	}
	delta, err := r.readVarUint(uint32(header), 5)
	if err != nil {
		return 0, 0, err
	}
	id = r.prevID + delta
	if id < r.prevID {
		return 0, 0, fmt.Errorf("%w: card id overflows", ErrMalformedInput)
	}
	r.prevID = id

	if header>>6 == extendedCount {
		n, err = r.readVarUint(0, 0)
		if err != nil {
			return 0, 0, err
		}
	} else {
		n = uint32(header>>6) + 1
	}
	return id, n, nil
}

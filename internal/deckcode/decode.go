package deckcode

import (
	"fmt"

	"github.com/youruser/deckcode/internal/deck"
)

// DecodeBytes parses a packed deck buffer. Version 1 buffers carry no name
// and decode with an empty one.
func DecodeBytes(b []byte) (deck.Deck, error) {
	if len(b) < 2 {
		return deck.Deck{}, fmt.Errorf("%w: %d byte buffer", ErrTruncatedInput, len(b))
	}
	versionAndHeroes := b[0]
	version := versionAndHeroes >> 4
	if version != 1 && version != Version {
		return deck.Deck{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	sum := b[1]

	pos, nameLen := 2, 0
	if version > 1 {
		if len(b) < headerSize {
			return deck.Deck{}, fmt.Errorf("%w: missing name length", ErrTruncatedInput)
		}
		nameLen = int(b[2])
		pos = headerSize
	}
	end := len(b) - nameLen
	if end < pos {
		return deck.Deck{}, fmt.Errorf("%w: name length %d exceeds %d byte buffer", ErrMalformedInput, nameLen, len(b))
	}
	if got := checksum(b[pos:end]); got != sum {
		return deck.Deck{}, fmt.Errorf("%w: stored %#02x, computed %#02x", ErrChecksumMismatch, sum, got)
	}

	r := &entryReader{reader: newReader(b, pos, end)}
	heroCount, err := r.readVarUint(uint32(versionAndHeroes), 3)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("hero count: %w", err)
	}

	var d deck.Deck
	for i := uint32(0); i < heroCount; i++ {
		id, turn, err := r.readEntry()
		if err != nil {
			return deck.Deck{}, fmt.Errorf("hero %d: %w", i, err)
		}
		d.Heroes = append(d.Heroes, deck.HeroEntry{ID: int(id), Turn: int(turn)})
	}

	r.reset()
	for r.more() {
		id, count, err := r.readEntry()
		if err != nil {
			return deck.Deck{}, fmt.Errorf("card %d: %w", len(d.Cards), err)
		}
		d.Cards = append(d.Cards, deck.CardEntry{ID: int(id), Count: int(count)})
	}

	if nameLen > 0 {
		d.Name = string(b[end:])
	}
	return d, nil
}

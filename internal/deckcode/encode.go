package deckcode

import (
	"fmt"
	"math"

	"github.com/youruser/deckcode/internal/deck"
)

// EncodeBytes packs d into the binary deck layout. Heroes and cards are
// written in id order whatever order d holds them in.
func EncodeBytes(d deck.Deck) ([]byte, error) {
	if len(d.Heroes) == 0 || len(d.Cards) == 0 {
		return nil, ErrEmptyDeck
	}
	d = d.Sorted()
	name := TruncateName(d.Name)

	heroCount := uint32(len(d.Heroes))
	out := make([]byte, 0, headerSize+2*(len(d.Heroes)+len(d.Cards))+len(name))
	out = append(out,
		byte(Version<<4|extractWithCarry(heroCount, 3)),
		0, // checksum, patched below
		byte(len(name)),
	)
	out = appendRemaining(out, heroCount, 3)

	var prev uint32
	for _, h := range d.Heroes {
		if h.Turn <= 0 {
			return nil, fmt.Errorf("%w: hero %d has turn %d", ErrInvalidEntry, h.ID, h.Turn)
		}
		id, err := entryValue("hero id", h.ID)
		if err != nil {
			return nil, err
		}
		turn, err := entryValue("hero turn", h.Turn)
		if err != nil {
			return nil, err
		}
		if out, err = appendEntry(out, id-prev, turn); err != nil {
			return nil, err
		}
		prev = id
	}

	prev = 0
	for _, c := range d.Cards {
		if c.Count <= 0 {
			return nil, fmt.Errorf("%w: card %d has count %d", ErrInvalidEntry, c.ID, c.Count)
		}
		if c.ID <= 0 {
			return nil, fmt.Errorf("%w: card id %d", ErrInvalidEntry, c.ID)
		}
		id, err := entryValue("card id", c.ID)
		if err != nil {
			return nil, err
		}
		count, err := entryValue("card count", c.Count)
		if err != nil {
			return nil, err
		}
		if out, err = appendEntry(out, id-prev, count); err != nil {
			return nil, err
		}
		prev = id
	}

	out[1] = checksum(out[headerSize:])
	out = append(out, name...)
	return out, nil
}

func entryValue(field string, v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrInvalidEntry, field, v)
	}
	return uint32(v), nil
}

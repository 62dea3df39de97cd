package deck

import "sort"

// HeroEntry is a hero card and the turn it is deployed on.
type HeroEntry struct {
	ID   int `json:"id" cbor:"id"`
	Turn int `json:"turn" cbor:"turn"`
}

// CardEntry is a main-deck card and how many copies the deck holds.
type CardEntry struct {
	ID    int `json:"id" cbor:"id"`
	Count int `json:"count" cbor:"count"`
}

// Deck is the logical interchange form of a deck code.
type Deck struct {
	Heroes []HeroEntry `json:"heroes" cbor:"heroes"`
	Cards  []CardEntry `json:"cards" cbor:"cards"`
	Name   string      `json:"name" cbor:"name"`
}

// Sorted returns a copy of d with heroes and cards stable-sorted by id.
// The receiver is left untouched.
func (d Deck) Sorted() Deck {
	out := Deck{
		Heroes: append([]HeroEntry(nil), d.Heroes...),
		Cards:  append([]CardEntry(nil), d.Cards...),
		Name:   d.Name,
	}
	sort.SliceStable(out.Heroes, func(i, j int) bool { return out.Heroes[i].ID < out.Heroes[j].ID })
	sort.SliceStable(out.Cards, func(i, j int) bool { return out.Cards[i].ID < out.Cards[j].ID })
	return out
}

// CardCount is the number of main-deck cards, copies included. Heroes are not counted.
func (d Deck) CardCount() int {
	n := 0
	for _, c := range d.Cards {
		n += c.Count
	}
	return n
}

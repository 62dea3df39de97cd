// Package deckcode converts decks to and from their compact, URL-friendly
// deck code form.
//
// A deck code is Prefix followed by a Base64 rendering of a packed buffer:
//
//	byte 0    version (high nibble) | hero count low bits + carry (low nibble)
//	byte 1    checksum of the hero and card section
//	byte 2    name length (version 2 only)
//	...       hero count overflow, hero entries, card entries
//	tail      raw UTF-8 name bytes
//
// Every entry packs a two bit count, a carry bit and five bits of id delta
// into its first byte; larger values spill into 7-bit continuation bytes.
// Ids are delta coded against the previous entry of the same section.
//
// All functions are pure and safe for concurrent use.
package deckcode

import (
	"unicode/utf8"

	"github.com/youruser/deckcode/internal/deck"
)

const (
	// Version is the only layout this package writes. Version 1 is still decoded.
	Version = 2
	// Prefix starts every deck code.
	Prefix = "ADC"
	// MaxNameBytes bounds the stored deck name.
	MaxNameBytes = 63

	headerSize = 3
)

// Encode packs d and renders it as a deck code.
func Encode(d deck.Deck) (string, error) {
	b, err := EncodeBytes(d)
	if err != nil {
		return "", err
	}
	return EncodeString(b), nil
}

// Decode parses a deck code.
func Decode(code string) (deck.Deck, error) {
	b, err := DecodeString(code)
	if err != nil {
		return deck.Deck{}, err
	}
	return DecodeBytes(b)
}

// RawBytes returns the packed buffer behind a deck code without parsing it.
func RawBytes(code string) ([]byte, error) {
	return DecodeString(code)
}

// TruncateName shortens name until it fits in MaxNameBytes, dropping
// max(1, (excess bytes)/4) characters from the end per step. The result can
// end up shorter than MaxNameBytes.
func TruncateName(name string) string {
	for len(name) > MaxNameBytes {
		trim := (len(name) - MaxNameBytes) / 4
		if trim < 1 {
			trim = 1
		}
		for i := 0; i < trim && name != ""; i++ {
			_, size := utf8.DecodeLastRuneInString(name)
			name = name[:len(name)-size]
		}
	}
	return name
}

func checksum(section []byte) byte {
	var sum byte
	for _, b := range section {
		sum += b
	}
	return sum
}

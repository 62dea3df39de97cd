package deckcode

import "errors"

var (
	// ErrInvalidPrefix is returned when a deck code does not start with Prefix.
	ErrInvalidPrefix = errors.New("deckcode: invalid prefix")
	// ErrTruncatedInput is returned when the buffer ends in the middle of a field.
	ErrTruncatedInput = errors.New("deckcode: truncated input")
	// ErrUnsupportedVersion is returned for version nibbles other than 1 and Version.
	ErrUnsupportedVersion = errors.New("deckcode: unsupported version")
	// ErrChecksumMismatch is returned when the stored checksum does not match the card section.
	ErrChecksumMismatch = errors.New("deckcode: checksum mismatch")
	// ErrMalformedInput is returned for structurally inconsistent input.
	ErrMalformedInput = errors.New("deckcode: malformed input")
	// ErrInvalidEntry is returned on encode for a zero turn or count, or an out of range id.
	ErrInvalidEntry = errors.New("deckcode: invalid entry")
	// ErrEmptyDeck is returned on encode when heroes or cards are missing.
	ErrEmptyDeck = errors.New("deckcode: deck needs at least one hero and one card")
)

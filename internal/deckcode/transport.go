package deckcode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var (
	toURL   = strings.NewReplacer("/", "-", "=", "_")
	fromURL = strings.NewReplacer("-", "/", "_", "=")
)

// EncodeString renders a packed buffer as a deck code.
func EncodeString(b []byte) string {
	return Prefix + toURL.Replace(base64.StdEncoding.EncodeToString(b))
}

// DecodeString strips Prefix from code and returns the packed buffer.
func DecodeString(code string) ([]byte, error) {
	rest, ok := strings.CutPrefix(code, Prefix)
	if !ok {
		return nil, ErrInvalidPrefix
	}
	b, err := base64.StdEncoding.DecodeString(fromURL.Replace(rest))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return b, nil
}

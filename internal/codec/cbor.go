// Package codec holds the CBOR configuration used when decks are served in
// binary form. Encoding is Core Deterministic (RFC 8949 §4.2), so the same
// deck always produces the same bytes.
package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// ContentType is the media type of Marshal output.
const ContentType = "application/cbor"

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	// Struct fields only; unknown keys are ignored so older readers accept newer payloads.
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

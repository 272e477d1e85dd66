package engine

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/lumen-engine/lumen"
)

// encodeVariant serializes a variant for the guest boundary. Nil encodes to
// no bytes at all, which the guest observes as restart-size() == 0.
func encodeVariant(v lumen.Variant) ([]byte, error) {
	if v.IsNil() {
		return nil, nil
	}
	return cbor.Marshal(v.Interface())
}

// decodeVariant parses a guest-provided payload back into a variant.
func decodeVariant(raw []byte) (lumen.Variant, error) {
	if len(raw) == 0 {
		return lumen.Nil(), nil
	}
	var val any
	if err := cbor.Unmarshal(raw, &val); err != nil {
		return lumen.Nil(), err
	}
	return lumen.FromInterface(val), nil
}

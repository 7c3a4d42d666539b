package bigsi

import (
	"bytes"

	"github.com/will-rowe/antman/pkg/bitvector"
)

func encodeBitVector(bv *bitvector.BitVector) ([]byte, error) {
	var buf bytes.Buffer
	if err := bv.Serialise(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeBitVector(blob []byte) (*bitvector.BitVector, error) {
	return bitvector.Deserialise(bytes.NewReader(blob))
}

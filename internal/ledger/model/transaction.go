package model

import (
	"fmt"

	"github.com/goodnatureofminers/chaintool/internal/codec"
	"github.com/zeebo/blake3"
)

// Transaction is the value kept in a lane transaction store, keyed by its digest.
type Transaction struct {
	From        string `cbor:"1,keyasint"`
	Contract    string `cbor:"2,keyasint"`
	Action      string `cbor:"3,keyasint"`
	Payload     []byte `cbor:"4,keyasint"`
	ValidFrom   uint64 `cbor:"5,keyasint"`
	ValidUntil  uint64 `cbor:"6,keyasint"`
	ChargeRate  uint64 `cbor:"7,keyasint"`
	ChargeLimit uint64 `cbor:"8,keyasint"`
}

// Digest returns the BLAKE3-256 hash of the transaction's canonical encoding.
func (t *Transaction) Digest() (Hash, error) {
	data, err := codec.Marshal(t)
	if err != nil {
		return Hash{}, fmt.Errorf("encode transaction: %w", err)
	}
	return Hash(blake3.Sum256(data)), nil
}

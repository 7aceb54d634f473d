// Package model defines the ledger records stored in block and transaction stores.
package model

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/chaintool/internal/codec"
)

// HashSize is the length of every block hash and transaction digest.
const HashSize = chainhash.HashSize

// Hash identifies blocks and transactions.
type Hash = chainhash.Hash

// ZeroHash is the previous hash of a genesis block.
var ZeroHash Hash

// TxLayout references a transaction included in a block.
type TxLayout struct {
	Digest Hash `cbor:"1,keyasint"`
}

// Slice is an ordered group of transactions executed together.
type Slice []TxLayout

// Block is a block as persisted by the node.
type Block struct {
	Hash         Hash    `cbor:"1,keyasint"`
	PreviousHash Hash    `cbor:"2,keyasint"`
	BlockNumber  uint64  `cbor:"3,keyasint"`
	Weight       uint64  `cbor:"4,keyasint"`
	Timestamp    uint64  `cbor:"5,keyasint"`
	Miner        string  `cbor:"6,keyasint"`
	Slices       []Slice `cbor:"7,keyasint"`
}

// blockHeader is the hashed view of a block: every field except the hash itself.
type blockHeader struct {
	PreviousHash Hash    `cbor:"1,keyasint"`
	BlockNumber  uint64  `cbor:"2,keyasint"`
	Weight       uint64  `cbor:"3,keyasint"`
	Timestamp    uint64  `cbor:"4,keyasint"`
	Miner        string  `cbor:"5,keyasint"`
	Slices       []Slice `cbor:"6,keyasint"`
}

// ComputeHash returns the double SHA-256 of the block's canonical header encoding.
func (b *Block) ComputeHash() (Hash, error) {
	data, err := codec.Marshal(blockHeader{
		PreviousHash: b.PreviousHash,
		BlockNumber:  b.BlockNumber,
		Weight:       b.Weight,
		Timestamp:    b.Timestamp,
		Miner:        b.Miner,
		Slices:       b.Slices,
	})
	if err != nil {
		return Hash{}, fmt.Errorf("encode block header: %w", err)
	}
	return chainhash.DoubleHashH(data), nil
}

// Seal computes the block hash and stores it in the block.
func (b *Block) Seal() error {
	h, err := b.ComputeHash()
	if err != nil {
		return err
	}
	b.Hash = h
	return nil
}

// TxCount returns the number of transaction references across all slices.
func (b *Block) TxCount() uint64 {
	var count uint64
	for _, slice := range b.Slices {
		count += uint64(len(slice))
	}
	return count
}

// BlockRecord is the value kept in the block store, keyed by the block hash.
type BlockRecord struct {
	Block    Block `cbor:"1,keyasint"`
	NextHash Hash  `cbor:"2,keyasint"`
}

// Hash returns the hash the record reports for its block.
func (r *BlockRecord) Hash() Hash {
	return r.Block.Hash
}

package model

import "encoding/binary"

// MaxLog2Lanes is the largest supported log2 of the lane count.
const MaxLog2Lanes = 64

// Lane maps a digest onto one of 2^log2Lanes lanes using the top bits of the digest.
func Lane(digest Hash, log2Lanes uint) uint64 {
	if log2Lanes == 0 {
		return 0
	}
	if log2Lanes > MaxLog2Lanes {
		log2Lanes = MaxLog2Lanes
	}
	return binary.BigEndian.Uint64(digest[:8]) >> (64 - log2Lanes)
}

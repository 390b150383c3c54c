// Copyright 2025 Certen Protocol
package types

import "github.com/ethereum/go-ethereum/crypto"

func keccak256(data []byte) []byte {
	return crypto.Keccak256(data)
}

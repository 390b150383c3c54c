// Copyright 2025 Certen Protocol
//
// Package transport defines the narrow capability interface over a
// JSON-RPC node that the rest of the library consumes (C2). Keeping this
// as an interface — rather than hard-coding a web3 client — lets the core
// be tested against in-memory fakes, per spec.md §9.
package transport

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

// Transport is the polymorphic interface over a JSON-RPC node described in
// spec.md §4.2. Every operation may suspend on I/O.
type Transport interface {
	GetTransactionCount(ctx context.Context, addr types.Address) (uint64, error)

	// SubmitTransaction broadcasts raw signed bytes, waits for inclusion
	// with one confirmation, and returns the transaction hash. A revert
	// surfaces as ClientTransactionReverted(reason).
	SubmitTransaction(ctx context.Context, raw []byte) ([]byte, error)

	CallTransaction(ctx context.Context, to types.Address, data []byte) ([]byte, error)

	QueryEvents(ctx context.Context, query types.EventQuery) ([]types.EventLog, error)

	// GetReceipt fails CommonInvalidData if hash is not 32 bytes.
	GetReceipt(ctx context.Context, hash []byte) (string, error)

	GetBlock(ctx context.Context, height *uint64) (types.Block, error)

	// GetTransaction is used only by the quorum verifier.
	GetTransaction(ctx context.Context, hash []byte) (*Transaction, error)
}

// Transaction is the subset of an on-chain transaction the quorum verifier
// needs to compare against a primary result's hash.
type Transaction struct {
	From    types.Address
	To      types.Address
	Nonce   uint64
	ChainID uint64
	Data    []byte
	Hash    []byte
}

// Ping derives a liveness probe from GetBlock(nil), per spec.md §4.2.
func Ping(ctx context.Context, t Transport) (types.Block, error) {
	return t.GetBlock(ctx, nil)
}

// Copyright 2025 Certen Protocol
//
// Package txbuilder implements C3: composing write/read transactions from
// (contract, method, params, sender) and parsing their outputs, grounded
// on the fluent builder shape used throughout the original crate's
// contracts/auth/role_control.rs (`.set_contract(name).set_method(m)
// .add_param(p)?...set_type(..).build(client)`).
package txbuilder

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/abi"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// Registry resolves a contract name to its parsed ABI and on-chain
// address. The Ledger Client (C5) implements this.
type Registry interface {
	Contract(name string) (*abi.Contract, types.Address, error)
	ChainID() uint64
	Transport() transport.Transport
}

// Builder is the fluent transaction-composition API.
type Builder struct {
	contractName string
	method       string
	params       []interface{}
	txType       types.TransactionType
	from         types.Address
	err          error
}

// NewBuilder starts a fresh builder.
func NewBuilder() *Builder {
	return &Builder{txType: types.Read}
}

func (b *Builder) SetContract(name string) *Builder {
	b.contractName = name
	return b
}

func (b *Builder) SetMethod(method string) *Builder {
	b.method = method
	return b
}

// AddParam appends an ABI-encodable argument, in the order the target
// method expects them.
func (b *Builder) AddParam(p interface{}) *Builder {
	b.params = append(b.params, p)
	return b
}

func (b *Builder) SetType(t types.TransactionType) *Builder {
	b.txType = t
	return b
}

func (b *Builder) SetFrom(from types.Address) *Builder {
	b.from = from
	return b
}

// Build resolves the named contract, ABI-encodes the call data, and for a
// Write transaction fetches the sender's nonce before returning.
func (b *Builder) Build(ctx context.Context, registry Registry) (*types.Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.contractName == "" || b.method == "" {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidInputData)
	}

	contract, address, err := registry.Contract(b.contractName)
	if err != nil {
		return nil, err
	}

	data, err := contract.Pack(b.method, b.params...)
	if err != nil {
		return nil, err
	}

	chainID := registry.ChainID()

	if b.txType == types.Read {
		return types.NewReadTransaction(address, data, chainID), nil
	}

	if b.from == "" {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidInputData, "from address required for write transaction to %s", b.contractName)
	}
	nonce, err := registry.Transport().GetTransactionCount(ctx, b.from)
	if err != nil {
		return nil, err
	}
	return types.NewWriteTransaction(address, b.from, data, chainID, nonce), nil
}

// Parse decodes raw return bytes for (contract, method) via C1.
func Parse(registry Registry, contractName, method string, data []byte) (*abi.ContractOutput, error) {
	contract, _, err := registry.Contract(contractName)
	if err != nil {
		return nil, err
	}
	return contract.Unpack(method, data)
}

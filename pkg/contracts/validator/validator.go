// Copyright 2025 Certen Protocol
//
// Package validator is the Validator Control façade (C7). Only Stewards
// may add/remove validators; that authorization is enforced on-chain, the
// client only transports the call.
package validator

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

const (
	ContractName = "ValidatorControl"

	MethodAddValidator    = "addValidator"
	MethodRemoveValidator = "removeValidator"
	MethodGetValidators   = "getValidators"
)

func BuildAddValidatorTransaction(ctx context.Context, registry txbuilder.Registry, from, validator types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodAddValidator).SetType(types.Write).SetFrom(from).
		AddParam(validator.Common()).Build(ctx, registry)
}

func BuildRemoveValidatorTransaction(ctx context.Context, registry txbuilder.Registry, from, validator types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodRemoveValidator).SetType(types.Write).SetFrom(from).
		AddParam(validator.Common()).Build(ctx, registry)
}

func BuildGetValidatorsTransaction(ctx context.Context, registry txbuilder.Registry) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodGetValidators).SetType(types.Read).Build(ctx, registry)
}

func ParseGetValidatorsResult(registry txbuilder.Registry, data []byte) ([]types.Address, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodGetValidators, data)
	if err != nil {
		return nil, err
	}
	addrs, err := out.GetAddressArray(0)
	if err != nil {
		return nil, err
	}
	result := make([]types.Address, len(addrs))
	for i, a := range addrs {
		addr, err := types.NewAddress(a.Hex())
		if err != nil {
			return nil, err
		}
		result[i] = addr
	}
	return result, nil
}

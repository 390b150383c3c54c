// Copyright 2025 Certen Protocol
//
// Package creddef is the Credential Definition Registry façade (C7),
// grounded on credential_definition_registry.rs.
package creddef

import (
	"context"
	"encoding/json"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/anoncreds"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/endorsing"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const (
	ContractName = "CredentialDefinitionRegistry"

	MethodCreateCredDef       = "createCredentialDefinition"
	MethodCreateCredDefSigned = "createCredentialDefinitionSigned"
	MethodResolveCredDef      = "resolveCredentialDefinition"
)

func BuildCreateCredentialDefinitionTransaction(ctx context.Context, registry txbuilder.Registry, from types.Address, cd *anoncreds.CredentialDefinition) (*types.Transaction, error) {
	if err := validate(cd); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(cd)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidCredentialDefinition, err, "marshal credential definition")
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodCreateCredDef).SetType(types.Write).SetFrom(from).
		AddParam(cd.ID).AddParam(payload).Build(ctx, registry)
}

func BuildResolveCredentialDefinitionTransaction(ctx context.Context, registry txbuilder.Registry, id string) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodResolveCredDef).SetType(types.Read).
		AddParam(id).Build(ctx, registry)
}

func ParseResolveCredentialDefinitionResult(registry txbuilder.Registry, data []byte) (*anoncreds.CredentialDefinition, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodResolveCredDef, data)
	if err != nil {
		return nil, err
	}
	payload, err := out.GetBytes(0)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, vdrerrors.New(vdrerrors.InvalidCredentialDefinition)
	}
	var cd anoncreds.CredentialDefinition
	if err := json.Unmarshal(payload, &cd); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, err, "unmarshal stored credential definition")
	}
	return &cd, nil
}

// BuildCreateCredentialDefinitionEndorsingData builds the C4 preimage for
// createCredentialDefinitionSigned.
func BuildCreateCredentialDefinitionEndorsingData(registry txbuilder.Registry, identity types.Address, cd *anoncreds.CredentialDefinition, nonce uint64) (*types.TransactionEndorsingData, error) {
	if err := validate(cd); err != nil {
		return nil, err
	}
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(cd)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidCredentialDefinition, err, "marshal credential definition")
	}
	packed := append([]byte(cd.ID), payload...)
	return endorsing.Build(contractAddr, identity, nonce, MethodCreateCredDefSigned, packed), nil
}

func validate(cd *anoncreds.CredentialDefinition) error {
	if cd.Tag == "" {
		return vdrerrors.New(vdrerrors.InvalidCredentialDefinition)
	}
	if cd.Value == nil {
		return vdrerrors.Newf(vdrerrors.InvalidCredentialDefinition, "value must not be null")
	}
	return nil
}

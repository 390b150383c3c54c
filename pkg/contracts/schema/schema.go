// Copyright 2025 Certen Protocol
//
// Package schema is the Schema Registry façade (C7), grounded on
// schema_registry.rs. Client-side validation happens before a create
// transaction is built; the contract itself only stores and indexes.
package schema

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
	ContractName = "SchemaRegistry"

	MethodCreateSchema       = "createSchema"
	MethodCreateSchemaSigned = "createSchemaSigned"
	MethodResolveSchema      = "resolveSchema"
)

// BuildCreateSchemaTransaction validates and encodes a createSchema call.
// The schema is serialized to canonical JSON and stored as the contract's
// opaque `bytes` payload, per spec.md §6.
func BuildCreateSchemaTransaction(ctx context.Context, registry txbuilder.Registry, from types.Address, s *anoncreds.Schema) (*types.Transaction, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidSchema, err, "marshal schema")
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodCreateSchema).SetType(types.Write).SetFrom(from).
		AddParam(s.ID).AddParam(payload).Build(ctx, registry)
}

// BuildResolveSchemaTransaction composes a Read call to resolveSchema(id).
func BuildResolveSchemaTransaction(ctx context.Context, registry txbuilder.Registry, id string) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodResolveSchema).SetType(types.Read).
		AddParam(id).Build(ctx, registry)
}

// ParseResolveSchemaResult decodes resolveSchema()'s stored JSON payload
// back into a Schema.
func ParseResolveSchemaResult(registry txbuilder.Registry, data []byte) (*anoncreds.Schema, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodResolveSchema, data)
	if err != nil {
		return nil, err
	}
	payload, err := out.GetBytes(0)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, vdrerrors.New(vdrerrors.InvalidSchema)
	}
	var s anoncreds.Schema
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, err, "unmarshal stored schema")
	}
	return &s, nil
}

// BuildCreateSchemaEndorsingData builds the C4 preimage for
// createSchemaSigned, letting an endorser submit the schema on the
// issuer's behalf.
func BuildCreateSchemaEndorsingData(registry txbuilder.Registry, identity types.Address, s *anoncreds.Schema, nonce uint64) (*types.TransactionEndorsingData, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidSchema, err, "marshal schema")
	}
	packed := append([]byte(s.ID), payload...)
	return endorsing.Build(contractAddr, identity, nonce, MethodCreateSchemaSigned, packed), nil
}

func validate(s *anoncreds.Schema) error {
	if s.Name == "" || s.Version == "" || len(s.AttrNames) == 0 {
		return vdrerrors.New(vdrerrors.InvalidSchema)
	}
	for _, a := range s.AttrNames {
		if a == "" {
			return vdrerrors.Newf(vdrerrors.InvalidSchema, "attribute name must not be empty")
		}
	}
	return nil
}

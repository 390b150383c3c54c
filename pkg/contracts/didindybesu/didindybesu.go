// Copyright 2025 Certen Protocol
//
// Package didindybesu is the DID (indybesu) façade (C7). Unlike ethr DIDs,
// indybesu documents are stored verbatim as JSON and returned as an opaque
// record, grounded on did_registry.rs / did_indy_registry.rs.
package didindybesu

import (
	"context"
	"encoding/json"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/did"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/endorsing"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const (
	ContractName = "IndyDidRegistry"

	MethodCreateDid          = "createDid"
	MethodCreateDidSigned    = "createDidSigned"
	MethodUpdateDid          = "updateDid"
	MethodUpdateDidSigned    = "updateDidSigned"
	MethodDeactivateDid       = "deactivateDid"
	MethodDeactivateDidSigned = "deactivateDidSigned"
	MethodResolveDid         = "resolveDid"
)

// Record is the verbatim stored record a resolveDid call returns: the
// document JSON plus its on-chain provenance.
type Record struct {
	Document    *did.Document
	Owner       types.Address
	Sender      types.Address
	Created     uint64
	Updated     uint64
	Deactivated bool
}

func BuildCreateDidTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, document *did.Document) (*types.Transaction, error) {
	docJSON, err := json.Marshal(document)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidData, err, "marshal did document")
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodCreateDid).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(docJSON).Build(ctx, registry)
}

func BuildUpdateDidTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, document *did.Document) (*types.Transaction, error) {
	docJSON, err := json.Marshal(document)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidData, err, "marshal did document")
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodUpdateDid).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(docJSON).Build(ctx, registry)
}

func BuildDeactivateDidTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodDeactivateDid).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).Build(ctx, registry)
}

func BuildResolveDidTransaction(ctx context.Context, registry txbuilder.Registry, identity types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodResolveDid).SetType(types.Read).
		AddParam(identity.Common()).Build(ctx, registry)
}

// ParseResolveDidResult decodes resolveDid()'s return bytes into a Record.
func ParseResolveDidResult(registry txbuilder.Registry, data []byte) (*Record, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodResolveDid, data)
	if err != nil {
		return nil, err
	}
	docBytes, err := out.GetBytes(0)
	if err != nil {
		return nil, err
	}
	var document did.Document
	if err := json.Unmarshal(docBytes, &document); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, err, "unmarshal stored did document")
	}

	ownerAddr, err := out.GetAddress(1)
	if err != nil {
		return nil, err
	}
	owner, err := types.NewAddress(ownerAddr.Hex())
	if err != nil {
		return nil, err
	}
	senderAddr, err := out.GetAddress(2)
	if err != nil {
		return nil, err
	}
	sender, err := types.NewAddress(senderAddr.Hex())
	if err != nil {
		return nil, err
	}
	created, err := out.GetU64(3)
	if err != nil {
		return nil, err
	}
	updated, err := out.GetU64(4)
	if err != nil {
		return nil, err
	}
	deactivated, err := out.GetBool(5)
	if err != nil {
		return nil, err
	}

	return &Record{
		Document:    &document,
		Owner:       owner,
		Sender:      sender,
		Created:     created,
		Updated:     updated,
		Deactivated: deactivated,
	}, nil
}

// BuildCreateDidEndorsingData builds the C4 preimage for createDidSigned.
func BuildCreateDidEndorsingData(registry txbuilder.Registry, identity types.Address, document *did.Document, nonce uint64) (*types.TransactionEndorsingData, error) {
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return nil, err
	}
	docJSON, err := json.Marshal(document)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.CommonInvalidData, err, "marshal did document")
	}
	return endorsing.Build(contractAddr, identity, nonce, MethodCreateDidSigned, docJSON), nil
}

// Copyright 2025 Certen Protocol
//
// Package legacy is the Legacy Mapping Registry façade (C7), grounded on
// legacy_mapping_registry.rs. It only transports mapping records; the
// contract itself validates the Ed25519 signature over the new identifier
// bytes from the legacy verkey.
package legacy

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const (
	ContractName = "LegacyMappingRegistry"

	MethodCreateDidMapping       = "createDidMapping"
	MethodCreateResourceMapping  = "createResourceMapping"
	MethodDidMapping             = "didMapping"
	MethodResourceMapping        = "resourceMapping"
)

// BuildCreateDidMappingTransaction maps legacyDid (a 22-character base58
// Indy DID) to identity, an already-registered did:ethr address, signed by
// the legacy verkey's Ed25519 signature over identity's bytes.
func BuildCreateDidMappingTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, legacyDid, legacyVerkey string, ed25519Signature []byte) (*types.Transaction, error) {
	if legacyDid == "" || legacyVerkey == "" {
		return nil, vdrerrors.New(vdrerrors.CommonInvalidData)
	}
	if len(ed25519Signature) != 64 {
		return nil, vdrerrors.Newf(vdrerrors.CommonInvalidData, "legacy mapping signature must be 64 bytes, got %d", len(ed25519Signature))
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodCreateDidMapping).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(legacyDid).AddParam(legacyVerkey).AddParam(ed25519Signature).
		Build(ctx, registry)
}

// BuildCreateResourceMappingTransaction maps a legacy schema or credential
// definition identifier (colon-delimited Indy form) to its new ethr-DID
// resource identifier.
func BuildCreateResourceMappingTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, legacyIssuerDid, legacyResourceID, newResourceID string, ed25519Signature []byte) (*types.Transaction, error) {
	if legacyIssuerDid == "" || legacyResourceID == "" || newResourceID == "" {
		return nil, vdrerrors.New(vdrerrors.CommonInvalidData)
	}
	if len(ed25519Signature) != 64 {
		return nil, vdrerrors.Newf(vdrerrors.CommonInvalidData, "legacy mapping signature must be 64 bytes, got %d", len(ed25519Signature))
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodCreateResourceMapping).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(legacyIssuerDid).AddParam(legacyResourceID).AddParam(newResourceID).AddParam(ed25519Signature).
		Build(ctx, registry)
}

// BuildDidMappingTransaction composes a Read call resolving a legacy Indy
// DID to its registered did:ethr address.
func BuildDidMappingTransaction(ctx context.Context, registry txbuilder.Registry, legacyDid string) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodDidMapping).SetType(types.Read).
		AddParam(legacyDid).Build(ctx, registry)
}

// ParseDidMappingResult decodes didMapping()'s return bytes into the
// registered address. A null address means no mapping exists.
func ParseDidMappingResult(registry txbuilder.Registry, data []byte) (types.Address, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodDidMapping, data)
	if err != nil {
		return "", err
	}
	addr, err := out.GetAddress(0)
	if err != nil {
		return "", err
	}
	return types.NewAddress(addr.Hex())
}

// BuildResourceMappingTransaction composes a Read call resolving a legacy
// resource identifier to its new identifier string.
func BuildResourceMappingTransaction(ctx context.Context, registry txbuilder.Registry, legacyResourceID string) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodResourceMapping).SetType(types.Read).
		AddParam(legacyResourceID).Build(ctx, registry)
}

// ParseResourceMappingResult decodes resourceMapping()'s return bytes.
func ParseResourceMappingResult(registry txbuilder.Registry, data []byte) (string, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodResourceMapping, data)
	if err != nil {
		return "", err
	}
	return out.GetString(0)
}

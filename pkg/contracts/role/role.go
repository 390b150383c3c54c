// Copyright 2025 Certen Protocol
//
// Package role is the Role Control façade (C7), grounded on
// contracts/auth/role_control.rs.
package role

import (
	"context"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const (
	ContractName = "RoleControl"

	MethodAssignRole = "assignRole"
	MethodRevokeRole = "revokeRole"
	MethodHasRole    = "hasRole"
	MethodGetRole    = "getRole"
)

// Role mirrors the on-chain enum: Empty, Trustee, Endorser, Steward.
type Role uint8

const (
	Empty Role = iota
	Trustee
	Endorser
	Steward
)

// BuildAssignRoleTransaction composes a Write transaction granting role to
// account, sent by from.
func BuildAssignRoleTransaction(ctx context.Context, registry txbuilder.Registry, from, account types.Address, role Role) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).
		SetMethod(MethodAssignRole).
		SetType(types.Write).
		SetFrom(from).
		AddParam(uint8(role)).
		AddParam(account.Common()).
		Build(ctx, registry)
}

// BuildRevokeRoleTransaction composes a Write transaction revoking role
// from account.
func BuildRevokeRoleTransaction(ctx context.Context, registry txbuilder.Registry, from, account types.Address, role Role) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).
		SetMethod(MethodRevokeRole).
		SetType(types.Write).
		SetFrom(from).
		AddParam(uint8(role)).
		AddParam(account.Common()).
		Build(ctx, registry)
}

// BuildHasRoleTransaction composes a Read transaction checking membership.
func BuildHasRoleTransaction(ctx context.Context, registry txbuilder.Registry, role Role, account types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).
		SetMethod(MethodHasRole).
		SetType(types.Read).
		AddParam(uint8(role)).
		AddParam(account.Common()).
		Build(ctx, registry)
}

// ParseHasRoleResult decodes a hasRole call's return bytes.
func ParseHasRoleResult(registry txbuilder.Registry, data []byte) (bool, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodHasRole, data)
	if err != nil {
		return false, err
	}
	return out.GetBool(0)
}

// BuildGetRoleTransaction composes a Read transaction fetching an
// account's role.
func BuildGetRoleTransaction(ctx context.Context, registry txbuilder.Registry, account types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).
		SetMethod(MethodGetRole).
		SetType(types.Read).
		AddParam(account.Common()).
		Build(ctx, registry)
}

// ParseGetRoleResult decodes a getRole call's return bytes. A 32-byte zero
// return decodes to Role Empty, per spec.md §8 scenario 2.
func ParseGetRoleResult(registry txbuilder.Registry, data []byte) (Role, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodGetRole, data)
	if err != nil {
		return Empty, err
	}
	v, err := out.GetU8(0)
	if err != nil {
		n, err2 := out.GetU64(0)
		if err2 != nil {
			return Empty, vdrerrors.New(vdrerrors.ContractInvalidResponseData)
		}
		return Role(n), nil
	}
	return Role(v), nil
}

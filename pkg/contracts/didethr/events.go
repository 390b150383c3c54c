// Copyright 2025 Certen Protocol
//
// Package didethr is the DID (ethr) façade (C7) plus the event-sourced
// resolver (C8), grounded on did_ethr_registry.rs and
// did_ethr_resolver.rs.
package didethr

import (
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const (
	ContractName  = "EthereumExtDidRegistry"
	EthrDidMethod = "ethr"

	MethodChangeOwner        = "changeOwner"
	MethodChangeOwnerSigned  = "changeOwnerSigned"
	MethodAddDelegate        = "addDelegate"
	MethodAddDelegateSigned  = "addDelegateSigned"
	MethodRevokeDelegate       = "revokeDelegate"
	MethodRevokeDelegateSigned = "revokeDelegateSigned"
	MethodSetAttribute       = "setAttribute"
	MethodSetAttributeSigned = "setAttributeSigned"
	MethodRevokeAttribute       = "revokeAttribute"
	MethodRevokeAttributeSigned = "revokeAttributeSigned"
	MethodChanged = "changed"
	MethodOwners  = "owner"
	MethodNonce   = "nonce"

	EventOwnerChanged     = "DIDOwnerChanged"
	EventDelegateChanged  = "DIDDelegateChanged"
	EventAttributeChanged = "DIDAttributeChanged"
)

// DelegateType distinguishes the two delegate categories the registry
// tracks.
type DelegateType int

const (
	VeriKey DelegateType = iota
	SigAuth
)

// ParseDelegateType maps the raw delegate-type bytes32 the contract stores
// into a DelegateType.
func ParseDelegateType(raw []byte) (DelegateType, error) {
	s := trimZero(raw)
	switch s {
	case "veriKey":
		return VeriKey, nil
	case "sigAuth":
		return SigAuth, nil
	default:
		return 0, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "unknown delegate type %q", s)
	}
}

func trimZero(b []byte) string {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return string(b[:i])
}

// OwnerChanged mirrors DIDOwnerChanged: identity, owner, previousChange.
type OwnerChanged struct {
	Identity       types.Address
	Owner          types.Address
	PreviousChange types.Block
}

// DelegateChanged mirrors DIDDelegateChanged.
type DelegateChanged struct {
	Identity       types.Address
	DelegateType   []byte
	Delegate       types.Address
	ValidTo        uint64
	PreviousChange types.Block
}

// AttributeChanged mirrors DIDAttributeChanged.
type AttributeChanged struct {
	Identity       types.Address
	Name           [32]byte
	Value          []byte
	ValidTo        uint64
	PreviousChange types.Block
}

// Event is the union of the three ethr registry event kinds, each of which
// carries a previousChange pointer used to walk the change-history chain
// backward.
type Event struct {
	Owner     *OwnerChanged
	Delegate  *DelegateChanged
	Attribute *AttributeChanged
}

// PreviousChange returns whichever variant's previousChange pointer is set.
func (e Event) PreviousChange() types.Block {
	switch {
	case e.Owner != nil:
		return e.Owner.PreviousChange
	case e.Delegate != nil:
		return e.Delegate.PreviousChange
	default:
		return e.Attribute.PreviousChange
	}
}

// Key returns the opaque identifier used to correlate an add event with
// its later expiry/removal event in the DID document builder: the
// delegate address for delegate events, the raw attribute name for
// attribute events.
func (e Event) Key() string {
	switch {
	case e.Delegate != nil:
		return string(e.Delegate.Delegate)
	case e.Attribute != nil:
		return trimZero(e.Attribute.Name[:])
	default:
		return ""
	}
}

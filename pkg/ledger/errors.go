// Copyright 2025 Certen Protocol
//
// Package ledger implements C5, the façade that owns the transport, the
// contract registry and an optional quorum verifier.
package ledger

import "errors"

// Sentinel errors for conditions a caller typically wants to errors.Is
// against directly rather than inspect a vdrerrors.Code for. Client does not
// return either of them: an unknown contract name is reported as
// vdrerrors.ContractInvalidName.
var (
	ErrContractNotFound  = errors.New("ledger: contract not registered")
	ErrNoQuorumConfigured = errors.New("ledger: quorum verification requested but no quorum configured")
)

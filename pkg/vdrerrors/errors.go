// Copyright 2025 Certen Protocol
//
// Package vdrerrors defines the error taxonomy surfaced at the boundary of
// the ledger client: transport failures, contract decoding failures, signer
// failures and caller validation failures all resolve to one of these codes.
package vdrerrors

import (
	"errors"
	"fmt"
)

// Code classifies an Error into one of the bands described in the error
// handling design: caller errors, transport/consensus errors and
// response-decoding errors.
type Code string

const (
	QuorumNotReached                      Code = "QuorumNotReached"
	ClientNodeUnreachable                  Code = "ClientNodeUnreachable"
	ClientInvalidTransaction               Code = "ClientInvalidTransaction"
	ClientInvalidResponse                  Code = "ClientInvalidResponse"
	ClientTransactionReverted              Code = "ClientTransactionReverted"
	ClientInvalidState                     Code = "ClientInvalidState"
	ContractInvalidName                    Code = "ContractInvalidName"
	ContractInvalidSpec                    Code = "ContractInvalidSpec"
	ContractInvalidInputData               Code = "ContractInvalidInputData"
	ContractInvalidResponseData            Code = "ContractInvalidResponseData"
	SignerInvalidPrivateKey                Code = "SignerInvalidPrivateKey"
	SignerInvalidMessage                   Code = "SignerInvalidMessage"
	SignerMissingKey                       Code = "SignerMissingKey"
	CommonInvalidData                      Code = "CommonInvalidData"
	InvalidSchema                          Code = "InvalidSchema"
	InvalidCredentialDefinition            Code = "InvalidCredentialDefinition"
	InvalidRevocationRegistryDefinition    Code = "InvalidRevocationRegistryDefinition"
	InvalidRevocationRegistryEntry         Code = "InvalidRevocationRegistryEntry"
	InvalidRevocationRegistryStatusList    Code = "InvalidRevocationRegistryStatusList"
	GetTransactionError                    Code = "GetTransactionError"
)

// Error is the typed error every component boundary listed in spec.md §2
// returns instead of a bare error value.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error with no message.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Newf builds an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that carries an underlying cause for %w-style chains.
func Wrap(code Code, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err carries the given Code, looking through wrapping.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

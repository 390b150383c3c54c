// Copyright 2025 Certen Protocol
//
// Package abi implements C1: encoding typed operation parameters into EVM
// call-data and decoding return values and event logs into typed outputs,
// grounded on the raw abi.JSON/Pack/Unpack pattern used throughout
// pkg/ethereum/client.go rather than generated contract bindings, since the
// contract set is loaded dynamically from JSON specs at client construction.
package abi

import (
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// Contract wraps a parsed ABI together with the name it was registered
// under in the contract registry.
type Contract struct {
	Name string
	ABI  gethabi.ABI
}

// Parse loads a contract's ABI from its JSON representation.
func Parse(name, abiJSON string) (*Contract, error) {
	parsed, err := gethabi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, err, "parse ABI for contract %s", name)
	}
	return &Contract{Name: name, ABI: parsed}, nil
}

// Selector returns the 4-byte method selector: the first 4 bytes of
// keccak256(canonical_signature). go-ethereum's Method.ID already computes
// exactly this.
func (c *Contract) Selector(method string) ([]byte, error) {
	m, ok := c.ABI.Methods[method]
	if !ok {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidName, "method %s not found on contract %s", method, c.Name)
	}
	return m.ID, nil
}

// Pack encodes method arguments (selector ++ abi_encode(params)).
func (c *Contract) Pack(method string, args ...interface{}) ([]byte, error) {
	data, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidInputData, err, "pack %s.%s", c.Name, method)
	}
	return data, nil
}

// Unpack decodes raw return bytes for a method into a ContractOutput.
func (c *Contract) Unpack(method string, data []byte) (*ContractOutput, error) {
	values, err := c.ABI.Unpack(method, data)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, err, "unpack %s.%s", c.Name, method)
	}
	return &ContractOutput{contract: c.Name, method: method, values: values}, nil
}

// EventByID returns the ABI event matching a log's topic0.
func (c *Contract) EventByID(topic0 []byte) (gethabi.Event, bool) {
	for _, ev := range c.ABI.Events {
		if string(ev.ID.Bytes()) == string(topic0) {
			return ev, true
		}
	}
	return gethabi.Event{}, false
}

// EncodePackedParams returns the tightly-packed (non-standard-ABI)
// concatenation of param byte representations used by C4's endorsing-data
// preimage (`abi_encode_packed(params)` in spec.md §4.4). Each param is a
// byte slice already rendered by the caller (address 20B, uint256 32B BE,
// bytes32 32B, or raw string/bytes).
func EncodePackedParams(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// FormatBytes32 zero-right-pads a UTF-8 string into a bytes32 value. Longer
// strings are CommonInvalidData, per spec.md §4.1.
func FormatBytes32(s string) ([32]byte, error) {
	var out [32]byte
	b := []byte(s)
	if len(b) > 32 {
		return out, vdrerrors.Newf(vdrerrors.CommonInvalidData, "string %q exceeds 32 bytes", s)
	}
	copy(out[:], b)
	return out, nil
}

// MethodSignatureHash is exposed for event-signature topic computation:
// keccak256(canonical_event_signature).
func MethodSignatureHash(signature string) []byte {
	return crypto.Keccak256([]byte(signature))
}

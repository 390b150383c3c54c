// Copyright 2025 Certen Protocol
package abi

import (
	"bytes"
	"testing"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const testABI = `[
	{"type":"function","name":"hasRole","stateMutability":"view","inputs":[{"name":"account","type":"address"},{"name":"role","type":"uint8"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"assignRole","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"},{"name":"role","type":"uint8"}],"outputs":[]},
	{"type":"event","name":"RoleAssigned","inputs":[{"name":"account","type":"address","indexed":true},{"name":"role","type":"uint8","indexed":false}]}
]`

func TestParsePackUnpack(t *testing.T) {
	c, err := Parse("RoleControl", testABI)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	data, err := c.Pack("assignRole", commonAddr(t), uint8(1))
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	selector, err := c.Selector("assignRole")
	if err != nil {
		t.Fatalf("Selector() error: %v", err)
	}
	if !bytes.Equal(data[:4], selector) {
		t.Errorf("Pack() output does not start with the method selector")
	}
}

func TestPackUnknownMethod(t *testing.T) {
	c, err := Parse("RoleControl", testABI)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err := c.Pack("doesNotExist"); err == nil {
		t.Errorf("expected error packing an unknown method")
	} else if !vdrerrors.Is(err, vdrerrors.ContractInvalidInputData) {
		t.Errorf("expected ContractInvalidInputData, got %v", err)
	}
}

func TestParseInvalidSpec(t *testing.T) {
	if _, err := Parse("Broken", "not json"); err == nil {
		t.Errorf("expected error for malformed ABI JSON")
	} else if !vdrerrors.Is(err, vdrerrors.ContractInvalidSpec) {
		t.Errorf("expected ContractInvalidSpec, got %v", err)
	}
}

func TestFormatBytes32(t *testing.T) {
	out, err := FormatBytes32("hello")
	if err != nil {
		t.Fatalf("FormatBytes32() error: %v", err)
	}
	if out[0] != 'h' || out[31] != 0 {
		t.Errorf("FormatBytes32() did not zero-right-pad correctly: %v", out)
	}

	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := FormatBytes32(string(long)); err == nil {
		t.Errorf("expected error for a string longer than 32 bytes")
	}
}

func TestEncodePackedParams(t *testing.T) {
	got := EncodePackedParams([]byte{1, 2}, []byte{3}, []byte{4, 5})
	want := []byte{1, 2, 3, 4, 5}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodePackedParams() = %v, want %v", got, want)
	}
}

func commonAddr(t *testing.T) gethcommon.Address {
	t.Helper()
	return gethcommon.HexToAddress("0x0000000000000000000000000000000000000001")
}

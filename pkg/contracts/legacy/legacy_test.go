// Copyright 2025 Certen Protocol
package legacy

import (
	"context"
	"testing"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/abi"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

const legacyTestABI = `[
	{"type":"function","name":"createDidMapping","stateMutability":"nonpayable","inputs":[{"name":"identity","type":"address"},{"name":"legacyDid","type":"string"},{"name":"legacyVerkey","type":"string"},{"name":"signature","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"createResourceMapping","stateMutability":"nonpayable","inputs":[{"name":"identity","type":"address"},{"name":"legacyIssuerDid","type":"string"},{"name":"legacyResourceId","type":"string"},{"name":"newResourceId","type":"string"},{"name":"signature","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"didMapping","stateMutability":"view","inputs":[{"name":"legacyDid","type":"string"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"resourceMapping","stateMutability":"view","inputs":[{"name":"legacyResourceId","type":"string"}],"outputs":[{"name":"","type":"string"}]}
]`

type fakeRegistry struct {
	contract *abi.Contract
	address  types.Address
}

func (r *fakeRegistry) Contract(name string) (*abi.Contract, types.Address, error) {
	return r.contract, r.address, nil
}
func (r *fakeRegistry) ChainID() uint64                { return 1 }
func (r *fakeRegistry) Transport() transport.Transport { return nil }

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()
	contract, err := abi.Parse(ContractName, legacyTestABI)
	if err != nil {
		t.Fatalf("abi.Parse() error: %v", err)
	}
	addr, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	return &fakeRegistry{contract: contract, address: addr}
}

func sig64() []byte {
	return make([]byte, 64)
}

func TestBuildCreateDidMappingTransaction(t *testing.T) {
	reg := newFakeRegistry(t)
	from, _ := types.NewAddress("0x222222222222222222222222222222222222222b")
	identity, _ := types.NewAddress("0x333333333333333333333333333333333333333c")
	tx, err := BuildCreateDidMappingTransaction(context.Background(), reg, from, identity, "2wJPyULfLLnYTEFYzByfUR", "~keyhex", sig64())
	if err != nil {
		t.Fatalf("BuildCreateDidMappingTransaction() error: %v", err)
	}
	if tx.Type != types.Write {
		t.Errorf("Type = %v, want Write", tx.Type)
	}
}

func TestBuildCreateDidMappingTransactionRejectsBadSignatureLength(t *testing.T) {
	reg := newFakeRegistry(t)
	from, _ := types.NewAddress("0x222222222222222222222222222222222222222b")
	identity, _ := types.NewAddress("0x333333333333333333333333333333333333333c")
	if _, err := BuildCreateDidMappingTransaction(context.Background(), reg, from, identity, "2wJPyULfLLnYTEFYzByfUR", "~keyhex", []byte{0x01}); err == nil {
		t.Errorf("expected an error for a non-64-byte signature")
	}
}

func TestBuildCreateDidMappingTransactionRejectsEmptyLegacyDid(t *testing.T) {
	reg := newFakeRegistry(t)
	from, _ := types.NewAddress("0x222222222222222222222222222222222222222b")
	identity, _ := types.NewAddress("0x333333333333333333333333333333333333333c")
	if _, err := BuildCreateDidMappingTransaction(context.Background(), reg, from, identity, "", "~keyhex", sig64()); err == nil {
		t.Errorf("expected an error for an empty legacy DID")
	}
}

func TestBuildCreateResourceMappingTransaction(t *testing.T) {
	reg := newFakeRegistry(t)
	from, _ := types.NewAddress("0x222222222222222222222222222222222222222b")
	identity, _ := types.NewAddress("0x333333333333333333333333333333333333333c")
	tx, err := BuildCreateResourceMappingTransaction(context.Background(), reg, from, identity, "2wJPyULfLLnYTEFYzByfUR", "2wJPyULfLLnYTEFYzByfUR:2:schema:1.0", "did:ethr:0x3c/anoncreds/v0/SCHEMA/schema/1.0", sig64())
	if err != nil {
		t.Fatalf("BuildCreateResourceMappingTransaction() error: %v", err)
	}
	if tx.Type != types.Write {
		t.Errorf("Type = %v, want Write", tx.Type)
	}
}

func TestParseDidMappingResultNormalizesCase(t *testing.T) {
	reg := newFakeRegistry(t)
	checksummed := gethcommon.HexToAddress("0x333333333333333333333333333333333333333c")
	packed, err := reg.contract.ABI.Methods[MethodDidMapping].Outputs.Pack(checksummed)
	if err != nil {
		t.Fatalf("pack result: %v", err)
	}
	got, err := ParseDidMappingResult(reg, packed)
	if err != nil {
		t.Fatalf("ParseDidMappingResult() error: %v", err)
	}
	want, _ := types.NewAddress(checksummed.Hex())
	if got != want {
		t.Errorf("ParseDidMappingResult() = %s, want %s", got, want)
	}
}

func TestParseResourceMappingResult(t *testing.T) {
	reg := newFakeRegistry(t)
	packed, err := reg.contract.ABI.Methods[MethodResourceMapping].Outputs.Pack("did:ethr:0x3c/anoncreds/v0/SCHEMA/schema/1.0")
	if err != nil {
		t.Fatalf("pack result: %v", err)
	}
	got, err := ParseResourceMappingResult(reg, packed)
	if err != nil {
		t.Fatalf("ParseResourceMappingResult() error: %v", err)
	}
	if got != "did:ethr:0x3c/anoncreds/v0/SCHEMA/schema/1.0" {
		t.Errorf("ParseResourceMappingResult() = %s", got)
	}
}

// Copyright 2025 Certen Protocol
package didindybesu

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/abi"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/did"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

const didIndyBesuTestABI = `[
	{"type":"function","name":"createDid","stateMutability":"nonpayable","inputs":[{"name":"identity","type":"address"},{"name":"document","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"resolveDid","stateMutability":"view","inputs":[{"name":"identity","type":"address"}],"outputs":[
		{"name":"document","type":"bytes"},
		{"name":"owner","type":"address"},
		{"name":"sender","type":"address"},
		{"name":"created","type":"uint256"},
		{"name":"updated","type":"uint256"},
		{"name":"deactivated","type":"bool"}
	]}
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
	contract, err := abi.Parse(ContractName, didIndyBesuTestABI)
	if err != nil {
		t.Fatalf("abi.Parse() error: %v", err)
	}
	addr, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	return &fakeRegistry{contract: contract, address: addr}
}

func TestBuildCreateDidTransaction(t *testing.T) {
	reg := newFakeRegistry(t)
	from, _ := types.NewAddress("0x222222222222222222222222222222222222222b")
	identity, _ := types.NewAddress("0x333333333333333333333333333333333333333c")
	doc := &did.Document{ID: "did:indybesu:testnet:0xabc"}
	tx, err := BuildCreateDidTransaction(context.Background(), reg, from, identity, doc)
	if err != nil {
		t.Fatalf("BuildCreateDidTransaction() error: %v", err)
	}
	if tx.Type != types.Write {
		t.Errorf("Type = %v, want Write", tx.Type)
	}
}

func TestParseResolveDidResultNormalizesAddressCase(t *testing.T) {
	reg := newFakeRegistry(t)
	doc := &did.Document{ID: "did:indybesu:testnet:0xabc"}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}
	owner := gethcommon.HexToAddress("0x222222222222222222222222222222222222222b")
	sender := gethcommon.HexToAddress("0x333333333333333333333333333333333333333c")
	packed, err := reg.contract.ABI.Methods[MethodResolveDid].Outputs.Pack(docJSON, owner, sender, big.NewInt(100), big.NewInt(200), false)
	if err != nil {
		t.Fatalf("pack result: %v", err)
	}

	record, err := ParseResolveDidResult(reg, packed)
	if err != nil {
		t.Fatalf("ParseResolveDidResult() error: %v", err)
	}
	if record.Document.ID != doc.ID {
		t.Errorf("Document.ID = %s, want %s", record.Document.ID, doc.ID)
	}
	wantOwner, _ := types.NewAddress(owner.Hex())
	if record.Owner != wantOwner {
		t.Errorf("Owner = %s, want %s", record.Owner, wantOwner)
	}
	if record.Created != 100 || record.Updated != 200 {
		t.Errorf("Created/Updated = %d/%d, want 100/200", record.Created, record.Updated)
	}
	if record.Deactivated {
		t.Errorf("Deactivated = true, want false")
	}
}

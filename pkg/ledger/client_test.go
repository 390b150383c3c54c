// Copyright 2025 Certen Protocol
package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

const fakeContractABI = `[{"type":"function","name":"noop","stateMutability":"view","inputs":[],"outputs":[]}]`

type fakeTransport struct {
	callResult   []byte
	submitResult []byte
	submitErr    error
	nonce        uint64
}

func (f *fakeTransport) GetTransactionCount(ctx context.Context, addr types.Address) (uint64, error) {
	return f.nonce, nil
}
func (f *fakeTransport) SubmitTransaction(ctx context.Context, raw []byte) ([]byte, error) {
	return f.submitResult, f.submitErr
}
func (f *fakeTransport) CallTransaction(ctx context.Context, to types.Address, data []byte) ([]byte, error) {
	return f.callResult, nil
}
func (f *fakeTransport) QueryEvents(ctx context.Context, query types.EventQuery) ([]types.EventLog, error) {
	return nil, nil
}
func (f *fakeTransport) GetReceipt(ctx context.Context, hash []byte) (string, error) {
	return "0x0", nil
}
func (f *fakeTransport) GetBlock(ctx context.Context, height *uint64) (types.Block, error) {
	return types.Block{}, nil
}
func (f *fakeTransport) GetTransaction(ctx context.Context, hash []byte) (*transport.Transaction, error) {
	return nil, nil
}

func fakeDialer(t *fakeTransport) Dialer {
	return func(nodeAddress string) (transport.Transport, error) {
		return t, nil
	}
}

func validConfig() types.LedgerConfig {
	return types.LedgerConfig{
		ChainID:     1337,
		NodeAddress: "http://localhost:8545",
		Contracts: []types.ContractConfig{
			{
				Address: "0x111111111111111111111111111111111111111a",
				Spec:    &types.ContractSpec{Name: "DidRegistry", ABI: fakeContractABI},
			},
		},
	}
}

func TestNewClientRegistersContracts(t *testing.T) {
	client, err := NewClient(context.Background(), validConfig(), fakeDialer(&fakeTransport{}), nil)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	contract, addr, err := client.Contract("DidRegistry")
	if err != nil {
		t.Fatalf("Contract() error: %v", err)
	}
	if contract.Name != "DidRegistry" {
		t.Errorf("contract.Name = %s, want DidRegistry", contract.Name)
	}
	if addr != "0x111111111111111111111111111111111111111a" {
		t.Errorf("addr = %s", addr)
	}
	if client.ChainID() != 1337 {
		t.Errorf("ChainID() = %d, want 1337", client.ChainID())
	}
}

func TestNewClientFailsOnDialError(t *testing.T) {
	dial := func(nodeAddress string) (transport.Transport, error) {
		return nil, errors.New("connection refused")
	}
	if _, err := NewClient(context.Background(), validConfig(), dial, nil); err == nil {
		t.Errorf("expected an error when the dialer fails")
	}
}

func TestContractRejectsUnknownName(t *testing.T) {
	client, err := NewClient(context.Background(), validConfig(), fakeDialer(&fakeTransport{}), nil)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if _, _, err := client.Contract("NoSuchContract"); err == nil {
		t.Errorf("expected an error for an unregistered contract name")
	}
}

func TestNewClientRejectsContractWithBothSpecAndSpecPath(t *testing.T) {
	cfg := validConfig()
	cfg.Contracts[0].SpecPath = "./somewhere.json"
	if _, err := NewClient(context.Background(), cfg, fakeDialer(&fakeTransport{}), nil); err == nil {
		t.Errorf("expected an error when both spec and spec_path are set")
	}
}

func TestNewClientRejectsContractWithNeitherSpecNorSpecPath(t *testing.T) {
	cfg := validConfig()
	cfg.Contracts[0].Spec = nil
	if _, err := NewClient(context.Background(), cfg, fakeDialer(&fakeTransport{}), nil); err == nil {
		t.Errorf("expected an error when neither spec nor spec_path is set")
	}
}

func TestNameFromPath(t *testing.T) {
	cases := map[string]string{
		"./abi/DidRegistry.json": "DidRegistry",
		"DidRegistry.json":       "DidRegistry",
		"/a/b/c.abi.json":        "c.abi",
		"noext":                  "noext",
	}
	for path, want := range cases {
		if got := nameFromPath(path); got != want {
			t.Errorf("nameFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSubmitTransactionRead(t *testing.T) {
	tp := &fakeTransport{callResult: []byte{0xab}}
	client, err := NewClient(context.Background(), validConfig(), fakeDialer(tp), nil)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	to, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	tx := types.NewReadTransaction(to, nil, 1337)
	got, err := client.SubmitTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("SubmitTransaction() error: %v", err)
	}
	if len(got) != 1 || got[0] != 0xab {
		t.Errorf("SubmitTransaction() = %v, want [0xab]", got)
	}
}

func TestSubmitTransactionWrite(t *testing.T) {
	tp := &fakeTransport{submitResult: []byte{0xcd}}
	client, err := NewClient(context.Background(), validConfig(), fakeDialer(tp), nil)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	to, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	from, _ := types.NewAddress("0x222222222222222222222222222222222222222b")
	tx := types.NewWriteTransaction(to, from, nil, 1337, 0)
	if err := tx.SetSignature(types.Signature{V: 27}); err != nil {
		t.Fatalf("SetSignature() error: %v", err)
	}
	got, err := client.SubmitTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("SubmitTransaction() error: %v", err)
	}
	if len(got) != 1 || got[0] != 0xcd {
		t.Errorf("SubmitTransaction() = %v, want [0xcd]", got)
	}
}

func TestSubmitTransactionPropagatesTransportError(t *testing.T) {
	tp := &fakeTransport{submitErr: errors.New("node rejected transaction")}
	client, err := NewClient(context.Background(), validConfig(), fakeDialer(tp), nil)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	to, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	from, _ := types.NewAddress("0x222222222222222222222222222222222222222b")
	tx := types.NewWriteTransaction(to, from, nil, 1337, 0)
	if err := tx.SetSignature(types.Signature{V: 27}); err != nil {
		t.Fatalf("SetSignature() error: %v", err)
	}
	if _, err := client.SubmitTransaction(context.Background(), tx); err == nil {
		t.Errorf("expected SubmitTransaction() to propagate the transport error")
	}
}

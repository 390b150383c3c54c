// Copyright 2025 Certen Protocol
package didethr

import (
	"context"
	"math/big"
	"strings"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/abi"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/did"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

type fakeResolverClient struct {
	contract     *abi.Contract
	address      types.Address
	changedBlock uint64
	logsByBlock  map[uint64][]types.EventLog
}

func (c *fakeResolverClient) Contract(name string) (*abi.Contract, types.Address, error) {
	return c.contract, c.address, nil
}
func (c *fakeResolverClient) ChainID() uint64                { return 1337 }
func (c *fakeResolverClient) Transport() transport.Transport { return nil }

func (c *fakeResolverClient) SubmitTransaction(ctx context.Context, tx *types.Transaction) ([]byte, error) {
	return c.contract.ABI.Methods[MethodChanged].Outputs.Pack(new(big.Int).SetUint64(c.changedBlock))
}

func (c *fakeResolverClient) GetBlock(ctx context.Context, height *uint64) (types.Block, error) {
	return types.Block{Number: *height, Timestamp: 1000 + *height}, nil
}

func (c *fakeResolverClient) QueryEvents(ctx context.Context, query types.EventQuery) ([]types.EventLog, error) {
	if query.FromBlock == nil {
		return nil, nil
	}
	return c.logsByBlock[query.FromBlock.Number], nil
}

func newDelegateChangedLog(t *testing.T, contract *abi.Contract, identity, delegate gethcommon.Address, validTo, previousChange uint64) types.EventLog {
	t.Helper()
	ev := contract.ABI.Events[EventDelegateChanged]
	delegateType, err := abi.FormatBytes32("veriKey")
	if err != nil {
		t.Fatalf("FormatBytes32() error: %v", err)
	}
	data, err := gethabi.Arguments{ev.Inputs[1], ev.Inputs[2], ev.Inputs[3], ev.Inputs[4]}.
		Pack(delegateType, delegate, new(big.Int).SetUint64(validTo), new(big.Int).SetUint64(previousChange))
	if err != nil {
		t.Fatalf("pack event data: %v", err)
	}
	return types.EventLog{
		Topics: []string{"0x" + gethcommon.Bytes2Hex(ev.ID.Bytes()), topicFor(identity)},
		Data:   data,
		Block:  types.BlockAt(10),
	}
}

func newOwnerChangedLog(t *testing.T, contract *abi.Contract, identity, owner gethcommon.Address, previousChange uint64) types.EventLog {
	t.Helper()
	ev := contract.ABI.Events[EventOwnerChanged]
	data, err := gethabi.Arguments{ev.Inputs[1], ev.Inputs[2]}.Pack(owner, new(big.Int).SetUint64(previousChange))
	if err != nil {
		t.Fatalf("pack event data: %v", err)
	}
	return types.EventLog{
		Topics: []string{"0x" + gethcommon.Bytes2Hex(ev.ID.Bytes()), topicFor(identity)},
		Data:   data,
		Block:  types.BlockAt(10),
	}
}

func TestResolveDidRejectsNonEthrMethod(t *testing.T) {
	result := ResolveDid(context.Background(), &fakeResolverClient{}, types.DID("did:indybesu:abc"), nil)
	if result.ResolutionMetadata.Error == nil || *result.ResolutionMetadata.Error != did.MethodNotSupported {
		t.Fatalf("expected MethodNotSupported for a non-ethr DID, got %+v", result.ResolutionMetadata.Error)
	}
}

func TestResolveDidRejectsMalformedDid(t *testing.T) {
	result := ResolveDid(context.Background(), &fakeResolverClient{}, types.DID("not-a-did"), nil)
	if result.ResolutionMetadata.Error == nil || *result.ResolutionMetadata.Error != did.InvalidDid {
		t.Fatalf("expected InvalidDid for a malformed DID, got %+v", result.ResolutionMetadata.Error)
	}
}

func TestResolveDidNeverChangedReturnsBaseDocument(t *testing.T) {
	contract, err := abi.Parse(ContractName, registryTestABI)
	if err != nil {
		t.Fatalf("abi.Parse() error: %v", err)
	}
	addr, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	client := &fakeResolverClient{contract: contract, address: addr, changedBlock: 0}

	identityAddr := gethcommon.HexToAddress("0x111111111111111111111111111111111111111a")
	result := ResolveDid(context.Background(), client, types.DID("did:ethr:"+identityAddr.Hex()), nil)
	if result.ResolutionMetadata.Error != nil {
		t.Fatalf("unexpected resolution error: %s", result.ResolutionMetadata.Message)
	}
	if len(result.Document.VerificationMethod) != 1 {
		t.Fatalf("expected only the base controller verification method, got %+v", result.Document.VerificationMethod)
	}
}

func TestResolveDidWalksDelegateHistory(t *testing.T) {
	contract, err := abi.Parse(ContractName, registryTestABI)
	if err != nil {
		t.Fatalf("abi.Parse() error: %v", err)
	}
	addr, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	identity := gethcommon.HexToAddress("0x111111111111111111111111111111111111111a")
	delegate := gethcommon.HexToAddress("0x333333333333333333333333333333333333333c")

	// One live DIDDelegateChanged event at block 10, previousChange points to
	// block 0 where no further logs exist: traversal stops there.
	delegateLog := newDelegateChangedLog(t, contract, identity, delegate, 9_999_999_999, 0)

	client := &fakeResolverClient{
		contract:     contract,
		address:      addr,
		changedBlock: 10,
		logsByBlock: map[uint64][]types.EventLog{
			10: {delegateLog},
		},
	}

	result := ResolveDid(context.Background(), client, types.DID("did:ethr:"+identity.Hex()), nil)
	if result.ResolutionMetadata.Error != nil {
		t.Fatalf("unexpected resolution error: %s", result.ResolutionMetadata.Message)
	}
	if len(result.Document.VerificationMethod) != 2 {
		t.Fatalf("expected controller + delegate verification methods, got %+v", result.Document.VerificationMethod)
	}
	if len(result.Document.AssertionMethod) != 2 {
		t.Errorf("expected the veriKey delegate to be referenced from assertionMethod, got %+v", result.Document.AssertionMethod)
	}
	if result.DocumentMetadata.Deactivated {
		t.Errorf("document should not be deactivated")
	}

	var delegateVM *did.VerificationMethod
	for i := range result.Document.VerificationMethod {
		if strings.Contains(result.Document.VerificationMethod[i].ID, "#delegate-") {
			delegateVM = &result.Document.VerificationMethod[i]
		}
	}
	if delegateVM == nil {
		t.Fatalf("expected to find the delegate verification method, got %+v", result.Document.VerificationMethod)
	}
	wantAccountID, _ := types.NewAddress(delegate.Hex())
	wantBlockchainAccountID := wantAccountID.AsBlockchainID(client.ChainID())
	if delegateVM.BlockchainAccountID != wantBlockchainAccountID {
		t.Errorf("BlockchainAccountID = %s, want %s (CAIP-10 form)", delegateVM.BlockchainAccountID, wantBlockchainAccountID)
	}
}

func TestResolveDidOwnerChangedToNullDeactivates(t *testing.T) {
	contract, err := abi.Parse(ContractName, registryTestABI)
	if err != nil {
		t.Fatalf("abi.Parse() error: %v", err)
	}
	addr, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	identity := gethcommon.HexToAddress("0x111111111111111111111111111111111111111a")

	ownerLog := newOwnerChangedLog(t, contract, identity, gethcommon.Address{}, 0)

	client := &fakeResolverClient{
		contract:     contract,
		address:      addr,
		changedBlock: 10,
		logsByBlock: map[uint64][]types.EventLog{
			10: {ownerLog},
		},
	}

	result := ResolveDid(context.Background(), client, types.DID("did:ethr:"+identity.Hex()), nil)
	if result.ResolutionMetadata.Error != nil {
		t.Fatalf("unexpected resolution error: %s", result.ResolutionMetadata.Message)
	}
	if !result.DocumentMetadata.Deactivated {
		t.Errorf("expected the document to be deactivated after an owner-changed-to-null event")
	}
}

func TestResolveDidExpiredDelegateNotAdded(t *testing.T) {
	contract, err := abi.Parse(ContractName, registryTestABI)
	if err != nil {
		t.Fatalf("abi.Parse() error: %v", err)
	}
	addr, _ := types.NewAddress("0x111111111111111111111111111111111111111a")
	identity := gethcommon.HexToAddress("0x111111111111111111111111111111111111111a")
	delegate := gethcommon.HexToAddress("0x333333333333333333333333333333333333333c")

	// validTo = 1 is long in the past relative to "now" (wall-clock seconds).
	delegateLog := newDelegateChangedLog(t, contract, identity, delegate, 1, 0)

	client := &fakeResolverClient{
		contract:     contract,
		address:      addr,
		changedBlock: 10,
		logsByBlock: map[uint64][]types.EventLog{
			10: {delegateLog},
		},
	}

	result := ResolveDid(context.Background(), client, types.DID("did:ethr:"+identity.Hex()), nil)
	if result.ResolutionMetadata.Error != nil {
		t.Fatalf("unexpected resolution error: %s", result.ResolutionMetadata.Message)
	}
	if len(result.Document.VerificationMethod) != 1 {
		t.Errorf("expected an expired delegate not to be in the document, got %+v", result.Document.VerificationMethod)
	}
}

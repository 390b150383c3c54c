// Copyright 2025 Certen Protocol
package didethr

import (
	"context"
	"math/big"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/abi"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/endorsing"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

// BuildGetDidChangedTransaction composes a Read call to `changed(identity)`.
func BuildGetDidChangedTransaction(ctx context.Context, registry txbuilder.Registry, did types.DID) (*types.Transaction, error) {
	parsed, err := did.Parse()
	if err != nil {
		return nil, err
	}
	addr, err := types.NewAddress(parsed.Identifier)
	if err != nil {
		return nil, err
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodChanged).SetType(types.Read).
		AddParam(addr.Common()).Build(ctx, registry)
}

// ParseDidChangedResult decodes changed()'s return bytes into a Block. A
// zero value means the DID has never been changed.
func ParseDidChangedResult(registry txbuilder.Registry, data []byte) (types.Block, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodChanged, data)
	if err != nil {
		return types.Block{}, err
	}
	n, err := out.GetU64(0)
	if err != nil {
		return types.Block{}, err
	}
	return types.BlockAt(n), nil
}

// BuildGetDidEventsQuery composes an EventQuery over [fromBlock, toBlock]
// filtered by the identity's 32-byte left-padded address, per spec.md
// §4.8 step 4a.
func BuildGetDidEventsQuery(ctx context.Context, registry txbuilder.Registry, did types.DID, fromBlock, toBlock *types.Block) (types.EventQuery, error) {
	parsed, err := did.Parse()
	if err != nil {
		return types.EventQuery{}, err
	}
	addr, err := types.NewAddress(parsed.Identifier)
	if err != nil {
		return types.EventQuery{}, err
	}
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return types.EventQuery{}, err
	}
	return types.EventQuery{
		Address:          contractAddr,
		FromBlock:        fromBlock,
		ToBlock:          toBlock,
		EventFilterTopic: addr.ToFilter(),
	}, nil
}

// ParseDidEventResponse decodes a raw log into one of OwnerChanged,
// DelegateChanged or AttributeChanged, based on its topic0.
func ParseDidEventResponse(registry txbuilder.Registry, log types.EventLog) (Event, error) {
	contract, _, err := registry.Contract(ContractName)
	if err != nil {
		return Event{}, err
	}

	if decoded, err := contract.DecodeEvent(EventOwnerChanged, log); err == nil {
		return Event{Owner: &OwnerChanged{
			Identity:       fieldAddress(decoded.Fields, "identity"),
			Owner:          fieldAddress(decoded.Fields, "owner"),
			PreviousChange: types.BlockAt(fieldU64(decoded.Fields, "previousChange")),
		}}, nil
	}
	if decoded, err := contract.DecodeEvent(EventDelegateChanged, log); err == nil {
		return Event{Delegate: &DelegateChanged{
			Identity:       fieldAddress(decoded.Fields, "identity"),
			DelegateType:   fieldBytes(decoded.Fields, "delegateType"),
			Delegate:       fieldAddress(decoded.Fields, "delegate"),
			ValidTo:        fieldU64(decoded.Fields, "validTo"),
			PreviousChange: types.BlockAt(fieldU64(decoded.Fields, "previousChange")),
		}}, nil
	}
	decoded, err := contract.DecodeEvent(EventAttributeChanged, log)
	if err != nil {
		return Event{}, err
	}
	var name [32]byte
	copy(name[:], fieldBytes(decoded.Fields, "name"))
	return Event{Attribute: &AttributeChanged{
		Identity:       fieldAddress(decoded.Fields, "identity"),
		Name:           name,
		Value:          fieldBytes(decoded.Fields, "value"),
		ValidTo:        fieldU64(decoded.Fields, "validTo"),
		PreviousChange: types.BlockAt(fieldU64(decoded.Fields, "previousChange")),
	}}, nil
}

// fieldAddress reads an address-typed field out of a decoded event. Indexed
// fields (identity) arrive as a 32-byte left-padded topic hex string;
// non-indexed fields (owner, delegate) arrive already decoded as a
// common.Address by UnpackIntoMap.
func fieldAddress(fields map[string]interface{}, name string) types.Address {
	v, ok := fields[name]
	if !ok {
		return ""
	}
	if a, ok := v.(interface{ Hex() string }); ok {
		addr, _ := types.NewAddress(a.Hex())
		return addr
	}
	if s, ok := v.(string); ok && len(s) >= 40 {
		addr, _ := types.NewAddress("0x" + s[len(s)-40:])
		return addr
	}
	return ""
}

func fieldU64(fields map[string]interface{}, name string) uint64 {
	switch v := fields[name].(type) {
	case uint64:
		return v
	case *big.Int:
		return v.Uint64()
	default:
		return 0
	}
}

func fieldBytes(fields map[string]interface{}, name string) []byte {
	if v, ok := fields[name].([]byte); ok {
		return v
	}
	if v, ok := fields[name].([32]byte); ok {
		return v[:]
	}
	return nil
}

// --- write operations ---

func BuildChangeOwnerTransaction(ctx context.Context, registry txbuilder.Registry, from, identity, newOwner types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodChangeOwner).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(newOwner.Common()).Build(ctx, registry)
}

func BuildAddDelegateTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, delegateType string, delegate types.Address, validity uint64) (*types.Transaction, error) {
	typeBytes, err := abi.FormatBytes32(delegateType)
	if err != nil {
		return nil, err
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodAddDelegate).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(typeBytes).AddParam(delegate.Common()).
		AddParam(new(big.Int).SetUint64(validity)).Build(ctx, registry)
}

func BuildRevokeDelegateTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, delegateType string, delegate types.Address) (*types.Transaction, error) {
	typeBytes, err := abi.FormatBytes32(delegateType)
	if err != nil {
		return nil, err
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodRevokeDelegate).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(typeBytes).AddParam(delegate.Common()).Build(ctx, registry)
}

func BuildSetAttributeTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, name string, value []byte, validity uint64) (*types.Transaction, error) {
	nameBytes, err := abi.FormatBytes32(name)
	if err != nil {
		return nil, err
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodSetAttribute).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(nameBytes).AddParam(value).
		AddParam(new(big.Int).SetUint64(validity)).Build(ctx, registry)
}

func BuildRevokeAttributeTransaction(ctx context.Context, registry txbuilder.Registry, from, identity types.Address, name string, value []byte) (*types.Transaction, error) {
	nameBytes, err := abi.FormatBytes32(name)
	if err != nil {
		return nil, err
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodRevokeAttribute).SetType(types.Write).SetFrom(from).
		AddParam(identity.Common()).AddParam(nameBytes).AddParam(value).Build(ctx, registry)
}

// BuildNonceTransaction composes a Read call to `nonce(identity)`, used by
// C4's endorsement preimage construction.
func BuildNonceTransaction(ctx context.Context, registry txbuilder.Registry, identity types.Address) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodNonce).SetType(types.Read).
		AddParam(identity.Common()).Build(ctx, registry)
}

func ParseNonceResult(registry txbuilder.Registry, data []byte) (uint64, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodNonce, data)
	if err != nil {
		return 0, err
	}
	return out.GetU64(0)
}

// BuildChangeOwnerEndorsingData builds the C4 preimage for
// changeOwnerSigned, so a third party can submit the owner change on the
// identity's behalf.
func BuildChangeOwnerEndorsingData(ctx context.Context, registry txbuilder.Registry, identity, newOwner types.Address, nonce uint64) (*types.TransactionEndorsingData, error) {
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return nil, err
	}
	packed := abi.EncodePackedParams(identity.Common().Bytes(), newOwner.Common().Bytes())
	return endorsing.Build(contractAddr, identity, nonce, MethodChangeOwnerSigned, packed), nil
}

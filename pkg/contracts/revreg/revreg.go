// Copyright 2025 Certen Protocol
//
// Package revreg is the Revocation Registry façade (C7) plus the
// Revocation Status Engine (C9), grounded on
// revocation_registry_registry.rs and the fold/project algorithm in
// revocation_status_list.rs.
package revreg

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/anoncreds"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/endorsing"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const (
	ContractName = "RevocationRegistry"

	MethodCreateRevRegDef       = "createRevocationRegistryDefinition"
	MethodCreateRevRegDefSigned = "createRevocationRegistryDefinitionSigned"
	MethodResolveRevRegDef      = "resolveRevocationRegistryDefinition"
	MethodCreateRevRegEntry     = "createRevocationRegistryEntry"
	MethodCreateEntrySigned     = "createRevocationRegistryEntrySigned"

	EventEntryCreated = "RevocationRegistryEntryCreated"
)

// Entry is the RevocationRegistryEntryData object from spec.md §4: one
// delta against the registry's accumulator.
type Entry struct {
	RevRegDefID       string   `json:"revRegDefId"`
	CurrentAccumulator string  `json:"currentAccumulator"`
	PrevAccumulator   string   `json:"prevAccumulator"`
	Issued            []uint32 `json:"issued"`
	Revoked           []uint32 `json:"revoked"`
	Timestamp         uint64   `json:"timestamp"`
}

// StatusList is the RevocationStatusList object from spec.md §4.
type StatusList struct {
	IssuerID          types.DID `json:"issuerId"`
	RevRegDefID       string    `json:"revRegDefId"`
	RevocationList    []int     `json:"revocationList"`
	CurrentAccumulator string   `json:"currentAccumulator"`
	Timestamp         uint64    `json:"timestamp"`
}

// --- façade: definition lifecycle ---

func BuildCreateRevocationRegistryDefinitionTransaction(ctx context.Context, registry txbuilder.Registry, from types.Address, def *anoncreds.RevocationRegistryDefinition) (*types.Transaction, error) {
	payload, err := json.Marshal(def)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidRevocationRegistryDefinition, err, "marshal revocation registry definition")
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodCreateRevRegDef).SetType(types.Write).SetFrom(from).
		AddParam(def.ID).AddParam(payload).Build(ctx, registry)
}

func BuildResolveRevocationRegistryDefinitionTransaction(ctx context.Context, registry txbuilder.Registry, id string) (*types.Transaction, error) {
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodResolveRevRegDef).SetType(types.Read).
		AddParam(id).Build(ctx, registry)
}

func ParseResolveRevocationRegistryDefinitionResult(registry txbuilder.Registry, data []byte) (*anoncreds.RevocationRegistryDefinition, error) {
	out, err := txbuilder.Parse(registry, ContractName, MethodResolveRevRegDef, data)
	if err != nil {
		return nil, err
	}
	payload, err := out.GetBytes(0)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, vdrerrors.New(vdrerrors.InvalidRevocationRegistryDefinition)
	}
	var def anoncreds.RevocationRegistryDefinition
	if err := json.Unmarshal(payload, &def); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, err, "unmarshal stored revocation registry definition")
	}
	return &def, nil
}

func BuildCreateRevocationRegistryDefinitionEndorsingData(registry txbuilder.Registry, identity types.Address, def *anoncreds.RevocationRegistryDefinition, nonce uint64) (*types.TransactionEndorsingData, error) {
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(def)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidRevocationRegistryDefinition, err, "marshal revocation registry definition")
	}
	packed := append([]byte(def.ID), payload...)
	return endorsing.Build(contractAddr, identity, nonce, MethodCreateRevRegDefSigned, packed), nil
}

// --- façade: entries ---

// BuildCreateEntryTransaction validates and encodes a createRevocationRegistryEntry
// call. Per spec.md §7, both accumulators must be non-empty.
func BuildCreateEntryTransaction(ctx context.Context, registry txbuilder.Registry, from types.Address, entry *Entry) (*types.Transaction, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidRevocationRegistryEntry, err, "marshal revocation registry entry")
	}
	return txbuilder.NewBuilder().
		SetContract(ContractName).SetMethod(MethodCreateRevRegEntry).SetType(types.Write).SetFrom(from).
		AddParam(entry.RevRegDefID).AddParam(payload).Build(ctx, registry)
}

func BuildCreateEntryEndorsingData(registry txbuilder.Registry, identity types.Address, entry *Entry, nonce uint64) (*types.TransactionEndorsingData, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.InvalidRevocationRegistryEntry, err, "marshal revocation registry entry")
	}
	packed := append([]byte(entry.RevRegDefID), payload...)
	return endorsing.Build(contractAddr, identity, nonce, MethodCreateEntrySigned, packed), nil
}

func validateEntry(e *Entry) error {
	if e.CurrentAccumulator == "" || e.PrevAccumulator == "" {
		return vdrerrors.New(vdrerrors.InvalidRevocationRegistryEntry)
	}
	return nil
}

// --- C9: BuildEntryEventsQuery / ParseEntryEvent ---

// BuildEntryEventsQuery composes an EventQuery for RevocationRegistryEntryCreated
// events of the registry contract, over the full block range. The query is
// not narrowed by revRegDefID; ResolveStatusList drops decoded entries whose
// RevRegDefID differs.
func BuildEntryEventsQuery(registry txbuilder.Registry, revRegDefID string) (types.EventQuery, error) {
	_, contractAddr, err := registry.Contract(ContractName)
	if err != nil {
		return types.EventQuery{}, err
	}
	return types.EventQuery{
		Address:        contractAddr,
		EventSignature: EventEntryCreated,
	}, nil
}

// ParseEntryEvent decodes a RevocationRegistryEntryCreated log into an Entry.
func ParseEntryEvent(registry txbuilder.Registry, log types.EventLog) (*Entry, error) {
	contract, _, err := registry.Contract(ContractName)
	if err != nil {
		return nil, err
	}
	decoded, err := contract.DecodeEvent(EventEntryCreated, log)
	if err != nil {
		return nil, err
	}
	payload, ok := decoded.Fields["entry"].([]byte)
	if !ok {
		return nil, vdrerrors.New(vdrerrors.ContractInvalidResponseData)
	}
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, err, "unmarshal revocation registry entry event")
	}
	return &entry, nil
}

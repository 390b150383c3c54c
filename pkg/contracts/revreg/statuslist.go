// Copyright 2025 Certen Protocol
//
// statuslist.go implements C9's two operations: folding entry events into
// a point-in-time RevocationStatusList, and composing a new entry delta
// from a desired list, per spec.md §4.9.
package revreg

import (
	"context"
	"sort"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// StatusListClient is the subset of ledger.Client the status engine needs.
type StatusListClient interface {
	txbuilder.Registry
	SubmitTransaction(ctx context.Context, tx *types.Transaction) ([]byte, error)
	QueryEvents(ctx context.Context, query types.EventQuery) ([]types.EventLog, error)
}

// ResolveStatusList implements spec.md §4.9's "resolve status list at t":
// resolve the definition for max_cred_num/issuer_id, fold every entry event
// with timestamp <= toTimestamp in chronological order into disjoint
// issued/revoked sets, then project onto a fixed-width list.
func ResolveStatusList(ctx context.Context, client StatusListClient, revRegDefID string, toTimestamp uint64) (*StatusList, error) {
	defTx, err := BuildResolveRevocationRegistryDefinitionTransaction(ctx, client, revRegDefID)
	if err != nil {
		return nil, err
	}
	defResp, err := client.SubmitTransaction(ctx, defTx)
	if err != nil {
		return nil, err
	}
	def, err := ParseResolveRevocationRegistryDefinitionResult(client, defResp)
	if err != nil {
		return nil, err
	}

	query, err := BuildEntryEventsQuery(client, revRegDefID)
	if err != nil {
		return nil, err
	}
	logs, err := client.QueryEvents(ctx, query)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(logs))
	for _, l := range logs {
		entry, err := ParseEntryEvent(client, l)
		if err != nil {
			return nil, err
		}
		if entry.RevRegDefID != revRegDefID || entry.Timestamp > toTimestamp {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })

	issued := make(map[uint32]struct{})
	revoked := make(map[uint32]struct{})
	var accum string

	for _, entry := range entries {
		for _, idx := range entry.Issued {
			if idx >= def.Value.MaxCredNum {
				return nil, vdrerrors.Newf(vdrerrors.InvalidRevocationRegistryStatusList, "issued index %d out of range [0, %d)", idx, def.Value.MaxCredNum)
			}
			delete(revoked, idx)
			issued[idx] = struct{}{}
		}
		for _, idx := range entry.Revoked {
			if idx >= def.Value.MaxCredNum {
				return nil, vdrerrors.Newf(vdrerrors.InvalidRevocationRegistryStatusList, "revoked index %d out of range [0, %d)", idx, def.Value.MaxCredNum)
			}
			delete(issued, idx)
			revoked[idx] = struct{}{}
		}
		accum = entry.CurrentAccumulator
	}

	list := make([]int, def.Value.MaxCredNum)
	for idx := range revoked {
		list[idx] = 1
	}

	return &StatusList{
		IssuerID:           def.IssuerID,
		RevRegDefID:        revRegDefID,
		RevocationList:     list,
		CurrentAccumulator: accum,
		Timestamp:          toTimestamp,
	}, nil
}

// Status is the issued/revoked flag a desired_list entry can take.
type Status int

const (
	Active Status = iota
	Revoked
)

// BuildLatestEntryFromStatusList implements spec.md §4.9's delta composer:
// given a desired list and a new accumulator, emit only the diff against
// prior (nil prior means genesis). now is the caller-supplied wall-clock
// timestamp, since the engine itself must not call time.Now to stay
// deterministic and testable.
func BuildLatestEntryFromStatusList(revRegDefID string, desired []Status, newAccumulator string, prior *Entry, now uint64) (*Entry, error) {
	if newAccumulator == "" {
		return nil, vdrerrors.New(vdrerrors.InvalidRevocationRegistryEntry)
	}

	priorIssued := make(map[uint32]struct{})
	priorRevoked := make(map[uint32]struct{})
	prevAccumulator := "0x"
	if prior != nil {
		for _, i := range prior.Issued {
			priorIssued[i] = struct{}{}
		}
		for _, i := range prior.Revoked {
			priorRevoked[i] = struct{}{}
		}
		prevAccumulator = prior.CurrentAccumulator
	}

	var issued, revoked []uint32
	for i, status := range desired {
		idx := uint32(i)
		switch status {
		case Active:
			if _, already := priorIssued[idx]; !already {
				issued = append(issued, idx)
			}
		case Revoked:
			if _, already := priorRevoked[idx]; !already {
				revoked = append(revoked, idx)
			}
		}
	}

	return &Entry{
		RevRegDefID:        revRegDefID,
		CurrentAccumulator: newAccumulator,
		PrevAccumulator:    prevAccumulator,
		Issued:             issued,
		Revoked:            revoked,
		Timestamp:          now,
	}, nil
}

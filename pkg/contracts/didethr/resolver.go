// Copyright 2025 Certen Protocol
//
// resolver.go implements C8: the event-sourced DID resolver for
// did:ethr[:<net>]:<address>, grounded on did_ethr_resolver.rs.
package didethr

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/did"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/txbuilder"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// ResolverClient is the subset of ledger.Client the resolver needs:
// contract/transport lookup (for building and submitting its own internal
// reads) plus the block/event pass-throughs.
type ResolverClient interface {
	txbuilder.Registry
	SubmitTransaction(ctx context.Context, tx *types.Transaction) ([]byte, error)
	GetBlock(ctx context.Context, height *uint64) (types.Block, error)
	QueryEvents(ctx context.Context, query types.EventQuery) ([]types.EventLog, error)
}

const maxTraversalDepth = 100_000

// ResolveDid implements spec.md §4.8. It never returns an error for a
// caller-facing failure: every outcome is encoded in the returned
// DocumentWithMetadata's ResolutionMetadata.
func ResolveDid(ctx context.Context, client ResolverClient, rawDID types.DID, options *types.DidResolutionOptions) *did.DocumentWithMetadata {
	method, err := rawDID.Method()
	if err != nil {
		errCode := did.InvalidDid
		return &did.DocumentWithMetadata{
			ResolutionMetadata: did.ResolutionMetadata{
				Error:   &errCode,
				Message: "not a valid did:ethr",
			},
		}
	}
	if method != EthrDidMethod {
		errCode := did.MethodNotSupported
		return &did.DocumentWithMetadata{
			ResolutionMetadata: did.ResolutionMetadata{
				Error:   &errCode,
				Message: fmt.Sprintf("DID method is not supported: %s", method),
			},
		}
	}
	if options != nil && options.Accept != "" && options.Accept != did.ResolutionFormat {
		errCode := did.RepresentationNotSupported
		return &did.DocumentWithMetadata{
			ResolutionMetadata: did.ResolutionMetadata{Error: &errCode},
		}
	}

	shortDID, err := rawDID.Short()
	if err != nil {
		errCode := did.InvalidDid
		return &did.DocumentWithMetadata{
			ResolutionMetadata: did.ResolutionMetadata{Error: &errCode, Message: err.Error()},
		}
	}

	contentType := ""
	if options != nil {
		contentType = options.Accept
	}

	document, metadata, err := resolveDidInternal(ctx, client, shortDID, options)
	if err != nil {
		errCode := did.NotFound
		return &did.DocumentWithMetadata{
			ResolutionMetadata: did.ResolutionMetadata{Error: &errCode, Message: err.Error()},
		}
	}
	return &did.DocumentWithMetadata{
		Document:           document,
		DocumentMetadata:   metadata,
		ResolutionMetadata: did.ResolutionMetadata{ContentType: contentType},
	}
}

func resolveDidInternal(ctx context.Context, client ResolverClient, shortDID types.DID, options *types.DidResolutionOptions) (*did.Document, did.Metadata, error) {
	var now uint64
	if options != nil && options.BlockTag != nil {
		block, err := client.GetBlock(ctx, &options.BlockTag.Number)
		if err != nil {
			return nil, did.Metadata{}, err
		}
		now = block.Timestamp
	} else {
		now = uint64(time.Now().Unix())
	}

	builder, err := did.BaseForDid(shortDID, client.ChainID())
	if err != nil {
		return nil, did.Metadata{}, err
	}

	changedBlock, err := getDidChangedBlock(ctx, client, shortDID)
	if err != nil {
		return nil, did.Metadata{}, err
	}
	if changedBlock.IsZero() {
		return builder.Build(), did.Metadata{}, nil
	}

	var blockHeight int64 = -1
	if options != nil && options.BlockTag != nil {
		blockHeight = int64(options.BlockTag.Value())
	}
	var versionID uint64
	nextVersionID := ^uint64(0)

	history, err := receiveDidHistory(ctx, client, shortDID, changedBlock)
	if err != nil {
		return nil, did.Metadata{}, err
	}

	for i := len(history) - 1; i >= 0; i-- {
		eventBlock, event := history[i].block, history[i].event

		if blockHeight != -1 && int64(eventBlock.Value()) > blockHeight {
			if nextVersionID > eventBlock.Value() {
				nextVersionID = eventBlock.Value()
			}
		} else {
			versionID = eventBlock.Value()
		}

		if err := handleDidEvent(builder, event, now, client.ChainID()); err != nil {
			return nil, did.Metadata{}, err
		}
		if builder.IsDeactivated() {
			break
		}
	}

	metadata, err := buildDidMetadata(ctx, client, builder.IsDeactivated(), versionID, nextVersionID)
	if err != nil {
		return nil, did.Metadata{}, err
	}
	return builder.Build(), metadata, nil
}

func getDidChangedBlock(ctx context.Context, client ResolverClient, shortDID types.DID) (types.Block, error) {
	tx, err := BuildGetDidChangedTransaction(ctx, client, shortDID)
	if err != nil {
		return types.Block{}, err
	}
	response, err := client.SubmitTransaction(ctx, tx)
	if err != nil {
		return types.Block{}, err
	}
	return ParseDidChangedResult(client, response)
}

type historyEntry struct {
	block types.Block
	event Event
}

// receiveDidHistory walks the previousChange pointer chain backward,
// stopping as soon as a block yields no logs — the source's
// termination-on-empty rule adopted verbatim per spec.md §9's open
// question.
func receiveDidHistory(ctx context.Context, client ResolverClient, shortDID types.DID, firstBlock types.Block) ([]historyEntry, error) {
	var history []historyEntry
	previous := &firstBlock

	for previous != nil {
		if len(history) > maxTraversalDepth {
			return nil, vdrerrors.Newf(vdrerrors.ClientInvalidState, "event history traversal exceeded cap of %d", maxTraversalDepth)
		}

		query, err := BuildGetDidEventsQuery(ctx, client, shortDID, previous, previous)
		if err != nil {
			return nil, err
		}
		logs, err := client.QueryEvents(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(logs) == 0 {
			break
		}

		for _, l := range logs {
			event, err := ParseDidEventResponse(client, l)
			if err != nil {
				return nil, err
			}
			pc := event.PreviousChange()
			previous = &pc
			history = append(history, historyEntry{block: l.Block, event: event})
		}
	}
	return history, nil
}

func handleDidEvent(builder *did.Builder, event Event, now, chainID uint64) error {
	switch {
	case event.Owner != nil:
		return handleOwnerChanged(builder, event.Owner)
	case event.Delegate != nil:
		return handleDelegateChanged(builder, event.Delegate, now, chainID)
	default:
		return handleAttributeChanged(builder, event.Attribute, now)
	}
}

func handleOwnerChanged(builder *did.Builder, event *OwnerChanged) error {
	if event.Owner.IsNull() {
		builder.Deactivated()
		return nil
	}
	controller := "did:" + EthrDidMethod + ":" + string(event.Owner)
	builder.SetController(controller)
	return nil
}

func handleDelegateChanged(builder *did.Builder, event *DelegateChanged, now, chainID uint64) error {
	key := event.Delegate
	delegateType, err := ParseDelegateType(event.DelegateType)
	if err != nil {
		return err
	}
	controller := builder.ID
	builder.IncrementKeyIndex()

	blockchainAccountID := event.Delegate.AsBlockchainID(chainID)
	if event.ValidTo > now {
		builder.AddVerificationMethod(string(key), nil, did.EcdsaSecp256k1RecoveryMethod2020, controller, &blockchainAccountID, nil, nil, nil, nil)
		switch delegateType {
		case VeriKey:
			return builder.AddAssertionMethodReference(string(key))
		case SigAuth:
			return builder.AddAuthenticationReference(string(key))
		}
		return nil
	}

	builder.RemoveVerificationMethod(string(key))
	switch delegateType {
	case VeriKey:
		builder.RemoveAssertionMethodReference(string(key))
	case SigAuth:
		builder.RemoveAuthenticationReference(string(key))
	}
	return nil
}

func handleAttributeChanged(builder *did.Builder, event *AttributeChanged, now uint64) error {
	key := event
	attr, err := ParseAttribute(key)
	if err != nil {
		return err
	}
	eventKey := key.keyString()

	if attr.PublicKey != nil {
		builder.IncrementKeyIndex()
		controller := builder.ID
		if event.ValidTo > now {
			builder.AddVerificationMethod(eventKey, nil, attr.PublicKey.Type, controller, nil, nil,
				attr.PublicKey.PublicKeyHex, attr.PublicKey.PublicKeyBase58, attr.PublicKey.PublicKeyBase64)
			switch attr.PublicKey.Purpose {
			case PurposeVeriKey:
				return builder.AddAssertionMethodReference(eventKey)
			case PurposeSigAuth:
				return builder.AddAuthenticationReference(eventKey)
			case PurposeEnc:
				return builder.AddKeyAgreementReference(eventKey)
			}
			return nil
		}
		builder.RemoveVerificationMethod(eventKey)
		switch attr.PublicKey.Purpose {
		case PurposeVeriKey:
			builder.RemoveAssertionMethodReference(eventKey)
		case PurposeSigAuth:
			builder.RemoveAuthenticationReference(eventKey)
		case PurposeEnc:
			builder.RemoveKeyAgreementReference(eventKey)
		}
		return nil
	}

	builder.IncrementServiceIndex()
	if event.ValidTo > now {
		builder.AddService(eventKey, nil, attr.Service.Type, attr.Service.ServiceEndpoint)
	} else {
		builder.RemoveService(eventKey)
	}
	return nil
}

func (e *AttributeChanged) keyString() string {
	return trimZero(e.Name[:])
}

func buildDidMetadata(ctx context.Context, client ResolverClient, deactivated bool, versionID, nextVersionID uint64) (did.Metadata, error) {
	metadata := did.Metadata{Deactivated: deactivated}

	if versionID != 0 {
		block, err := client.GetBlock(ctx, &versionID)
		if err != nil {
			return did.Metadata{}, err
		}
		metadata.Updated = block.Timestamp
		metadata.VersionID = block.Number
	}
	if nextVersionID != ^uint64(0) {
		block, err := client.GetBlock(ctx, &nextVersionID)
		if err != nil {
			return did.Metadata{}, err
		}
		metadata.NextUpdate = block.Timestamp
		metadata.NextVersionID = block.Number
	}
	return metadata, nil
}


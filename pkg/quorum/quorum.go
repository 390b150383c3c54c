// Copyright 2025 Certen Protocol
//
// Package quorum implements C6: given a submitted transaction and its
// primary result, independently re-fetch the same fact from K peer nodes
// and confirm ⌊K/3⌋+1 agreement within a retry/timeout budget, grounded on
// client/quorum.rs's per-peer task + bounded channel + serial collector
// protocol.
package quorum

import (
	"bytes"
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// Verifier holds one Transport per configured peer node.
type Verifier struct {
	peers           []transport.Transport
	requestRetries  int
	requestTimeout  time.Duration
	retryInterval   time.Duration
}

// New builds a Verifier from a QuorumConfig, with a Transport per peer
// supplied by dial (so callers choose the concrete Transport, typically
// ethrpc.New).
func New(cfg types.QuorumConfig, dial func(nodeAddress string) (transport.Transport, error)) (*Verifier, error) {
	cfg = cfg.WithDefaults()
	peers := make([]transport.Transport, 0, len(cfg.Nodes))
	for _, node := range cfg.Nodes {
		peer, err := dial(node)
		if err != nil {
			return nil, vdrerrors.Wrap(vdrerrors.ClientNodeUnreachable, err, "dial quorum peer %s", node)
		}
		peers = append(peers, peer)
	}
	return &Verifier{
		peers:          peers,
		requestRetries: cfg.RequestRetries,
		requestTimeout: time.Duration(cfg.RequestTimeoutMs) * time.Millisecond,
		retryInterval:  time.Duration(cfg.RetryIntervalMs) * time.Millisecond,
	}, nil
}

// approvalsNeeded is ⌊N/3⌋+1, BFT-safe only when N ≥ 3f+1; for N=2 it
// degenerates to 1 (no fault tolerance) — documented to callers per
// spec.md §9, not corrected here.
func approvalsNeeded(n int) int {
	return n/3 + 1
}

// Verify fans tx out to every configured peer and returns whether at least
// ⌊N/3⌋+1 of them independently confirm primaryResult bit-for-bit.
func (v *Verifier) Verify(ctx context.Context, tx *types.Transaction, primaryHash, primaryResult []byte) (bool, error) {
	n := len(v.peers)
	if n == 0 {
		return true, nil
	}
	attemptID := uuid.NewString()
	needed := approvalsNeeded(n)
	results := make(chan []byte, n)

	peerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, peer := range v.peers {
		go v.runPeer(peerCtx, peer, tx, primaryHash, results, attemptID)
	}

	approvals := 0
	for i := 0; i < n; i++ {
		select {
		case got, ok := <-results:
			if !ok {
				continue
			}
			if bytes.Equal(got, primaryResult) {
				approvals++
				if approvals >= needed {
					return true, nil
				}
			}
		case <-ctx.Done():
			return false, vdrerrors.Wrap(vdrerrors.QuorumNotReached, ctx.Err(), "quorum verification %s cancelled", attemptID)
		}
	}
	return false, nil
}

// runPeer always sends exactly once to results, even on failure (nil),
// since the collector in Verify reads exactly len(peers) messages; a peer
// that silently dropped its send would leave the collector blocked
// forever on a node that never responds.
func (v *Verifier) runPeer(ctx context.Context, peer transport.Transport, tx *types.Transaction, primaryHash []byte, results chan<- []byte, attemptID string) {
	attempts := v.requestRetries
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		result, ok := v.attempt(ctx, peer, tx, primaryHash)
		if ok {
			results <- result
			return
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				results <- nil
				return
			case <-time.After(v.retryInterval):
			}
		}
	}
	log.Printf("quorum[%s]: peer exhausted %d attempts without a usable result", attemptID, attempts)
	results <- nil
}

func (v *Verifier) attempt(ctx context.Context, peer transport.Transport, tx *types.Transaction, primaryHash []byte) ([]byte, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, v.requestTimeout)
	defer cancel()

	if tx.Type == types.Write {
		peerTx, err := peer.GetTransaction(attemptCtx, primaryHash)
		if err != nil || peerTx == nil {
			return nil, false
		}
		return peerTx.Hash, true
	}

	result, err := peer.CallTransaction(attemptCtx, tx.To, tx.Data)
	if err != nil {
		return nil, false
	}
	return result, true
}

// Copyright 2025 Certen Protocol
//
// Package ethrpc is the concrete go-ethereum-backed Transport (C2),
// adapted from pkg/ethereum/client.go's ethclient wiring and from the
// original crate's client/implementation/web3/client.rs, which the
// original VDR ships as its own in-crate Transport implementation.
package ethrpc

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	vtypes "github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// pollInterval and confirmations mirror the original Web3Client's
// POLL_INTERVAL=200ms and NUMBER_TX_CONFIRMATIONS=1.
const (
	pollInterval  = 200 * time.Millisecond
	confirmations = 1
)

// Client is a Transport backed by a single go-ethereum JSON-RPC endpoint.
type Client struct {
	eth *ethclient.Client
}

// New dials a node. An unreachable node fails ClientNodeUnreachable.
func New(nodeAddress string) (*Client, error) {
	eth, err := ethclient.Dial(nodeAddress)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientNodeUnreachable, err, "dial %s", nodeAddress)
	}
	return &Client{eth: eth}, nil
}

func (c *Client) GetTransactionCount(ctx context.Context, addr vtypes.Address) (uint64, error) {
	n, err := c.eth.PendingNonceAt(ctx, addr.Common())
	if err != nil {
		return 0, vdrerrors.Wrap(vdrerrors.ClientNodeUnreachable, err, "get transaction count for %s", addr)
	}
	return n, nil
}

// SubmitTransaction broadcasts raw and waits for its receipt. A receipt with
// failed status is reported as ClientTransactionReverted naming the
// transaction hash; the revert reason is not retrieved.
func (c *Client) SubmitTransaction(ctx context.Context, raw []byte) ([]byte, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientInvalidTransaction, err, "decode raw transaction")
	}
	if err := c.eth.SendTransaction(ctx, tx); err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientInvalidTransaction, err, "send raw transaction")
	}

	receipt, err := c.waitForConfirmations(ctx, tx.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, vdrerrors.Newf(vdrerrors.ClientTransactionReverted, "transaction %s reverted", tx.Hash())
	}
	return tx.Hash().Bytes(), nil
}

func (c *Client) waitForConfirmations(ctx context.Context, hash gethcommon.Hash) (*types.Receipt, error) {
	for {
		receipt, err := c.eth.TransactionReceipt(ctx, hash)
		if err == nil {
			head, herr := c.eth.BlockNumber(ctx)
			if herr == nil && head >= receipt.BlockNumber.Uint64()+confirmations-1 {
				return receipt, nil
			}
		}
		select {
		case <-ctx.Done():
			return nil, vdrerrors.Wrap(vdrerrors.ClientInvalidState, ctx.Err(), "waiting for receipt of %s", hash)
		case <-time.After(pollInterval):
		}
	}
}

func (c *Client) CallTransaction(ctx context.Context, to vtypes.Address, data []byte) ([]byte, error) {
	toAddr := to.Common()
	msg := ethereum.CallMsg{To: &toAddr, Data: data}
	out, err := c.eth.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientTransactionReverted, err, "call %s", to)
	}
	return out, nil
}

func (c *Client) QueryEvents(ctx context.Context, query vtypes.EventQuery) ([]vtypes.EventLog, error) {
	filter := ethereum.FilterQuery{
		Addresses: []gethcommon.Address{query.Address.Common()},
	}
	if query.FromBlock != nil {
		filter.FromBlock = new(big.Int).SetUint64(query.FromBlock.Value())
	}
	if query.ToBlock != nil {
		filter.ToBlock = new(big.Int).SetUint64(query.ToBlock.Value())
	}
	var topics []gethcommon.Hash
	if query.EventSignature != "" {
		topics = append(topics, gethcommon.HexToHash(query.EventSignature))
	}
	if query.EventFilterTopic != "" {
		if len(topics) == 0 {
			topics = append(topics, gethcommon.Hash{})
		}
		filter.Topics = [][]gethcommon.Hash{topics, {gethcommon.HexToHash(query.EventFilterTopic)}}
	} else if len(topics) > 0 {
		filter.Topics = [][]gethcommon.Hash{topics}
	}

	logs, err := c.eth.FilterLogs(ctx, filter)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.GetTransactionError, err, "query events on %s", query.Address)
	}

	out := make([]vtypes.EventLog, 0, len(logs))
	for _, l := range logs {
		topicStrs := make([]string, len(l.Topics))
		for i, t := range l.Topics {
			topicStrs[i] = t.Hex()
		}
		out = append(out, vtypes.EventLog{
			Topics: topicStrs,
			Data:   l.Data,
			Block:  vtypes.BlockAt(l.BlockNumber),
		})
	}
	return out, nil
}

func (c *Client) GetReceipt(ctx context.Context, hash []byte) (string, error) {
	if len(hash) != 32 {
		return "", vdrerrors.New(vdrerrors.CommonInvalidData)
	}
	receipt, err := c.eth.TransactionReceipt(ctx, gethcommon.BytesToHash(hash))
	if err != nil {
		return "", vdrerrors.Wrap(vdrerrors.ClientInvalidResponse, err, "missing transaction receipt")
	}
	marshaled, err := receipt.MarshalJSON()
	if err != nil {
		return "", vdrerrors.Wrap(vdrerrors.ClientInvalidResponse, err, "marshal receipt")
	}
	return string(marshaled), nil
}

func (c *Client) GetBlock(ctx context.Context, height *uint64) (vtypes.Block, error) {
	var number *big.Int
	if height != nil {
		number = new(big.Int).SetUint64(*height)
	}
	header, err := c.eth.HeaderByNumber(ctx, number)
	if err != nil {
		return vtypes.Block{}, vdrerrors.Wrap(vdrerrors.ClientInvalidState, err, "get current network block")
	}
	return vtypes.Block{Number: header.Number.Uint64(), Timestamp: header.Time}, nil
}

func (c *Client) GetTransaction(ctx context.Context, hash []byte) (*transport.Transaction, error) {
	tx, pending, err := c.eth.TransactionByHash(ctx, gethcommon.BytesToHash(hash))
	if err != nil {
		if err == ethereum.NotFound {
			return nil, nil
		}
		return nil, vdrerrors.Wrap(vdrerrors.GetTransactionError, err, "get transaction by hash")
	}
	if pending {
		log.Printf("ethrpc: transaction %x still pending", hash)
	}

	signer := types.NewEIP155Signer(tx.ChainId())
	from, err := types.Sender(signer, tx)
	var fromAddr vtypes.Address
	if err == nil {
		fromAddr = vtypes.Address(fmt.Sprintf("0x%x", from))
	}

	var to vtypes.Address
	if tx.To() != nil {
		to = vtypes.Address(fmt.Sprintf("0x%x", *tx.To()))
	}

	return &transport.Transaction{
		From:    fromAddr,
		To:      to,
		Nonce:   tx.Nonce(),
		ChainID: tx.ChainId().Uint64(),
		Data:    tx.Data(),
		Hash:    tx.Hash().Bytes(),
	}, nil
}

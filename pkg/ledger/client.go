// Copyright 2025 Certen Protocol
package ledger

import (
	"context"
	"log"
	"os"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/abi"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/metrics"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/quorum"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/transport"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// Dialer constructs a Transport for a node address. The concrete
// implementation (transport/ethrpc.New in production, an in-memory fake in
// tests) is injected so this package has no hard go-ethereum RPC
// dependency of its own.
type Dialer func(nodeAddress string) (transport.Transport, error)

// Client is the C5 façade: it owns the transport, the contract registry
// (name -> address+ABI), the chain id, and an optional Quorum Verifier.
// Once constructed it is stateless and freely shareable across goroutines.
type Client struct {
	chainID   uint64
	transport transport.Transport
	contracts map[string]registeredContract
	quorum    *quorum.Verifier
	metrics   *metrics.Metrics
}

// NewClient constructs a Client from a LedgerConfig. Construction fails on
// an unreachable node, a contract with neither or both of spec/spec_path
// set, an unreadable spec file, or a malformed ABI.
func NewClient(ctx context.Context, cfg types.LedgerConfig, dial Dialer, m *metrics.Metrics) (*Client, error) {
	primary, err := dial(cfg.NodeAddress)
	if err != nil {
		return nil, err
	}

	contracts := make(map[string]registeredContract, len(cfg.Contracts))
	for _, cc := range cfg.Contracts {
		rc, err := loadContract(cc)
		if err != nil {
			return nil, err
		}
		contracts[rc.contract.Name] = rc
	}

	client := &Client{
		chainID:   cfg.ChainID,
		transport: primary,
		contracts: contracts,
		metrics:   m,
	}

	if cfg.Quorum != nil {
		verifier, err := quorum.New(*cfg.Quorum, dial)
		if err != nil {
			return nil, err
		}
		client.quorum = verifier
	}

	log.Printf("ledger: client constructed for chain %d with %d contracts", cfg.ChainID, len(contracts))
	return client, nil
}

func loadContract(cc types.ContractConfig) (registeredContract, error) {
	address, err := types.NewAddress(cc.Address)
	if err != nil {
		return registeredContract{}, err
	}

	var spec types.ContractSpec
	switch {
	case cc.Spec != nil && cc.SpecPath != "":
		return registeredContract{}, vdrerrors.Newf(vdrerrors.ContractInvalidSpec, "contract %s sets both spec and spec_path", cc.Address)
	case cc.Spec != nil:
		spec = *cc.Spec
	case cc.SpecPath != "":
		data, err := os.ReadFile(cc.SpecPath)
		if err != nil {
			return registeredContract{}, vdrerrors.Wrap(vdrerrors.ContractInvalidSpec, err, "read spec file %s", cc.SpecPath)
		}
		spec = types.ContractSpec{ABI: string(data)}
		// The file holds only the ABI JSON; name comes from the path stem
		// unless the caller embedded a name-bearing spec directly.
		spec.Name = nameFromPath(cc.SpecPath)
	default:
		return registeredContract{}, vdrerrors.Newf(vdrerrors.ContractInvalidSpec, "contract %s sets neither spec nor spec_path", cc.Address)
	}

	contract, err := abi.Parse(spec.Name, spec.ABI)
	if err != nil {
		return registeredContract{}, err
	}
	return registeredContract{contract: contract, address: address}, nil
}

func nameFromPath(path string) string {
	start := 0
	end := len(path)
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			start = i + 1
			break
		}
	}
	for i := end - 1; i >= start; i-- {
		if path[i] == '.' {
			end = i
			break
		}
	}
	return path[start:end]
}

// Contract returns the ABI handle and address for a registered contract
// name, or ContractInvalidName.
func (c *Client) Contract(name string) (*abi.Contract, types.Address, error) {
	rc, ok := c.contracts[name]
	if !ok {
		return nil, "", vdrerrors.Newf(vdrerrors.ContractInvalidName, "unknown contract %s", name)
	}
	return rc.contract, rc.address, nil
}

// ChainID returns the configured chain id.
func (c *Client) ChainID() uint64 { return c.chainID }

// Transport returns the primary node transport.
func (c *Client) Transport() transport.Transport { return c.transport }

// SubmitTransaction implements spec.md §4.5: a Read transaction is
// dispatched as a call and a Write is broadcast. If a Quorum Verifier is
// configured, the result of either kind is independently re-confirmed
// before being returned to the caller.
func (c *Client) SubmitTransaction(ctx context.Context, tx *types.Transaction) ([]byte, error) {
	var primary []byte
	var err error

	if tx.Type == types.Read {
		primary, err = c.transport.CallTransaction(ctx, tx.To, tx.Data)
	} else {
		encoded, encErr := tx.Encode()
		if encErr != nil {
			return nil, encErr
		}
		primary, err = c.transport.SubmitTransaction(ctx, encoded)
	}
	if err != nil {
		return nil, err
	}
	c.metrics.IncTransactionsSubmitted()

	if c.quorum == nil {
		return primary, nil
	}

	approved, err := c.quorum.Verify(ctx, tx, primary, primary)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, vdrerrors.New(vdrerrors.QuorumNotReached)
	}
	return primary, nil
}

// GetBlock, QueryEvents and GetReceipt are pass-throughs to the transport.
func (c *Client) GetBlock(ctx context.Context, height *uint64) (types.Block, error) {
	return c.transport.GetBlock(ctx, height)
}

func (c *Client) QueryEvents(ctx context.Context, query types.EventQuery) ([]types.EventLog, error) {
	return c.transport.QueryEvents(ctx, query)
}

func (c *Client) GetReceipt(ctx context.Context, hash []byte) (string, error) {
	return c.transport.GetReceipt(ctx, hash)
}

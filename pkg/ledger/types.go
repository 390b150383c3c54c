// Copyright 2025 Certen Protocol
package ledger

import (
	"github.com/hyperledger/indy-besu-vdr-go/pkg/abi"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
)

// registeredContract pairs a parsed ABI with the address it is deployed at,
// as loaded once from a ContractConfig at construction time.
type registeredContract struct {
	contract *abi.Contract
	address  types.Address
}

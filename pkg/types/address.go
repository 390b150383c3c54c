// Copyright 2025 Certen Protocol
package types

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// NullAddress is the sentinel meaning "null/unowned/deactivated".
const NullAddress = "0x0000000000000000000000000000000000000000"

// Address is a 20-byte EVM account rendered as canonical lowercase hex with
// a 0x prefix.
type Address string

// NewAddress validates and normalizes a hex address string.
func NewAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return "", vdrerrors.Newf(vdrerrors.CommonInvalidData, "invalid address %q", s)
	}
	return Address(strings.ToLower(common.HexToAddress(s).Hex())), nil
}

// Null returns the sentinel null address.
func Null() Address { return Address(NullAddress) }

// IsNull reports whether this is the sentinel null address.
func (a Address) IsNull() bool {
	return strings.EqualFold(string(a), NullAddress) || a == ""
}

// Common returns the go-ethereum representation.
func (a Address) Common() common.Address {
	return common.HexToAddress(string(a))
}

// ToFilter returns the 32-byte left-zero-padded lowercase hex used as an
// event topic filter value.
func (a Address) ToFilter() string {
	padded := common.LeftPadBytes(a.Common().Bytes(), 32)
	return "0x" + common.Bytes2Hex(padded)
}

// AsBlockchainID renders the CAIP-10-ish `eip155:<chain_id>:<address>` form
// used as a DID verification method's blockchainAccountId.
func (a Address) AsBlockchainID(chainID uint64) string {
	return "eip155:" + itoa(chainID) + ":" + string(a)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

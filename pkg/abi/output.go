// Copyright 2025 Certen Protocol
package abi

import (
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// ContractOutput is a typed, positionally-addressed decoded return value
// sequence, grounded on the original crate's ContractOutput::get_* family
// in types/contract.rs. Every accessor fails ContractInvalidResponseData on
// a missing or ill-typed field.
type ContractOutput struct {
	contract string
	method   string
	values   []interface{}
}

func (o *ContractOutput) missing(i int, want string) error {
	return vdrerrors.Newf(vdrerrors.ContractInvalidResponseData,
		"missing %s value at index %d in %s.%s result", want, i, o.contract, o.method)
}

func (o *ContractOutput) at(i int) (interface{}, bool) {
	if i < 0 || i >= len(o.values) {
		return nil, false
	}
	return o.values[i], true
}

// GetTuple returns the raw decoded value at i, for callers that need to
// further destructure a struct/tuple return value themselves.
func (o *ContractOutput) GetTuple(i int) (interface{}, error) {
	v, ok := o.at(i)
	if !ok {
		return nil, o.missing(i, "tuple")
	}
	return v, nil
}

func (o *ContractOutput) GetBytes(i int) ([]byte, error) {
	v, ok := o.at(i)
	if !ok {
		return nil, o.missing(i, "bytes")
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, o.missing(i, "bytes")
	}
	return b, nil
}

func (o *ContractOutput) GetString(i int) (string, error) {
	v, ok := o.at(i)
	if !ok {
		return "", o.missing(i, "string")
	}
	s, ok := v.(string)
	if !ok {
		return "", o.missing(i, "string")
	}
	return s, nil
}

func (o *ContractOutput) GetAddress(i int) (gethcommon.Address, error) {
	v, ok := o.at(i)
	if !ok {
		return gethcommon.Address{}, o.missing(i, "address")
	}
	a, ok := v.(gethcommon.Address)
	if !ok {
		return gethcommon.Address{}, o.missing(i, "address")
	}
	return a, nil
}

func (o *ContractOutput) GetBool(i int) (bool, error) {
	v, ok := o.at(i)
	if !ok {
		return false, o.missing(i, "bool")
	}
	b, ok := v.(bool)
	if !ok {
		return false, o.missing(i, "bool")
	}
	return b, nil
}

func (o *ContractOutput) GetU8(i int) (uint8, error) {
	v, ok := o.at(i)
	if !ok {
		return 0, o.missing(i, "u8")
	}
	u, ok := v.(uint8)
	if !ok {
		return 0, o.missing(i, "u8")
	}
	return u, nil
}

func (o *ContractOutput) GetU64(i int) (uint64, error) {
	v, ok := o.at(i)
	if !ok {
		return 0, o.missing(i, "u64")
	}
	switch n := v.(type) {
	case uint64:
		return n, nil
	case *big.Int:
		return n.Uint64(), nil
	default:
		return 0, o.missing(i, "u64")
	}
}

func (o *ContractOutput) GetU128(i int) (*big.Int, error) {
	v, ok := o.at(i)
	if !ok {
		return nil, o.missing(i, "u128")
	}
	n, ok := v.(*big.Int)
	if !ok {
		return nil, o.missing(i, "u128")
	}
	return n, nil
}

func (o *ContractOutput) GetAddressArray(i int) ([]gethcommon.Address, error) {
	v, ok := o.at(i)
	if !ok {
		return nil, o.missing(i, "address[]")
	}
	a, ok := v.([]gethcommon.Address)
	if !ok {
		return nil, o.missing(i, "address[]")
	}
	return a, nil
}

func (o *ContractOutput) GetUint32Array(i int) ([]uint32, error) {
	v, ok := o.at(i)
	if !ok {
		return nil, o.missing(i, "uint32[]")
	}
	switch arr := v.(type) {
	case []uint32:
		return arr, nil
	case []*big.Int:
		out := make([]uint32, len(arr))
		for idx, n := range arr {
			out[idx] = uint32(n.Uint64())
		}
		return out, nil
	default:
		return nil, o.missing(i, "uint32[]")
	}
}

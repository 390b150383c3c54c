// Copyright 2025 Certen Protocol
package abi

import (
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// DecodedEvent is an indexed field map: topic slots plus data slots,
// addressable by the ABI field name.
type DecodedEvent struct {
	Name   string
	Fields map[string]interface{}
}

// DecodeEvent parses a log against a named event from the contract's ABI.
func (c *Contract) DecodeEvent(name string, log types.EventLog) (*DecodedEvent, error) {
	ev, ok := c.ABI.Events[name]
	if !ok {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidName, "event %s not found on contract %s", name, c.Name)
	}
	if len(log.Topics) == 0 || log.Topics[0] != "0x"+gethcommon.Bytes2Hex(ev.ID.Bytes()) {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "log topic0 does not match event %s", name)
	}

	fields := make(map[string]interface{})
	if len(log.Data) > 0 {
		values := make(map[string]interface{})
		if err := c.ABI.UnpackIntoMap(values, name, log.Data); err != nil {
			return nil, vdrerrors.Wrap(vdrerrors.ContractInvalidResponseData, err, "unpack event %s data", name)
		}
		for k, v := range values {
			fields[k] = v
		}
	}

	topicIdx := 1
	for _, input := range ev.Inputs {
		if !input.Indexed {
			continue
		}
		if topicIdx >= len(log.Topics) {
			return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "missing indexed topic for %s.%s", name, input.Name)
		}
		fields[input.Name] = log.Topics[topicIdx]
		topicIdx++
	}

	return &DecodedEvent{Name: name, Fields: fields}, nil
}

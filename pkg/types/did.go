// Copyright 2025 Certen Protocol
package types

import (
	"strings"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// DID is a string of shape did:<method>:[<network>:]<identifier>.
type DID string

// ParsedDID is the decomposed form of a DID string.
type ParsedDID struct {
	Method     string
	Network    string
	Identifier string
}

// BuildDID formats a DID string from its parts. network may be empty to
// omit the network segment.
func BuildDID(method, network, identifier string) DID {
	if network == "" {
		return DID("did:" + method + ":" + identifier)
	}
	return DID("did:" + method + ":" + network + ":" + identifier)
}

// Parse splits a DID string into method, optional network and identifier.
// Two colon-separated segments after the "did:" scheme (method, identifier)
// mean no network is present; three mean the middle segment is the network.
// Anything else is ContractInvalidInputData.
func (d DID) Parse() (ParsedDID, error) {
	s := strings.TrimPrefix(string(d), "did:")
	if s == string(d) {
		return ParsedDID{}, vdrerrors.Newf(vdrerrors.ContractInvalidInputData, "not a DID: %q", d)
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		return ParsedDID{Method: parts[0], Identifier: parts[1]}, nil
	case 3:
		return ParsedDID{Method: parts[0], Network: parts[1], Identifier: parts[2]}, nil
	default:
		return ParsedDID{}, vdrerrors.Newf(vdrerrors.ContractInvalidInputData, "malformed DID: %q", d)
	}
}

// WithoutNetwork returns the DID with its network segment removed, if any.
func (d DID) WithoutNetwork() (DID, error) {
	p, err := d.Parse()
	if err != nil {
		return "", err
	}
	return BuildDID(p.Method, "", p.Identifier), nil
}

// Short is an alias for WithoutNetwork kept for readability at ethr
// resolution call sites, matching the original source's `did.short()`.
func (d DID) Short() (DID, error) { return d.WithoutNetwork() }

// Method returns the DID method segment, or an error if malformed.
func (d DID) Method() (string, error) {
	p, err := d.Parse()
	if err != nil {
		return "", err
	}
	return p.Method, nil
}

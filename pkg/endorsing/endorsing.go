// Copyright 2025 Certen Protocol
//
// Package endorsing implements C4: producing the canonical preimage an
// identity owner signs so a third-party sender can submit a transaction on
// their behalf, and the supporting secp256k1 helpers (Sign, Recover). The
// contract façades in this module do not call Recover; they transport an
// endorsement signature as given.
package endorsing

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// Build constructs the EIP-191-style personal-sign preimage described in
// spec.md §4.4 for a proxied call to `method` on `contractAddress`, made on
// behalf of `identity` whose current per-identity nonce is `nonce`.
func Build(contractAddress, identity types.Address, nonce uint64, method string, packedParams []byte) *types.TransactionEndorsingData {
	return &types.TransactionEndorsingData{
		ContractAddress: contractAddress,
		Identity:        identity,
		Nonce:           nonce,
		Method:          method,
		PackedParams:    packedParams,
	}
}

// Sign produces the 65-byte compact secp256k1 signature over data's
// SigningBytes with v normalized into {27,28}, and records it on data.
func Sign(data *types.TransactionEndorsingData, key *ecdsa.PrivateKey) error {
	sig, err := crypto.Sign(data.SigningBytes(), key)
	if err != nil {
		return vdrerrors.Wrap(vdrerrors.SignerInvalidMessage, err, "sign endorsing data")
	}
	var out types.Signature
	copy(out.R[:], sig[0:32])
	copy(out.S[:], sig[32:64])
	out.V = sig[64] + 27
	data.SetSignature(out)
	return nil
}

// Recover returns the address that produced sig over digest, for
// verifying an endorsement a façade received from an identity owner.
func Recover(digest []byte, sig types.Signature) (types.Address, error) {
	raw := make([]byte, 65)
	copy(raw[0:32], sig.R[:])
	copy(raw[32:64], sig.S[:])
	raw[64] = sig.V - 27

	pub, err := crypto.SigToPub(digest, raw)
	if err != nil {
		return "", vdrerrors.Wrap(vdrerrors.SignerInvalidMessage, err, "recover endorsing signer")
	}
	addr := crypto.PubkeyToAddress(*pub)
	return types.NewAddress(addr.Hex())
}

// Copyright 2025 Certen Protocol
package types

import (
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// TransactionType distinguishes a state-changing call from a read-only one.
type TransactionType int

const (
	Read TransactionType = iota
	Write
)

// Gas defaults for the fee-free network this library targets.
// NewWriteTransaction sets them; deployments with metered gas overwrite a
// Write transaction's GasPrice and GasLimit fields before signing it.
const (
	DefaultGasPrice int64 = 0
	DefaultGasLimit int64 = 9_007_199_254_719_927
)

// Signature is a 65-byte compact secp256k1 signature, v in {27,28}.
type Signature struct {
	V byte
	R [32]byte
	S [32]byte
}

// Transaction is the tagged union `Read | Write` described in spec.md §3.
// A Write additionally carries From, Nonce and a settable Signature. Once
// Signature is set the transaction is immutable and Encode is deterministic.
type Transaction struct {
	Type     TransactionType
	To       Address
	Data     []byte
	ChainID  uint64
	From     Address
	Nonce    uint64
	GasPrice int64
	GasLimit int64

	signature *Signature
}

// NewReadTransaction builds a call-only transaction.
func NewReadTransaction(to Address, data []byte, chainID uint64) *Transaction {
	return &Transaction{Type: Read, To: to, Data: data, ChainID: chainID}
}

// NewWriteTransaction builds an unsigned state-changing transaction. Nonce
// must already have been populated by the caller (TransactionBuilder does
// this via Transport.GetTransactionCount).
func NewWriteTransaction(to, from Address, data []byte, chainID, nonce uint64) *Transaction {
	return &Transaction{
		Type: Write, To: to, From: from, Data: data, ChainID: chainID, Nonce: nonce,
		GasPrice: DefaultGasPrice, GasLimit: DefaultGasLimit,
	}
}

// SetSignature records the (v, r, s) produced externally by a signer. It
// may be called at most once.
func (t *Transaction) SetSignature(sig Signature) error {
	if t.signature != nil {
		return vdrerrors.New(vdrerrors.ClientInvalidState)
	}
	t.signature = &sig
	return nil
}

// Signed reports whether SetSignature has been called.
func (t *Transaction) Signed() bool { return t.signature != nil }

type rlpSigningPreimage struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit *big.Int
	To       gethcommon.Address
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int
	Zero1    *big.Int
	Zero2    *big.Int
}

// SigningBytes returns the EIP-155 RLP preimage hash a Write transaction's
// signer must sign: keccak256(RLP(nonce, gasPrice, gasLimit, to, value=0,
// data, chain_id, 0, 0)).
func (t *Transaction) SigningBytes() ([]byte, error) {
	if t.Type != Write {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidState)
	}
	preimage := rlpSigningPreimage{
		Nonce:    t.Nonce,
		GasPrice: big.NewInt(t.GasPrice),
		GasLimit: big.NewInt(t.GasLimit),
		To:       t.To.Common(),
		Value:    big.NewInt(0),
		Data:     t.Data,
		ChainID:  new(big.Int).SetUint64(t.ChainID),
		Zero1:    big.NewInt(0),
		Zero2:    big.NewInt(0),
	}
	encoded, err := rlp.EncodeToBytes(preimage)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientInvalidState, err, "rlp encode signing preimage")
	}
	return keccak256(encoded), nil
}

type rlpBroadcast struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit *big.Int
	To       gethcommon.Address
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int
}

// Encode returns the broadcast-ready RLP of a signed Write transaction:
// (nonce, gasPrice, gasLimit, to, 0, data, v_eip155, r, s).
func (t *Transaction) Encode() ([]byte, error) {
	if t.Type != Write {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidState)
	}
	if t.signature == nil {
		return nil, vdrerrors.New(vdrerrors.ClientInvalidState)
	}
	vEIP155 := new(big.Int).SetUint64(uint64(t.signature.V))
	vEIP155 = new(big.Int).Add(vEIP155, new(big.Int).Mul(new(big.Int).SetUint64(t.ChainID), big.NewInt(2)))
	vEIP155 = new(big.Int).Add(vEIP155, big.NewInt(8))

	broadcast := rlpBroadcast{
		Nonce:    t.Nonce,
		GasPrice: big.NewInt(t.GasPrice),
		GasLimit: big.NewInt(t.GasLimit),
		To:       t.To.Common(),
		Value:    big.NewInt(0),
		Data:     t.Data,
		V:        vEIP155,
		R:        new(big.Int).SetBytes(t.signature.R[:]),
		S:        new(big.Int).SetBytes(t.signature.S[:]),
	}
	encoded, err := rlp.EncodeToBytes(broadcast)
	if err != nil {
		return nil, vdrerrors.Wrap(vdrerrors.ClientInvalidState, err, "rlp encode broadcast transaction")
	}
	return encoded, nil
}

// TransactionEndorsingData is the preimage an identity owner signs to
// authorize a proxy submitter (C4).
type TransactionEndorsingData struct {
	ContractAddress Address
	Identity        Address
	Nonce           uint64
	Method          string
	PackedParams    []byte

	signature *Signature
}

// SigningBytes returns keccak256(0x1900 || contract || nonce(32BE) ||
// identity || method || packed_params).
func (e *TransactionEndorsingData) SigningBytes() []byte {
	var buf []byte
	buf = append(buf, 0x19, 0x00)
	buf = append(buf, e.ContractAddress.Common().Bytes()...)
	nonceBytes := make([]byte, 32)
	big.NewInt(0).SetUint64(e.Nonce).FillBytes(nonceBytes)
	buf = append(buf, nonceBytes...)
	buf = append(buf, e.Identity.Common().Bytes()...)
	buf = append(buf, []byte(e.Method)...)
	buf = append(buf, e.PackedParams...)
	return keccak256(buf)
}

// SetSignature records the owner's signature over SigningBytes.
func (e *TransactionEndorsingData) SetSignature(sig Signature) {
	e.signature = &sig
}

// Signature returns the recorded signature, if any.
func (e *TransactionEndorsingData) Signature() (Signature, bool) {
	if e.signature == nil {
		return Signature{}, false
	}
	return *e.signature, true
}

// Copyright 2025 Certen Protocol
package didethr

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/did"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// PublicKeyPurpose is the middle segment of a did/pub/... attribute name.
type PublicKeyPurpose string

const (
	PurposeVeriKey PublicKeyPurpose = "veriKey"
	PurposeSigAuth PublicKeyPurpose = "sigAuth"
	PurposeEnc     PublicKeyPurpose = "enc"
)

// PublicKeyAttribute is the decoded form of a did/pub/... attribute.
type PublicKeyAttribute struct {
	Type            did.VerificationKeyType
	Purpose         PublicKeyPurpose
	PublicKeyHex    *string
	PublicKeyBase58 *string
	PublicKeyBase64 *string
}

// ServiceAttribute is the decoded form of a did/svc/... attribute.
type ServiceAttribute struct {
	Type            string
	ServiceEndpoint string
}

// DocAttribute is the union DidDocAttribute::PublicKey | Service in the
// original source.
type DocAttribute struct {
	PublicKey *PublicKeyAttribute
	Service   *ServiceAttribute
}

// keyTypeBySegment maps the short type segment a did/pub/... attribute name
// carries (kept short since the name must fit in a bytes32 slot) to the
// verification method type it expands to in the document.
var keyTypeBySegment = map[string]did.VerificationKeyType{
	"Secp256k1": did.EcdsaSecp256k1VerificationKey2020,
	"Ed25519":   did.Ed25519VerificationKey2020,
	"X25519":    did.X25519KeyAgreementKey2020,
}

// ParseAttribute decodes an AttributeChanged event's name/value into a
// DocAttribute, per the `did/pub/<KeyType>/<Purpose>/<Encoding>` and
// `did/svc/<ServiceType>` name grammar in spec.md §6.
func ParseAttribute(event *AttributeChanged) (*DocAttribute, error) {
	name := trimZero(event.Name[:])
	parts := strings.Split(name, "/")
	if len(parts) < 3 || parts[0] != "did" {
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "malformed attribute name %q", name)
	}

	switch parts[1] {
	case "pub":
		if len(parts) != 5 {
			return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "malformed public key attribute name %q", name)
		}
		keyType, ok := keyTypeBySegment[parts[2]]
		if !ok {
			return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "unknown public key type %q", parts[2])
		}
		purpose := PublicKeyPurpose(parts[3])
		attr := &PublicKeyAttribute{Type: keyType, Purpose: purpose}
		switch strings.ToLower(parts[4]) {
		case "hex":
			v := hex.EncodeToString(event.Value)
			attr.PublicKeyHex = &v
		case "base58":
			v := encodeBase58(event.Value)
			attr.PublicKeyBase58 = &v
		case "base64":
			v := base64.StdEncoding.EncodeToString(event.Value)
			attr.PublicKeyBase64 = &v
		default:
			return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "unknown key encoding %q", parts[4])
		}
		return &DocAttribute{PublicKey: attr}, nil

	case "svc":
		if len(parts) != 3 {
			return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "malformed service attribute name %q", name)
		}
		return &DocAttribute{Service: &ServiceAttribute{
			Type:            parts[2],
			ServiceEndpoint: string(event.Value),
		}}, nil

	default:
		return nil, vdrerrors.Newf(vdrerrors.ContractInvalidResponseData, "unknown attribute category %q", parts[1])
	}
}

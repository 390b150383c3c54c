// Copyright 2025 Certen Protocol
//
// Package did implements the W3C DID Document model (spec.md §3) and the
// event-replay builder C8 assembles it with. DidDocumentBuilder has no
// surviving implementation in the retrieved original source — only its
// call sites in did_ethr_resolver.rs did — so it is authored here from
// that call-site contract together with the struct shape and JSON tags
// observed in contracts/did/types/did_doc.rs.
package did

const (
	BaseContext  = "https://www.w3.org/ns/did/v1"
	SecpContext  = "https://w3id.org/security/suites/secp256k1recovery-2020/v2"
	KeysContext  = "https://w3id.org/security/v3-unstable"
	ResolutionFormat = "application/did+ld+json"
)

// VerificationKeyType enumerates the supported verification method types.
type VerificationKeyType string

const (
	Ed25519VerificationKey2018        VerificationKeyType = "Ed25519VerificationKey2018"
	X25519KeyAgreementKey2019         VerificationKeyType = "X25519KeyAgreementKey2019"
	Ed25519VerificationKey2020        VerificationKeyType = "Ed25519VerificationKey2020"
	X25519KeyAgreementKey2020         VerificationKeyType = "X25519KeyAgreementKey2020"
	JsonWebKey2020                    VerificationKeyType = "JsonWebKey2020"
	EcdsaSecp256k1VerificationKey2019 VerificationKeyType = "EcdsaSecp256k1VerificationKey2019"
	EcdsaSecp256k1RecoveryMethod2020  VerificationKeyType = "EcdsaSecp256k1RecoveryMethod2020"
)

// VerificationMethod is a single key entry in a DID Document.
type VerificationMethod struct {
	ID                  string              `json:"id"`
	Type                VerificationKeyType `json:"type"`
	Controller          string              `json:"controller"`
	BlockchainAccountID string              `json:"blockchainAccountId,omitempty"`
	PublicKeyMultibase  string              `json:"publicKeyMultibase,omitempty"`
	PublicKeyHex        string              `json:"publicKeyHex,omitempty"`
	PublicKeyBase58     string              `json:"publicKeyBase58,omitempty"`
	PublicKeyBase64     string              `json:"publicKeyBase64,omitempty"`
}

// ServiceEndpoint is either a bare URI or a structured endpoint object.
type ServiceEndpoint struct {
	URI    string   `json:"uri,omitempty"`
	Accept []string `json:"accept,omitempty"`
}

// Service is a DID Document service entry.
type Service struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"`
	ServiceEndpoint string           `json:"serviceEndpoint,omitempty"`
	ServiceEndpointObject *ServiceEndpoint `json:"-"`
}

// Document is the W3C DID Document structure named in spec.md §3.
type Document struct {
	Context              []string              `json:"@context"`
	ID                    string                `json:"id"`
	Controller            string                `json:"controller,omitempty"`
	VerificationMethod    []VerificationMethod  `json:"verificationMethod"`
	Authentication        []string              `json:"authentication,omitempty"`
	AssertionMethod       []string              `json:"assertionMethod,omitempty"`
	CapabilityInvocation  []string              `json:"capabilityInvocation,omitempty"`
	CapabilityDelegation  []string              `json:"capabilityDelegation,omitempty"`
	KeyAgreement          []string              `json:"keyAgreement,omitempty"`
	Service               []Service             `json:"service,omitempty"`
	AlsoKnownAs           []string              `json:"alsoKnownAs,omitempty"`
}

// Metadata is did_document_metadata in a resolution response.
type Metadata struct {
	Deactivated    bool   `json:"deactivated,omitempty"`
	VersionID      uint64 `json:"versionId,omitempty"`
	Updated        uint64 `json:"updated,omitempty"`
	NextVersionID  uint64 `json:"nextVersionId,omitempty"`
	NextUpdate     uint64 `json:"nextUpdate,omitempty"`
}

// ResolutionError is the closed set of error codes a resolution response
// may carry, carried verbatim from the original DidResolutionError enum.
type ResolutionError string

const (
	NotFound                    ResolutionError = "notFound"
	InvalidDid                  ResolutionError = "invalidDid"
	RepresentationNotSupported  ResolutionError = "representationNotSupported"
	InvalidDidUrl               ResolutionError = "invalidDidUrl"
	MethodNotSupported          ResolutionError = "methodNotSupported"
)

// ResolutionMetadata is did_resolution_metadata in a resolution response.
type ResolutionMetadata struct {
	ContentType string           `json:"contentType,omitempty"`
	Error       *ResolutionError `json:"error,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// DocumentWithMetadata is the top-level resolve-DID result. Exactly one of
// Document or ResolutionMetadata.Error is set.
type DocumentWithMetadata struct {
	Document           *Document          `json:"didDocument,omitempty"`
	DocumentMetadata   Metadata           `json:"didDocumentMetadata"`
	ResolutionMetadata ResolutionMetadata `json:"didResolutionMetadata"`
}

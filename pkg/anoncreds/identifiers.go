// Copyright 2025 Certen Protocol
//
// Package anoncreds implements the AnonCreds object model (Schema,
// CredentialDefinition, RevocationRegistryDefinition) and their canonical
// identifier construction, per spec.md §6's identifier table.
package anoncreds

import (
	"strings"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

const anoncredsV0 = "anoncreds/v0"

// BuildSchemaID renders `<issuer_did>/anoncreds/v0/SCHEMA/<name>/<version>`.
func BuildSchemaID(issuerID types.DID, name, version string) string {
	return string(issuerID) + "/" + anoncredsV0 + "/SCHEMA/" + name + "/" + version
}

// SchemaUniqueID strips the SCHEMA path segment and swaps "/" for ":",
// the form CredentialDefinition identifiers embed.
func SchemaUniqueID(schemaID string) string {
	trimmed := strings.Replace(schemaID, "/"+anoncredsV0+"/SCHEMA", "", 1)
	return strings.ReplaceAll(trimmed, "/", ":")
}

// BuildCredentialDefinitionID renders
// `<issuer_did>/anoncreds/v0/CLAIM_DEF/<schema_unique_id>/<tag>`.
func BuildCredentialDefinitionID(issuerID types.DID, schemaID, tag string) string {
	return string(issuerID) + "/" + anoncredsV0 + "/CLAIM_DEF/" + SchemaUniqueID(schemaID) + "/" + tag
}

// CredDefLocal strips the CLAIM_DEF path segment for embedding in a
// RevocationRegistryDefinition identifier.
func CredDefLocal(credDefID string) string {
	idx := strings.Index(credDefID, "/"+anoncredsV0+"/CLAIM_DEF/")
	if idx == -1 {
		return credDefID
	}
	return credDefID[idx+len("/"+anoncredsV0+"/CLAIM_DEF/"):]
}

// BuildRevocationRegistryDefinitionID renders
// `<issuer_did>/anoncreds/v0/REV_REG_DEF/<cred_def_local>/<tag>`.
func BuildRevocationRegistryDefinitionID(issuerID types.DID, credDefID, tag string) string {
	return string(issuerID) + "/" + anoncredsV0 + "/REV_REG_DEF/" + CredDefLocal(credDefID) + "/" + tag
}

// Schema is the AnonCreds schema object.
type Schema struct {
	ID        string   `json:"id"`
	IssuerID  types.DID `json:"issuerId"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attrNames"`
}

// NewSchema validates and builds a Schema with its identifier derived per
// spec.md §7: name, version and attr_names must all be non-empty.
func NewSchema(issuerID types.DID, name, version string, attrNames []string) (*Schema, error) {
	if name == "" || version == "" || len(attrNames) == 0 {
		return nil, vdrerrors.New(vdrerrors.InvalidSchema)
	}
	for _, a := range attrNames {
		if a == "" {
			return nil, vdrerrors.New(vdrerrors.InvalidSchema)
		}
	}
	return &Schema{
		ID:        BuildSchemaID(issuerID, name, version),
		IssuerID:  issuerID,
		Name:      name,
		Version:   version,
		AttrNames: attrNames,
	}, nil
}

// CredentialDefinition is the AnonCreds credential definition object.
type CredentialDefinition struct {
	ID       string      `json:"id"`
	IssuerID types.DID   `json:"issuerId"`
	SchemaID string      `json:"schemaId"`
	Tag      string      `json:"tag"`
	Value    interface{} `json:"value"`
}

// NewCredentialDefinition validates and builds a CredentialDefinition: tag
// non-empty, value non-null.
func NewCredentialDefinition(issuerID types.DID, schemaID, tag string, value interface{}) (*CredentialDefinition, error) {
	if tag == "" || value == nil {
		return nil, vdrerrors.New(vdrerrors.InvalidCredentialDefinition)
	}
	return &CredentialDefinition{
		ID:       BuildCredentialDefinitionID(issuerID, schemaID, tag),
		IssuerID: issuerID,
		SchemaID: schemaID,
		Tag:      tag,
		Value:    value,
	}, nil
}

// RevocationRegistryDefinitionValue holds the tails/accumulator metadata.
type RevocationRegistryDefinitionValue struct {
	MaxCredNum  uint32 `json:"maxCredNum"`
	TailsURL    string `json:"tailsLocation"`
	TailsHash   string `json:"tailsHash"`
	PublicKeys  string `json:"publicKeys"`
}

// RevocationRegistryDefinition is the AnonCreds revocation registry
// definition object.
type RevocationRegistryDefinition struct {
	ID        string                            `json:"id"`
	IssuerID  types.DID                         `json:"issuerId"`
	CredDefID string                            `json:"credDefId"`
	Tag       string                            `json:"tag"`
	Value     RevocationRegistryDefinitionValue `json:"value"`
}

// NewRevocationRegistryDefinition validates and builds a
// RevocationRegistryDefinition per spec.md §7: tag non-empty, max_cred_num
// > 0, tails URL/hash non-empty, accumulator key non-empty, and issuer_id
// must match the issuer prefix of cred_def_id.
func NewRevocationRegistryDefinition(issuerID types.DID, credDefID, tag string, value RevocationRegistryDefinitionValue) (*RevocationRegistryDefinition, error) {
	if tag == "" || value.MaxCredNum == 0 || value.TailsURL == "" || value.TailsHash == "" || value.PublicKeys == "" {
		return nil, vdrerrors.New(vdrerrors.InvalidRevocationRegistryDefinition)
	}
	if !strings.HasPrefix(credDefID, string(issuerID)+"/") {
		return nil, vdrerrors.Newf(vdrerrors.InvalidRevocationRegistryDefinition, "issuer_id %s does not match cred_def_id %s", issuerID, credDefID)
	}
	return &RevocationRegistryDefinition{
		ID:        BuildRevocationRegistryDefinitionID(issuerID, credDefID, tag),
		IssuerID:  issuerID,
		CredDefID: credDefID,
		Tag:       tag,
		Value:     value,
	}, nil
}

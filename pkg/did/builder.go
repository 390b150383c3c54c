// Copyright 2025 Certen Protocol
package did

import (
	"fmt"

	"github.com/hyperledger/indy-besu-vdr-go/pkg/types"
	"github.com/hyperledger/indy-besu-vdr-go/pkg/vdrerrors"
)

// Builder assembles a Document incrementally as C8 replays an ethr DID's
// on-chain change history. Verification methods and services are tracked
// by an opaque event key (the delegate address or attribute name the
// originating event carried) so a later expiry/removal event can find and
// retract exactly the entry an earlier event added.
type Builder struct {
	ID         string
	controller string
	deactivatedFlag bool

	vm      map[string]VerificationMethod
	vmOrder []string

	authentication map[string]bool
	authOrder      []string
	assertionMethod map[string]bool
	amOrder         []string
	keyAgreement map[string]bool
	kaOrder      []string

	services   map[string]Service
	svcOrder   []string

	keyIndex     int
	serviceIndex int
}

// BaseForDid builds the base document for an ethr DID: the address itself
// acts as the sole EcdsaSecp256k1RecoveryMethod2020 controller verification
// method, referenced from authentication and assertionMethod.
func BaseForDid(did types.DID, chainID uint64) (*Builder, error) {
	parsed, err := did.Parse()
	if err != nil {
		return nil, err
	}
	docID := "did:" + parsed.Method + ":" + parsed.Identifier

	controllerID := docID + "#controller"
	addr, err := types.NewAddress(parsed.Identifier)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		ID:              docID,
		controller:      docID,
		vm:              map[string]VerificationMethod{"#controller": {
			ID:                  controllerID,
			Type:                EcdsaSecp256k1RecoveryMethod2020,
			Controller:          docID,
			BlockchainAccountID: addr.AsBlockchainID(chainID),
		}},
		vmOrder:         []string{"#controller"},
		authentication:  map[string]bool{"#controller": true},
		authOrder:       []string{"#controller"},
		assertionMethod: map[string]bool{"#controller": true},
		amOrder:         []string{"#controller"},
		keyAgreement:    map[string]bool{},
		services:        map[string]Service{},
	}
	return b, nil
}

// SetController replaces the document controller, in response to an
// OwnerChanged event.
func (b *Builder) SetController(controller string) {
	b.controller = controller
}

// Deactivated marks the document deactivated, in response to an
// OwnerChanged(null) event. Per spec.md §4.8, this is terminal.
func (b *Builder) Deactivated() {
	b.deactivatedFlag = true
}

// IsDeactivated reports whether Deactivated has been called.
func (b *Builder) IsDeactivated() bool { return b.deactivatedFlag }

func (b *Builder) IncrementKeyIndex()     { b.keyIndex++ }
func (b *Builder) IncrementServiceIndex() { b.serviceIndex++ }

// AddVerificationMethod registers (or replaces) a verification method
// under key, with an auto-generated id unless explicitID is supplied.
func (b *Builder) AddVerificationMethod(key string, explicitID *string, keyType VerificationKeyType, controller string, blockchainAccountID, multibase, hex, base58, base64 *string) {
	id := fmt.Sprintf("%s#delegate-%d", b.ID, b.keyIndex)
	if explicitID != nil {
		id = *explicitID
	}
	vm := VerificationMethod{ID: id, Type: keyType, Controller: controller}
	if blockchainAccountID != nil {
		vm.BlockchainAccountID = *blockchainAccountID
	}
	if multibase != nil {
		vm.PublicKeyMultibase = *multibase
	}
	if hex != nil {
		vm.PublicKeyHex = *hex
	}
	if base58 != nil {
		vm.PublicKeyBase58 = *base58
	}
	if base64 != nil {
		vm.PublicKeyBase64 = *base64
	}
	if _, exists := b.vm[key]; !exists {
		b.vmOrder = append(b.vmOrder, key)
	}
	b.vm[key] = vm
}

// RemoveVerificationMethod retracts a previously added verification
// method. The base controller method (key "#controller") is never
// removable, per spec.md §4.8's invariants.
func (b *Builder) RemoveVerificationMethod(key string) {
	if key == "#controller" {
		return
	}
	delete(b.vm, key)
	b.vmOrder = removeString(b.vmOrder, key)
}

func (b *Builder) methodID(key string) (string, error) {
	vm, ok := b.vm[key]
	if !ok {
		return "", vdrerrors.Newf(vdrerrors.ClientInvalidState, "no verification method registered for key %s", key)
	}
	return vm.ID, nil
}

func (b *Builder) AddAssertionMethodReference(key string) error {
	id, err := b.methodID(key)
	if err != nil {
		return err
	}
	if !b.assertionMethod[key] {
		b.amOrder = append(b.amOrder, key)
	}
	b.assertionMethod[key] = true
	_ = id
	return nil
}

func (b *Builder) RemoveAssertionMethodReference(key string) {
	if key == "#controller" {
		return
	}
	delete(b.assertionMethod, key)
	b.amOrder = removeString(b.amOrder, key)
}

func (b *Builder) AddAuthenticationReference(key string) error {
	if _, err := b.methodID(key); err != nil {
		return err
	}
	if !b.authentication[key] {
		b.authOrder = append(b.authOrder, key)
	}
	b.authentication[key] = true
	return nil
}

func (b *Builder) RemoveAuthenticationReference(key string) {
	if key == "#controller" {
		return
	}
	delete(b.authentication, key)
	b.authOrder = removeString(b.authOrder, key)
}

func (b *Builder) AddKeyAgreementReference(key string) error {
	if _, err := b.methodID(key); err != nil {
		return err
	}
	if !b.keyAgreement[key] {
		b.kaOrder = append(b.kaOrder, key)
	}
	b.keyAgreement[key] = true
	return nil
}

func (b *Builder) RemoveKeyAgreementReference(key string) {
	delete(b.keyAgreement, key)
	b.kaOrder = removeString(b.kaOrder, key)
}

func (b *Builder) AddService(key string, explicitID *string, serviceType, endpoint string) {
	id := fmt.Sprintf("%s#service-%d", b.ID, b.serviceIndex)
	if explicitID != nil {
		id = *explicitID
	}
	if _, exists := b.services[key]; !exists {
		b.svcOrder = append(b.svcOrder, key)
	}
	b.services[key] = Service{ID: id, Type: serviceType, ServiceEndpoint: endpoint}
}

func (b *Builder) RemoveService(key string) {
	delete(b.services, key)
	b.svcOrder = removeString(b.svcOrder, key)
}

// Build renders the accumulated state into an immutable Document.
func (b *Builder) Build() *Document {
	doc := &Document{
		Context:    []string{BaseContext, SecpContext, KeysContext},
		ID:         b.ID,
		Controller: b.controller,
	}
	for _, k := range b.vmOrder {
		doc.VerificationMethod = append(doc.VerificationMethod, b.vm[k])
	}
	for _, k := range b.authOrder {
		doc.Authentication = append(doc.Authentication, b.vm[k].ID)
	}
	for _, k := range b.amOrder {
		doc.AssertionMethod = append(doc.AssertionMethod, b.vm[k].ID)
	}
	for _, k := range b.kaOrder {
		doc.KeyAgreement = append(doc.KeyAgreement, b.vm[k].ID)
	}
	for _, k := range b.svcOrder {
		doc.Service = append(doc.Service, b.services[k])
	}
	return doc
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// Copyright 2025 Certen Protocol
package types

import "testing"

func TestNewAddress(t *testing.T) {
	addr, err := NewAddress("0xAbC123000000000000000000000000000000000A")
	if err != nil {
		t.Fatalf("NewAddress returned error: %v", err)
	}
	if addr != "0xabc123000000000000000000000000000000000a" {
		t.Errorf("NewAddress did not lowercase: got %s", addr)
	}

	if _, err := NewAddress("not-an-address"); err == nil {
		t.Errorf("expected error for malformed address")
	}
}

func TestAddressIsNull(t *testing.T) {
	if !Null().IsNull() {
		t.Errorf("Null() should report IsNull")
	}
	if !Address("").IsNull() {
		t.Errorf("empty address should report IsNull")
	}
	addr, _ := NewAddress("0x111111111111111111111111111111111111111a")
	if addr.IsNull() {
		t.Errorf("non-null address reported IsNull")
	}
}

func TestAddressToFilter(t *testing.T) {
	addr, _ := NewAddress("0x111111111111111111111111111111111111111a")
	filter := addr.ToFilter()
	if len(filter) != 66 {
		t.Errorf("ToFilter() should be a 0x-prefixed 32-byte hex string, got length %d", len(filter))
	}
	want := "0x000000000000000000000000111111111111111111111111111111111111111a"
	if filter != want {
		t.Errorf("ToFilter() = %s, want %s", filter, want)
	}
}

func TestAddressAsBlockchainID(t *testing.T) {
	addr, _ := NewAddress("0x111111111111111111111111111111111111111a")
	got := addr.AsBlockchainID(1337)
	want := "eip155:1337:0x111111111111111111111111111111111111111a"
	if got != want {
		t.Errorf("AsBlockchainID() = %s, want %s", got, want)
	}
}

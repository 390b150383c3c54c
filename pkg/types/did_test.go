// Copyright 2025 Certen Protocol
package types

import "testing"

func TestDIDParse(t *testing.T) {
	cases := []struct {
		name    string
		did     DID
		want    ParsedDID
		wantErr bool
	}{
		{"no network", "did:ethr:0xabc", ParsedDID{Method: "ethr", Identifier: "0xabc"}, false},
		{"with network", "did:ethr:testnet:0xabc", ParsedDID{Method: "ethr", Network: "testnet", Identifier: "0xabc"}, false},
		{"not a did", "0xabc", ParsedDID{}, true},
		{"too many segments", "did:ethr:a:b:c", ParsedDID{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.did.Parse()
			if (err != nil) != c.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, c.wantErr)
			}
			if err == nil && got != c.want {
				t.Errorf("Parse() = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestDIDWithoutNetwork(t *testing.T) {
	got, err := DID("did:ethr:testnet:0xabc").WithoutNetwork()
	if err != nil {
		t.Fatalf("WithoutNetwork() error: %v", err)
	}
	if got != "did:ethr:0xabc" {
		t.Errorf("WithoutNetwork() = %s, want did:ethr:0xabc", got)
	}
}

func TestDIDMethod(t *testing.T) {
	method, err := DID("did:ethr:testnet:0xabc").Method()
	if err != nil {
		t.Fatalf("Method() error: %v", err)
	}
	if method != "ethr" {
		t.Errorf("Method() = %s, want ethr", method)
	}
}

func TestBuildDID(t *testing.T) {
	if got := BuildDID("ethr", "", "0xabc"); got != "did:ethr:0xabc" {
		t.Errorf("BuildDID() = %s", got)
	}
	if got := BuildDID("ethr", "testnet", "0xabc"); got != "did:ethr:testnet:0xabc" {
		t.Errorf("BuildDID() = %s", got)
	}
}

// Copyright 2025 Certen Protocol
package didethr

import "testing"

func TestEncodeBase58(t *testing.T) {
	if got := encodeBase58(nil); got != "" {
		t.Errorf("encodeBase58(nil) = %q, want empty", got)
	}
	// Well-known vector: 0x00 0x01 encodes to "12" (leading zero byte -> '1').
	got := encodeBase58([]byte{0x00, 0x01})
	if got != "12" {
		t.Errorf("encodeBase58([0x00,0x01]) = %q, want 12", got)
	}
}

// Copyright 2025 Certen Protocol
package didethr

import "math/big"

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// encodeBase58 renders raw key bytes as a base58check-less string, the
// encoding did/pub/... attributes with a "base58" segment store their
// value as.
func encodeBase58(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zero := byte(base58Alphabet[0])

	x := new(big.Int).SetBytes(data)
	base := big.NewInt(58)
	mod := new(big.Int)
	var out []byte
	for x.Sign() > 0 {
		x.DivMod(x, base, mod)
		out = append(out, base58Alphabet[mod.Int64()])
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		out = append(out, zero)
	}
	// reverse
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

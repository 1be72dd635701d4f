/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package group

import (
	"crypto/sha256"
	"math/big"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// hGeneratorSeed domain-separates the second generator's derivation
// from every other hash in this package. Changing it changes h.
const hGeneratorSeed = "VSDL_GENERATOR_H_SEED_V1"

var (
	hOnce  sync.Once
	hPoint Point
)

// secp256k1FieldPrime is p = 2^256 - 2^32 - 977, the field secp256k1's
// coordinates live in. p ≡ 3 (mod 4), so modular square roots reduce
// to a single exponentiation: sqrt(a) = a^((p+1)/4) mod p.
func secp256k1FieldPrime() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 256)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), 32))
	p.Sub(p, big.NewInt(977))
	return p
}

// H returns the second Pedersen generator. Unlike g, no party may know
// x such that h = g^x: h is derived by hashing a fixed, public seed to
// a candidate x-coordinate and walking forward (try-and-increment)
// until that coordinate lands on the curve y^2 = x^3 + 7. This is the
// nothing-up-my-sleeve construction; it replaces deriving h as a
// scalar multiple of g, which would let whoever picked the scalar
// forge openings.
func H() Point {
	hOnce.Do(func() {
		hPoint = deriveNUMSPoint(hGeneratorSeed)
	})
	return hPoint
}

func deriveNUMSPoint(seed string) Point {
	p := secp256k1FieldPrime()
	sqrtExp := new(big.Int).Add(p, big.NewInt(1))
	sqrtExp.Rsh(sqrtExp, 2)

	b3 := big.NewInt(7) // secp256k1: y^2 = x^3 + 7
	counter := uint32(0)
	for {
		digest := sha256.Sum256(append([]byte(seed), encodeCounter(counter)...))
		x := new(big.Int).SetBytes(digest[:])
		x.Mod(x, p)

		rhs := new(big.Int).Exp(x, big.NewInt(3), p)
		rhs.Add(rhs, b3)
		rhs.Mod(rhs, p)

		y := new(big.Int).Exp(rhs, sqrtExp, p)
		check := new(big.Int).Exp(y, big.NewInt(2), p)
		if check.Cmp(rhs) == 0 {
			return affinePointFromCoords(x, y)
		}
		counter++
	}
}

func encodeCounter(c uint32) []byte {
	return []byte{byte(c >> 24), byte(c >> 16), byte(c >> 8), byte(c)}
}

func affinePointFromCoords(x, y *big.Int) Point {
	var xf, yf secp256k1.FieldVal
	var xb, yb [32]byte
	x.FillBytes(xb[:])
	y.FillBytes(yb[:])
	xf.SetBytes(&xb)
	yf.SetBytes(&yb)

	pub := secp256k1.NewPublicKey(&xf, &yf)
	var jp secp256k1.JacobianPoint
	pub.AsJacobian(&jp)
	return Point{p: jp}
}

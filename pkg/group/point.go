/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package group

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// Point is an element of the secp256k1 group of prime order q.
type Point struct {
	p secp256k1.JacobianPoint
	// identity marks the additive identity (point at infinity), which
	// JacobianPoint cannot represent in affine form for encoding.
	identity bool
}

// Identity returns the group identity element.
func Identity() Point {
	return Point{identity: true}
}

// Generator returns the standard secp256k1 base point g.
func Generator() Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &p)
	p.ToAffine()
	return Point{p: p}
}

// ScalarMul returns s*p.
func ScalarMul(s Scalar, p Point) Point {
	if p.identity || s.IsZero() {
		return Identity()
	}
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.v, &p.p, &result)
	result.ToAffine()
	if result.X.IsZero() && result.Y.IsZero() {
		return Identity()
	}
	return Point{p: result}
}

// Add returns a+b.
func Add(a, b Point) Point {
	if a.identity {
		return b
	}
	if b.identity {
		return a
	}
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a.p, &b.p, &result)
	result.ToAffine()
	if result.X.IsZero() && result.Y.IsZero() {
		return Identity()
	}
	return Point{p: result}
}

// Sum adds all points, returning the identity for an empty slice.
func Sum(points ...Point) Point {
	acc := Identity()
	for _, p := range points {
		acc = Add(acc, p)
	}
	return acc
}

// Equal is a constant-time equality check between two points (both
// sides are first reduced to affine form, which is itself
// non-secret: only the final coordinate comparison needs to avoid
// branching on secret data, and FieldVal.Equals is constant-time).
func Equal(a, b Point) bool {
	if a.identity != b.identity {
		return false
	}
	if a.identity {
		return true
	}
	ax, ay := a.p, b.p
	ax.ToAffine()
	ay.ToAffine()
	return ax.X.Equals(&ay.X) && ax.Y.Equals(&ay.Y)
}

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool {
	return p.identity
}

// Encode returns the 33-byte SEC1 compressed encoding of p, or a
// single zero byte for the identity element.
func Encode(p Point) []byte {
	if p.identity {
		return []byte{0x00}
	}
	affine := p.p
	affine.ToAffine()
	pub := secp256k1.NewPublicKey(&affine.X, &affine.Y)
	return pub.SerializeCompressed()
}

// Decode parses a compressed point encoding produced by Encode.
func Decode(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return Identity(), nil
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, errors.Wrap(err, "decode compressed point")
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return Point{p: p}, nil
}

/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package group wraps the secp256k1 prime-order group behind the two
// types the rest of the commitment engine operates on: Scalar and
// Point. No other package is allowed to reach into
// decred/dcrd/dcrec/secp256k1 directly.
package group

import (
	"crypto/rand"
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// Scalar is an integer modulo the group order q.
type Scalar struct {
	v secp256k1.ModNScalar
}

// ZeroScalar is the additive identity.
func ZeroScalar() Scalar {
	return Scalar{}
}

// RandomScalar samples a uniform non-zero Scalar in [1, q) from a
// cryptographic RNG.
func RandomScalar() (Scalar, error) {
	var buf [32]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return Scalar{}, errors.Wrap(err, "read randomness")
		}
		var s secp256k1.ModNScalar
		overflow := s.SetBytes((*[32]byte)(&buf))
		if overflow == 0 && !s.IsZero() {
			return Scalar{v: s}, nil
		}
		// overflowed the group order or landed on zero: resample.
	}
}

// HashToScalar reduces SHA-256(data) modulo q.
func HashToScalar(data []byte) Scalar {
	digest := sha256.Sum256(data)
	var s secp256k1.ModNScalar
	s.SetByteSlice(digest[:])
	return Scalar{v: s}
}

// ScalarFromBytes decodes a fixed-width 32-byte big-endian scalar encoding.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return Scalar{}, errors.Errorf("scalar encoding must be 32 bytes, got %d", len(b))
	}
	var arr [32]byte
	copy(arr[:], b)
	var s secp256k1.ModNScalar
	overflow := s.SetBytes(&arr)
	if overflow != 0 {
		return Scalar{}, errors.New("scalar encoding is not reduced mod q")
	}
	return Scalar{v: s}, nil
}

// Bytes returns the fixed-width 32-byte big-endian scalar encoding.
func (s Scalar) Bytes() []byte {
	b := s.v.Bytes()
	out := make([]byte, len(b))
	copy(out, b[:])
	return out
}

// Add returns s + other mod q.
func (s Scalar) Add(other Scalar) Scalar {
	var sum secp256k1.ModNScalar
	sum.Set(&s.v)
	sum.Add(&other.v)
	return Scalar{v: sum}
}

// Mul returns s * other mod q.
func (s Scalar) Mul(other Scalar) Scalar {
	var prod secp256k1.ModNScalar
	prod.Set(&s.v)
	prod.Mul(&other.v)
	return Scalar{v: prod}
}

// Equal is a constant-time equality check.
func (s Scalar) Equal(other Scalar) bool {
	return s.v.Equals(&other.v)
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Zero overwrites s's internal representation. Used to scrub
// randomness buffers for fields a Dispense response must not disclose.
func (s *Scalar) Zero() {
	s.v.Zero()
}

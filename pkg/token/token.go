/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package token binds a delegation's policy and record commitment
// into a signed, expiring JWS the delegate carries from Issue to
// Dispense.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/pkg/errors"
)

// Issuer is the fixed "iss" claim for every token this service mints.
const Issuer = "vsdl-gov-portal"

// Claims is the custom claim set bound into every delegation token,
// layered over the registered claims jwt.Claims already validates
// (expiry, issuer).
type Claims struct {
	*jwt.Claims
	PolicyID         string   `json:"policy"`
	PolicyHash       string   `json:"policyHash"`
	RecordCommitment []byte   `json:"commitment"`
	Actions          []string `json:"actions"`
}

// Secret is a server-held HMAC key generated once at startup. Key
// rotation is out of scope (spec §6.2).
type Secret [32]byte

// NewSecret generates a fresh 256-bit HMAC secret.
func NewSecret() (Secret, error) {
	var s Secret
	if _, err := rand.Read(s[:]); err != nil {
		return Secret{}, errors.Wrap(err, "generate token secret")
	}
	return s, nil
}

// SubjectFingerprint derives the "sub" claim from a record id: the
// first 16 hex characters of SHA-256(recordID), so the claim does not
// itself leak the record id in cleartext.
func SubjectFingerprint(recordID string) string {
	digest := sha256.Sum256([]byte(recordID))
	return hex.EncodeToString(digest[:])[:16]
}

// Issue mints a signed delegation token for the given claims material.
func Issue(secret Secret, tokenID, recordID, policyID, policyHash string, recordCommitment []byte, actions []string, ttl time.Duration) (signed string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(ttl)

	claims := Claims{
		Claims: &jwt.Claims{
			ID:       tokenID,
			Subject:  SubjectFingerprint(recordID),
			Issuer:   Issuer,
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(expiresAt),
		},
		PolicyID:         policyID,
		PolicyHash:       policyHash,
		RecordCommitment: recordCommitment,
		Actions:          actions,
	}

	signingKey := jose.SigningKey{Algorithm: jose.HS256, Key: secret[:]}
	signer, err := jose.NewSigner(signingKey, &jose.SignerOptions{})
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "build token signer")
	}

	signed, err = jwt.Signed(signer).Claims(claims).CompactSerialize()
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return signed, expiresAt, nil
}

// ParseAndVerify validates the signature and expiry of a compact JWS
// and returns its claims. Expiry is checked with zero leeway. Any
// failure (bad signature, malformed structure, or expiry) is returned
// as an error wrapped with the failing stage; the caller is
// responsible for mapping it to InvalidToken without echoing the
// detailed cause to the delegate (spec §7's anti-oracle requirement).
func ParseAndVerify(secret Secret, raw string) (Claims, error) {
	parsed, err := jwt.ParseSigned(raw)
	if err != nil {
		return Claims{}, errors.Wrap(err, "parse token")
	}

	var claims Claims
	claims.Claims = &jwt.Claims{}
	if err := parsed.Claims(secret[:], &claims); err != nil {
		return Claims{}, errors.Wrap(err, "verify token signature")
	}

	expected := jwt.Expected{Issuer: Issuer, Time: time.Now()}
	if err := claims.Claims.ValidateWithLeeway(expected, 0); err != nil {
		return Claims{}, errors.Wrap(err, "validate token claims")
	}
	return claims, nil
}

/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package apiv1 versions the wire-format DTOs exchanged over HTTP for
// the delegation-token protocol (Issue / Dispense / Verify). Keeping
// these as their own version lets the transport shape evolve without
// touching pkg/proof's commitment algebra.
package apiv1

import "github.com/govportal/delegation-service/pkg/proof"

// IssueRequest is the body of POST /token/create.
type IssueRequest struct {
	RecordID  string `json:"recordId"`
	PolicyID  string `json:"policyId"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// CryptographyMaterial is the owner-facing public material returned
// alongside a newly issued token.
type CryptographyMaterial struct {
	RecordCommitment []byte `json:"recordCommitment"`
	PolicyHash       string `json:"policyHash"`
}

// IssueResponse is the body returned by POST /token/create.
type IssueResponse struct {
	TokenID      string               `json:"tokenId"`
	Token        string               `json:"token"`
	URL          string               `json:"url"`
	ExpiresAt    int64                `json:"expiresAt"`
	Cryptography CryptographyMaterial `json:"cryptography"`
}

// DispenseResponse is the body returned by GET /delegate/:token.
type DispenseResponse struct {
	FilteredRecord map[string]string    `json:"filteredRecord"`
	Actions        []string             `json:"actions"`
	Proof          proof.PartitionProof `json:"proof"`
}

// VerifyRequest is the body of POST /verify.
type VerifyRequest struct {
	Proof   proof.PartitionProof `json:"proof"`
	TokenID string               `json:"tokenId"`
}

// VerificationDetail carries the recomputed commitment for display,
// independent of the boolean verdict.
type VerificationDetail struct {
	RecomputedVisible []byte `json:"recomputedVisible"`
}

// VerifyResponse is the body returned by POST /verify.
type VerifyResponse struct {
	Valid             bool               `json:"valid"`
	RecomputedVisible []byte             `json:"recomputedVisible"`
	Verification      VerificationDetail `json:"verification"`
}

// GeneratorsResponse is the body returned by GET /generators.
type GeneratorsResponse struct {
	G     []byte `json:"g"`
	H     []byte `json:"h"`
	Curve string `json:"curve"`
}

// PolicySummary is the catalog entry shape returned by GET /policies.
type PolicySummary struct {
	ID      string   `json:"id"`
	Visible []string `json:"visible"`
	Hidden  []string `json:"hidden"`
	Actions []string `json:"actions"`
}

// PoliciesResponse is the body returned by GET /policies.
type PoliciesResponse struct {
	Policies []PolicySummary `json:"policies"`
}

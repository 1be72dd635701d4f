/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package orchestration

import (
	"crypto/rand"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/govportal/delegation-service/pkg/commitment"
	"github.com/govportal/delegation-service/pkg/group"
	"github.com/govportal/delegation-service/pkg/token"

	"github.com/govportal/delegation-service/internal/state"
)

// IssueResult is the public material returned to the owner for display.
type IssueResult struct {
	TokenID          string
	Token            string
	ExpiresAt        time.Time
	RecordCommitment []byte
	PolicyHash       string
}

// Issue allocates a token binding recordID's current commitment to
// policyID, valid for ttl. Resolving a caller-omitted ttl against the
// server's configured default is the transport layer's job.
func Issue(s *state.ServerState, recordID, policyID string, ttl time.Duration) (IssueResult, error) {
	rec, ok := s.Records.Get(recordID)
	if !ok {
		return IssueResult{}, newError(KindNotFound, errors.Errorf("unknown record %q", recordID))
	}

	pol, ok := s.Catalog.Get(policyID)
	if !ok {
		return IssueResult{}, newError(KindInvalidPolicy, errors.Errorf("unknown policy %q", policyID))
	}

	recordCommitment, fieldCommitments, err := commitment.CommitRecord(rec)
	if err != nil {
		return IssueResult{}, newError(KindInternal, errors.Wrap(err, "commit record"))
	}

	policyHash, err := pol.Hash()
	if err != nil {
		return IssueResult{}, newError(KindInternal, errors.Wrap(err, "hash policy"))
	}

	tokenID, err := randomTokenID()
	if err != nil {
		return IssueResult{}, newError(KindInternal, errors.Wrap(err, "allocate token id"))
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	s.PutToken(tokenID, state.TokenState{
		RecordID:         recordID,
		PolicyID:         policyID,
		FieldCommitments: fieldCommitments,
		RecordCommitment: recordCommitment,
		CreatedAt:        now,
		Expiry:           expiresAt,
	})

	encodedCD := group.Encode(recordCommitment.CD)
	signed, expiresAt, err := token.Issue(s.Secret, tokenID, recordID, policyID, policyHash, encodedCD, pol.Actions, ttl)
	if err != nil {
		return IssueResult{}, newError(KindInternal, errors.Wrap(err, "sign token"))
	}

	return IssueResult{
		TokenID:          tokenID,
		Token:            signed,
		ExpiresAt:        expiresAt,
		RecordCommitment: encodedCD,
		PolicyHash:       policyHash,
	}, nil
}

// randomTokenID allocates a 128-bit random token id, base58-encoded for
// a shorter opaque identifier than hex without hex's visual noise.
func randomTokenID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return base58.Encode(buf[:]), nil
}

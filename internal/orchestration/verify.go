/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package orchestration

import (
	"github.com/pkg/errors"

	"github.com/govportal/delegation-service/pkg/group"
	"github.com/govportal/delegation-service/pkg/proof"

	"github.com/govportal/delegation-service/internal/state"
)

// VerifyResult reports the outcome of checking a partition proof.
// VerificationFailed is a protocol result, not an error: a false
// Valid is returned with no error, per spec §7.
type VerifyResult struct {
	Valid             bool
	RecomputedVisible []byte
}

// Verify checks p against the commitment bound into the tokenID's
// signed claims — never against a value echoed in the proof body
// itself, which would let a dishonest server substitute a different
// C_D undetected.
func Verify(s *state.ServerState, tokenID string, p proof.PartitionProof) (VerifyResult, error) {
	st, ok := s.GetToken(tokenID)
	if !ok {
		return VerifyResult{}, newError(KindNotFound, errors.Errorf("unknown token %q", tokenID))
	}

	pol, ok := s.Catalog.Get(st.PolicyID)
	if !ok {
		return VerifyResult{}, newError(KindInvalidPolicy, errors.Errorf("unknown policy %q", st.PolicyID))
	}

	recordFieldNames := make([]string, 0, len(st.FieldCommitments))
	for name := range st.FieldCommitments {
		recordFieldNames = append(recordFieldNames, name)
	}
	visible, _ := pol.Partition(recordFieldNames)

	// A dishonest server could drop a visible opening and fold that
	// field's commitment into hidden_commitment instead: the partition
	// equation C_D == C_H + C_F still holds, so this must be checked
	// independently of proof.Verify's algebra.
	if !sameFieldSet(p.Openings, visible) {
		return VerifyResult{}, newError(KindMalformed,
			errors.New("proof discloses a field set that does not match the policy's visible fields"))
	}

	valid, cf, err := proof.Verify(st.RecordCommitment.CD, p)
	if err != nil {
		return VerifyResult{}, newError(KindMalformed, errors.Wrap(err, "decode partition proof"))
	}

	return VerifyResult{Valid: valid, RecomputedVisible: group.Encode(cf)}, nil
}

// sameFieldSet reports whether openings discloses exactly the names in
// visible: no fewer (an omitted field silently reclassified as
// hidden) and no more (a field the policy never authorized).
func sameFieldSet(openings []proof.Opening, visible []string) bool {
	if len(openings) != len(visible) {
		return false
	}
	want := make(map[string]struct{}, len(visible))
	for _, name := range visible {
		want[name] = struct{}{}
	}
	for _, o := range openings {
		if _, ok := want[o.Name]; !ok {
			return false
		}
		delete(want, o.Name)
	}
	return len(want) == 0
}

/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package orchestration

import (
	"github.com/pkg/errors"

	"github.com/govportal/delegation-service/pkg/commitment"
	"github.com/govportal/delegation-service/pkg/proof"
	"github.com/govportal/delegation-service/pkg/token"

	"github.com/govportal/delegation-service/internal/state"
)

// DispenseResult is what the delegate receives for a redeemed token.
type DispenseResult struct {
	FilteredRecord map[string]string
	Actions        []string
	Proof          proof.PartitionProof
}

// Dispense redeems raw, a signed compact token, returning the
// authorized subset of its bound record plus a partition proof.
func Dispense(s *state.ServerState, raw string) (DispenseResult, error) {
	claims, err := token.ParseAndVerify(s.Secret, raw)
	if err != nil {
		// Detailed cause is logged, never returned, per the
		// InvalidToken anti-oracle requirement.
		if s.Log != nil {
			s.Log.Dispense("err", errors.Wrap(err, "token verification failed").Error())
		}
		return DispenseResult{}, newError(KindInvalidToken, errors.New("invalid or expired token"))
	}

	st, ok := s.GetToken(claims.ID)
	if !ok {
		return DispenseResult{}, newError(KindNotFound, errors.Errorf("unknown token %q", claims.ID))
	}

	pol, ok := s.Catalog.Get(st.PolicyID)
	if !ok {
		return DispenseResult{}, newError(KindInvalidPolicy, errors.Errorf("unknown policy %q", st.PolicyID))
	}

	recordFieldNames := make([]string, 0, len(st.FieldCommitments))
	for name := range st.FieldCommitments {
		recordFieldNames = append(recordFieldNames, name)
	}

	if !pol.CoversExactly(recordFieldNames) {
		return DispenseResult{}, newError(KindPolicyRecordMismatch,
			errors.Errorf("policy %q does not exactly cover record %q's fields", st.PolicyID, st.RecordID))
	}

	visible, hidden := pol.Partition(recordFieldNames)

	ch := commitment.SubsetCommitment(st.FieldCommitments, hidden)
	s.ScrubHiddenRandomness(claims.ID, hidden)

	filtered := make(map[string]string, len(visible))
	openings := make([]commitment.Opening, 0, len(visible))
	for _, name := range visible {
		fc := st.FieldCommitments[name]
		filtered[name] = fc.Value
		openings = append(openings, commitment.Opening{Name: fc.Name, Value: fc.Value, R: fc.R})
	}

	p := proof.BuildPartitionProof(st.RecordCommitment.CD, ch, openings, len(hidden))

	return DispenseResult{
		FilteredRecord: filtered,
		Actions:        pol.Actions,
		Proof:          p,
	}, nil
}

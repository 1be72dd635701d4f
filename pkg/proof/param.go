/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package proof defines the delegate-visible partition proof: the
// record commitment, the hidden-subset commitment, and the openings
// that let a verifier reconstruct the visible-subset commitment.
package proof

import (
	"github.com/pkg/errors"

	"github.com/govportal/delegation-service/pkg/commitment"
	"github.com/govportal/delegation-service/pkg/group"
)

// Opening is the wire form of commitment.Opening: value and
// randomness disclosed in cleartext for a single visible field.
type Opening struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	R     []byte `json:"r"`
}

// PartitionProof is the payload Dispense emits and Verify consumes.
// HiddenFieldCount is advisory only and MUST NOT be trusted by a
// verifier for correctness; the binding equation is the only thing
// that matters.
type PartitionProof struct {
	RecordCommitment []byte    `json:"record_commitment"`
	HiddenCommitment []byte    `json:"hidden_commitment"`
	Openings         []Opening `json:"openings"`
	HiddenFieldCount int       `json:"hidden_field_count"`
}

// BuildPartitionProof encodes a PartitionProof from already-computed
// commitment-engine values.
func BuildPartitionProof(cd, ch group.Point, openings []commitment.Opening, hiddenFieldCount int) PartitionProof {
	wireOpenings := make([]Opening, 0, len(openings))
	for _, o := range openings {
		wireOpenings = append(wireOpenings, Opening{
			Name:  o.Name,
			Value: o.Value,
			R:     o.R.Bytes(),
		})
	}
	return PartitionProof{
		RecordCommitment: group.Encode(cd),
		HiddenCommitment: group.Encode(ch),
		Openings:         wireOpenings,
		HiddenFieldCount: hiddenFieldCount,
	}
}

// Decode parses the proof's encoded points and openings back into
// commitment-engine values, for use by Verify.
func (p PartitionProof) Decode() (cd, ch group.Point, openings []commitment.Opening, err error) {
	cd, err = group.Decode(p.RecordCommitment)
	if err != nil {
		return group.Point{}, group.Point{}, nil, errors.Wrap(err, "decode record_commitment")
	}
	ch, err = group.Decode(p.HiddenCommitment)
	if err != nil {
		return group.Point{}, group.Point{}, nil, errors.Wrap(err, "decode hidden_commitment")
	}

	openings = make([]commitment.Opening, 0, len(p.Openings))
	for _, o := range p.Openings {
		r, err := group.ScalarFromBytes(o.R)
		if err != nil {
			return group.Point{}, group.Point{}, nil, errors.Wrapf(err, "decode randomness for opening %q", o.Name)
		}
		openings = append(openings, commitment.Opening{Name: o.Name, Value: o.Value, R: r})
	}
	return cd, ch, openings, nil
}

// Verify recomputes C_F from the proof's openings and checks the
// partition equation against the record commitment bound into the
// caller-supplied, already-authenticated C_D (never a value echoed in
// the proof body itself — see the Server Orchestration design notes).
func Verify(boundCD group.Point, p PartitionProof) (valid bool, recomputedCF group.Point, err error) {
	_, ch, openings, err := p.Decode()
	if err != nil {
		return false, group.Point{}, err
	}
	cf := commitment.RecomputeFromOpenings(openings)
	return commitment.VerifyPartition(boundCD, ch, cf), cf, nil
}

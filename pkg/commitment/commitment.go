/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package commitment builds and verifies Pedersen commitments over
// the fields of a record, and composes them into the partition-proof
// algebra the delegation protocol is built on.
package commitment

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/govportal/delegation-service/pkg/group"
)

// FieldCommitment is a single committed (name, value) pair: C = g*m + h*r
// where m = hash_to_scalar(encoded(name, value)).
type FieldCommitment struct {
	Name  string
	Value string
	R     group.Scalar
	C     group.Point
}

// fieldMessageBytes builds the length-prefixed hash input for a field.
// Each length is a big-endian uint32, so a value or name containing
// any byte sequence (including what would have been an ambiguous
// separator) cannot be confused with a shift in field boundaries.
func fieldMessageBytes(name, value string) []byte {
	out := make([]byte, 0, 8+len(name)+len(value))
	var lenBuf [4]byte

	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(name)))
	out = append(out, lenBuf[:]...)
	out = append(out, name...)

	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(value)))
	out = append(out, lenBuf[:]...)
	out = append(out, value...)

	return out
}

// CommitField computes a FieldCommitment for (name, value). If r is
// nil, a fresh scalar is sampled from the cryptographic RNG.
func CommitField(name, value string, r *group.Scalar) (FieldCommitment, error) {
	var randomness group.Scalar
	if r != nil {
		randomness = *r
	} else {
		sampled, err := group.RandomScalar()
		if err != nil {
			return FieldCommitment{}, errors.Wrap(err, "sample field randomness")
		}
		randomness = sampled
	}

	m := group.HashToScalar(fieldMessageBytes(name, value))
	c := group.Add(
		group.ScalarMul(m, group.Generator()),
		group.ScalarMul(randomness, group.H()),
	)

	return FieldCommitment{Name: name, Value: value, R: randomness, C: c}, nil
}

// Record is an ordered name->value mapping; ordering is preserved so
// commit_record is deterministic in the order it samples randomness,
// even though the resulting C_D does not depend on order.
type Record struct {
	Names  []string
	Values map[string]string
}

// NewRecord builds a Record from names in insertion order and their values.
func NewRecord(names []string, values map[string]string) Record {
	return Record{Names: names, Values: values}
}

// RecordCommitment is the homomorphic sum of a record's field commitments.
type RecordCommitment struct {
	CD group.Point
}

// CommitRecord commits every field of rec with freshly sampled
// randomness, returning the summed commitment and the per-field
// commitments keyed by name.
func CommitRecord(rec Record) (RecordCommitment, map[string]FieldCommitment, error) {
	fieldCommitments := make(map[string]FieldCommitment, len(rec.Names))
	points := make([]group.Point, 0, len(rec.Names))

	for _, name := range rec.Names {
		value, ok := rec.Values[name]
		if !ok {
			return RecordCommitment{}, nil, errors.Errorf("record declares name %q with no value", name)
		}
		fc, err := CommitField(name, value, nil)
		if err != nil {
			return RecordCommitment{}, nil, errors.Wrapf(err, "commit field %q", name)
		}
		fieldCommitments[name] = fc
		points = append(points, fc.C)
	}

	return RecordCommitment{CD: group.Sum(points...)}, fieldCommitments, nil
}

// SubsetCommitment sums the commitments of the named fields present in
// fieldCommitments. Names absent from the map are skipped silently,
// matching the server's declare-by-inclusion convention at Dispense.
// An empty or fully-absent name set returns the group identity.
func SubsetCommitment(fieldCommitments map[string]FieldCommitment, names []string) group.Point {
	points := make([]group.Point, 0, len(names))
	for _, name := range names {
		if fc, ok := fieldCommitments[name]; ok {
			points = append(points, fc.C)
		}
	}
	return group.Sum(points...)
}

// VerifyPartition checks C_D == C_H + C_F.
func VerifyPartition(cd, ch, cf group.Point) bool {
	return group.Equal(cd, group.Add(ch, cf))
}

// Opening is a disclosed (name, value, randomness) triple for a
// visible field, sufficient for a verifier to recompute its commitment.
type Opening struct {
	Name  string
	Value string
	R     group.Scalar
}

// RecomputeFromOpenings sums g*hash_to_scalar(name,value) + h*r over
// every opening. An empty slice returns the group identity.
func RecomputeFromOpenings(openings []Opening) group.Point {
	points := make([]group.Point, 0, len(openings))
	for _, o := range openings {
		m := group.HashToScalar(fieldMessageBytes(o.Name, o.Value))
		points = append(points, group.Add(
			group.ScalarMul(m, group.Generator()),
			group.ScalarMul(o.R, group.H()),
		))
	}
	return group.Sum(points...)
}

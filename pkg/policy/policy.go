/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package policy defines the named visible/hidden partition of a
// record's fields and its canonical hash.
package policy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// Policy names a partition of a record's fields into a visible set
// the delegate may read and a hidden set the delegate must not, plus
// the capability strings the delegate is granted.
type Policy struct {
	ID      string   `json:"id" yaml:"id"`
	Visible []string `json:"visible" yaml:"visible"`
	Hidden  []string `json:"hidden" yaml:"hidden"`
	Actions []string `json:"actions" yaml:"actions"`
}

// canonicalForm is the exact shape hashed by Hash: sorted names under
// fixed keys so the digest is stable across map/slice ordering.
type canonicalForm struct {
	Visible []string `json:"visible"`
	Hidden  []string `json:"hidden"`
}

// Hash returns the full 64-character hex SHA-256 digest of the
// policy's canonical JSON form. Earlier designs truncated this to 32
// hex characters; the full digest is required here to preserve the
// hash's intended collision resistance.
func (p Policy) Hash() (string, error) {
	visible := append([]string(nil), p.Visible...)
	hidden := append([]string(nil), p.Hidden...)
	sort.Strings(visible)
	sort.Strings(hidden)

	canonical, err := json.Marshal(canonicalForm{Visible: visible, Hidden: hidden})
	if err != nil {
		return "", errors.Wrap(err, "marshal canonical policy form")
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}

// Validate checks that visible and hidden are disjoint, per the
// policy's structural invariant. Coverage of a specific record's keys
// is checked at Dispense time (PolicyRecordMismatch), not here.
func (p Policy) Validate() error {
	seen := make(map[string]struct{}, len(p.Visible))
	for _, name := range p.Visible {
		seen[name] = struct{}{}
	}
	for _, name := range p.Hidden {
		if _, ok := seen[name]; ok {
			return errors.Errorf("policy %q: field %q is both visible and hidden", p.ID, name)
		}
	}
	return nil
}

// Partition splits fieldNames into the subset this policy declares
// visible and the subset it declares hidden, restricted to names
// actually present in fieldNames.
func (p Policy) Partition(fieldNames []string) (visible, hidden []string) {
	present := make(map[string]struct{}, len(fieldNames))
	for _, n := range fieldNames {
		present[n] = struct{}{}
	}
	visibleSet := make(map[string]struct{}, len(p.Visible))
	for _, n := range p.Visible {
		if _, ok := present[n]; ok {
			visible = append(visible, n)
			visibleSet[n] = struct{}{}
		}
	}
	for _, n := range p.Hidden {
		if _, ok := present[n]; ok {
			hidden = append(hidden, n)
		}
	}
	return visible, hidden
}

// CoversExactly reports whether visible ∪ hidden (restricted to names
// in fieldNames) exactly equals fieldNames, with no gaps — the
// PolicyRecordMismatch invariant enforced at Dispense.
func (p Policy) CoversExactly(fieldNames []string) bool {
	visible, hidden := p.Partition(fieldNames)
	covered := make(map[string]struct{}, len(visible)+len(hidden))
	for _, n := range visible {
		covered[n] = struct{}{}
	}
	for _, n := range hidden {
		covered[n] = struct{}{}
	}
	if len(covered) != len(fieldNames) {
		return false
	}
	for _, n := range fieldNames {
		if _, ok := covered[n]; !ok {
			return false
		}
	}
	return true
}

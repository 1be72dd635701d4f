/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package state owns the explicit ServerState value the orchestration
// layer operates on: the token map, the policy catalog, the record
// store and the server's signing secret. Nothing here is a package
// global; every operation receives a *ServerState.
package state

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/govportal/delegation-service/pkg/commitment"
	"github.com/govportal/delegation-service/pkg/db"
	"github.com/govportal/delegation-service/pkg/group"
	"github.com/govportal/delegation-service/pkg/logger"
	"github.com/govportal/delegation-service/pkg/policy"
	"github.com/govportal/delegation-service/pkg/token"

	"github.com/govportal/delegation-service/internal/record"
)

// TokenState is everything the server retains about one issued token,
// keyed by its jti. An entry's FieldCommitments map is never written
// after insert: ScrubHiddenRandomness swaps in a scrubbed copy
// instead. Entries are evicted on expiry.
type TokenState struct {
	RecordID         string
	PolicyID         string
	FieldCommitments map[string]commitment.FieldCommitment
	RecordCommitment commitment.RecordCommitment
	CreatedAt        time.Time
	Expiry           time.Time
}

// ServerState is the explicit, injectable state the three
// orchestration operations (Issue, Dispense, Verify) share. A single
// RWMutex serializes access to the token map; the commitment engine
// itself remains stateless and safe for concurrent use without it.
type ServerState struct {
	mu     sync.RWMutex
	tokens map[string]TokenState

	Secret  token.Secret
	Catalog *policy.Catalog
	Records *record.Store
	Log     logger.Logger
	DB      db.ICache // nil when persistence is disabled
}

// New builds an empty ServerState with a freshly generated secret.
func New(catalog *policy.Catalog, records *record.Store, log logger.Logger, backing db.ICache) (*ServerState, error) {
	secret, err := token.NewSecret()
	if err != nil {
		return nil, errors.Wrap(err, "generate server secret")
	}
	return &ServerState{
		tokens:  make(map[string]TokenState),
		Secret:  secret,
		Catalog: catalog,
		Records: records,
		Log:     log,
		DB:      backing,
	}, nil
}

// PutToken inserts a token's state. The insert happens-before any
// subsequent Dispense response for the same jti, since both go
// through the same mutex.
func (s *ServerState) PutToken(jti string, st TokenState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = st

	if s.DB != nil {
		s.persistToken(jti, st)
	}
}

// GetToken looks up a token's state by jti, evicting it first if past
// expiry (spec §5's "SHOULD evict on expiry" resource-lifecycle rule).
func (s *ServerState) GetToken(jti string) (TokenState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tokens[jti]
	if !ok {
		return TokenState{}, false
	}
	if time.Now().After(st.Expiry) {
		delete(s.tokens, jti)
		return TokenState{}, false
	}
	return st, true
}

// ScrubHiddenRandomness replaces jti's FieldCommitments with a copy in
// which the randomness scalars of hidden fields are zeroed, once C_H
// has already been computed from their pre-summed commitment points:
// nothing past that point should ever read r_i for a hidden field
// again. The map a concurrent Dispense or Verify may be reading
// outside mu is never written; only the stored entry is swapped.
func (s *ServerState) ScrubHiddenRandomness(jti string, hidden []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tokens[jti]
	if !ok {
		return
	}
	fcs := make(map[string]commitment.FieldCommitment, len(st.FieldCommitments))
	for name, fc := range st.FieldCommitments {
		fcs[name] = fc
	}
	for _, name := range hidden {
		fc, ok := fcs[name]
		if !ok {
			continue
		}
		fc.R.Zero()
		fcs[name] = fc
	}
	st.FieldCommitments = fcs
	s.tokens[jti] = st
}

const tokenKeyPrefix = "token:"

// persistedFieldCommitment is the JSON-serializable mirror of
// commitment.FieldCommitment.
type persistedFieldCommitment struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	R     []byte `json:"r"`
	C     []byte `json:"c"`
}

// persistedToken is the JSON-serializable mirror of TokenState written
// to the leveldb-backed catalog store. It carries the literal
// commitments and randomness sampled at Issue time, not a
// recomputation from the record: Issue samples fresh per-field
// randomness on every call, so recommitting the record after a
// restart would produce a C_D that no longer matches the one bound
// into the already-issued JWT.
type persistedToken struct {
	RecordID         string                     `json:"recordId"`
	PolicyID         string                     `json:"policyId"`
	CreatedAt        time.Time                  `json:"createdAt"`
	Expiry           time.Time                  `json:"expiry"`
	FieldCommitments []persistedFieldCommitment `json:"fieldCommitments"`
	RecordCommitment []byte                     `json:"recordCommitment"`
}

func (s *ServerState) persistToken(jti string, st TokenState) {
	fcs := make([]persistedFieldCommitment, 0, len(st.FieldCommitments))
	for _, fc := range st.FieldCommitments {
		fcs = append(fcs, persistedFieldCommitment{
			Name:  fc.Name,
			Value: fc.Value,
			R:     fc.R.Bytes(),
			C:     group.Encode(fc.C),
		})
	}

	encoded, err := json.Marshal(persistedToken{
		RecordID:         st.RecordID,
		PolicyID:         st.PolicyID,
		CreatedAt:        st.CreatedAt,
		Expiry:           st.Expiry,
		FieldCommitments: fcs,
		RecordCommitment: group.Encode(st.RecordCommitment.CD),
	})
	if err != nil {
		if s.Log != nil {
			s.Log.Log("err", errors.Wrap(err, "marshal token state for persistence").Error())
		}
		return
	}
	if err := s.DB.Put([]byte(tokenKeyPrefix+jti), encoded); err != nil && s.Log != nil {
		s.Log.Log("err", errors.Wrap(err, "persist token state").Error())
	}
}

// RestoreTokens reloads persisted token state from the backing ICache,
// for use after a server restart when DB is non-nil. Expired entries
// are dropped rather than installed.
func (s *ServerState) RestoreTokens() error {
	if s.DB == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	return s.DB.Iterate([]byte(tokenKeyPrefix), func(key, value []byte) error {
		jti := strings.TrimPrefix(string(key), tokenKeyPrefix)
		if _, ok := s.tokens[jti]; ok {
			return nil
		}

		var pt persistedToken
		if err := json.Unmarshal(value, &pt); err != nil {
			return errors.Wrapf(err, "unmarshal persisted token %q", jti)
		}
		if now.After(pt.Expiry) {
			return nil
		}

		cd, err := group.Decode(pt.RecordCommitment)
		if err != nil {
			return errors.Wrapf(err, "decode record commitment for token %q", jti)
		}

		fcs := make(map[string]commitment.FieldCommitment, len(pt.FieldCommitments))
		for _, pfc := range pt.FieldCommitments {
			r, err := group.ScalarFromBytes(pfc.R)
			if err != nil {
				return errors.Wrapf(err, "decode field randomness for token %q field %q", jti, pfc.Name)
			}
			c, err := group.Decode(pfc.C)
			if err != nil {
				return errors.Wrapf(err, "decode field commitment for token %q field %q", jti, pfc.Name)
			}
			fcs[pfc.Name] = commitment.FieldCommitment{Name: pfc.Name, Value: pfc.Value, R: r, C: c}
		}

		s.tokens[jti] = TokenState{
			RecordID:         pt.RecordID,
			PolicyID:         pt.PolicyID,
			FieldCommitments: fcs,
			RecordCommitment: commitment.RecordCommitment{CD: cd},
			CreatedAt:        pt.CreatedAt,
			Expiry:           pt.Expiry,
		}
		return nil
	})
}

// yamlPolicyFile is the on-disk shape of a policies catalog file: a
// flat list of policies keyed by their own "id" field.
type yamlPolicyFile []policy.Policy

// LoadPolicies parses a policies YAML file and installs it into catalog.
func LoadPolicies(catalog *policy.Catalog, fpath string) error {
	raw, err := os.ReadFile(fpath)
	if err != nil {
		return errors.Wrapf(err, "read policies file %q", fpath)
	}
	var policies yamlPolicyFile
	if err := yaml.Unmarshal(raw, &policies); err != nil {
		return errors.Wrapf(err, "parse policies file %q", fpath)
	}
	return catalog.Load(policies)
}

// yamlRecord is the on-disk shape of one seed record.
type yamlRecord struct {
	Names  []string          `yaml:"names"`
	Values map[string]string `yaml:"values"`
}

// LoadRecords parses a records YAML file (record_id -> {names, values})
// and seeds store with each entry.
func LoadRecords(store *record.Store, fpath string) error {
	raw, err := os.ReadFile(fpath)
	if err != nil {
		return errors.Wrapf(err, "read records file %q", fpath)
	}
	var records map[string]yamlRecord
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return errors.Wrapf(err, "parse records file %q", fpath)
	}
	for id, rec := range records {
		if err := store.Seed(id, rec.Names, rec.Values); err != nil {
			return errors.Wrapf(err, "seed record %q", id)
		}
	}
	return nil
}

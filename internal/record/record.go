/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package record holds the citizen records the server discloses
// slices of. A real deployment would fetch these from an external
// record system (spec §1 places this out of scope); this package
// stands in as a seedable, optionally leveldb-backed store.
package record

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/govportal/delegation-service/pkg/commitment"
	"github.com/govportal/delegation-service/pkg/db"
)

const recordKeyPrefix = "record:"

// Store is a record_id -> commitment.Record map, seeded at startup
// and immutable during a run.
type Store struct {
	mu      sync.RWMutex
	records map[string]commitment.Record
	backing db.ICache // may be nil
}

// NewStore builds an empty Store. A nil backing keeps records
// in-memory only.
func NewStore(backing db.ICache) *Store {
	return &Store{records: make(map[string]commitment.Record), backing: backing}
}

// wireRecord is the JSON persistence form of commitment.Record.
type wireRecord struct {
	Names  []string          `json:"names"`
	Values map[string]string `json:"values"`
}

// Seed installs a record under recordID, persisting it if a backing
// store is configured.
func (s *Store) Seed(recordID string, names []string, values map[string]string) error {
	rec := commitment.NewRecord(names, values)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordID] = rec

	if s.backing == nil {
		return nil
	}
	encoded, err := json.Marshal(wireRecord{Names: names, Values: values})
	if err != nil {
		return errors.Wrapf(err, "marshal record %q", recordID)
	}
	return s.backing.Put([]byte(recordKeyPrefix+recordID), encoded)
}

// RestoreFromStore reloads persisted records from the backing ICache,
// for use after a server restart when backing is non-nil. Ids already
// seeded this run are left untouched.
func (s *Store) RestoreFromStore() error {
	if s.backing == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.backing.Iterate([]byte(recordKeyPrefix), func(key, value []byte) error {
		id := strings.TrimPrefix(string(key), recordKeyPrefix)
		if _, ok := s.records[id]; ok {
			return nil
		}
		var wr wireRecord
		if err := json.Unmarshal(value, &wr); err != nil {
			return errors.Wrapf(err, "unmarshal persisted record %q", id)
		}
		s.records[id] = commitment.NewRecord(wr.Names, wr.Values)
		return nil
	})
}

// Get looks up a record by id.
func (s *Store) Get(recordID string) (commitment.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordID]
	return rec, ok
}

// FieldNames returns rec's field names in insertion order.
func FieldNames(rec commitment.Record) []string {
	return rec.Names
}

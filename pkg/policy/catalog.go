/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package policy

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/govportal/delegation-service/pkg/db"
)

// catalogKeyPrefix namespaces policy keys within the shared leveldb handle.
const catalogKeyPrefix = "policy:"

// Catalog is the read-mostly set of policies a server instance
// recognizes by id, optionally mirrored into an ICache for restart
// durability.
type Catalog struct {
	mu       sync.RWMutex
	policies map[string]Policy
	store    db.ICache // may be nil: in-memory only
}

// NewCatalog builds an empty Catalog. A nil store keeps the catalog
// purely in-memory, matching spec.md §6.4's "none required" default.
func NewCatalog(store db.ICache) *Catalog {
	return &Catalog{policies: make(map[string]Policy), store: store}
}

// Load seeds the catalog from a slice of policies (as parsed from a
// config file), validating each and persisting it to store if set.
func (c *Catalog) Load(policies []Policy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range policies {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "load policy %q", p.ID)
		}
		c.policies[p.ID] = p
		if c.store != nil {
			if err := c.persist(p); err != nil {
				return errors.Wrapf(err, "persist policy %q", p.ID)
			}
		}
	}
	return nil
}

func (c *Catalog) persist(p Policy) error {
	encoded, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal policy")
	}
	return c.store.Put([]byte(catalogKeyPrefix+p.ID), encoded)
}

// Get looks up a policy by id.
func (c *Catalog) Get(id string) (Policy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.policies[id]
	return p, ok
}

// List returns every policy in the catalog, order unspecified.
func (c *Catalog) List() []Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Policy, 0, len(c.policies))
	for _, p := range c.policies {
		out = append(out, p)
	}
	return out
}

// RestoreFromStore reloads persisted policies from the backing ICache,
// for use after a server restart when store is non-nil. Ids already
// present in the catalog (re-seeded by this run's config) are left
// untouched; RestoreFromStore only fills in what config didn't cover.
func (c *Catalog) RestoreFromStore() error {
	if c.store == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.Iterate([]byte(catalogKeyPrefix), func(key, value []byte) error {
		id := strings.TrimPrefix(string(key), catalogKeyPrefix)
		if _, ok := c.policies[id]; ok {
			return nil
		}
		var p Policy
		if err := json.Unmarshal(value, &p); err != nil {
			return errors.Wrapf(err, "unmarshal persisted policy %q", id)
		}
		c.policies[id] = p
		return nil
	})
}

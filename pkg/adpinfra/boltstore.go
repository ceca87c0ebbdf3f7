// Package adpinfra holds the Authorizer's persistence adapters: the
// bbolt-backed delegation store (the "any ordered key/value store" the
// spec leaves pluggable) and the Postgres audit trail of accepted
// delegation envelopes.
package adpinfra

import (
	"encoding/json"
	"fmt"

	"github.com/abraxas-iag/gateway/pkg/adp"
	bolt "go.etcd.io/bbolt"
)

var delegationsBucket = []byte("delegations")

// BoltDelegationStore persists delegations in an embedded bbolt database,
// keyed by (subject, agent_id, tool_id). bbolt serializes writers
// natively, giving the single-writer/concurrent-reader model this module
// requires without an external dependency.
type BoltDelegationStore struct {
	db *bolt.DB
}

func OpenBoltDelegationStore(path string) (*BoltDelegationStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt delegation store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(delegationsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltDelegationStore{db: db}, nil
}

func (s *BoltDelegationStore) Close() error {
	return s.db.Close()
}

// Upsert writes d under its (subject, agent_id, tool_id) key, replacing
// any prior delegation for that key.
func (s *BoltDelegationStore) Upsert(d adp.Delegation) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(delegationsBucket)
		return b.Put([]byte(d.Key()), body)
	})
}

// Get fetches a delegation by key; ok is false if none exists.
func (s *BoltDelegationStore) Get(key string) (adp.Delegation, bool, error) {
	var d adp.Delegation
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(delegationsBucket)
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &d)
	})
	return d, found, err
}

// All returns every stored delegation, backing GET /delegations.
func (s *BoltDelegationStore) All() ([]adp.Delegation, error) {
	var out []adp.Delegation
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(delegationsBucket)
		return b.ForEach(func(_, v []byte) error {
			var d adp.Delegation
			if err := json.Unmarshal(v, &d); err != nil {
				return err
			}
			out = append(out, d)
			return nil
		})
	})
	return out, err
}

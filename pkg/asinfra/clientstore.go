package asinfra

import (
	"encoding/json"
	"fmt"

	"github.com/abraxas-iag/gateway/pkg/asrv"
	bolt "go.etcd.io/bbolt"
)

var clientsBucket = []byte("clients")

// BoltClientStore persists dynamically registered clients (RFC 7591) so a
// restarted-but-same-data-dir AS instance still recognizes previously
// registered client_ids.
type BoltClientStore struct {
	db *bolt.DB
}

func OpenBoltClientStore(path string) (*BoltClientStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt client store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(clientsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltClientStore{db: db}, nil
}

func (s *BoltClientStore) Close() error {
	return s.db.Close()
}

func (s *BoltClientStore) Put(c asrv.Client) error {
	body, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(clientsBucket).Put([]byte(c.ClientID), body)
	})
}

func (s *BoltClientStore) Get(clientID string) (asrv.Client, bool, error) {
	var c asrv.Client
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(clientsBucket).Get([]byte(clientID))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &c)
	})
	return c, found, err
}

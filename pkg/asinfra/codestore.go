// Package asinfra holds the Authorization Server's persistence adapters:
// the single-use authorization-code store and the dynamically registered
// client table.
package asinfra

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/abraxas-iag/gateway/pkg/asrv"
	"github.com/redis/go-redis/v9"
)

// CodeStore atomically redeems a single-use authorization code: the
// lookup and delete must happen as one operation to prevent double
// redemption of the same code.
type CodeStore interface {
	Put(ctx context.Context, req asrv.AuthorizationRequest, ttl time.Duration) error
	Redeem(ctx context.Context, code string) (asrv.AuthorizationRequest, bool, error)
}

// RedisCodeStore backs the code table with Redis GETDEL, which performs
// the lookup-then-delete as a single atomic command, giving cross-process
// compare-and-delete the spec requires.
type RedisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(addr string) *RedisCodeStore {
	return &RedisCodeStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisCodeStore) Put(ctx context.Context, req asrv.AuthorizationRequest, ttl time.Duration) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "authz_code:"+req.Code, body, ttl).Err()
}

func (s *RedisCodeStore) Redeem(ctx context.Context, code string) (asrv.AuthorizationRequest, bool, error) {
	var req asrv.AuthorizationRequest
	raw, err := s.client.GetDel(ctx, "authz_code:"+code).Bytes()
	if err == redis.Nil {
		return req, false, nil
	}
	if err != nil {
		return req, false, err
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, false, err
	}
	return req, true, nil
}

// MemoryCodeStore is a mutex-guarded map offering the same
// lookup-then-delete atomicity for single-process/test use, without
// requiring a running Redis instance.
type MemoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]asrv.AuthorizationRequest
}

func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{codes: make(map[string]asrv.AuthorizationRequest)}
}

func (s *MemoryCodeStore) Put(_ context.Context, req asrv.AuthorizationRequest, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[req.Code] = req
	return nil
}

func (s *MemoryCodeStore) Redeem(_ context.Context, code string) (asrv.AuthorizationRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.codes[code]
	if !ok {
		return asrv.AuthorizationRequest{}, false, nil
	}
	delete(s.codes, code)
	return req, true, nil
}

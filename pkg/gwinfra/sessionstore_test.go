package gwinfra

import (
	"sync"
	"testing"
	"time"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"github.com/abraxas-iag/gateway/pkg/kernel"
)

func readySession(sid, scope string, obtainedAt time.Time) *gwcore.Session {
	return &gwcore.Session{
		SID:             kernel.NewSessionID(sid),
		RequestedScopes: []string{scope},
		AccessToken:     "tok-" + sid,
		Used:            true,
		ExpiresAt:       time.Now().Add(time.Hour),
		ObtainedAt:      obtainedAt,
	}
}

func TestSessionStoreInsertGet(t *testing.T) {
	store := NewSessionStore()
	sess := readySession("s1", "echo:read", time.Now())
	store.Insert(sess)

	got, ok := store.Get(kernel.NewSessionID("s1"))
	if !ok {
		t.Fatal("expected session to be found")
	}
	if got.SID != sess.SID {
		t.Errorf("got SID %q, want %q", got.SID, sess.SID)
	}

	if _, ok := store.Get(kernel.NewSessionID("missing")); ok {
		t.Error("expected lookup of an unknown sid to fail")
	}
}

func TestSessionStoreMutate(t *testing.T) {
	store := NewSessionStore()
	sess := &gwcore.Session{SID: kernel.NewSessionID("s1")}
	store.Insert(sess)

	ok := store.Mutate(kernel.NewSessionID("s1"), func(s *gwcore.Session) {
		s.AccessToken = "minted"
		s.Used = true
		s.ExpiresAt = time.Now().Add(time.Hour)
	})
	if !ok {
		t.Fatal("Mutate on an existing session should report true")
	}

	got, _ := store.Get(kernel.NewSessionID("s1"))
	if !got.Ready() {
		t.Error("expected the mutated session to be ready")
	}

	if store.Mutate(kernel.NewSessionID("missing"), func(s *gwcore.Session) {}) {
		t.Error("Mutate on an unknown sid should report false")
	}
}

func TestSessionStoreSelectForScopeSegregatesByScope(t *testing.T) {
	store := NewSessionStore()
	store.Insert(readySession("echo-sess", "echo:read", time.Now()))
	store.Insert(readySession("pay-sess", "payments:charge", time.Now()))

	got, ok := store.SelectForScope("tickets:read")
	if ok {
		t.Fatalf("expected no session for an unrequested scope, got %+v", got)
	}

	got, ok = store.SelectForScope("payments:charge")
	if !ok {
		t.Fatal("expected to find the payments session")
	}
	if got.SID.String() != "pay-sess" {
		t.Errorf("got sid %q, want pay-sess", got.SID)
	}
}

func TestSessionStoreSelectForScopeIgnoresNotReady(t *testing.T) {
	store := NewSessionStore()
	notReady := &gwcore.Session{
		SID:             kernel.NewSessionID("pending"),
		RequestedScopes: []string{"echo:read"},
	}
	store.Insert(notReady)

	if _, ok := store.SelectForScope("echo:read"); ok {
		t.Fatal("expected a session with no access token to be ignored by SelectForScope")
	}
}

func TestSessionStoreSelectForScopePrefersMostRecentlyObtained(t *testing.T) {
	store := NewSessionStore()
	older := readySession("older", "echo:read", time.Now().Add(-time.Hour))
	newer := readySession("newer", "echo:read", time.Now())
	store.Insert(older)
	store.Insert(newer)

	got, ok := store.SelectForScope("echo:read")
	if !ok {
		t.Fatal("expected to find a ready session")
	}
	if got.SID.String() != "newer" {
		t.Errorf("got sid %q, want newer (most recently obtained)", got.SID)
	}
}

func TestSessionStoreResetClearsAllSessions(t *testing.T) {
	store := NewSessionStore()
	store.Insert(readySession("s1", "echo:read", time.Now()))
	store.Reset()

	if all := store.All(); len(all) != 0 {
		t.Errorf("expected no sessions after Reset, got %d", len(all))
	}
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	store := NewSessionStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := kernel.NewSessionID("concurrent")
			store.Insert(&gwcore.Session{SID: sid, RequestedScopes: []string{"echo:read"}})
			store.Mutate(sid, func(s *gwcore.Session) {
				s.AccessToken = "tok"
				s.Used = true
				s.ExpiresAt = time.Now().Add(time.Hour)
			})
			store.Get(sid)
			store.SelectForScope("echo:read")
		}(i)
	}
	wg.Wait()
}

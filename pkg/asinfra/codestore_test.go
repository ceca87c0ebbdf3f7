package asinfra

import (
	"context"
	"testing"
	"time"

	"github.com/abraxas-iag/gateway/pkg/asrv"
)

func TestMemoryCodeStorePutRedeem(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	req := asrv.AuthorizationRequest{
		Code:        "abc123",
		ClientID:    "client-1",
		RedirectURI: "https://client.example.com/cb",
		Scope:       "echo:read",
	}
	if err := store.Put(ctx, req, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := store.Redeem(ctx, "abc123")
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if !found {
		t.Fatal("expected code to be found")
	}
	if got != req {
		t.Errorf("Redeem returned %+v, want %+v", got, req)
	}
}

func TestMemoryCodeStoreRedeemIsSingleUse(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	req := asrv.AuthorizationRequest{Code: "once", ClientID: "client-1"}
	if err := store.Put(ctx, req, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, found, err := store.Redeem(ctx, "once"); err != nil || !found {
		t.Fatalf("first redeem: found=%v err=%v", found, err)
	}

	_, found, err := store.Redeem(ctx, "once")
	if err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if found {
		t.Fatal("expected the second redemption of the same code to fail (replay)")
	}
}

func TestMemoryCodeStoreRedeemUnknownCode(t *testing.T) {
	store := NewMemoryCodeStore()
	_, found, err := store.Redeem(context.Background(), "never-existed")
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if found {
		t.Fatal("expected found=false for an unknown code")
	}
}

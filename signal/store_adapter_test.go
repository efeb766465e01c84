package signal

import (
	"context"
	"testing"

	"github.com/rushteam/feedkit/store"
)

func TestStoreAdapter_UserIDs(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	adapter := NewStoreAdapter(ms, "")

	// No key yet: empty list, not an error.
	ids, err := adapter.UserIDs(ctx)
	if err != nil {
		t.Fatalf("UserIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("UserIDs() = %v, want empty", ids)
	}

	if err := ms.Set(ctx, "signal:users", []byte(`["u1","u2"]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	ids, err = adapter.UserIDs(ctx)
	if err != nil {
		t.Fatalf("UserIDs() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "u1" || ids[1] != "u2" {
		t.Errorf("UserIDs() = %v, want [u1 u2]", ids)
	}
}

func TestStoreAdapter_UserRecordFromZSet(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	// Interaction logs land in zsets scored by timestamp.
	if err := ms.ZAdd(ctx, "signal:likes:u1", 2, "c2"); err != nil {
		t.Fatalf("ZAdd() error = %v", err)
	}
	if err := ms.ZAdd(ctx, "signal:likes:u1", 1, "c1"); err != nil {
		t.Fatalf("ZAdd() error = %v", err)
	}
	if err := ms.ZAdd(ctx, "signal:swipes:u1", 1, "c3"); err != nil {
		t.Fatalf("ZAdd() error = %v", err)
	}

	rec, err := NewStoreAdapter(ms, "").UserRecord(ctx, "u1")
	if err != nil {
		t.Fatalf("UserRecord() error = %v", err)
	}
	if rec.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", rec.UserID)
	}
	if len(rec.LikedIDs) != 2 || rec.LikedIDs[0] != "c2" || rec.LikedIDs[1] != "c1" {
		t.Errorf("LikedIDs = %v, want [c2 c1] (score desc)", rec.LikedIDs)
	}
	if len(rec.SwipedIDs) != 1 || rec.SwipedIDs[0] != "c3" {
		t.Errorf("SwipedIDs = %v, want [c3]", rec.SwipedIDs)
	}
	if len(rec.BetOnIDs) != 0 {
		t.Errorf("BetOnIDs = %v, want empty", rec.BetOnIDs)
	}
}

func TestStoreAdapter_UserRecordJSONFallback(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	// Empty zset falls back to the JSON array layout.
	if err := ms.Set(ctx, "signal:groups:u1", []byte(`["g1","g2"]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	rec, err := NewStoreAdapter(ms, "").UserRecord(ctx, "u1")
	if err != nil {
		t.Fatalf("UserRecord() error = %v", err)
	}
	if len(rec.GroupIDs) != 2 || rec.GroupIDs[0] != "g1" {
		t.Errorf("GroupIDs = %v, want [g1 g2]", rec.GroupIDs)
	}
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/feedkit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if _, err := ms.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(missing) error = %v, want ErrStoreNotFound", err)
	}

	if err := ms.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := ms.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get() = %q, want v1", got)
	}

	if err := ms.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ms.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(deleted) error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "k1", []byte("v1"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Rewind the expiry into the past instead of sleeping.
	e := ms.data["k1"]
	past := e.ttl.Add(-2 * time.Second)
	e.ttl = &past

	if _, err := ms.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(expired) error = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_BatchGetSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := ms.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := ms.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (missing keys skipped)", len(got))
	}
	if string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet() = %v", got)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	for member, score := range map[string]float64{"low": 1, "high": 3, "mid": 2} {
		if err := ms.ZAdd(ctx, "z", score, member); err != nil {
			t.Fatalf("ZAdd() error = %v", err)
		}
	}

	got, err := ms.ZRange(ctx, "z", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	want := []string{"high", "mid", "low"}
	if len(got) != len(want) {
		t.Fatalf("ZRange() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ZRange()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	page, err := ms.ZRange(ctx, "z", 1, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if len(page) != 1 || page[0] != "mid" {
		t.Errorf("ZRange(1,1) = %v, want [mid]", page)
	}

	empty, err := ms.ZRange(ctx, "nothing", 0, -1)
	if err != nil || empty != nil {
		t.Errorf("ZRange(missing) = (%v, %v), want (nil, nil)", empty, err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.HSet(ctx, "h", "f1", []byte("v1")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := ms.HSet(ctx, "h", "f2", []byte("v2")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	got, err := ms.HGet(ctx, "h", "f1")
	if err != nil {
		t.Fatalf("HGet() error = %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("HGet() = %q, want v1", got)
	}

	if _, err := ms.HGet(ctx, "h", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("HGet(missing) error = %v, want ErrStoreNotFound", err)
	}

	all, err := ms.HGetAll(ctx, "h")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 || string(all["f1"]) != "v1" || string(all["f2"]) != "v2" {
		t.Errorf("HGetAll() = %v", all)
	}
}

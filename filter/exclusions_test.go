package filter

import (
	"context"
	"testing"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/store"
)

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSeenFilter(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "feed:seen:u1", []byte(`["c1","c3"]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f := &SeenFilter{Store: ms}
	rctx := &core.RecommendContext{UserID: "u1"}

	out, err := Apply(ctx, rctx, []Filter{f}, []*core.Item{
		core.NewItem("c1"),
		core.NewItem("c2"),
		core.NewItem("c3"),
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := ids(out); len(got) != 1 || got[0] != "c2" {
		t.Errorf("Apply() = %v, want [c2]", got)
	}

	// No exposure history: nothing filtered.
	out, err = Apply(ctx, &core.RecommendContext{UserID: "fresh"}, []Filter{f}, []*core.Item{core.NewItem("c1")})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("Apply() filtered without history: %v", ids(out))
	}
}

func TestBlockedFilter(t *testing.T) {
	byCreator := core.NewItem("c1")
	byCreator.Meta["creator_id"] = "bad-creator"

	byGroup := core.NewItem("c2")
	byGroup.Meta["group_ids"] = []string{"g1", "g2"}

	direct := core.NewItem("c3")
	clean := core.NewItem("c4")

	f := &BlockedFilter{
		CreatorIDs:  []string{"bad-creator"},
		GroupIDs:    []string{"g2"},
		ContractIDs: []string{"c3"},
	}

	out, err := Apply(context.Background(), nil, []Filter{f}, []*core.Item{byCreator, byGroup, direct, clean})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := ids(out); len(got) != 1 || got[0] != "c4" {
		t.Errorf("Apply() = %v, want [c4]", got)
	}
}

func TestIgnoredFilter(t *testing.T) {
	f := &IgnoredFilter{IDs: []string{"c1"}}
	rctx := &core.RecommendContext{
		UserID: "u1",
		Params: map[string]any{"ignore_contract_ids": []string{"c2"}},
	}

	out, err := Apply(context.Background(), rctx, []Filter{f}, []*core.Item{
		core.NewItem("c1"),
		core.NewItem("c2"),
		core.NewItem("c3"),
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := ids(out); len(got) != 1 || got[0] != "c3" {
		t.Errorf("Apply() = %v, want [c3]", got)
	}
}

func TestRuleFilter(t *testing.T) {
	low := core.NewItem("c1")
	low.Score = 0.1
	high := core.NewItem("c2")
	high.Score = 0.9

	f := &RuleFilter{Expr: "item.score < 0.5"}
	out, err := Apply(context.Background(), nil, []Filter{f}, []*core.Item{low, high})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := ids(out); len(got) != 1 || got[0] != "c2" {
		t.Errorf("Apply() = %v, want [c2]", got)
	}

	// Empty expression keeps everything.
	pass := &RuleFilter{}
	out, err = Apply(context.Background(), nil, []Filter{pass}, []*core.Item{low, high})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("empty expression filtered items: %v", ids(out))
	}
}

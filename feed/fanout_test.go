package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/feedkit/core"
)

type stubSource struct {
	name   string
	reason Reason
	items  []*core.Item
	err    error
	weight float64
}

func (s *stubSource) Name() string   { return s.name }
func (s *stubSource) Reason() Reason { return s.reason }

func (s *stubSource) Fetch(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	return s.items, s.err
}

type weightedStub struct{ stubSource }

func (s *weightedStub) Weight(_ *core.RecommendContext) float64 { return s.weight }

func TestFanout_GatherPreservesSourceOrder(t *testing.T) {
	f := &Fanout{Sources: []Source{
		&stubSource{name: "fresh", reason: ReasonFreshness, items: []*core.Item{item("a", 1)}},
		&stubSource{name: "conv", reason: ReasonConversion, items: []*core.Item{item("b", 2)}},
		&stubSource{name: "follow", reason: ReasonFollowed, items: []*core.Item{item("c", 3)}},
	}}

	lists, err := f.Gather(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	wantReasons := []Reason{ReasonFreshness, ReasonConversion, ReasonFollowed}
	if len(lists) != len(wantReasons) {
		t.Fatalf("len(lists) = %d, want %d", len(lists), len(wantReasons))
	}
	for i, want := range wantReasons {
		if lists[i].Reason != want {
			t.Errorf("lists[%d].Reason = %q, want %q", i, lists[i].Reason, want)
		}
	}
}

func TestFanout_GatherPropagatesError(t *testing.T) {
	boom := errors.New("source down")
	f := &Fanout{Sources: []Source{
		&stubSource{name: "ok", reason: ReasonFreshness, items: []*core.Item{item("a", 1)}},
		&stubSource{name: "bad", reason: ReasonConversion, err: boom},
	}}

	_, err := f.Gather(context.Background(), &core.RecommendContext{UserID: "u1"})
	if !errors.Is(err, boom) {
		t.Fatalf("Gather() error = %v, want %v", err, boom)
	}
}

func TestFanout_GatherLabelsCandidateSource(t *testing.T) {
	it := item("a", 1)
	f := &Fanout{Sources: []Source{
		&stubSource{name: "fresh", reason: ReasonFreshness, items: []*core.Item{it}},
	}}

	if _, err := f.Gather(context.Background(), &core.RecommendContext{UserID: "u1"}); err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if lbl, ok := it.Labels["candidate_source"]; !ok || lbl.Value != "fresh" {
		t.Errorf("candidate_source label = %+v, want fresh", lbl)
	}
}

func TestFanout_GatherReadsSourceWeight(t *testing.T) {
	ws := &weightedStub{}
	ws.name = "conv"
	ws.reason = ReasonConversion
	ws.items = []*core.Item{item("a", 1)}
	ws.weight = 0.4

	f := &Fanout{Sources: []Source{ws}, MaxConcurrent: 2}
	lists, err := f.Gather(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if lists[0].Weight != 0.4 {
		t.Errorf("Weight = %v, want 0.4", lists[0].Weight)
	}
}

func TestFanout_GatherNoSources(t *testing.T) {
	lists, err := (&Fanout{}).Gather(context.Background(), &core.RecommendContext{})
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if lists != nil {
		t.Errorf("lists = %v, want nil", lists)
	}
}

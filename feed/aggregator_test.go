package feed

import (
	"math"
	"testing"

	"github.com/rushteam/feedkit/core"
)

func item(id string, score float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	return it
}

func TestAggregator_MultiplicativeCombine(t *testing.T) {
	a := &Aggregator{}
	ranked := a.Merge([]CandidateList{
		{Reason: ReasonConversion, Items: []*core.Item{item("x", 2)}},
		{Reason: ReasonImportance, Items: []*core.Item{item("x", 3)}},
	})

	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	got := ranked[0]
	if math.Abs(got.CombinedScore-6) > 1e-12 {
		t.Errorf("CombinedScore = %v, want 6 (2*3)", got.CombinedScore)
	}
	if got.Reason != ReasonConversion {
		t.Errorf("Reason = %q, want conversion (outranks importance)", got.Reason)
	}
	if lbl, ok := got.Item.Labels["reason"]; !ok || lbl.Value != "conversion" {
		t.Errorf("reason label = %+v, want conversion", lbl)
	}
}

func TestAggregator_DedupKeepsFirstOccurrence(t *testing.T) {
	first := item("x", 2)
	second := item("x", 3)
	second.Meta["marker"] = true

	a := &Aggregator{}
	ranked := a.Merge([]CandidateList{
		{Reason: ReasonFreshness, Items: []*core.Item{first}},
		{Reason: ReasonFreshness, Items: []*core.Item{second}},
	})

	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	if ranked[0].Item != first {
		t.Errorf("dedup kept the wrong instance")
	}
	if math.Abs(ranked[0].CombinedScore-6) > 1e-12 {
		t.Errorf("CombinedScore = %v, want 6", ranked[0].CombinedScore)
	}
}

func TestAggregator_SortsByCombinedScoreDesc(t *testing.T) {
	a := &Aggregator{}
	ranked := a.Merge([]CandidateList{
		{Reason: ReasonFreshness, Items: []*core.Item{
			item("low", 1),
			item("high", 5),
			item("mid", 3),
		}},
	})

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if ranked[i].Item.ID != want {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Item.ID, want)
		}
	}
}

func TestAggregator_ListWeightMultiplies(t *testing.T) {
	a := &Aggregator{}
	ranked := a.Merge([]CandidateList{
		{Reason: ReasonFreshness, Weight: 0.5, Items: []*core.Item{item("x", 4)}},
		{Reason: ReasonFreshness, Items: []*core.Item{item("y", 4)}}, // weight <=0 → 1
	})

	scores := map[string]float64{}
	for _, r := range ranked {
		scores[r.Item.ID] = r.CombinedScore
	}
	if math.Abs(scores["x"]-2) > 1e-12 {
		t.Errorf("weighted score = %v, want 2", scores["x"])
	}
	if math.Abs(scores["y"]-4) > 1e-12 {
		t.Errorf("unweighted score = %v, want 4", scores["y"])
	}
}

func TestAggregator_ReasonPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		reasons []Reason
		want    Reason
	}{
		{"followed beats all", []Reason{ReasonFreshness, ReasonFollowed, ReasonConversion}, ReasonFollowed},
		{"conversion beats importance", []Reason{ReasonImportance, ReasonConversion}, ReasonConversion},
		{"importance beats freshness", []Reason{ReasonFreshness, ReasonImportance}, ReasonImportance},
		{"single list keeps its reason", []Reason{ReasonFreshness}, ReasonFreshness},
		{"unmarked list yields none", []Reason{ReasonNone}, ReasonNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lists []CandidateList
			for _, r := range tt.reasons {
				lists = append(lists, CandidateList{Reason: r, Items: []*core.Item{item("x", 1)}})
			}
			ranked := (&Aggregator{}).Merge(lists)
			if len(ranked) != 1 {
				t.Fatalf("len(ranked) = %d, want 1", len(ranked))
			}
			if ranked[0].Reason != tt.want {
				t.Errorf("Reason = %q, want %q", ranked[0].Reason, tt.want)
			}
		})
	}
}

func TestAggregator_EmptyInput(t *testing.T) {
	ranked := (&Aggregator{}).Merge(nil)
	if len(ranked) != 0 {
		t.Errorf("len(ranked) = %d, want 0", len(ranked))
	}
}

func TestItems_CopiesCombinedScore(t *testing.T) {
	ranked := (&Aggregator{}).Merge([]CandidateList{
		{Reason: ReasonConversion, Weight: 2, Items: []*core.Item{item("x", 3)}},
	})
	items := Items(ranked)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if math.Abs(items[0].Score-6) > 1e-12 {
		t.Errorf("Score = %v, want combined 6", items[0].Score)
	}
}

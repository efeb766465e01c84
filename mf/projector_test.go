package mf

import (
	"math"
	"testing"
)

func TestProjector_UserScores(t *testing.T) {
	f := &Factors{
		Users:   []string{"u1", "u2"},
		Columns: []string{"c1", "swiped-c1", "group-g1", "swiped-c2"},
		User: [][]float64{
			{1, 2},
			{0.5, 0},
		},
		Item: [][]float64{
			{9, 9},   // bare column, must be ignored
			{1, 1},   // swiped-c1
			{9, 9},   // group column, must be ignored
			{3, 0.5}, // swiped-c2
		},
	}
	p := NewProjector(f)

	if got := p.ItemIDs(); len(got) != 2 || got[0] != "c1" || got[1] != "c2" {
		t.Fatalf("ItemIDs() = %v, want [c1 c2]", got)
	}

	scores := p.UserScores("u1")
	if len(scores) != 2 {
		t.Fatalf("len(scores) = %d, want 2", len(scores))
	}
	if math.Abs(scores["c1"]-3) > 1e-12 { // 1*1 + 2*1
		t.Errorf("scores[c1] = %v, want 3", scores["c1"])
	}
	if math.Abs(scores["c2"]-4) > 1e-12 { // 1*3 + 2*0.5
		t.Errorf("scores[c2] = %v, want 4", scores["c2"])
	}
}

func TestProjector_UnknownUser(t *testing.T) {
	p := NewProjector(&Factors{
		Users:   []string{"u1"},
		Columns: []string{"swiped-c1"},
		User:    [][]float64{{1}},
		Item:    [][]float64{{1}},
	})

	scores := p.UserScores("nobody")
	if scores == nil {
		t.Fatalf("UserScores() = nil, want empty map")
	}
	if len(scores) != 0 {
		t.Errorf("len(scores) = %d, want 0", len(scores))
	}
}

func TestProjector_NoSwipedColumns(t *testing.T) {
	p := NewProjector(&Factors{
		Users:   []string{"u1"},
		Columns: []string{"c1", "group-g1"},
		User:    [][]float64{{1}},
		Item:    [][]float64{{1}, {1}},
	})

	if len(p.ItemIDs()) != 0 {
		t.Errorf("ItemIDs() = %v, want empty", p.ItemIDs())
	}
	if scores := p.UserScores("u1"); len(scores) != 0 {
		t.Errorf("scores = %v, want empty", scores)
	}
}

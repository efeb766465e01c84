package dsl

import (
	"testing"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/utils"
)

func TestRule_Eval(t *testing.T) {
	it := core.NewItem("c1")
	it.Score = 0.8
	it.SetLabel("reason", utils.Label{Value: "freshness", Source: "aggregate"})
	rctx := &core.RecommendContext{UserID: "u1", Scene: "feed"}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"label shorthand match", `label.reason == "freshness"`, true},
		{"label shorthand miss", `label.reason == "followed"`, false},
		{"item score compare", `item.score > 0.7`, true},
		{"logical and", `label.reason == "freshness" && item.score > 0.9`, false},
		{"rctx scene", `rctx.scene == "feed"`, true},
		{"item id", `item.id == "c1"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}
			got, err := rule.Eval(it, rctx)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompile_Empty(t *testing.T) {
	rule, err := Compile("")
	if err != nil {
		t.Fatalf("Compile(\"\") error = %v", err)
	}
	if rule != nil {
		t.Fatalf("Compile(\"\") = %v, want nil rule", rule)
	}

	// nil rule always passes.
	got, err := rule.Eval(core.NewItem("c1"), nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !got {
		t.Errorf("Eval() = false, want true for nil rule")
	}
}

func TestCompile_InvalidExpression(t *testing.T) {
	if _, err := Compile("label.reason =="); err == nil {
		t.Errorf("Compile(invalid) error = nil, want compile error")
	}
}

func TestRule_EvalNonBoolean(t *testing.T) {
	rule, err := Compile("item.score")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := rule.Eval(core.NewItem("c1"), nil); err == nil {
		t.Errorf("Eval(non-boolean) error = nil, want error")
	}
}

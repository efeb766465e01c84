package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/feedkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Rule 是编译好的候选过滤表达式，使用 CEL (Common Expression Language)。
// 编译一次、多次求值，线程安全。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.reason == "freshness" / label.candidate_source != null
//   - 数值：item.score > 0.7
//   - 逻辑：label.reason == "followed" && item.score > 0.8
//   - 包含：label.candidate_source.contains("personalized")
//
// 注意：has(label.key) 可以用 label.key != null 替代
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译 DSL 表达式。空表达式返回 nil Rule（恒为 true）。
func Compile(expr string) (*Rule, error) {
	if expr == "" {
		return nil, nil
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &Rule{expr: expr, prg: prg}, nil
}

// Eval 对单个候选求值，返回布尔结果。
func (r *Rule) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if r == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 会报错；应使用 label.key != null 检查存在性
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	for k, v := range item.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
		// label.reason 直接返回 value，兼容简写
		labelAccessor[k] = v.Value
	}

	itemInput := map[string]interface{}{
		"id":     item.ID,
		"score":  item.Score,
		"meta":   item.Meta,
		"labels": labels,
	}

	rctxInput := map[string]interface{}{}
	if rctx != nil {
		rctxInput["user_id"] = rctx.UserID
		rctxInput["scene"] = rctx.Scene
		rctxInput["params"] = rctx.Params
	}

	return map[string]interface{}{
		"item":  itemInput,
		"label": labelAccessor,
		"rctx":  rctxInput,
	}
}

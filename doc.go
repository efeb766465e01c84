// Package feedkit 是一个信息流推荐工具包（Feed Recommender Kit）。
//
// 设计要点：
// - 批处理与在线分离: mf/batch 离线训练因子，feed/filter 在线组装信息流
// - Pipeline-first: 服务链路通过 Node 串联（Candidate → Filter → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package feedkit

import "github.com/rushteam/feedkit/pipeline"

// 轻量 facade：便于用户直接 import "feedkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindCandidate   = pipeline.KindCandidate
	KindFilter      = pipeline.KindFilter
	KindPostProcess = pipeline.KindPostProcess
)

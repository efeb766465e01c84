package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是批任务的配置（支持 YAML）。
type Config struct {
	// LatentFeatures 隐向量维度 k，默认 5
	LatentFeatures int `yaml:"latent_features"`

	// Iterations 训练轮数；批任务默认 2000（库默认是 5000，
	// 全量重算一小时跑一次，轮数折半换时延）
	Iterations int `yaml:"iterations"`

	// LearningRate 学习率，默认 0.0002
	LearningRate float64 `yaml:"learning_rate"`

	// Regularization 正则化系数，默认 0.02
	Regularization float64 `yaml:"regularization"`

	// SyntheticZeros 每行/每列的合成零数量，默认 10
	SyntheticZeros int `yaml:"synthetic_zeros"`

	// MaxConcurrent 信号拉取并发数，默认 8
	MaxConcurrent int `yaml:"max_concurrent"`

	// BudgetSeconds 墙钟预算（秒）；>0 时超时后安全停止，
	// 用当前轮的隐向量落库
	BudgetSeconds int `yaml:"budget_seconds"`

	// DivergenceLimit 损失连续上升多少轮视为发散并中止；0 关闭
	DivergenceLimit int `yaml:"divergence_limit"`

	// LossThreshold 早停阈值；0 关闭
	LossThreshold float64 `yaml:"loss_threshold"`
}

// DefaultConfig 返回批任务默认配置。
func DefaultConfig() Config {
	return Config{
		Iterations: 2000,
	}
}

// LoadConfig 从 YAML 文件加载批任务配置，未设置的字段保持默认值。
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Package logging 构建命令行使用的zap日志
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 生产环境配置,日志写到stderr,verbose时输出调试日志
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

package recruit

import (
	"context"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"go.uber.org/zap"
)

// DoGreeting 向当前候选人会话中index处的候选人打招呼
// 按钮已禁用时只记录disabled,不会点击
func (e *engine) DoGreeting(ctx context.Context, sessionID int64, index int) (entity.Geek, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	geek, button, err := e.session.lookup(sessionID, KindCandidates, index)
	if err != nil {
		return entity.Geek{}, err
	}
	if err := e.pacer.Pause(ctx, e.pacing.GreetBefore); err != nil {
		return entity.Geek{}, err
	}

	if err := button.ScrollIntoCenter(); err != nil {
		e.logger.Warn("滚动到按钮失败", zap.Int("index", index), zap.Error(err))
	}
	if err := e.pacer.Pause(ctx, e.pacing.GreetFocus); err != nil {
		return entity.Geek{}, err
	}
	if err := button.Focus(); err != nil {
		e.logger.Warn("聚焦按钮失败", zap.Int("index", index), zap.Error(err))
	}

	geek.Status = e.greet(index, geek.Name, button)
	return *geek, nil
}

func (e *engine) greet(index int, name string, button dom.Element) string {
	fields := []zap.Field{zap.Int("index", index), zap.String("name", name)}

	isButton, err := button.IsButton()
	if err != nil || !isButton {
		e.logger.Warn("候选人的元素不是按钮", append(fields, zap.Error(err))...)
		return entity.StatusFailed
	}
	disabled, err := button.Disabled()
	if err != nil {
		e.logger.Warn("读取按钮状态失败", append(fields, zap.Error(err))...)
		return entity.StatusFailed
	}
	if disabled {
		e.logger.Info("候选人的打招呼按钮已不可用", fields...)
		return entity.StatusDisabled
	}
	if err := button.Click(); err != nil {
		e.logger.Warn("点击打招呼按钮失败", append(fields, zap.Error(err))...)
		return entity.StatusFailed
	}
	e.logger.Info("已向候选人打招呼", fields...)
	return entity.StatusGreeted
}

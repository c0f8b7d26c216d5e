package controller

import (
	"context"
	"sync/atomic"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/protocol"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"go.uber.org/zap"
)

// Recorder 记录处理过的实体,例如写入台账
type Recorder interface {
	Record(ctx context.Context, kind recruit.SessionKind, geeks ...entity.Geek) error
}

// DownloadSummary 批量下载简历的结果
type DownloadSummary struct {
	Users     []entity.Geek `json:"users"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Stopped   bool          `json:"stopped"`
}

// Sequencer 逐个向引擎发送动作请求,任一实体失败不影响其余实体
type Sequencer struct {
	messenger     protocol.Messenger
	pacer         recruit.Pacer
	recorder      Recorder
	downloadDelay param.Delay
	logger        *zap.Logger
	stop          atomic.Bool
}

func NewSequencer(messenger protocol.Messenger, pacer recruit.Pacer, recorder Recorder, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		messenger:     messenger,
		pacer:         pacer,
		recorder:      recorder,
		downloadDelay: param.Between(1000, 1000),
		logger:        logger,
	}
}

// Stop 请求在下一个实体之前停止,正在执行的动作不会被打断
func (s *Sequencer) Stop() {
	s.stop.Store(true)
}

// Reset 清除停止标记,每次运行开始时调用一次,运行中途发出的Stop保持有效
func (s *Sequencer) Reset() {
	s.stop.Store(false)
}

func (s *Sequencer) stopped(ctx context.Context) bool {
	return s.stop.Load() || ctx.Err() != nil
}

type greetRun struct {
	geeks     []entity.Geek
	processed int
	stopped   bool
}

// Greet 依次向geeks中的候选人打招呼,每处理完一个调用onUpdate
func (s *Sequencer) Greet(ctx context.Context, tabID string, sessionID int64, geeks []entity.Geek, onUpdate func([]entity.Geek)) []entity.Geek {
	return s.greet(ctx, tabID, sessionID, geeks, onUpdate).geeks
}

func (s *Sequencer) greet(ctx context.Context, tabID string, sessionID int64, geeks []entity.Geek, onUpdate func([]entity.Geek)) greetRun {
	run := greetRun{geeks: entity.Clone(geeks)}
	for i := range run.geeks {
		if s.stopped(ctx) {
			run.stopped = true
			s.logger.Info("已停止打招呼", zap.Int("processed", run.processed), zap.Int("total", len(run.geeks)))
			break
		}
		resp, err := s.messenger.SendMessage(ctx, tabID, protocol.At(protocol.DoGreeting, sessionID, i))
		switch {
		case err != nil:
			s.logger.Warn("发送打招呼请求失败", zap.Int("index", i), zap.Error(err))
			run.geeks[i].Status = entity.StatusFailed
		case !resp.Success || resp.Geek == nil:
			s.logger.Warn("打招呼失败", zap.Int("index", i), zap.String("error", resp.Error))
			run.geeks[i].Status = entity.StatusFailed
		default:
			run.geeks[i] = *resp.Geek
		}
		run.processed++
		s.record(ctx, recruit.KindCandidates, run.geeks[i])
		if onUpdate != nil {
			onUpdate(entity.Clone(run.geeks))
		}
	}
	return run
}

// DownloadResumes 依次为聊天用户执行简历流程,每个用户之后固定等待1秒
func (s *Sequencer) DownloadResumes(ctx context.Context, tabID string, sessionID int64, users []entity.Geek, onUpdate func([]entity.Geek)) DownloadSummary {
	summary := DownloadSummary{Users: entity.Clone(users)}
	for i := range summary.Users {
		if s.stopped(ctx) {
			summary.Stopped = true
			s.logger.Info("已停止下载简历", zap.Int("index", i), zap.Int("total", len(summary.Users)))
			break
		}
		resp, err := s.messenger.SendMessage(ctx, tabID, protocol.At(protocol.DoDownloadResume, sessionID, i))
		switch {
		case err != nil:
			s.logger.Warn("发送下载简历请求失败", zap.Int("index", i), zap.Error(err))
			summary.Users[i].Status = entity.StatusDownloadFailed
			summary.Failed++
		case !resp.Success:
			s.logger.Warn("下载简历失败", zap.Int("index", i), zap.String("error", resp.Error))
			summary.Users[i].Status = entity.StatusDownloadFailed
			summary.Failed++
		default:
			s.logger.Info("已处理聊天用户", zap.Int("index", i), zap.Any("phases", resp.Phases))
			summary.Users[i].Status = entity.StatusResumeDownloaded
			summary.Succeeded++
		}
		s.record(ctx, recruit.KindChatUsers, summary.Users[i])
		if onUpdate != nil {
			onUpdate(entity.Clone(summary.Users))
		}
		if err := s.pacer.Pause(ctx, s.downloadDelay); err != nil {
			summary.Stopped = i < len(summary.Users)-1
			break
		}
	}
	s.logger.Info("简历下载完成", zap.Int("succeeded", summary.Succeeded), zap.Int("failed", summary.Failed))
	return summary
}

func (s *Sequencer) record(ctx context.Context, kind recruit.SessionKind, geek entity.Geek) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, kind, geek); err != nil {
		s.logger.Warn("写入台账失败", zap.String("name", geek.Name), zap.Error(err))
	}
}

package recruit

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"go.uber.org/zap"
)

type PhaseStatus string

const (
	PhaseDone    PhaseStatus = "done"
	PhaseSkipped PhaseStatus = "skipped"
	PhaseFailed  PhaseStatus = "failed"
)

// 简历流程的阶段
const (
	PhaseSelect   = "select"
	PhaseRequest  = "request"
	PhaseOpen     = "open"
	PhaseDownload = "download"
	PhaseClose    = "close"
)

// RequestOutcome 请求阶段的分支结果
type RequestOutcome string

const (
	Accepted             RequestOutcome = "accepted"
	AcceptDisabled       RequestOutcome = "acceptDisabled"
	Requested            RequestOutcome = "requested"
	RequestedUnconfirmed RequestOutcome = "requestedUnconfirmed"
	RequestSkipped       RequestOutcome = "skipped"
)

type PhaseResult struct {
	Phase  string      `json:"phase"`
	Status PhaseStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// ResumeReport 一次简历流程中每个阶段的结果
type ResumeReport struct {
	Index  int           `json:"index"`
	Phases []PhaseResult `json:"phases"`
}

// Phase 按名称查找阶段结果
func (r ResumeReport) Phase(name string) (PhaseResult, bool) {
	for _, p := range r.Phases {
		if p.Phase == name {
			return p, true
		}
	}
	return PhaseResult{}, false
}

type phase struct {
	name string
	run  func(ctx context.Context) (PhaseStatus, string, error)
}

// DoDownloadResume 打开index处的聊天用户,依次执行请求、预览、下载、关闭
// 阶段内找不到元素时跳过该阶段,DOM错误记录为failed,不会中断后续阶段
func (e *engine) DoDownloadResume(ctx context.Context, sessionID int64, index int) (ResumeReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	geek, item, err := e.session.lookup(sessionID, KindChatUsers, index)
	if err != nil {
		return ResumeReport{}, err
	}
	e.logger.Info("开始处理聊天用户", zap.Int("index", index), zap.String("name", geek.Name))

	report := ResumeReport{Index: index}
	phases := []phase{
		{PhaseSelect, func(ctx context.Context) (PhaseStatus, string, error) { return e.selectItem(ctx, item) }},
		{PhaseRequest, e.requestResume},
		{PhaseOpen, e.openResume},
		{PhaseDownload, e.downloadResume},
		{PhaseClose, e.closeResume},
	}
	for i, p := range phases {
		if i > 1 {
			if err := e.pacer.Pause(ctx, e.pacing.BetweenPhases); err != nil {
				return report, err
			}
		}
		status, detail, err := p.run(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}
		if err != nil {
			e.logger.Warn("简历流程阶段失败", zap.Int("index", index), zap.String("phase", p.name), zap.Error(err))
			status, detail = PhaseFailed, err.Error()
		}
		report.Phases = append(report.Phases, PhaseResult{Phase: p.name, Status: status, Detail: detail})
	}
	e.logger.Info("简历流程完成", zap.Int("index", index), zap.Any("phases", report.Phases))
	return report, nil
}

func (e *engine) selectItem(ctx context.Context, item dom.Element) (PhaseStatus, string, error) {
	if err := item.ScrollIntoCenter(); err != nil {
		return PhaseFailed, "", fmt.Errorf("滚动到用户项失败: %w", err)
	}
	if err := e.pacer.Pause(ctx, e.pacing.ItemCenter); err != nil {
		return PhaseFailed, "", err
	}
	if err := item.Click(); err != nil {
		return PhaseFailed, "", fmt.Errorf("点击用户项失败: %w", err)
	}
	if err := e.pacer.Pause(ctx, e.pacing.ItemOpen); err != nil {
		return PhaseFailed, "", err
	}
	return PhaseDone, "", nil
}

func (e *engine) requestResume(ctx context.Context) (PhaseStatus, string, error) {
	outcome, err := e.requestOutcome(ctx)
	if err != nil {
		return PhaseFailed, "", err
	}
	e.logger.Info("简历请求结果", zap.String("outcome", string(outcome)))
	switch outcome {
	case Accepted, Requested, RequestedUnconfirmed:
		return PhaseDone, string(outcome), nil
	default:
		return PhaseSkipped, string(outcome), nil
	}
}

// requestOutcome 对方发来附件简历时点击同意,否则点击"求简历"并确认
func (e *engine) requestOutcome(ctx context.Context) (RequestOutcome, error) {
	messages, err := e.doc.QueryAll(param.MessageItem)
	if err != nil {
		return "", err
	}
	for _, msg := range messages {
		_, prompt, err := findContaining(msg, param.MessageCardTitle, param.AcceptPromptTexts...)
		if err != nil {
			return "", err
		}
		if !prompt {
			continue
		}
		accept, found, err := msg.Query(param.AcceptButton)
		if err != nil {
			return "", err
		}
		if !found {
			return RequestSkipped, nil
		}
		disabled, err := accept.HasClass(param.DisabledClass)
		if err != nil {
			return "", err
		}
		if disabled {
			return AcceptDisabled, nil
		}
		if err := accept.Click(); err != nil {
			return "", err
		}
		return Accepted, nil
	}

	request, found, err := findContaining(e.doc, param.OperateButton, param.RequestResumeText)
	if err != nil {
		return "", err
	}
	if !found {
		return RequestSkipped, nil
	}
	if err := request.Click(); err != nil {
		return "", err
	}
	if err := e.pacer.Pause(ctx, e.pacing.RequestConfirm); err != nil {
		return "", err
	}

	tooltip, found, err := e.doc.Query(param.ExchangeTooltip)
	if err != nil {
		return "", err
	}
	if !found {
		return RequestedUnconfirmed, nil
	}
	text, err := tooltip.Text()
	if err != nil {
		return "", err
	}
	if !containsAny(text, param.RequestConfirmTexts) {
		return RequestedUnconfirmed, nil
	}
	confirm, found, err := tooltip.Query(param.ConfirmButton)
	if err != nil {
		return "", err
	}
	if !found {
		return RequestedUnconfirmed, nil
	}
	confirmText, err := confirm.Text()
	if err != nil {
		return "", err
	}
	if !containsAny(confirmText, []string{param.ConfirmText}) {
		return RequestedUnconfirmed, nil
	}
	if err := confirm.Click(); err != nil {
		return "", err
	}
	return Requested, nil
}

func (e *engine) openResume(context.Context) (PhaseStatus, string, error) {
	messages, err := e.doc.QueryAll(param.MessageItem)
	if err != nil {
		return PhaseFailed, "", err
	}
	for _, msg := range messages {
		preview, found, err := findContaining(msg, param.CardButton, param.PreviewResumeText)
		if err != nil {
			return PhaseFailed, "", err
		}
		if !found {
			continue
		}
		if err := preview.Click(); err != nil {
			return PhaseFailed, "", err
		}
		return PhaseDone, "", nil
	}
	return PhaseSkipped, "未找到附件简历预览按钮", nil
}

func (e *engine) downloadResume(context.Context) (PhaseStatus, string, error) {
	buttons, found, err := e.doc.Query(param.AttachmentButtons)
	if err != nil {
		return PhaseFailed, "", err
	}
	if !found {
		return PhaseSkipped, "未找到附件简历操作栏", nil
	}
	popovers, err := buttons.QueryAll(param.AttachmentPopover)
	if err != nil {
		return PhaseFailed, "", err
	}
	if len(popovers) <= param.DownloadPopoverIdx {
		return PhaseSkipped, fmt.Sprintf("附件简历操作按钮只有 %d 个", len(popovers)), nil
	}
	span, found, err := popovers[param.DownloadPopoverIdx].Query("span")
	if err != nil {
		return PhaseFailed, "", err
	}
	if !found {
		return PhaseSkipped, "下载按钮缺少span", nil
	}
	if err := span.Click(); err != nil {
		return PhaseFailed, "", err
	}
	return PhaseDone, "", nil
}

func (e *engine) closeResume(context.Context) (PhaseStatus, string, error) {
	closeBtn, found, err := e.doc.Query(param.PopupClose)
	if err != nil {
		return PhaseFailed, "", err
	}
	if !found {
		return PhaseSkipped, "", nil
	}
	if err := closeBtn.Click(); err != nil {
		return PhaseFailed, "", err
	}
	return PhaseDone, "", nil
}

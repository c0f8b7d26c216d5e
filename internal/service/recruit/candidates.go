package recruit

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/filter"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"go.uber.org/zap"
)

// FilterGeeks 滚动推荐列表收集候选人卡片,按关键字筛选出可以打招呼的候选人
func (e *engine) FilterGeeks(ctx context.Context, filterKeywords string) (DiscoveryResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.pacer.Pause(ctx, e.pacing.DiscoveryInitial); err != nil {
		return DiscoveryResult{}, err
	}
	session := e.replaceSession(KindCandidates)

	cards, ok, err := e.scrollCandidates(ctx)
	if err != nil {
		return DiscoveryResult{}, err
	}
	if !ok {
		e.logger.Warn("未找到推荐候选人iframe")
		return e.result(NoScrollRoot), nil
	}

	keywords := filter.ParseKeywords(filterKeywords)
	for i, card := range cards {
		if session.Len() >= param.MaxCandidates {
			break
		}
		geek, button, ok, err := readCandidate(card, keywords)
		if err != nil {
			e.logger.Warn("读取候选人卡片失败,已跳过", zap.Int("index", i), zap.Error(err))
			continue
		}
		if ok {
			session.add(geek, button)
		}
	}
	e.logger.Info("候选人筛选完成",
		zap.Int("cards", len(cards)),
		zap.Int("matched", session.Len()),
		zap.Int64("session", session.ID))
	return e.result(Collected), nil
}

// scrollCandidates 反复将推荐iframe滚动到底部直到出现"没有更多了"、卡片数达到上限或滚动次数用尽
func (e *engine) scrollCandidates(ctx context.Context) ([]dom.Element, bool, error) {
	var cards []dom.Element
	for iterations := 0; ; {
		frame, found, err := e.doc.Frame(param.RecommendFrame)
		if err != nil {
			return nil, false, fmt.Errorf("定位推荐iframe失败: %w", err)
		}
		if !found {
			return nil, false, nil
		}
		height, err := frame.ScrollToBottom()
		if err != nil {
			return nil, false, fmt.Errorf("滚动推荐iframe失败: %w", err)
		}
		e.logger.Debug("已将iframe滚动到底部", zap.Int("height", height))

		if err := e.pacer.Pause(ctx, e.pacing.ScrollSettle); err != nil {
			return nil, false, err
		}
		cards, err = frame.QueryAll(param.CandidateCard)
		if err != nil {
			return nil, false, fmt.Errorf("读取候选人卡片失败: %w", err)
		}
		iterations++
		e.logger.Debug("找到候选人卡片", zap.Int("iteration", iterations), zap.Int("cards", len(cards)))

		if _, nomore, err := findContaining(frame, param.NoMore, param.NoMoreText); err != nil {
			return nil, false, err
		} else if nomore {
			break
		}
		if len(cards) >= param.MaxCandidates || iterations >= param.MaxScrollIterations {
			break
		}
	}
	return cards, true, nil
}

func readCandidate(card dom.Element, keywords []string) (entity.Geek, dom.Element, bool, error) {
	text, err := trimmedText(card)
	if err != nil || text == "" {
		return entity.Geek{}, nil, false, err
	}
	button, found, err := card.Query(param.GreetButton)
	if err != nil || !found {
		return entity.Geek{}, nil, false, err
	}
	buttonText, err := trimmedText(button)
	if err != nil || buttonText != param.GreetButtonText {
		return entity.Geek{}, nil, false, err
	}
	name, err := queryText(card, param.CandidateName)
	if err != nil {
		return entity.Geek{}, nil, false, err
	}
	if name == "" {
		name = param.UnknownName
	}
	matched := filter.MatchParsed(text, keywords)
	if len(matched) == 0 {
		return entity.Geek{}, nil, false, nil
	}
	return entity.Geek{
		Name:            name,
		Content:         text,
		MatchedKeywords: filter.Join(matched),
		Status:          entity.StatusPending,
	}, button, true, nil
}

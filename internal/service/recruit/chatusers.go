package recruit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/filter"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"go.uber.org/zap"
)

// FilterChatUsers 切换到未读列表,收集有新消息且命中关键字的聊天用户
// 关键字为空时包含全部有新消息的用户
func (e *engine) FilterChatUsers(ctx context.Context, filterKeywords string) (DiscoveryResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.pacer.Pause(ctx, e.pacing.ChatInitial); err != nil {
		return DiscoveryResult{}, err
	}
	session := e.replaceSession(KindChatUsers)

	e.switchUnreadFilter()
	if err := e.pacer.Pause(ctx, e.pacing.ChatFilterSettle); err != nil {
		return DiscoveryResult{}, err
	}

	items, err := e.doc.QueryAll(param.ChatItem)
	if err != nil {
		return DiscoveryResult{}, fmt.Errorf("读取聊天用户列表失败: %w", err)
	}
	e.logger.Debug("找到聊天用户项", zap.Int("items", len(items)))

	keywords := filter.ParseKeywords(filterKeywords)
	for i, item := range items {
		geek, ok, err := readChatUser(item, i, keywords)
		if err != nil {
			e.logger.Warn("读取聊天用户失败,已跳过", zap.Int("index", i), zap.Error(err))
			continue
		}
		if ok {
			session.add(geek, item)
		}
	}
	e.logger.Info("聊天用户筛选完成",
		zap.Int("items", len(items)),
		zap.Int("matched", session.Len()),
		zap.Int64("session", session.ID))
	return e.result(Collected), nil
}

// switchUnreadFilter 点击"未读"筛选,找不到时保持当前列表
func (e *engine) switchUnreadFilter() {
	bar, found, err := e.doc.Query(param.ChatFilterBar)
	if err != nil || !found {
		e.logger.Debug("未找到聊天筛选栏", zap.Error(err))
		return
	}
	unread, found, err := findContaining(bar, param.ChatFilterItem, param.UnreadText)
	if err != nil || !found {
		e.logger.Debug("未找到未读筛选", zap.Error(err))
		return
	}
	if err := unread.Click(); err != nil {
		e.logger.Warn("切换未读筛选失败", zap.Error(err))
	}
}

func readChatUser(item dom.Element, index int, keywords []string) (entity.Geek, bool, error) {
	badge, err := queryText(item, param.ChatBadge)
	if err != nil {
		return entity.Geek{}, false, err
	}
	count := leadingInt(badge)
	if count <= 0 {
		return entity.Geek{}, false, nil
	}

	name, err := titleOrText(item, param.ChatName)
	if err != nil {
		return entity.Geek{}, false, err
	}
	if name == "" {
		name = fmt.Sprintf("%s%d", param.ChatNamePrefix, index+1)
	}
	job, err := titleOrText(item, param.ChatJob)
	if err != nil {
		return entity.Geek{}, false, err
	}
	message, err := queryText(item, param.ChatMessage)
	if err != nil {
		return entity.Geek{}, false, err
	}
	sentAt, err := queryText(item, param.ChatTime)
	if err != nil {
		return entity.Geek{}, false, err
	}

	matched := filter.MatchParsed(strings.Join([]string{name, job, message}, " "), keywords)
	if len(keywords) > 0 && len(matched) == 0 {
		return entity.Geek{}, false, nil
	}

	content := job
	if message != "" {
		content += " - " + message
	}
	if sentAt != "" {
		content += " (" + sentAt + ")"
	}
	return entity.Geek{
		Name:            name,
		Content:         content,
		MatchedKeywords: filter.Join(matched),
		Status:          entity.NewMessagesStatus(count),
		MessageCount:    count,
	}, true, nil
}

// leadingInt 解析开头的数字,如"3"或"99+",无数字时返回0
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

package entity

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
)

// 实体状态
const (
	StatusPending          = "pending"
	StatusGreeted          = "greeted"
	StatusDisabled         = "disabled"
	StatusFailed           = "failed"
	StatusResumeDownloaded = "resume downloaded"
	StatusDownloadFailed   = "download failed"
)

// Geek 一次发现过程中得到的候选人或聊天用户
// 除Status外,其余字段都是发现时DOM快照中的事实
type Geek struct {
	Name            string `json:"name"`
	Content         string `json:"content"`
	MatchedKeywords string `json:"matchedKeywords,omitempty"`
	Status          string `json:"status,omitempty"`
	MessageCount    int    `json:"messageCount,omitempty"`
}

// NewMessagesStatus 聊天用户的未读消息状态文案
func NewMessagesStatus(count int) string {
	return fmt.Sprintf("%d new messages", count)
}

// ToDocument 转换为台账文档,Kind与ProcessedAt由调用方补充
func (g *Geek) ToDocument() *model.GeekDoc {
	sum := sha1.Sum([]byte(g.Name + "\x00" + g.Content))
	return &model.GeekDoc{
		ID:              hex.EncodeToString(sum[:]),
		Name:            g.Name,
		Content:         g.Content,
		MatchedKeywords: g.MatchedKeywords,
		Status:          g.Status,
		MessageCount:    g.MessageCount,
		ProcessedAt:     time.Now(),
	}
}

// Clone 返回切片的拷贝,用于向调用方推送进度时避免共享底层数组
func Clone(geeks []Geek) []Geek {
	if geeks == nil {
		return nil
	}
	out := make([]Geek, len(geeks))
	copy(out, geeks)
	return out
}

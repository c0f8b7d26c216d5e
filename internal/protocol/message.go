// Package protocol 定义控制端与页面引擎之间的请求/响应消息
package protocol

import (
	"context"
	"encoding/json"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
)

type Action string

const (
	CheckLoginStatus Action = "checkLoginStatus"
	FilterGeeks      Action = "filterGeeks"
	DoGreeting       Action = "doGreeting"
	FilterChatUsers  Action = "filterChatUsers"
	DoDownloadResume Action = "doDownloadResume"
)

type Request struct {
	Action         Action `json:"action"`
	Index          *int   `json:"index,omitempty"`
	FilterKeywords string `json:"filterKeywords,omitempty"`
	// Session 发现会话号,0表示使用引擎当前会话
	Session int64 `json:"session,omitempty"`
}

// At 返回带索引的请求
func At(action Action, session int64, index int) Request {
	return Request{Action: action, Index: &index, Session: session}
}

// Response 各动作响应字段的并集
type Response struct {
	IsLoggedIn bool                  `json:"isLoggedIn"`
	Data       json.RawMessage       `json:"data,omitempty"`
	Error      string                `json:"error,omitempty"`
	Geeks      []entity.Geek         `json:"geeks,omitempty"`
	Users      []entity.Geek         `json:"users,omitempty"`
	Session    int64                 `json:"session,omitempty"`
	Outcome    recruit.Outcome       `json:"outcome,omitempty"`
	Success    bool                  `json:"success"`
	Geek       *entity.Geek          `json:"geek,omitempty"`
	Index      *int                  `json:"index,omitempty"`
	Phases     []recruit.PhaseResult `json:"phases,omitempty"`
}

// Messenger 向指定标签页的引擎发送一条请求
// 返回的error只表示传输失败,引擎侧错误体现在Response.Error中
type Messenger interface {
	SendMessage(ctx context.Context, tabID string, req Request) (Response, error)
}

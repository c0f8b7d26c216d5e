package recruit

import (
	"errors"
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom"
)

var (
	ErrStaleSession     = errors.New("发现会话已过期")
	ErrIndexOutOfRange  = errors.New("索引超出范围")
	ErrWrongSessionKind = errors.New("会话类型与操作不匹配")
)

type SessionKind string

const (
	KindCandidates SessionKind = "candidates"
	KindChatUsers  SessionKind = "chatUsers"
)

// Outcome 一次发现的结果类型
type Outcome string

const (
	Collected Outcome = "collected"
	// NoScrollRoot 未找到可滚动的推荐iframe
	NoScrollRoot Outcome = "noScrollRoot"
)

// DiscoverySession 一次发现得到的实体与页面元素句柄,Geeks[i]与handles[i]指向同一元素
type DiscoverySession struct {
	ID      int64
	Kind    SessionKind
	Geeks   []entity.Geek
	handles []dom.Element
}

func (s *DiscoverySession) add(geek entity.Geek, handle dom.Element) {
	s.Geeks = append(s.Geeks, geek)
	s.handles = append(s.handles, handle)
}

func (s *DiscoverySession) Len() int {
	return len(s.Geeks)
}

// lookup 校验请求并返回index处的实体指针与句柄,id为0表示当前会话
func (s *DiscoverySession) lookup(id int64, kind SessionKind, index int) (*entity.Geek, dom.Element, error) {
	if id != 0 && id != s.ID {
		return nil, nil, fmt.Errorf("%w: 请求 %d, 当前 %d", ErrStaleSession, id, s.ID)
	}
	if index < 0 || index >= len(s.Geeks) {
		return nil, nil, fmt.Errorf("%w: 索引 %d, 共 %d 个", ErrIndexOutOfRange, index, len(s.Geeks))
	}
	if s.Kind != kind {
		return nil, nil, fmt.Errorf("%w: 会话为 %s, 操作需要 %s", ErrWrongSessionKind, s.Kind, kind)
	}
	return &s.Geeks[index], s.handles[index], nil
}

// DiscoveryResult 发现操作返回给调用方的快照
type DiscoveryResult struct {
	Session int64         `json:"session"`
	Kind    SessionKind   `json:"kind"`
	Outcome Outcome       `json:"outcome"`
	Geeks   []entity.Geek `json:"geeks"`
}

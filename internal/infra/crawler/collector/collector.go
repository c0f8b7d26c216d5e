package collector

import (
	"context"
	"encoding/json"
	"net/http"
)

// VipState 登录状态接口的返回
type VipState struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	ZpData  json.RawMessage `json:"zpData"`
}

// LoggedIn 接口返回code为0时表示已登录
func (s VipState) LoggedIn() bool {
	return s.Code == 0
}

// LoginProbe 携带浏览器标签页的cookie请求登录状态接口
type LoginProbe interface {
	Check(ctx context.Context, cookies []*http.Cookie) (VipState, error)
}

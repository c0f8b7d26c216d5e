package protocol

import (
	"context"
	"errors"
	"fmt"

	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
)

var (
	ErrUnknownAction = errors.New("未知的动作")
	ErrMissingIndex  = errors.New("缺少index参数")
)

func failure(err error) Response {
	return Response{Success: false, Error: err.Error()}
}

// Dispatch 在引擎上执行请求,引擎返回的错误转换为{success:false, error}响应
func Dispatch(ctx context.Context, engine recruit.Engine, req Request) Response {
	switch req.Action {
	case CheckLoginStatus:
		status := engine.CheckLoginStatus(ctx)
		return Response{IsLoggedIn: status.IsLoggedIn, Data: status.Data, Error: status.Error}

	case FilterGeeks:
		res, err := engine.FilterGeeks(ctx, req.FilterKeywords)
		if err != nil {
			return failure(err)
		}
		return Response{Geeks: res.Geeks, Session: res.Session, Outcome: res.Outcome}

	case FilterChatUsers:
		res, err := engine.FilterChatUsers(ctx, req.FilterKeywords)
		if err != nil {
			return failure(err)
		}
		return Response{Users: res.Geeks, Session: res.Session, Outcome: res.Outcome}

	case DoGreeting:
		if req.Index == nil {
			return failure(fmt.Errorf("%s: %w", req.Action, ErrMissingIndex))
		}
		geek, err := engine.DoGreeting(ctx, req.Session, *req.Index)
		if err != nil {
			return failure(err)
		}
		return Response{Success: true, Geek: &geek}

	case DoDownloadResume:
		if req.Index == nil {
			return failure(fmt.Errorf("%s: %w", req.Action, ErrMissingIndex))
		}
		report, err := engine.DoDownloadResume(ctx, req.Session, *req.Index)
		if err != nil {
			return failure(err)
		}
		index := report.Index
		return Response{Success: true, Index: &index, Phases: report.Phases}

	default:
		return failure(fmt.Errorf("%w: %q", ErrUnknownAction, req.Action))
	}
}

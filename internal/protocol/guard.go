package protocol

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"
)

var ErrActionInFlight = errors.New("已有请求正在执行")

// Guard 同一时间只允许一个请求在途,第二个并发请求直接被拒绝而不是排队
type Guard struct {
	sem  *semaphore.Weighted
	next Messenger
}

func NewGuard(next Messenger) *Guard {
	return &Guard{sem: semaphore.NewWeighted(1), next: next}
}

func (g *Guard) SendMessage(ctx context.Context, tabID string, req Request) (Response, error) {
	if !g.sem.TryAcquire(1) {
		return Response{}, ErrActionInFlight
	}
	defer g.sem.Release(1)
	return g.next.SendMessage(ctx, tabID, req)
}

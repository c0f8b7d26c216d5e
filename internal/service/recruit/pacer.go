package recruit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
)

// Pacer 模拟人工操作节奏的等待
type Pacer interface {
	// Pause 等待delay区间内的随机时长,ctx取消时提前返回ctx.Err()
	Pause(ctx context.Context, delay param.Delay) error
}

type randomPacer struct {
	mu        sync.Mutex
	localRand *rand.Rand
}

func InitRandomPacer() Pacer {
	return &randomPacer{
		localRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *randomPacer) Pause(ctx context.Context, delay param.Delay) error {
	d := delay.Min
	if span := delay.Max - delay.Min; span > 0 {
		p.mu.Lock()
		d += time.Duration(p.localRand.Int63n(int64(span) + 1))
		p.mu.Unlock()
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

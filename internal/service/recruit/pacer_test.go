package recruit

import (
	"context"
	"testing"
	"time"

	"github.com/LouYuanbo1/recruitagent/internal/service/recruit/param"
	"github.com/stretchr/testify/assert"
)

func TestRandomPacer(t *testing.T) {
	p := InitRandomPacer()

	start := time.Now()
	assert.NoError(t, p.Pause(context.Background(), param.Between(5, 15)))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	assert.NoError(t, p.Pause(context.Background(), param.Delay{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start = time.Now()
	assert.ErrorIs(t, p.Pause(ctx, param.Between(10_000, 20_000)), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

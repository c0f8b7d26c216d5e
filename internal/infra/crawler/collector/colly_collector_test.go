package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LouYuanbo1/recruitagent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProbe(t *testing.T, handler http.HandlerFunc) LoginProbe {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg, err := config.ParseConfig([]byte(`{}`))
	require.NoError(t, err)
	cfg.Boss.LoginStateURL = srv.URL + "/wapi/zpblock/vip/state"
	return InitCollyProbe(cfg, zap.NewNop())
}

func TestCollyProbe(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantLogged bool
		wantErr    bool
	}{
		{
			name: "session cookie present",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if c, err := r.Cookie("wt2"); err == nil && c.Value == "token" {
					_, _ = w.Write([]byte(`{"code":0,"message":"Success","zpData":{"vip":false}}`))
					return
				}
				_, _ = w.Write([]byte(`{"code":7,"message":"当前登录状态已失效"}`))
			},
			wantLogged: true,
		},
		{
			name: "not logged in",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code":7,"message":"当前登录状态已失效"}`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := newProbe(t, tt.handler)
			cookies := []*http.Cookie{{Name: "wt2", Value: "token"}}
			if !tt.wantLogged {
				cookies = nil
			}
			state, err := probe.Check(context.Background(), cookies)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLogged, state.LoggedIn())
		})
	}
}

func TestCollyProbeCancelled(t *testing.T) {
	probe := newProbe(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("不应发出请求")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := probe.Check(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

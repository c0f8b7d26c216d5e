package protocol

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/LouYuanbo1/recruitagent/internal/domain/entity"
	"github.com/LouYuanbo1/recruitagent/internal/service/recruit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	geeks     []entity.Geek
	users     []entity.Geek
	err       error
	lastSess  int64
	lastIdx   int
	loggedOut bool
}

func (f *fakeEngine) CheckLoginStatus(context.Context) recruit.LoginStatus {
	if f.loggedOut {
		return recruit.LoginStatus{}
	}
	return recruit.LoginStatus{IsLoggedIn: true, Data: json.RawMessage(`{"vip":false}`)}
}

func (f *fakeEngine) FilterGeeks(_ context.Context, kw string) (recruit.DiscoveryResult, error) {
	return recruit.DiscoveryResult{Session: 3, Kind: recruit.KindCandidates, Outcome: recruit.Collected, Geeks: f.geeks}, f.err
}

func (f *fakeEngine) FilterChatUsers(_ context.Context, kw string) (recruit.DiscoveryResult, error) {
	return recruit.DiscoveryResult{Session: 4, Kind: recruit.KindChatUsers, Outcome: recruit.Collected, Geeks: f.users}, f.err
}

func (f *fakeEngine) DoGreeting(_ context.Context, session int64, index int) (entity.Geek, error) {
	f.lastSess, f.lastIdx = session, index
	if f.err != nil {
		return entity.Geek{}, f.err
	}
	g := f.geeks[index]
	g.Status = entity.StatusGreeted
	return g, nil
}

func (f *fakeEngine) DoDownloadResume(_ context.Context, session int64, index int) (recruit.ResumeReport, error) {
	f.lastSess, f.lastIdx = session, index
	if f.err != nil {
		return recruit.ResumeReport{}, f.err
	}
	return recruit.ResumeReport{Index: index, Phases: []recruit.PhaseResult{{Phase: recruit.PhaseSelect, Status: recruit.PhaseDone}}}, nil
}

func TestDispatch(t *testing.T) {
	geeks := []entity.Geek{{Name: "张三", Status: entity.StatusPending}}
	users := []entity.Geek{{Name: "李四", MessageCount: 2}}

	tests := []struct {
		name   string
		engine *fakeEngine
		req    Request
		check  func(t *testing.T, resp Response, f *fakeEngine)
	}{
		{
			name:   "login status",
			engine: &fakeEngine{},
			req:    Request{Action: CheckLoginStatus},
			check: func(t *testing.T, resp Response, _ *fakeEngine) {
				assert.True(t, resp.IsLoggedIn)
				assert.JSONEq(t, `{"vip":false}`, string(resp.Data))
			},
		},
		{
			name:   "filter geeks",
			engine: &fakeEngine{geeks: geeks},
			req:    Request{Action: FilterGeeks, FilterKeywords: "java"},
			check: func(t *testing.T, resp Response, _ *fakeEngine) {
				assert.Equal(t, geeks, resp.Geeks)
				assert.Equal(t, int64(3), resp.Session)
				assert.Equal(t, recruit.Collected, resp.Outcome)
			},
		},
		{
			name:   "filter chat users",
			engine: &fakeEngine{users: users},
			req:    Request{Action: FilterChatUsers},
			check: func(t *testing.T, resp Response, _ *fakeEngine) {
				assert.Equal(t, users, resp.Users)
				assert.Equal(t, int64(4), resp.Session)
			},
		},
		{
			name:   "greeting",
			engine: &fakeEngine{geeks: geeks},
			req:    At(DoGreeting, 3, 0),
			check: func(t *testing.T, resp Response, f *fakeEngine) {
				require.True(t, resp.Success)
				assert.Equal(t, entity.StatusGreeted, resp.Geek.Status)
				assert.Equal(t, int64(3), f.lastSess)
			},
		},
		{
			name:   "greeting engine error",
			engine: &fakeEngine{geeks: geeks, err: recruit.ErrStaleSession},
			req:    At(DoGreeting, 2, 0),
			check: func(t *testing.T, resp Response, _ *fakeEngine) {
				assert.False(t, resp.Success)
				assert.Equal(t, recruit.ErrStaleSession.Error(), resp.Error)
			},
		},
		{
			name:   "greeting without index",
			engine: &fakeEngine{geeks: geeks},
			req:    Request{Action: DoGreeting},
			check: func(t *testing.T, resp Response, _ *fakeEngine) {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, ErrMissingIndex.Error())
			},
		},
		{
			name:   "download resume",
			engine: &fakeEngine{},
			req:    At(DoDownloadResume, 4, 5),
			check: func(t *testing.T, resp Response, f *fakeEngine) {
				require.True(t, resp.Success)
				require.NotNil(t, resp.Index)
				assert.Equal(t, 5, *resp.Index)
				assert.Len(t, resp.Phases, 1)
				assert.Equal(t, 5, f.lastIdx)
			},
		},
		{
			name:   "unknown action",
			engine: &fakeEngine{},
			req:    Request{Action: "doDance"},
			check: func(t *testing.T, resp Response, _ *fakeEngine) {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, ErrUnknownAction.Error())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Dispatch(context.Background(), tt.engine, tt.req)
			tt.check(t, resp, tt.engine)
		})
	}
}

func TestNegativeResponseShape(t *testing.T) {
	tests := []struct {
		name   string
		engine *fakeEngine
		req    Request
		want   map[string]any
	}{
		{
			name:   "failed action",
			engine: &fakeEngine{},
			req:    Request{Action: "x"},
			want: map[string]any{
				"error":      ErrUnknownAction.Error() + `: "x"`,
				"success":    false,
				"isLoggedIn": false,
			},
		},
		{
			name:   "logged out",
			engine: &fakeEngine{loggedOut: true},
			req:    Request{Action: CheckLoginStatus},
			want: map[string]any{
				"success":    false,
				"isLoggedIn": false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Dispatch(context.Background(), tt.engine, tt.req)
			raw, err := json.Marshal(resp)
			require.NoError(t, err)

			var m map[string]any
			require.NoError(t, json.Unmarshal(raw, &m))
			assert.Equal(t, tt.want, m)
		})
	}
}

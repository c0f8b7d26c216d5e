package recruit

import (
	"context"
	"fmt"
	"testing"

	"github.com/LouYuanbo1/recruitagent/internal/infra/crawler/dom/domtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatItem(id, badge, nameAttr, nameText, job, msg, sentAt string) string {
	badgeHTML := ""
	if badge != "" {
		badgeHTML = fmt.Sprintf(`<div class="badge-count"><span>%s</span></div>`, badge)
	}
	return fmt.Sprintf(`<div class="geek-item" id="%s">%s<span class="geek-name" %s>%s</span>`+
		`<span class="source-job" title="%s">%s</span><span class="push-text">%s</span><span class="time">%s</span></div>`,
		id, badgeHTML, nameAttr, nameText, job, job, msg, sentAt)
}

const chatFilterBar = `<div class="chat-message-filter-left"><span id="all">全部</span><span id="unread">未读</span></div>`

func chatPage(items ...string) string {
	html := "<html><body>" + chatFilterBar
	for _, it := range items {
		html += it
	}
	return html + "</body></html>"
}

func TestFilterChatUsers(t *testing.T) {
	page := chatPage(
		chatItem("u0", "3", `title="张三"`, "张三", "Java工程师", "您好,简历已发", "10:21"),
		chatItem("u1", "0", `title="李四"`, "李四", "Java工程师", "在吗", "昨天"),
		chatItem("u2", "", "", "王五", "Java工程师", "在吗", ""),
		chatItem("u3", "99+", "", "", "Go工程师", "", ""),
		chatItem("u4", "1", "", "赵六", "产品经理", "后端转产品", "09:00"),
	)

	tests := []struct {
		name        string
		keywords    string
		wantNames   []string
		wantMatched []string
	}{
		{
			name:        "no keywords keeps every unread user",
			keywords:    "",
			wantNames:   []string{"张三", "用户4", "赵六"},
			wantMatched: []string{"", "", ""},
		},
		{
			name:        "keywords match name job or message",
			keywords:    "java, 后端",
			wantNames:   []string{"张三", "赵六"},
			wantMatched: []string{"java", "后端"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domtest.NewDocument(page)
			e, _ := newTestEngine(doc)

			res, err := e.FilterChatUsers(context.Background(), tt.keywords)
			require.NoError(t, err)
			assert.Equal(t, KindChatUsers, res.Kind)
			assert.Equal(t, []string{"#unread"}, doc.Clicks())

			var names, matched []string
			for _, g := range res.Geeks {
				names = append(names, g.Name)
				matched = append(matched, g.MatchedKeywords)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestFilterChatUsersEntityShape(t *testing.T) {
	doc := domtest.NewDocument(chatPage(
		chatItem("u0", "3", `title="张三"`, "张三(在线)", "Java工程师", "您好", "10:21"),
		chatItem("u1", "2", "", "李四", "Go工程师", "", ""),
	))
	e, _ := newTestEngine(doc)

	res, err := e.FilterChatUsers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Geeks, 2)

	assert.Equal(t, "张三", res.Geeks[0].Name)
	assert.Equal(t, "Java工程师 - 您好 (10:21)", res.Geeks[0].Content)
	assert.Equal(t, "3 new messages", res.Geeks[0].Status)
	assert.Equal(t, 3, res.Geeks[0].MessageCount)

	assert.Equal(t, "Go工程师", res.Geeks[1].Content)
	assert.Equal(t, "2 new messages", res.Geeks[1].Status)
}

func TestFilterChatUsersWithoutFilterBar(t *testing.T) {
	doc := domtest.NewDocument(`<html><body>` + chatItem("u0", "1", "", "张三", "Java", "hi", "") + `</body></html>`)
	e, _ := newTestEngine(doc)

	res, err := e.FilterChatUsers(context.Background(), "java")
	require.NoError(t, err)
	assert.Len(t, res.Geeks, 1)
	assert.Empty(t, doc.Clicks())
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"99+", 99},
		{"", 0},
		{"新", 0},
		{"12条", 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leadingInt(tt.in), tt.in)
	}
}

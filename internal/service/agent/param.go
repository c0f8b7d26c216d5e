package agent

import (
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

type PromptType string

const (
	PromptSearchMode PromptType = "searchMode"
	PromptChatMode   PromptType = "chatMode"
)

type Param struct {
	K             int
	NumCandidates int
	Prompt        map[PromptType]*prompt.DefaultChatTemplate
}

// DefaultParam 招聘助手的默认提示词
func DefaultParam() *Param {
	return &Param{
		K:             5,
		NumCandidates: 100,
		Prompt: map[PromptType]*prompt.DefaultChatTemplate{
			PromptSearchMode: prompt.FromMessages(schema.FString,
				schema.SystemMessage("你是一名招聘助手。下面是台账中与问题最相关的候选人与聊天用户记录,"+
					"kind为candidates表示推荐页候选人,chatUsers表示沟通页用户,status为处理结果。"+
					"请只依据这些记录回答,记录中没有的信息要明确说明。\n\n{referenceDocs}"),
				schema.UserMessage("{query}"),
			),
			PromptChatMode: prompt.FromMessages(schema.FString,
				schema.SystemMessage("你是一名招聘助手,帮助招聘者筛选候选人、撰写沟通话术。"+
					"如需查询已处理的候选人,请提示用户以\"查询模式\"或\"搜索模式\"开头提问。"),
				schema.UserMessage("{query}"),
			),
		},
	}
}

package llm

import "github.com/cloudwego/eino/components/model"

// LLM 对话模型
type LLM interface {
	Model() model.BaseChatModel
}

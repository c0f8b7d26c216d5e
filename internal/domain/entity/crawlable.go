package entity

import (
	"github.com/LouYuanbo1/recruitagent/internal/domain/model"
)

// Crawlable 可以写入台账的实体,D是对应的文档类型
type Crawlable[D model.Document] interface {
	*Geek
	ToDocument() D
}

package filter

import "strings"

// ParseKeywords 将逗号分隔的关键字串拆分为小写关键字列表,去除首尾空白并丢弃空项
func ParseKeywords(keywords string) []string {
	parts := strings.Split(keywords, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		k := strings.ToLower(strings.TrimSpace(part))
		if k == "" {
			continue
		}
		result = append(result, k)
	}
	return result
}

// Match 返回keywords中出现在text里的关键字,保持输入顺序
func Match(text, keywords string) []string {
	return MatchParsed(text, ParseKeywords(keywords))
}

// MatchParsed 与Match相同,但接收已经解析好的关键字,便于在循环中复用
func MatchParsed(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	matched := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			matched = append(matched, k)
		}
	}
	return matched
}

// Join 将命中的关键字拼成逗号分隔的字符串
func Join(matched []string) string {
	return strings.Join(matched, ",")
}

package host

import (
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// MatchPattern 判断rawURL是否匹配形如 *://*.zhipin.com/* 的标签页匹配模式
// scheme为*时匹配http与https,host以*.开头时同时匹配裸域名
func MatchPattern(pattern, rawURL string) bool {
	if pattern == "" || pattern == "<all_urls>" {
		return true
	}
	scheme, rest, ok := strings.Cut(pattern, "://")
	if !ok {
		return false
	}
	hostPattern, pathPattern, _ := strings.Cut(rest, "/")
	pathPattern = "/" + pathPattern

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch scheme {
	case "*":
		if u.Scheme != "http" && u.Scheme != "https" {
			return false
		}
	default:
		if u.Scheme != scheme {
			return false
		}
	}

	hostGlob, err := glob.Compile(hostPattern)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if !hostGlob.Match(host) && !(strings.HasPrefix(hostPattern, "*.") && host == hostPattern[2:]) {
		return false
	}

	pathGlob, err := glob.Compile(pathPattern)
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return pathGlob.Match(path)
}

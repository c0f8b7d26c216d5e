package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		url     string
		want    bool
	}{
		{"*://*.zhipin.com/*", "https://www.zhipin.com/web/chat/recommend", true},
		{"*://*.zhipin.com/*", "http://zhipin.com/", true},
		{"*://*.zhipin.com/*", "https://www.zhipin.com", true},
		{"*://*.zhipin.com/*", "https://evilzhipin.com/", false},
		{"*://*.zhipin.com/*", "ftp://www.zhipin.com/", false},
		{"*://*.zhipin.com/*", "chrome://newtab/", false},
		{"https://www.zhipin.com/web/chat/recommend*", "https://www.zhipin.com/web/chat/recommend?ka=x", true},
		{"https://www.zhipin.com/web/chat/recommend*", "https://www.zhipin.com/web/chat/index", false},
		{"", "about:blank", true},
		{"not a pattern", "https://www.zhipin.com/", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchPattern(tt.pattern, tt.url), "%s ~ %s", tt.pattern, tt.url)
	}
}

package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single", input: "Java", expected: []string{"java"}},
		{name: "trim and lower", input: " Java , GO ,后端", expected: []string{"java", "go", "后端"}},
		{name: "drop empties", input: ",, java,,", expected: []string{"java"}},
		{name: "empty", input: "", expected: []string{}},
		{name: "only separators", input: " , , ", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseKeywords(tt.input))
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords string
		expected []string
	}{
		{name: "one of two", text: "Java Spring backend", keywords: "java, go", expected: []string{"java"}},
		{name: "case insensitive", text: "GOLANG engineer", keywords: "golang", expected: []string{"golang"}},
		{name: "keeps input order", text: "go and java", keywords: "java,go", expected: []string{"java", "go"}},
		{name: "chinese", text: "资深后端工程师", keywords: "Java, 后端", expected: []string{"后端"}},
		{name: "no match", text: "Python only", keywords: "java, 后端", expected: []string{}},
		{name: "no keywords", text: "anything", keywords: "", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.text, tt.keywords))
		})
	}
}

func TestMatchNonEmptyIffSomeTokenIsSubstring(t *testing.T) {
	texts := []string{"Java developer", "后端 engineer", "", "Go", "python/django"}
	keywordSets := []string{"java", "go, rust", "后端", "", ",,", "DJANGO , x"}

	for _, text := range texts {
		for _, ks := range keywordSets {
			want := false
			for _, k := range ParseKeywords(ks) {
				if strings.Contains(strings.ToLower(text), k) {
					want = true
				}
			}
			assert.Equal(t, want, len(Match(text, ks)) > 0, "text=%q keywords=%q", text, ks)
		}
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "java,后端", Join([]string{"java", "后端"}))
	assert.Equal(t, "", Join(nil))
}

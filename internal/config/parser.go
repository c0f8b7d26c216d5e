package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "RECRUIT"

func setDefaults(v *viper.Viper) {
	v.SetDefault("driver", "rod")
	v.SetDefault("chromedp.life_time", 3600)
	v.SetDefault("colly.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	v.SetDefault("colly.ignore_robots_txt", true)
	v.SetDefault("colly.timeout_seconds", 10)
	v.SetDefault("boss.home_url", "https://www.zhipin.com/")
	v.SetDefault("boss.recommend_url", "https://www.zhipin.com/web/chat/recommend")
	v.SetDefault("boss.chat_url", "https://www.zhipin.com/web/chat/index")
	v.SetDefault("boss.login_state_url", "https://www.zhipin.com/wapi/zpblock/vip/state")
	v.SetDefault("boss.tab_url_pattern", "*://*.zhipin.com/*")
	v.SetDefault("boss.filter_keywords", "Java")
	v.SetDefault("boss.load_wait_seconds", 3)
	v.SetDefault("server.address", "127.0.0.1:8686")
	v.SetDefault("server.path", "/engine")
	v.SetDefault("embedder.host", "http://localhost")
	v.SetDefault("embedder.port", 11434)
	v.SetDefault("embedder.model", "nomic-embed-text")
	v.SetDefault("embedder.batch_size", 10)
	v.SetDefault("llm.host", "http://localhost")
	v.SetDefault("llm.port", 11434)
	v.SetDefault("llm.model", "qwen2.5:7b")
	v.SetDefault("api.max_tokens", 2000)
	v.SetDefault("api.temperature", 0.3)
}

func ParseConfig(byteConfig []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewReader(byteConfig)); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	for _, dir := range []*string{&cfg.Rod.UserDataDir, &cfg.Chromedp.UserDataDir} {
		if *dir == "" {
			continue
		}
		absPath, err := filepath.Abs(*dir)
		if err != nil {
			return nil, err
		}
		*dir = absPath
	}
	switch cfg.Driver {
	case "rod", "chromedp":
	default:
		return nil, fmt.Errorf("未知的浏览器驱动: %q", cfg.Driver)
	}
	return &cfg, nil
}

// ParseConfigFile 从文件读取配置,path为空时使用fallback(通常是go:embed嵌入的默认配置)
func ParseConfigFile(path string, fallback []byte) (*Config, error) {
	if path == "" {
		return ParseConfig(fallback)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return ParseConfig(data)
}

package config

// Config 应用配置,由ParseConfig从JSON解析,字段可以被RECRUIT_前缀的环境变量覆盖
// 例如 RECRUIT_BOSS_FILTER_KEYWORDS 覆盖 boss.filter_keywords
type Config struct {
	// Driver 浏览器驱动: rod 或 chromedp
	Driver string `json:"driver" mapstructure:"driver"`

	Rod struct {
		ControlURL           string `json:"control_url" mapstructure:"control_url"`
		UserDataDir          string `json:"user_data_dir" mapstructure:"user_data_dir"`
		Headless             bool   `json:"headless" mapstructure:"headless"`
		Stealth              bool   `json:"stealth" mapstructure:"stealth"`
		DisableBlinkFeatures string `json:"disable_blink_features" mapstructure:"disable_blink_features"`
		Incognito            bool   `json:"incognito" mapstructure:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage" mapstructure:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox" mapstructure:"no_sandbox"`
		UserAgent            string `json:"user_agent" mapstructure:"user_agent"`
		Leakless             bool   `json:"leakless" mapstructure:"leakless"`
		Bin                  string `json:"bin" mapstructure:"bin"`
	} `json:"rod" mapstructure:"rod"`

	Chromedp struct {
		LifeTime             int    `json:"life_time" mapstructure:"life_time"`
		UserDataDir          string `json:"user_data_dir" mapstructure:"user_data_dir"`
		Headless             bool   `json:"headless" mapstructure:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features" mapstructure:"disable_blink_features"`
		Incognito            bool   `json:"incognito" mapstructure:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage" mapstructure:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox" mapstructure:"no_sandbox"`
		UserAgent            string `json:"user_agent" mapstructure:"user_agent"`
	} `json:"chromedp" mapstructure:"chromedp"`

	// Colly 登录状态探测使用的HTTP客户端
	Colly struct {
		UserAgent       string `json:"user_agent" mapstructure:"user_agent"`
		IgnoreRobotsTxt bool   `json:"ignore_robots_txt" mapstructure:"ignore_robots_txt"`
		TimeoutSeconds  int    `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	} `json:"colly" mapstructure:"colly"`

	Boss struct {
		HomeURL         string `json:"home_url" mapstructure:"home_url"`
		RecommendURL    string `json:"recommend_url" mapstructure:"recommend_url"`
		ChatURL         string `json:"chat_url" mapstructure:"chat_url"`
		LoginStateURL   string `json:"login_state_url" mapstructure:"login_state_url"`
		TabURLPattern   string `json:"tab_url_pattern" mapstructure:"tab_url_pattern"`
		FilterKeywords  string `json:"filter_keywords" mapstructure:"filter_keywords"`
		LoadWaitSeconds int    `json:"load_wait_seconds" mapstructure:"load_wait_seconds"`
	} `json:"boss" mapstructure:"boss"`

	// Server 引擎进程的websocket监听配置
	Server struct {
		Address string `json:"address" mapstructure:"address"`
		Path    string `json:"path" mapstructure:"path"`
	} `json:"server" mapstructure:"server"`

	Elasticsearch struct {
		Username string `json:"username" mapstructure:"username"`
		Password string `json:"password" mapstructure:"password"`
		Address  string `json:"address" mapstructure:"address"`
	} `json:"elasticsearch" mapstructure:"elasticsearch"`

	Embedder struct {
		Host      string `json:"host" mapstructure:"host"`
		Port      int    `json:"port" mapstructure:"port"`
		Model     string `json:"model" mapstructure:"model"`
		BatchSize int    `json:"batch_size" mapstructure:"batch_size"`
	} `json:"embedder" mapstructure:"embedder"`

	LLM struct {
		Host  string `json:"host" mapstructure:"host"`
		Port  int    `json:"port" mapstructure:"port"`
		Model string `json:"model" mapstructure:"model"`
	} `json:"llm" mapstructure:"llm"`

	// API 简历评估使用的模型设置
	API struct {
		Key         string  `json:"key" mapstructure:"key"`
		BaseURL     string  `json:"base_url" mapstructure:"base_url"`
		Model       string  `json:"model" mapstructure:"model"`
		MaxTokens   int     `json:"max_tokens" mapstructure:"max_tokens"`
		Temperature float64 `json:"temperature" mapstructure:"temperature"`
	} `json:"api" mapstructure:"api"`
}

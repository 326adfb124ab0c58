package model

// Config is the complete baristacx configuration
type Config struct {
	Content ContentConfig `yaml:"content" mapstructure:"content"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Coach   CoachConfig   `yaml:"coach" mapstructure:"coach"`

	// Lexicon overrides the built-in phrase table per category (optional)
	Lexicon map[string][]string `yaml:"lexicon,omitempty" mapstructure:"lexicon"`
}

// ContentConfig locates reference data
type ContentConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // Empty = built-in content
}

// OutputConfig controls report export
type OutputConfig struct {
	Dir     string   `yaml:"dir" mapstructure:"dir"`
	Formats []string `yaml:"formats" mapstructure:"formats"` // json, md
	Verbose bool     `yaml:"verbose" mapstructure:"verbose"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// BatchConfig controls batch scoring
type BatchConfig struct {
	Workers         int     `yaml:"workers" mapstructure:"workers"`
	WritesPerSecond float64 `yaml:"writes_per_second" mapstructure:"writes_per_second"` // 0 = unthrottled
	Burst           int     `yaml:"burst" mapstructure:"burst"`
}

// CoachConfig configures the optional LLM coaching note.
// The note is written next to the report and never changes the score.
type CoachConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "" (disabled), "openai" or "ollama"
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:     "./cx-reports",
			Formats: []string{"json", "md"},
		},
		Log: LogConfig{
			Level: "info",
		},
		Batch: BatchConfig{
			Workers: 4,
			Burst:   1,
		},
		Coach: CoachConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 400,
		},
	}
}

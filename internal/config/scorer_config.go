package config

// ScorerConfig defines configuration for the external similarity scorer
type ScorerConfig struct {
	// Enabled toggles delegation to the classification collaborator.
	// When false every ambiguous pair uses the local fallback.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Endpoint is the HTTP endpoint of the classification provider.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	// Model names the completion model requested from the provider.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// MaxTokens bounds the provider's response length.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" validate:"omitempty,min=1"`
	// Temperature is passed through to the provider.
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	// PromptSectionChars truncates each section before embedding it in the prompt.
	PromptSectionChars int `json:"prompt_section_chars,omitempty" yaml:"prompt_section_chars,omitempty" validate:"omitempty,min=1"`
	// TimeoutSecs bounds a single provider call.
	TimeoutSecs int `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultScorerConfig creates default scorer configuration
func NewDefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Enabled:            false,
		Model:              DefaultScorerModel,
		MaxTokens:          DefaultScorerMaxTokens,
		Temperature:        DefaultScorerTemperature,
		PromptSectionChars: DefaultScorerPromptSectionChars,
		TimeoutSecs:        DefaultScorerTimeoutSecs,
	}
}

package scorer

import "context"

// CompletionRequest is the fixed request contract of the classification
// provider collaborator.
type CompletionRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// CompletionResponse is the fixed response contract of the classification
// provider collaborator.
type CompletionResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	LatencyMs    int64  `json:"latency_ms"`
}

// ClassificationProvider is the external text-classification collaborator.
// The scorer treats it as a black box: any error triggers the local fallback.
type ClassificationProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// UsageRecord reports resource usage of one provider invocation.
type UsageRecord struct {
	FirmID        string `json:"firm_id"`
	OperationType string `json:"operation_type"`
	ModelUsed     string `json:"model_used"`
	InputTokens   int    `json:"input_tokens"`
	OutputTokens  int    `json:"output_tokens"`
	LatencyMs     int64  `json:"latency_ms"`
}

// UsageTracker records provider usage fire-and-forget. Failures are logged
// by the caller and never block a diff result.
type UsageTracker interface {
	RecordUsage(ctx context.Context, record UsageRecord) error
}

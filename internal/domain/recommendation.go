package domain

// RecommendationSource tells where the recommendation text came from.
type RecommendationSource string

const (
	RecommendationSourceLLM    RecommendationSource = "llm"
	RecommendationSourceStatic RecommendationSource = "static"
)

// LLMRecommendationOutput contains the structured output from the LLM.
// @Description LLM-generated wellness recommendation.
type LLMRecommendationOutput struct {
	// Short summary of the metric's situation (1-2 sentences)
	Summary string `json:"summary" example:"Your activity has slipped below the healthy range over the past weeks."`
	// Concrete, non-medical actions (2-4 items)
	Actions []string `json:"actions" example:"[\"Take a 20-30 minute walk on most days\"]"`
}

// RecommendationContext is the context object sent to the LLM.
type RecommendationContext struct {
	Metric   MetricSeries `json:"metric"`
	Forecast MetricReport `json:"forecast"`
}

// Recommendation is the response for the recommendation endpoint.
// @Description AI recommendation for a metric.
type Recommendation struct {
	MetricID string               `json:"metric_id" example:"sleep"`
	Source   RecommendationSource `json:"source" example:"static"`
	// Recommendation content
	Recommendation LLMRecommendationOutput `json:"recommendation"`
	// Trace ID for feedback (optional, only present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

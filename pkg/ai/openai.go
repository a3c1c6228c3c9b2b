package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

var (
	mentorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mindstep",
		Subsystem: "ai",
		Name:      "mentor_duration_seconds",
		Help:      "Duration of AI mentor completion requests",
	}, []string{"model"})

	mentorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindstep",
		Subsystem: "ai",
		Name:      "mentor_failures_total",
		Help:      "Number of AI mentor completion failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI mentor backend.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIResponder implements Responder against the OpenAI chat completion API.
type OpenAIResponder struct {
	client   *openai.Client
	cfg      OpenAIConfig
	fallback Responder
	logger   zerolog.Logger
}

// NewOpenAIResponder builds a mentor backend using the provided configuration.
// Completion failures fall back to the canned keyword table so the mentor
// always answers.
func NewOpenAIResponder(cfg OpenAIConfig) (*OpenAIResponder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	client := openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey))

	return &OpenAIResponder{
		client:   client,
		cfg:      cfg,
		fallback: NewCannedResponder(),
		logger:   logger,
	}, nil
}

// Respond sends the question to OpenAI and returns the completion text.
func (r *OpenAIResponder) Respond(ctx context.Context, question string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       r.cfg.Model,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: mentorSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: question,
			},
		},
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, request)
	mentorDuration.WithLabelValues(r.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		mentorFailures.WithLabelValues(r.cfg.Model).Inc()
		r.logger.Warn().Err(err).Msg("openai completion failed, using canned reply")
		return r.fallback.Respond(ctx, question)
	}

	if len(resp.Choices) == 0 {
		mentorFailures.WithLabelValues(r.cfg.Model).Inc()
		return r.fallback.Respond(ctx, question)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return r.fallback.Respond(ctx, question)
	}

	return content, nil
}

func mentorSystemPrompt() string {
	return "You are a friendly career mentor for students. Give concise, actionable guidance on careers, learning resources" +
		" and skill development. Keep answers under 200 words."
}

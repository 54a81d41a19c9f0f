package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/pkg/config"
)

const (
	// DefaultAPIVersion is used when no api-version is configured
	DefaultAPIVersion = "2024-02-15-preview"

	analysisTemperature = 0.2
	analysisMaxTokens   = 4000
)

const systemPrompt = `You are an expert meeting analyzer. Extract the following information from meeting transcripts:
1. Decisions: Key decisions made during the meeting
2. Actions: Action items with clear owners and deadlines if mentioned
3. ImplicitDates: Any dates, deadlines, or timeframes mentioned
4. Risks: Potential risks, blockers, or concerns raised
5. OpenQuestions: Unanswered questions or topics requiring follow-up

Return ONLY valid JSON with this exact structure:
{
  "decisions": ["decision 1", "decision 2"],
  "actions": ["action 1", "action 2"],
  "implicitDates": ["date 1"],
  "risks": ["risk 1"],
  "openQuestions": ["question 1"]
}`

var (
	// ErrEmptyModelResponse is returned when a successful response carries no choices
	ErrEmptyModelResponse = errors.New("model returned no choices")
	// ErrMalformedModelOutput is returned when the recovered reply is not valid JSON
	ErrMalformedModelOutput = errors.New("model returned invalid JSON")
)

// UpstreamError is returned when the remote service answers with a non-success status.
// Body holds the error document as sent by the service, or the raw body when it
// could not be parsed.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("azure openai returned %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AzureOpenAIClient analyzes meeting transcripts with an Azure OpenAI chat deployment
type AzureOpenAIClient struct {
	client     *openai.Client
	deployment string
	logger     *zap.Logger
}

// NewAzureOpenAIClient creates a client from cfg. Endpoint, deployment and API key are required.
// httpClient may be nil; a client with cfg.Timeout is used then.
func NewAzureOpenAIClient(cfg *config.AzureOpenAIConfig, httpClient *http.Client, logger *zap.Logger) (*AzureOpenAIClient, error) {
	if cfg == nil {
		return nil, errors.New("azure openai config is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("azure openai endpoint not configured")
	}
	if cfg.Deployment == "" {
		return nil, errors.New("azure openai deployment not configured")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("azure openai api key not configured")
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	deployment := cfg.Deployment
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, strings.TrimRight(cfg.Endpoint, "/"))
	clientCfg.APIVersion = apiVersion
	clientCfg.HTTPClient = httpClient
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }

	return &AzureOpenAIClient{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: deployment,
		logger:     logger,
	}, nil
}

// Analyze sends the transcript to the model and returns the recovered JSON document verbatim
func (c *AzureOpenAIClient) Analyze(ctx context.Context, transcriptText string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Analyze this meeting transcript:\n\n%s", transcriptText)},
		},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	}

	c.logger.Info("calling azure openai", zap.String("deployment", c.deployment))

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if upstream := asUpstreamError(err); upstream != nil {
			c.logger.Error("azure openai api error",
				zap.Int("status_code", upstream.StatusCode),
				zap.String("body", upstream.Body),
			)
			return "", upstream
		}
		return "", fmt.Errorf("azure openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyModelResponse
	}

	resultText := ExtractJSON(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(resultText)) {
		c.logger.Error("failed to parse JSON from model response", zap.String("response", resultText))
		return "", ErrMalformedModelOutput
	}

	return resultText, nil
}

// asUpstreamError converts the client library's HTTP failures into an UpstreamError
func asUpstreamError(err error) *UpstreamError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Body: apiErrorBody(apiErr), Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Body: string(reqErr.Body), Err: err}
	}
	return nil
}

// apiErrorBody re-encodes the parsed error document so type and code survive
func apiErrorBody(apiErr *openai.APIError) string {
	body, err := json.Marshal(apiErr)
	if err != nil {
		return apiErr.Message
	}
	return string(body)
}

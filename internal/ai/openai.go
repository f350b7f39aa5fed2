package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultLocalBaseURL      = "http://localhost:1234/v1"
)

// OpenAIClient implements the Client interface against any
// OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenRouterClient creates a client for the OpenRouter API.
// The API key comes from OPENROUTER_API_KEY or OPENAI_API_KEY.
func NewOpenRouterClient(model, baseURL string) (*OpenAIClient, error) {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY is not set")
	}

	return newOpenAIClient(model, baseURL, apiKey)
}

// NewLocalClient creates a client for a local OpenAI-compatible server
// such as LM Studio or Ollama's compatibility endpoint. Local servers
// usually ignore the API key but the SDK requires one.
func NewLocalClient(model, baseURL string) (*OpenAIClient, error) {
	if baseURL == "" {
		baseURL = defaultLocalBaseURL
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = "local"
	}

	return newOpenAIClient(model, baseURL, apiKey)
}

func newOpenAIClient(model, baseURL, apiKey string) (*OpenAIClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("model is required")
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIClient{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends messages to the LLM and returns the response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			openaiMessages[i] = openai.SystemMessage(msg.Content)
		case "user":
			openaiMessages[i] = openai.UserMessage(msg.Content)
		case "assistant":
			openaiMessages[i] = openai.AssistantMessage(msg.Content)
		default:
			openaiMessages[i] = openai.UserMessage(msg.Content)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: openaiMessages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// ChatJSON sends messages and parses the response as JSON into the provided type.
func (c *OpenAIClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}

	jsonContent := extractJSON(content)
	if err := json.Unmarshal([]byte(jsonContent), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}

	return nil
}

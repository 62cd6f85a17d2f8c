package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// OpenAIProvider generates summaries through an OpenAI-compatible chat
// completions endpoint.
type OpenAIProvider struct {
	endpoint  string
	model     string
	apiKeyEnv string
	maxTokens int
	apiKey    string
	client    *http.Client
}

// OpenAIConfig configures an OpenAIProvider.
type OpenAIConfig struct {
	Endpoint  string // chat completions URL
	Model     string // model name sent with every request
	APIKeyEnv string // environment variable holding the API key
	MaxTokens int    // completion budget per summary
}

// NewOpenAIProvider creates a provider for the given endpoint and model.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	return &OpenAIProvider{
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		apiKeyEnv: cfg.APIKeyEnv,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Initialize resolves the API key from the environment.
func (p *OpenAIProvider) Initialize(ctx context.Context) error {
	key := os.Getenv(p.apiKeyEnv)
	if key == "" {
		return fmt.Errorf("API key not found: set %s", p.apiKeyEnv)
	}
	p.apiKey = key
	return nil
}

// chatMessage is one message in a chat completions request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents the JSON request body for the completions endpoint.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// chatResponse represents the JSON response from the completions endpoint.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Summarize requests a single summary for one symbol.
func (p *OpenAIProvider) Summarize(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("provider not initialized: call Initialize first")
	}

	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		MaxTokens: p.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if chatResp.Error != nil {
			return "", fmt.Errorf("completions endpoint returned status %d: %s", resp.StatusCode, chatResp.Error.Message)
		}
		return "", fmt.Errorf("completions endpoint returned status %d", resp.StatusCode)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("completions endpoint returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// Close releases resources; the shared HTTP client needs no teardown.
func (p *OpenAIProvider) Close() error {
	return nil
}

const systemPrompt = "You are a senior engineer writing concise code documentation. " +
	"Given a symbol's signature and its call dependencies, respond with a single " +
	"plain-text paragraph describing what the symbol does. No markdown, no preamble."

// buildPrompt renders one symbol into the user message.
func buildPrompt(req Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "File: %s\n", req.FilePath)
	fmt.Fprintf(&sb, "Kind: %s\n", req.Kind)
	if req.Name != "" {
		fmt.Fprintf(&sb, "Name: %s\n", req.Name)
	}
	if req.Signature != "" {
		fmt.Fprintf(&sb, "Signature: %s\n", req.Signature)
	}
	if len(req.Dependencies) > 0 {
		fmt.Fprintf(&sb, "Calls: %s\n", strings.Join(req.Dependencies, ", "))
	}
	return sb.String()
}

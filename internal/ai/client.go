// Package ai is a stateless proxy to third-party chat-completion APIs,
// used for deployment troubleshooting help. Each call is a fresh round
// trip; no conversation state is kept between calls.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// Provider identifiers accepted by NewClient.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// requestTimeout bounds every outbound provider call.
const requestTimeout = 30 * time.Second

const systemPrompt = `You are a Netlify deployment expert assistant. Your job is to:
1. Help users resolve deployment problems
2. Analyze error messages and suggest fixes
3. Share Netlify best practices
4. Answer questions about deploying websites

Keep answers short and to the point.`

// testProbeMessage is the constant message TestConnection sends.
const testProbeMessage = "Reply with OK"

// ProviderError is the uniform failure type for chat calls: non-200
// responses, transport failures and empty replies all surface as this.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Body)
}

// Client talks to one configured provider.
type Client struct {
	provider   string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// defaultModel returns the provider's default model, overridable via the
// ai.providers.<provider>.model config key.
func defaultModel(provider string) string {
	if m := strings.TrimSpace(viper.GetString("ai.providers." + provider + ".model")); m != "" {
		return m
	}
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-haiku-20240307"
	case ProviderGoogle:
		return "gemini-2.5-flash"
	default:
		return ""
	}
}

// NewClient creates a chat client for the given provider.
func NewClient(provider, apiKey string) (*Client, error) {
	c := &Client{
		provider:   provider,
		apiKey:     apiKey,
		model:      defaultModel(provider),
		httpClient: &http.Client{Timeout: requestTimeout},
	}

	switch provider {
	case ProviderOpenAI:
		c.baseURL = "https://api.openai.com/v1"
	case ProviderAnthropic:
		c.baseURL = "https://api.anthropic.com/v1"
	case ProviderGoogle:
		// The genai client is created per call with the caller's context.
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", provider)
	}

	return c, nil
}

// Provider returns the configured provider identifier.
func (c *Client) Provider() string {
	return c.provider
}

// Chat sends one message, optionally with free-text project context, and
// returns the provider's reply.
func (c *Client) Chat(ctx context.Context, message, projectContext string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required")
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("API key is required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	switch c.provider {
	case ProviderOpenAI:
		return c.chatOpenAI(ctx, message, projectContext)
	case ProviderAnthropic:
		return c.chatAnthropic(ctx, message, projectContext)
	case ProviderGoogle:
		return c.chatGoogle(ctx, message, projectContext)
	default:
		return "", fmt.Errorf("unsupported AI provider: %s", c.provider)
	}
}

// TestConnection validates the credential with a constant probe through
// the normal chat path.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Chat(ctx, testProbeMessage, "")
	return err
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func buildOpenAIRequest(model, message, projectContext string) openAIRequest {
	messages := []openAIMessage{{Role: "system", Content: systemPrompt}}
	if projectContext != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: "Project details: " + projectContext})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: message})

	return openAIRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}

func (c *Client) chatOpenAI(ctx context.Context, message, projectContext string) (string, error) {
	body, err := c.post(ctx, c.baseURL+"/chat/completions", buildOpenAIRequest(c.model, message, projectContext), map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	})
	if err != nil {
		return "", err
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ProviderError{Provider: c.provider, Body: "failed to decode response: " + err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return "", &ProviderError{Provider: c.provider, Body: "no response choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func buildAnthropicRequest(model, message, projectContext string) anthropicRequest {
	system := systemPrompt
	if projectContext != "" {
		system += "\n\nProject details: " + projectContext
	}

	return anthropicRequest{
		Model:     model,
		MaxTokens: 1000,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: message}},
	}
}

func (c *Client) chatAnthropic(ctx context.Context, message, projectContext string) (string, error) {
	body, err := c.post(ctx, c.baseURL+"/messages", buildAnthropicRequest(c.model, message, projectContext), map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	})
	if err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ProviderError{Provider: c.provider, Body: "failed to decode response: " + err.Error()}
	}
	for _, block := range parsed.Content {
		if strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", &ProviderError{Provider: c.provider, Body: "no response content"}
}

// buildGooglePrompt flattens instruction, context and question into one
// text part.
func buildGooglePrompt(message, projectContext string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	if projectContext != "" {
		b.WriteString("Project details: ")
		b.WriteString(projectContext)
		b.WriteString("\n\n")
	}
	b.WriteString("User question: ")
	b.WriteString(message)
	return b.String()
}

func (c *Client) chatGoogle(ctx context.Context, message, projectContext string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return "", &ProviderError{Provider: c.provider, Body: "failed to create client: " + err.Error()}
	}

	content := genai.NewContentFromText(buildGooglePrompt(message, projectContext), genai.RoleUser)
	resp, err := client.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, &genai.GenerateContentConfig{
		MaxOutputTokens: 1000,
		Temperature:     genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", &ProviderError{Provider: c.provider, Body: err.Error()}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ProviderError{Provider: c.provider, Body: "no response candidates"}
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.WriteString(part.Text)
		}
	}
	if out.Len() == 0 {
		return "", &ProviderError{Provider: c.provider, Body: "empty response"}
	}
	return out.String(), nil
}

// post sends a JSON request and returns the body, mapping every failure
// mode onto ProviderError.
func (c *Client) post(ctx context.Context, url string, payload any, headers map[string]string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: c.provider, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: c.provider, Body: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: c.provider, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

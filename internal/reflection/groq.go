package reflection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
	defaultTimeout = 10 * time.Second

	// systemInstruction pins the tone of reflections: compassionate, concise,
	// reflective, and non-advisory unless asked.
	systemInstruction = "You are a compassionate and empathetic AI. Provide a gentle, supportive, and reflective response to the user's journal entry. Keep it concise and encouraging, focusing on emotional well-being. Do not offer advice unless explicitly asked, instead, reflect on their feelings. If the entry is short, you can ask a gentle follow-up question."

	temperature = 0.7
	maxTokens   = 150
)

// Config carries the settings for the Groq-compatible chat completions API.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GroqProvider calls a Groq-compatible chat completions endpoint.
type GroqProvider struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewGroqProvider(cfg Config) *GroqProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &GroqProvider{client: c, apiKey: cfg.APIKey, model: cfg.Model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Reflect sends the journal entry to the provider and returns the generated
// reflection. All failures after the credential check come back as
// *ProviderError.
func (p *GroqProvider) Reflect(ctx context.Context, entry string) (string, error) {
	if p.apiKey == "" {
		return "", ErrMissingCredential
	}

	reqBody := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: fmt.Sprintf("My journal entry: %s", entry)},
		},
		Model:       p.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(&reqBody).
		Post("/chat/completions")
	if err != nil {
		return "", &ProviderError{Err: fmt.Errorf("chat completions request: %w", err)}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &ProviderError{Err: fmt.Errorf("chat completions status %d: %s", resp.StatusCode(), resp.String())}
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", &ProviderError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(cr.Choices) == 0 {
		return "", &ProviderError{Err: fmt.Errorf("response contained no choices")}
	}
	return cr.Choices[0].Message.Content, nil
}

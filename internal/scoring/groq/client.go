// Package groq talks to the Groq OpenAI-compatible chat completions API.
package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-8b-8192"

	provider = "groq"
)

var ErrEmptyResponse = errors.New("groq api returned empty response")

type Client struct {
	http  *resty.Client
	model string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []message      `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

func New(apiKey, model, baseURL string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("groq api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}

	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)

	return &Client{http: rc, model: model}, nil
}

// Score sends the prompt as the only user message and asks for a JSON object reply.
func (c *Client) Score(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:          c.model,
			Messages:       []message{{Role: "user", Content: prompt}},
			ResponseFormat: responseFormat{Type: "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	body := resp.String()

	if resp.StatusCode() != http.StatusOK {
		reason := gjson.Get(body, "error.message").String()
		if reason == "" {
			reason = strings.TrimSpace(body)
		}
		return "", fmt.Errorf("chat completion: bad status %s: %s", resp.Status(), reason)
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return "", ErrEmptyResponse
	}

	return content.String(), nil
}

func (c *Client) Provider() string { return provider }

func (c *Client) Model() string { return c.model }

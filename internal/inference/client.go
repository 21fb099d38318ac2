package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// ErrNoCompletion is returned when the response is well formed but lacks the completion text
var ErrNoCompletion = errors.New("response contains no completion")

var Default = Client{
	Model:       "gpt-3.5-turbo",
	Temperature: 0.3,
	URL:         ChatURL,
}

// Client performs a single, non-streamed, chat completion per Infer call
type Client struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	URL         string  `json:"url"`
	client      *http.Client
	debug       bool
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Index   int `json:"index"`
		Message *struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *Client) Setup() {
	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.URL == "" {
		c.URL = ChatURL
	}
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_INFERENCE")) {
		c.debug = true
	}
}

// Infer sends prompt as a single user message and returns the content of the first choice
func (c *Client) Infer(ctx context.Context, prompt, apiKey string) (string, error) {
	if c.client == nil {
		c.Setup()
	}
	req, err := c.createRequest(ctx, prompt, apiKey)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(body))
	}
	return c.parseResponse(body)
}

func (c *Client) createRequest(ctx context.Context, prompt, apiKey string) (*http.Request, error) {
	reqData := request{
		Model: c.Model,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		Temperature: c.Temperature,
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("inference request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", apiKey))
	return req, nil
}

func (c *Client) parseResponse(body []byte) (string, error) {
	var res response
	err := json.Unmarshal(body, &res)
	if err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("inference response: %v\n", debug.IndentedJsonFmt(res)))
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrNoCompletion)
	}
	first := res.Choices[0]
	if first.Message == nil || first.Message.Content == nil {
		return "", fmt.Errorf("%w: first choice has no message content", ErrNoCompletion)
	}
	return *first.Message.Content, nil
}

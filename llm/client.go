package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// Client talks to a Gemini-style generateContent endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content      *content `json:"content"`
		FinishReason string   `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// generate runs one model call. A non-nil error means the call itself failed
// (network, auth, quota, bad status). A safety block, a non-STOP finish
// reason, or an empty candidate are not errors; they come back as "".
func (c *Client) generate(ctx context.Context, system, user string, temperature float64) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: user}}},
		},
		GenerationConfig: generationConfig{Temperature: temperature},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
		return "", nil
	}
	if len(genResp.Candidates) == 0 {
		return "", nil
	}
	candidate := genResp.Candidates[0]
	if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
		return "", nil
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", nil
	}
	return candidate.Content.Parts[0].Text, nil
}

// Resolve maps a raw user message to one structured intent. The error is
// reserved for transport-level failures; every way the model can answer
// badly degrades to ActionUnknown instead.
func (c *Client) Resolve(ctx context.Context, message string) (*Intent, error) {
	reply, err := c.generate(ctx, intentPrompt, message, 0.1)
	if err != nil {
		return nil, err
	}
	return parseIntent(reply), nil
}

// Answer runs the free-form Q&A call: the assembled records block plus the
// literal question, under the analyst instruction. The reply is returned
// verbatim; "" means the model declined.
func (c *Client) Answer(ctx context.Context, contextBlock, question string) (string, error) {
	user := fmt.Sprintf("%s\n\nسوال کاربر: %s", contextBlock, question)
	return c.generate(ctx, analystPrompt, user, 0.4)
}

// Advise runs the windowed-analysis call over a precomputed summary.
func (c *Client) Advise(ctx context.Context, summary string) (string, error) {
	return c.generate(ctx, advisorPrompt, summary, 0.4)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	// gpt-4o reads card images, the mini model drafts follow-up text.
	visionModel = "gpt-4o"
	textModel   = "gpt-4o-mini"

	extractionSystemPrompt = "You are an expert at extracting contact information from business cards. " +
		"Extract the following fields if present: full_name, email, phone, company, position, website. " +
		"Return the data as a JSON object with these fields. Do not include any other text in your response."

	extractionUserPrompt = "Extract the contact information from this business card and provide it as JSON."
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		// Generation is slow; callers tolerate multi-second latency.
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateText runs one text-only completion and returns the message
// content verbatim. No retries: one failed attempt is one error.
func (c *Client) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	request := chatRequest{
		Model: textModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: 1000,
	}

	return c.complete(ctx, request)
}

// ExtractBusinessCard sends a base64 JPEG of a card to the vision model
// and returns the raw extraction blob. The caller parses it; model output
// is not trusted to be clean JSON.
func (c *Client) ExtractBusinessCard(ctx context.Context, imageBase64 string) (string, error) {
	request := chatRequest{
		Model: visionModel,
		Messages: []chatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
				{Type: "text", Text: extractionUserPrompt},
			}},
		},
		MaxTokens: 1000,
	}

	return c.complete(ctx, request)
}

func (c *Client) complete(ctx context.Context, request chatRequest) (string, error) {
	jsonBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("openai error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai response missing message content")
	}

	return response.Choices[0].Message.Content, nil
}

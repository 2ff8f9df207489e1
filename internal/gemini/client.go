// Package gemini is a minimal REST client for the Google Generative
// Language API. Only the two calls the server needs are implemented:
// listing models and single-shot content generation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Generative Language API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client. The timeout bounds every request; callers can
// tighten individual calls further through the context.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model describes an available model from the models list.
type Model struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// SupportsGeneration reports whether the model can serve generateContent.
func (m Model) SupportsGeneration() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

type modelsResponse struct {
	Models        []Model `json:"models"`
	NextPageToken string  `json:"nextPageToken"`
}

// GenerateContentRequest is the request body for generateContent.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single turn of model input or output.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part holds one text fragment.
type Part struct {
	Text string `json:"text"`
}

// GenerateContentResponse is the response body for generateContent.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated completion.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Text flattens the first candidate's parts into a single string.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

type errorResponse struct {
	Error *APIError `json:"error"`
}

// APIError carries the upstream error details.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error [%d]: %s (status: %s)", e.Code, e.Message, e.Status)
}

// ListModels retrieves all available models, following pagination.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var models []Model
	pageToken := ""
	for {
		url := c.baseURL + "/v1beta/models"
		if pageToken != "" {
			url += "?pageToken=" + pageToken
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		c.setHeaders(httpReq)

		respBody, err := c.do(httpReq)
		if err != nil {
			return nil, err
		}

		var page modelsResponse
		if err := json.Unmarshal(respBody, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal models response: %w", err)
		}

		models = append(models, page.Models...)
		if page.NextPageToken == "" {
			return models, nil
		}
		pageToken = page.NextPageToken
	}
}

// GenerateContent runs a single-shot generation against the named model.
// The model name must include the "models/" prefix.
func (c *Client) GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	respBody, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var result GenerateContentResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return nil, errResp.Error
		}
		return nil, fmt.Errorf("gemini API error [%d]: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}
}

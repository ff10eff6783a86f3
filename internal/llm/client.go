// Package llm implements the client for the hosted multimodal API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-5"

	// uploadPurpose marks uploaded files as model input
	uploadPurpose = "user_data"
)

// Config holds client construction options
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the hosted API: file uploads and Responses calls
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	retry      *RetryConfig
}

// NewClient creates a new API client. The key is required; model and base
// URL fall back to defaults when empty.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ConfigError("API key is required", nil)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     logger.With().Str("component", "llm").Logger(),
		retry:      DefaultRetryConfig(),
	}, nil
}

// Model returns the model the client sends requests for
func (c *Client) Model() string {
	return c.model
}

// UploadFile pushes a local file to the Files API and returns its file ID
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", domain.IOError(fmt.Sprintf("cannot open file for upload: %s", path), err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("purpose", uploadPurpose); err != nil {
		return "", domain.APIError("failed to build upload request", err)
	}
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", domain.APIError("failed to build upload request", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", domain.IOError(fmt.Sprintf("cannot read file for upload: %s", path), err)
	}
	if err := mw.Close(); err != nil {
		return "", domain.APIError("failed to build upload request", err)
	}

	payload := body.Bytes()
	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return "", domain.APIError("file upload failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp)
	}

	var upload FileUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return "", domain.APIError("cannot decode upload response", err)
	}
	if upload.ID == "" {
		return "", domain.APIError("upload response has no file id", nil)
	}

	c.logger.Debug().Str("file", filepath.Base(path)).Str("file_id", upload.ID).Msg("file uploaded")

	return upload.ID, nil
}

// Respond sends a Responses API request and returns the model's text output
func (c *Client) Respond(ctx context.Context, req *Request) (string, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", domain.APIError("failed to marshal request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		return "", domain.APIError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp)
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", domain.APIError("cannot decode response", err)
	}
	if parsed.Error != nil {
		return "", domain.APIError(fmt.Sprintf("API error: %s", parsed.Error.Message), nil)
	}

	text := parsed.OutputText()
	if text == "" {
		return "", domain.APIError("response contains no output text", nil)
	}

	c.logger.Debug().Str("response_id", parsed.ID).Int("output_bytes", len(text)).Msg("response received")

	return text, nil
}

// statusError turns a non-200 response into a domain error, including the
// body for debugging
func (c *Client) statusError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return domain.APIError(fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(bodyBytes)), nil)
}

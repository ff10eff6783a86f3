// Package sldextract is the public entry point for embedding the renderer
// and equipment extractor in other programs.
package sldextract

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/extract"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/llm"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/observability"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/render"
)

// Re-export the core types callers work with
type (
	RenderOptions    = domain.RenderOptions
	Manifest         = domain.Manifest
	EquipmentEntry   = domain.EquipmentEntry
	ExtractionResult = domain.ExtractionResult
	ProcessOptions   = extract.ProcessOptions
	ProcessResult    = extract.ProcessResult
)

// Strategy names accepted by ProcessOptions.Strategy
const (
	StrategyEquipment = extract.StrategyEquipment
	StrategyDescribe  = extract.StrategyDescribe
)

// Config holds client configuration
type Config struct {
	APIKey  string // hosted-API key (required for extraction, not for rendering)
	Model   string // optional model override
	BaseURL string // optional API base URL override
}

// Client is the main entry point for the library
type Client struct {
	exporter *render.Exporter
	service  *extract.Service
}

// NewClient creates a client from the environment (OPENAI_API_KEY, LLM_MODEL,
// OPENAI_BASE_URL; a .env file is honored if present).
func NewClient() (*Client, error) {
	_ = godotenv.Load()

	return NewClientWithConfig(&Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   os.Getenv("LLM_MODEL"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	})
}

// NewClientWithConfig creates a client with explicit configuration
func NewClientWithConfig(config *Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, domain.ConfigError("API key is required", nil)
	}

	logger := observability.DefaultLogger()

	apiClient, err := llm.NewClient(llm.Config{
		APIKey:  config.APIKey,
		Model:   config.Model,
		BaseURL: config.BaseURL,
	}, logger)
	if err != nil {
		return nil, err
	}

	registry := extract.NewRegistry()
	registry.Register(extract.NewEquipmentExtractor(apiClient, logger))
	registry.Register(extract.NewDescribeExtractor(apiClient, logger))

	exporter := render.NewExporter(logger)
	service := extract.NewService(exporter, apiClient, registry, logger)

	return &Client{
		exporter: exporter,
		service:  service,
	}, nil
}

// Render rasterizes the selected pages of the document at path and returns
// the manifest of written files. No API access is needed.
func (c *Client) Render(path string, opts RenderOptions) (*Manifest, error) {
	if opts.DPI == 0 {
		opts.DPI = domain.DefaultDPI
	}
	return c.exporter.Export(path, opts)
}

// Extract runs the full workflow for the document at path: render, upload,
// extract, and persist the result next to the rendered images.
func (c *Client) Extract(ctx context.Context, path string, opts ProcessOptions) (*ProcessResult, error) {
	if opts.Render.DPI == 0 {
		opts.Render.DPI = domain.DefaultDPI
	}
	return c.service.Process(ctx, path, opts)
}

// Package extract orchestrates equipment extraction from rendered documents.
package extract

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/llm"
)

// maxImageRefs caps how many page images accompany the document in one call
const maxImageRefs = 2

// Request carries the inputs of one extraction invocation
type Request struct {
	DocumentPath string   // local source document, informational
	FileID       string   // uploaded document file ID
	ImageIDs     []string // uploaded page image file IDs, at most maxImageRefs used
	DryRun       bool     // echo resolved inputs without calling the API
}

// Result is the outcome of one extraction invocation
type Result struct {
	Strategy  string                   `json:"strategy"`
	DryRun    bool                     `json:"dry_run,omitempty"`
	FileID    string                   `json:"file_id,omitempty"`
	ImageIDs  []string                 `json:"image_ids,omitempty"`
	Equipment *domain.ExtractionResult `json:"equipment,omitempty"`
	Text      string                   `json:"text,omitempty"`
}

// Extractor is one interchangeable extraction strategy
type Extractor interface {
	// Name is the stable key the strategy is registered and invoked under
	Name() string

	// Run performs the extraction for the given request
	Run(ctx context.Context, req Request) (*Result, error)
}

// Responder is the slice of the API client the strategies need
type Responder interface {
	Respond(ctx context.Context, req *llm.Request) (string, error)
}

// Registry maps strategy names to extractors. It is populated once at
// startup; lookups after that are read-only.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
	}
}

// Register adds an extractor under its name, replacing any previous entry
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[e.Name()] = e
}

// Get returns the extractor registered under name
func (r *Registry) Get(name string) (Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.extractors[name]
	if !ok {
		return nil, domain.ExtractionError(fmt.Sprintf("unknown strategy: %s", name), nil)
	}
	return e, nil
}

// Names returns the registered strategy names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildContent assembles the multimodal content for a request: the document
// file, up to maxImageRefs page images, and the strategy's prompt text.
func buildContent(req Request, prompt string) []llm.ContentPart {
	content := []llm.ContentPart{
		{Type: llm.PartInputFile, FileID: req.FileID},
	}
	count := 0
	for _, id := range req.ImageIDs {
		if id == "" {
			continue
		}
		if count == maxImageRefs {
			break
		}
		content = append(content, llm.ContentPart{Type: llm.PartInputImage, FileID: id})
		count++
	}
	content = append(content, llm.ContentPart{Type: llm.PartInputText, Text: prompt})
	return content
}

// dryRunResult echoes the resolved inputs without touching the API
func dryRunResult(strategy string, req Request) *Result {
	return &Result{
		Strategy: strategy,
		DryRun:   true,
		FileID:   req.FileID,
		ImageIDs: req.ImageIDs,
	}
}

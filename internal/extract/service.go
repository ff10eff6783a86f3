package extract

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
)

// Service runs the full extraction workflow: render the document's pages,
// upload the document and a couple of page rasters, invoke the chosen
// strategy, and persist the result next to the renders.
type Service struct {
	renderer domain.Renderer
	uploader domain.Uploader
	registry *Registry
	logger   zerolog.Logger
}

// NewService creates a new extraction service
func NewService(renderer domain.Renderer, uploader domain.Uploader, registry *Registry, logger zerolog.Logger) *Service {
	return &Service{
		renderer: renderer,
		uploader: uploader,
		registry: registry,
		logger:   logger.With().Str("component", "extract").Logger(),
	}
}

// ProcessOptions controls one extraction run
type ProcessOptions struct {
	Strategy string
	Render   domain.RenderOptions
	DryRun   bool
}

// ProcessResult collects everything one run produced
type ProcessResult struct {
	Manifest        *domain.Manifest
	Result          *Result
	LatestPath      string
	TimestampedPath string
	Duration        time.Duration
}

// Process runs the workflow for the document at pdfPath. A dry run still
// renders but skips uploads, the API call, and result persistence. Rendered
// pages are never rolled back on a later failure.
func (s *Service) Process(ctx context.Context, pdfPath string, opts ProcessOptions) (*ProcessResult, error) {
	start := time.Now()

	if opts.Strategy == "" {
		opts.Strategy = StrategyEquipment
	}

	extractor, err := s.registry.Get(opts.Strategy)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("document", pdfPath).Str("strategy", opts.Strategy).Msg("starting extraction")

	manifest, err := s.renderer.Export(pdfPath, opts.Render)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("pages", len(manifest.Pages)).Msg("document rendered")

	req := Request{
		DocumentPath: pdfPath,
		DryRun:       opts.DryRun,
	}

	if !opts.DryRun {
		fileID, err := s.uploader.UploadFile(ctx, pdfPath)
		if err != nil {
			return nil, err
		}
		req.FileID = fileID

		for _, pagePath := range manifest.Pages {
			if len(req.ImageIDs) == maxImageRefs {
				break
			}
			imageID, err := s.uploader.UploadFile(ctx, pagePath)
			if err != nil {
				return nil, err
			}
			req.ImageIDs = append(req.ImageIDs, imageID)
		}
		s.logger.Info().Str("file_id", req.FileID).Int("images", len(req.ImageIDs)).Msg("document uploaded")
	}

	result, err := extractor.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &ProcessResult{
		Manifest: manifest,
		Result:   result,
	}

	if !opts.DryRun {
		outDir := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
		latest, timestamped, err := SaveResults(result, outDir)
		if err != nil {
			return nil, err
		}
		out.LatestPath = latest
		out.TimestampedPath = timestamped
		s.logger.Info().Str("results", latest).Msg("results saved")
	}

	out.Duration = time.Since(start)

	return out, nil
}

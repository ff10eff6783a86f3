package extract

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/llm"
)

// StrategyDescribe is the free-text diagram description strategy
const StrategyDescribe = "describe"

// DescribeExtractor asks the model for an unconstrained description of the
// attached document. Useful for eyeballing what the model can read before
// running the structured strategy.
type DescribeExtractor struct {
	client Responder
	logger zerolog.Logger
}

// NewDescribeExtractor creates the describe strategy
func NewDescribeExtractor(client Responder, logger zerolog.Logger) *DescribeExtractor {
	return &DescribeExtractor{
		client: client,
		logger: logger.With().Str("strategy", StrategyDescribe).Logger(),
	}
}

func (d *DescribeExtractor) Name() string {
	return StrategyDescribe
}

func (d *DescribeExtractor) Run(ctx context.Context, req Request) (*Result, error) {
	if req.DryRun {
		return dryRunResult(StrategyDescribe, req), nil
	}

	if req.FileID == "" {
		return nil, domain.ValidationError("file_id is required", nil)
	}

	apiReq := &llm.Request{
		Input: []llm.InputMessage{{
			Role:    "user",
			Content: buildContent(req, llm.DescribePrompt),
		}},
	}

	text, err := d.client.Respond(ctx, apiReq)
	if err != nil {
		return nil, err
	}

	d.logger.Debug().Int("bytes", len(text)).Msg("description received")

	return &Result{
		Strategy: StrategyDescribe,
		FileID:   req.FileID,
		ImageIDs: req.ImageIDs,
		Text:     text,
	}, nil
}

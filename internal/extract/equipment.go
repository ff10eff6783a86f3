package extract

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/llm"
)

// StrategyEquipment is the default, schema-constrained extraction strategy
const StrategyEquipment = "equipment"

// EquipmentExtractor pulls inverter, module and racking-system identities out
// of a solar installation document using strict structured output.
type EquipmentExtractor struct {
	client Responder
	logger zerolog.Logger
}

// NewEquipmentExtractor creates the equipment strategy
func NewEquipmentExtractor(client Responder, logger zerolog.Logger) *EquipmentExtractor {
	return &EquipmentExtractor{
		client: client,
		logger: logger.With().Str("strategy", StrategyEquipment).Logger(),
	}
}

func (e *EquipmentExtractor) Name() string {
	return StrategyEquipment
}

// Run asks the model for the equipment summary and parses the schema-bound
// JSON it returns
func (e *EquipmentExtractor) Run(ctx context.Context, req Request) (*Result, error) {
	if req.DryRun {
		return dryRunResult(StrategyEquipment, req), nil
	}

	if req.FileID == "" {
		return nil, domain.ValidationError("file_id is required", nil)
	}

	apiReq := &llm.Request{
		Input: []llm.InputMessage{{
			Role:    "user",
			Content: buildContent(req, llm.EquipmentPrompt),
		}},
		Text: llm.EquipmentFormat(),
	}

	text, err := e.client.Respond(ctx, apiReq)
	if err != nil {
		return nil, err
	}

	var equipment domain.ExtractionResult
	if err := json.Unmarshal([]byte(text), &equipment); err != nil {
		return nil, domain.ExtractionError("model output is not valid equipment JSON", err)
	}

	e.logger.Debug().
		Int("inverters", len(equipment.Inverter)).
		Int("modules", len(equipment.Module)).
		Int("racking", len(equipment.RackingSystem)).
		Msg("equipment parsed")

	return &Result{
		Strategy:  StrategyEquipment,
		FileID:    req.FileID,
		ImageIDs:  req.ImageIDs,
		Equipment: &equipment,
	}, nil
}

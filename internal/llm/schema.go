package llm

import "strings"

// Content part types accepted by the Responses API
const (
	PartInputFile  = "input_file"
	PartInputImage = "input_image"
	PartInputText  = "input_text"
)

// Request is the Responses API request body
type Request struct {
	Model string         `json:"model"`
	Input []InputMessage `json:"input"`
	Text  *TextFormat    `json:"text,omitempty"`
}

// InputMessage is one message of multimodal input
type InputMessage struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart is a single part of message content: a text fragment or a
// reference to a previously uploaded file or image
type ContentPart struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	FileID string `json:"file_id,omitempty"`
}

// TextFormat constrains the shape of the model's text output
type TextFormat struct {
	Format OutputFormat `json:"format"`
}

// OutputFormat names a structured output format. Type "json_schema" with
// Strict set forces the model to emit JSON matching Schema exactly.
type OutputFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	Strict bool           `json:"strict,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
}

// Response is the Responses API response body
type Response struct {
	ID     string       `json:"id"`
	Output []OutputItem `json:"output"`
	Error  *ErrorBody   `json:"error,omitempty"`
}

// OutputItem is one item of model output
type OutputItem struct {
	Type    string          `json:"type"`
	Content []OutputContent `json:"content"`
}

// OutputContent is one content part of an output item
type OutputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ErrorBody is the API's structured error payload
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// OutputText concatenates all output_text parts of the response
func (r *Response) OutputText() string {
	var sb strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}

// FileUploadResponse is the Files API response body
type FileUploadResponse struct {
	ID    string     `json:"id"`
	Error *ErrorBody `json:"error,omitempty"`
}

// EquipmentFormat returns the strict structured-output format for equipment
// extraction. Top-level keys are the three equipment types, each an array of
// at most one entry.
func EquipmentFormat() *TextFormat {
	entry := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"found": map[string]any{
				"type":        "boolean",
				"description": "Whether this equipment type was identified",
			},
			"manufacturer": map[string]any{
				"type":        "string",
				"description": "The manufacturer name, or empty if unavailable",
				"minLength":   0,
			},
			"model": map[string]any{
				"type":        "string",
				"description": "The model or part number, or empty if unavailable",
				"minLength":   0,
			},
			"evidence_note": map[string]any{
				"type":        "string",
				"description": "A textual note citing the evidence for this item",
			},
			"page_refs": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":        "integer",
					"description": "Page number of relevant evidence",
				},
				"description": "Pages where supporting evidence was found",
			},
		},
		"required":             []string{"found", "manufacturer", "model", "evidence_note", "page_refs"},
		"additionalProperties": false,
	}

	equipmentList := func(desc string) map[string]any {
		return map[string]any{
			"type":        "array",
			"items":       entry,
			"description": desc,
		}
	}

	return &TextFormat{
		Format: OutputFormat{
			Type:   "json_schema",
			Name:   "equipment_summary",
			Strict: true,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"Inverter":       equipmentList("List of inverter search results"),
					"Module":         equipmentList("List of module search results"),
					"Racking System": equipmentList("List of racking system search results"),
				},
				"required":             []string{"Inverter", "Module", "Racking System"},
				"additionalProperties": false,
			},
		},
	}
}

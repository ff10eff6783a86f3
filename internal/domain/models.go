package domain

// Document represents the source PDF file being processed
type Document struct {
	FilePath   string
	TotalPages int
}

// RenderOptions controls how pages are rasterized
type RenderOptions struct {
	DPI       int    // output resolution, dots per inch (72 is the page's native unit)
	Pages     string // page specification like "1,3-5", empty means all pages
	Grayscale bool   // collapse multi-channel rasters to a single channel
}

// DefaultDPI is the render resolution used when none is given
const DefaultDPI = 300

// Manifest lists the files produced by one export invocation.
// Pages holds the rendered PNGs in ascending page order; SourceCopy is the
// archived copy of the original document, kept separate so callers that only
// care about rasters can ignore it.
type Manifest struct {
	Pages      []string
	SourceCopy string
}

// EquipmentEntry is a single piece of equipment identified in the diagram
type EquipmentEntry struct {
	Found        bool   `json:"found"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	EvidenceNote string `json:"evidence_note"`
	PageRefs     []int  `json:"page_refs"`
}

// ExtractionResult is the structured output of an equipment extraction.
// Each equipment type carries at most one entry; the JSON keys match the
// schema the model is constrained to.
type ExtractionResult struct {
	Inverter      []EquipmentEntry `json:"Inverter,omitempty"`
	Module        []EquipmentEntry `json:"Module,omitempty"`
	RackingSystem []EquipmentEntry `json:"Racking System,omitempty"`
}

// IsEmpty reports whether nothing was identified
func (r *ExtractionResult) IsEmpty() bool {
	return len(r.Inverter) == 0 && len(r.Module) == 0 && len(r.RackingSystem) == 0
}

package llm

// EquipmentPrompt instructs the model to pull inverter, module and racking
// system identities out of a solar installation document.
const EquipmentPrompt = `Extract manufacturer, model, and equipment details for Inverter, Module, and Racking System from the provided document.

Rules:
- Use only manufacturer, model, and equipment names explicitly present in the document (PDF or image pages). Do not invent, infer, or correct names.
- Preserve exact casing and strings as seen in the document.
- Include page_refs for every item, listing all 1-based page numbers where supporting evidence appears.
- If a field is uncertain, unreadable, or unavailable, leave it empty and briefly explain in evidence_note.
- If values for the same equipment type differ across pages, select the item from the latest revision or equipment schedule and mention the conflict in evidence_note.
- At most one array element per equipment type. When multiple candidates exist, prefer in order: equipment schedule tables, dedicated specification blocks on the single line diagram, datasheet pages, labels on the diagram.
- For Racking System select the rail/structural mounting system only; mention attachment hardware in evidence_note if present.
- Output must be valid JSON matching the schema, with no prose, comments, or markdown.

Analyze the attached single-line diagram and return the equipment details.`

// DescribePrompt asks for a free-text summary of the attached diagram
const DescribePrompt = `What is in the diagram? Describe the system shown in the attached document, naming any equipment you can identify.`

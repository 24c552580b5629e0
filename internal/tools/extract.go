package tools

import "context"

const ExtractToolName = "extract"

// Extractor finds phone numbers in free text.
type Extractor interface {
	Extract(ctx context.Context, text, region string) []string
}

// ExtractResult is the payload of the extract tool.
type ExtractResult struct {
	Numbers []string `json:"numbers"`
}

// ExtractTool pulls every valid phone number out of a block of text.
type ExtractTool struct {
	extractor Extractor
}

func NewExtractTool(extractor Extractor) *ExtractTool {
	return &ExtractTool{extractor: extractor}
}

func (t *ExtractTool) Name() string { return ExtractToolName }

func (t *ExtractTool) Description() string {
	return "Find all valid phone numbers in a piece of text and return them in E.164 form."
}

func (t *ExtractTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "number", Type: "string", Description: "Free text that may contain phone numbers.", Default: ""},
		{Name: "region", Type: "string", Description: "ISO 3166 region used for numbers without country prefix."},
	}
}

func (t *ExtractTool) Invoke(ctx context.Context, params map[string]any) (Message, error) {
	text, err := stringParam(params, "number")
	if err != nil {
		return Message{}, err
	}
	region, err := trimmedParam(params, "region")
	if err != nil {
		return Message{}, err
	}

	numbers := t.extractor.Extract(ctx, text, region)
	if numbers == nil {
		numbers = []string{}
	}
	return JSONMessage(ExtractResult{Numbers: numbers}), nil
}

var _ Tool = (*ExtractTool)(nil)

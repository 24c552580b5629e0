package tools

import (
	"context"
)

const IdentifyToolName = "identify"

// Locator resolves a number to its localized location mapping.
type Locator interface {
	Locate(ctx context.Context, number, region, lang string) map[string]string
}

// IdentifyTool reports country, location, carrier and type for one number.
type IdentifyTool struct {
	locator Locator
}

func NewIdentifyTool(locator Locator) *IdentifyTool {
	return &IdentifyTool{locator: locator}
}

func (t *IdentifyTool) Name() string { return IdentifyToolName }

func (t *IdentifyTool) Description() string {
	return "Look up the country, location, carrier and number type of a phone number."
}

func (t *IdentifyTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "number", Type: "string", Description: "Phone number, with or without country prefix.", Default: ""},
		{Name: "region", Type: "string", Description: "ISO 3166 region used when the number has no country prefix."},
		{Name: "lang", Type: "string", Description: "Language of the returned labels, e.g. en or zh."},
	}
}

// Invoke always yields a message: unparseable numbers produce the error mapping.
func (t *IdentifyTool) Invoke(ctx context.Context, params map[string]any) (Message, error) {
	number, err := stringParam(params, "number")
	if err != nil {
		return Message{}, err
	}
	region, err := trimmedParam(params, "region")
	if err != nil {
		return Message{}, err
	}
	lang, err := trimmedParam(params, "lang")
	if err != nil {
		return Message{}, err
	}

	return JSONMessage(t.locator.Locate(ctx, number, region, lang)), nil
}

var _ Tool = (*IdentifyTool)(nil)

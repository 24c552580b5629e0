package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// IdentifyInput is the MCP argument schema of the identify tool.
type IdentifyInput struct {
	Number string `json:"number,omitempty" jsonschema:"phone number, with or without country prefix"`
	Region string `json:"region,omitempty" jsonschema:"ISO 3166 region for numbers without country prefix"`
	Lang   string `json:"lang,omitempty" jsonschema:"language of the returned labels, e.g. en or zh"`
}

// ExtractInput is the MCP argument schema of the extract tool.
type ExtractInput struct {
	Number string `json:"number,omitempty" jsonschema:"free text that may contain phone numbers"`
	Region string `json:"region,omitempty" jsonschema:"ISO 3166 region for numbers without country prefix"`
}

// NewMCPServer serves the identify and extract tools of reg over the Model
// Context Protocol. Both must be registered.
func NewMCPServer(reg *Registry, version string) (*mcp.Server, error) {
	identify, ok := reg.Get(IdentifyToolName)
	if !ok {
		return nil, fmt.Errorf("tool %q not registered", IdentifyToolName)
	}
	extract, ok := reg.Get(ExtractToolName)
	if !ok {
		return nil, fmt.Errorf("tool %q not registered", ExtractToolName)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "phone-tools", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{Name: identify.Name(), Description: identify.Description()}, identifyHandler(reg))
	mcp.AddTool(server, &mcp.Tool{Name: extract.Name(), Description: extract.Description()}, extractHandler(reg))

	return server, nil
}

func identifyHandler(reg *Registry) mcp.ToolHandlerFor[IdentifyInput, map[string]string] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in IdentifyInput) (*mcp.CallToolResult, map[string]string, error) {
		msg, err := reg.Invoke(ctx, IdentifyToolName, map[string]any{
			"number": in.Number,
			"region": in.Region,
			"lang":   in.Lang,
		})
		if err != nil {
			return nil, nil, err
		}
		mapping, ok := msg.JSON.(map[string]string)
		if !ok {
			return nil, nil, fmt.Errorf("identify returned %T", msg.JSON)
		}
		return nil, mapping, nil
	}
}

func extractHandler(reg *Registry) mcp.ToolHandlerFor[ExtractInput, ExtractResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExtractInput) (*mcp.CallToolResult, ExtractResult, error) {
		msg, err := reg.Invoke(ctx, ExtractToolName, map[string]any{
			"number": in.Number,
			"region": in.Region,
		})
		if err != nil {
			return nil, ExtractResult{}, err
		}
		result, ok := msg.JSON.(ExtractResult)
		if !ok {
			return nil, ExtractResult{}, fmt.Errorf("extract returned %T", msg.JSON)
		}
		return nil, result, nil
	}
}
